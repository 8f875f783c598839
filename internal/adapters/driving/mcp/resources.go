package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for datimex resources.
	uriScheme = "datimex://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "metadata",
		Name:        "metadata",
		Description: "Application metadata: inputs, outputs and parameters",
		MIMEType:    "application/json",
	}, s.handleMetadataResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "views",
		Name:        "views",
		Description: "Stored annotation runs, newest first",
		MIMEType:    "application/json",
	}, s.handleViewsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "views/{viewId}",
		Name:        "view",
		Description: "A stored annotation run with its dates",
		MIMEType:    "application/json",
	}, s.handleViewResource)
}

// handleMetadataResource returns the application metadata.
func (s *Server) handleMetadataResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResult(req.Params.URI, s.ports.Extraction.Metadata(), "metadata")
}

// handleViewsResource returns a summary of every stored view.
func (s *Server) handleViewsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Annotations == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	views, err := s.ports.Annotations.ListViews(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing views: %w", err)
	}

	type viewInfo struct {
		ID          string `json:"id"`
		Timestamp   string `json:"timestamp"`
		Annotations int    `json:"annotations"`
	}

	infos := make([]viewInfo, len(views))
	for i := range views {
		infos[i] = viewInfo{
			ID:          views[i].ID,
			Timestamp:   views[i].Timestamp.Format(time.RFC3339),
			Annotations: len(views[i].Annotations),
		}
	}

	return jsonResult(req.Params.URI, infos, "views")
}

// handleViewResource returns one stored view.
func (s *Server) handleViewResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Annotations == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	viewID := extractViewID(req.Params.URI)
	if viewID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	view, err := s.ports.Annotations.GetView(ctx, viewID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting view: %w", err)
	}

	return jsonResult(req.Params.URI, view, "view")
}

func jsonResult(uri string, v any, what string) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", what, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractViewID extracts the view ID from a URI like datimex://views/{viewId}.
func extractViewID(uri string) string {
	const prefix = uriScheme + "views/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
