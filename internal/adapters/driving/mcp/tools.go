package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
	"github.com/clamsproject/app-datimex-extraction/internal/core/ports/driving"
)

// ExtractInput is the input schema for the extract_dates tool.
type ExtractInput struct {
	Text    string `json:"text" jsonschema:"the text to scan for dates"`
	Pattern string `json:"pattern,omitempty" jsonschema:"regular expression used to find dates (default built-in)"`
	After   string `json:"after,omitempty" jsonschema:"drop dates earlier than this YYYY-MM-DD date"`
	Before  string `json:"before,omitempty" jsonschema:"drop dates later than this YYYY-MM-DD date"`
}

// ExtractOutput is the output schema for the extract_dates tool.
type ExtractOutput struct {
	Dates []DateOutput `json:"dates"`
	Count int          `json:"count"`
}

// DateOutput is a single date found in the text.
type DateOutput struct {
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Text     string `json:"text"`
	Date     string `json:"date"`
	Document string `json:"document,omitempty"`
}

// ListInput is the input schema for the list_annotations tool.
type ListInput struct {
	DocumentID string `json:"document_id,omitempty" jsonschema:"only annotations of this document"`
	Since      string `json:"since,omitempty" jsonschema:"only runs at or after this date, in any common format (UTC)"`
	Limit      int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 50)"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "extract_dates",
		Description: "Find dates in text and normalise each to YYYY-MM-DD",
	}, s.handleExtract)

	if s.ports.Annotations != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "list_annotations",
			Description: "List stored date annotations from earlier runs",
		}, s.handleList)
	}
}

// handleExtract handles the extract_dates tool invocation.
func (s *Server) handleExtract(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExtractInput,
) (*mcp.CallToolResult, ExtractOutput, error) {
	params := domain.Parameters{}
	for k, v := range map[string]string{"pattern": input.Pattern, "after": input.After, "before": input.Before} {
		if v != "" {
			params[k] = v
		}
	}

	anns, err := s.ports.Extraction.ExtractText(ctx, input.Text, params)
	if err != nil {
		return nil, ExtractOutput{}, err
	}

	output := ExtractOutput{
		Dates: make([]DateOutput, len(anns)),
		Count: len(anns),
	}
	for i := range anns {
		output.Dates[i] = DateOutput{
			Start: anns[i].Start,
			End:   anns[i].End,
			Text:  anns[i].Text,
			Date:  anns[i].Date,
		}
	}

	return nil, output, nil
}

// handleList handles the list_annotations tool invocation.
func (s *Server) handleList(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListInput,
) (*mcp.CallToolResult, ExtractOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 50
	}

	q := driving.AnnotationQuery{DocumentID: input.DocumentID, Limit: limit}
	if input.Since != "" {
		since, err := dateparse.ParseIn(input.Since, time.UTC)
		if err != nil {
			return nil, ExtractOutput{}, fmt.Errorf("parsing since %q: %w", input.Since, err)
		}
		q.Since = since
	}

	anns, err := s.ports.Annotations.List(ctx, q)
	if err != nil {
		return nil, ExtractOutput{}, fmt.Errorf("listing annotations: %w", err)
	}

	output := ExtractOutput{
		Dates: make([]DateOutput, len(anns)),
		Count: len(anns),
	}
	for i := range anns {
		output.Dates[i] = DateOutput{
			Start:    anns[i].Start,
			End:      anns[i].End,
			Text:     anns[i].Text,
			Date:     anns[i].Date,
			Document: anns[i].DocumentID,
		}
	}

	return nil, output, nil
}
