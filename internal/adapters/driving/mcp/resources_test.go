package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
)

func TestExtractViewID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid view URI",
			uri:      "datimex://views/view-123",
			expected: "view-123",
		},
		{
			name:     "invalid prefix",
			uri:      "file://views/view-123",
			expected: "",
		},
		{
			name:     "nested path",
			uri:      "datimex://views/view-123/annotations",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractViewID(tt.uri)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleMetadataResource(t *testing.T) {
	extraction := &mockExtractionService{
		metadata: domain.AppMetadata{Name: "Datimex Extraction", Identifier: "datimex-extraction"},
	}
	server, err := NewServer(&Ports{Extraction: extraction}, "")
	require.NoError(t, err)

	result, err := server.handleMetadataResource(context.Background(), makeReadResourceRequest("datimex://metadata"))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)
	assert.Contains(t, result.Contents[0].Text, `"identifier": "datimex-extraction"`)
}

func TestServer_handleViewsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil annotation service returns empty list", func(t *testing.T) {
		server, err := NewServer(&Ports{Extraction: &mockExtractionService{}}, "")
		require.NoError(t, err)

		result, err := server.handleViewsResource(ctx, makeReadResourceRequest("datimex://views"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns view summaries", func(t *testing.T) {
		annotations := &mockAnnotationService{
			views: []domain.View{{
				ID:          "view-1",
				Timestamp:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
				Annotations: make([]domain.DateAnnotation, 3),
			}},
		}
		server, err := NewServer(&Ports{Extraction: &mockExtractionService{}, Annotations: annotations}, "")
		require.NoError(t, err)

		result, err := server.handleViewsResource(ctx, makeReadResourceRequest("datimex://views"))

		require.NoError(t, err)
		assert.Contains(t, result.Contents[0].Text, `"id": "view-1"`)
		assert.Contains(t, result.Contents[0].Text, `"timestamp": "2024-01-02T03:04:05Z"`)
		assert.Contains(t, result.Contents[0].Text, `"annotations": 3`)
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		annotations := &mockAnnotationService{err: errors.New("database error")}
		server, err := NewServer(&Ports{Extraction: &mockExtractionService{}, Annotations: annotations}, "")
		require.NoError(t, err)

		_, err = server.handleViewsResource(ctx, makeReadResourceRequest("datimex://views"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing views")
	})
}

func TestServer_handleViewResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil annotation service returns not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Extraction: &mockExtractionService{}}, "")
		require.NoError(t, err)

		_, err = server.handleViewResource(ctx, makeReadResourceRequest("datimex://views/v1"))
		require.Error(t, err)
	})

	t.Run("invalid URI returns not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Extraction: &mockExtractionService{}, Annotations: &mockAnnotationService{}}, "")
		require.NoError(t, err)

		_, err = server.handleViewResource(ctx, makeReadResourceRequest("datimex://invalid/uri"))
		require.Error(t, err)
	})

	t.Run("missing view returns not found", func(t *testing.T) {
		annotations := &mockAnnotationService{err: domain.ErrNotFound}
		server, err := NewServer(&Ports{Extraction: &mockExtractionService{}, Annotations: annotations}, "")
		require.NoError(t, err)

		_, err = server.handleViewResource(ctx, makeReadResourceRequest("datimex://views/v1"))
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("returns the view", func(t *testing.T) {
		annotations := &mockAnnotationService{
			view: &domain.View{
				ID: "v1",
				Annotations: []domain.DateAnnotation{
					{ID: "d1:date_1", DocumentID: "d1", Date: "2020-01-01", Category: domain.CategoryDate},
				},
			},
		}
		server, err := NewServer(&Ports{Extraction: &mockExtractionService{}, Annotations: annotations}, "")
		require.NoError(t, err)

		result, err := server.handleViewResource(ctx, makeReadResourceRequest("datimex://views/v1"))

		require.NoError(t, err)
		assert.Contains(t, result.Contents[0].Text, `"date": "2020-01-01"`)
	})
}
