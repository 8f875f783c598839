package driving

import (
	"context"

	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
)

// ExtractionService finds and normalises dates in documents.
type ExtractionService interface {
	// Annotate scans every text document in the container, appends a new
	// view holding the date annotations, and returns that view.
	// It fails with domain.ErrConfiguration before scanning when the
	// parameters are unusable, and with domain.ErrNoInputDocuments when the
	// container holds no text documents.
	Annotate(ctx context.Context, c *domain.Container, params domain.Parameters) (*domain.View, error)

	// ExtractText annotates a single piece of text.
	ExtractText(ctx context.Context, text string, params domain.Parameters) ([]domain.DateAnnotation, error)

	// LoadDocuments normalises raw documents into a container.
	LoadDocuments(ctx context.Context, raws []domain.RawDocument) (*domain.Container, error)

	// Metadata describes the application and its parameters.
	Metadata() domain.AppMetadata
}
