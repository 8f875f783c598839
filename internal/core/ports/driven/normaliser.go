package driven

import (
	"context"

	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
)

// Normaliser transforms raw documents into text documents.
// Each normaliser handles specific MIME types (e.g., HTML, Markdown).
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Generic MIME normalisers should return 50-89.
	// Fallback normalisers should return 1-9.
	Priority() int

	// Normalise transforms a raw document into a text document.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
// Note: Normalisation only produces a Document with Text.
// Date extraction is handled by the annotator pipeline.
type NormaliseResult struct {
	// Document is the normalised document with the Text field populated.
	Document domain.Document
}
