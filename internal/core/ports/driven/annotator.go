package driven

import (
	"context"

	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
)

// Annotator produces annotations for a document.
// Annotators are chained in a pipeline (e.g., date extraction, bounds filter).
type Annotator interface {
	// Name returns the annotator name for logging and configuration.
	Name() string

	// Annotate takes a document and the annotations produced so far.
	// An annotator that creates annotations appends to the input; one that
	// filters returns a subset. Order must be preserved.
	Annotate(ctx context.Context, doc *domain.Document, anns []domain.DateAnnotation) ([]domain.DateAnnotation, error)
}

// AnnotatorPipeline chains multiple Annotators.
type AnnotatorPipeline interface {
	// Process runs the document through all annotators in order.
	// Returns the final annotations after all processing.
	Process(ctx context.Context, doc *domain.Document) ([]domain.DateAnnotation, error)
}

// AnnotatorFactory builds a pipeline for one annotation run.
type AnnotatorFactory interface {
	// Build creates a pipeline configured by the runtime parameters.
	// Unusable parameters return an error wrapping domain.ErrConfiguration.
	Build(params domain.Parameters) (AnnotatorPipeline, error)
}
