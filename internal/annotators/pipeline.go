// Package annotators provides the annotation pipeline, its registry of
// named annotator builders, and the factory that assembles a pipeline from
// runtime parameters.
package annotators

import (
	"context"
	"fmt"

	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
	"github.com/clamsproject/app-datimex-extraction/internal/core/ports/driven"
)

// Ensure Pipeline implements the interface.
var _ driven.AnnotatorPipeline = (*Pipeline)(nil)

// Pipeline chains multiple Annotators and runs them in order.
type Pipeline struct {
	annotators []driven.Annotator
}

// NewPipeline creates a new annotation pipeline with the given annotators.
// Annotators are executed in the order provided.
func NewPipeline(annotators ...driven.Annotator) *Pipeline {
	return &Pipeline{
		annotators: annotators,
	}
}

// Process runs the document through all annotators in order.
// The first annotator receives nil annotations and should create them.
// Subsequent annotators receive and may filter the annotations.
func (p *Pipeline) Process(ctx context.Context, doc *domain.Document) ([]domain.DateAnnotation, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: document is nil", domain.ErrInvalidInput)
	}

	var anns []domain.DateAnnotation

	for _, annotator := range p.annotators {
		var err error
		anns, err = annotator.Annotate(ctx, doc, anns)
		if err != nil {
			return nil, fmt.Errorf("annotator %s: %w", annotator.Name(), err)
		}
	}

	return anns, nil
}

// Add appends an annotator to the pipeline.
func (p *Pipeline) Add(annotator driven.Annotator) {
	p.annotators = append(p.annotators, annotator)
}

// Len returns the number of annotators in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.annotators)
}

// Names returns the annotator names in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.annotators))
	for i, a := range p.annotators {
		names[i] = a.Name()
	}
	return names
}
