// Package extractor provides the annotator that finds date-like spans in
// a text document and attaches their normalised dates.
package extractor

import (
	"context"
	"fmt"

	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
	"github.com/clamsproject/app-datimex-extraction/internal/core/ports/driven"
	"github.com/clamsproject/app-datimex-extraction/internal/dates"
	"github.com/clamsproject/app-datimex-extraction/internal/logger"
)

// Name is the registry name of the date extractor.
const Name = "dates"

// Ensure Annotator implements the interface.
var _ driven.Annotator = (*Annotator)(nil)

// Annotator matches date-like spans and normalises each one.
// Spans the normaliser does not recognise are logged and skipped.
type Annotator struct {
	matcher    *dates.Matcher
	normaliser *dates.Normaliser
	log        *logger.Logger
}

// Option configures an Annotator.
type Option func(*Annotator)

// WithPattern sets the pattern used to find spans.
func WithPattern(p *dates.Pattern) Option {
	return func(a *Annotator) {
		a.matcher = dates.NewMatcher(p)
	}
}

// WithNormaliser replaces the default normaliser.
func WithNormaliser(n *dates.Normaliser) Option {
	return func(a *Annotator) {
		if n != nil {
			a.normaliser = n
		}
	}
}

// WithLogger sets the logger receiving unrecognised-date warnings.
func WithLogger(l *logger.Logger) Option {
	return func(a *Annotator) {
		if l != nil {
			a.log = l
		}
	}
}

// New creates a date extractor with the default pattern and templates.
func New(opts ...Option) *Annotator {
	a := &Annotator{
		matcher:    dates.NewMatcher(nil),
		normaliser: dates.NewNormaliser(),
		log:        logger.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name returns the annotator name.
func (a *Annotator) Name() string {
	return Name
}

// Pattern returns the pattern used to find spans.
func (a *Annotator) Pattern() *dates.Pattern {
	return a.matcher.Pattern()
}

// Annotate appends one annotation per recognised span, in text order.
// Annotation IDs are derived from the document ID and a running count,
// so repeated runs over the same document produce identical output.
func (a *Annotator) Annotate(
	_ context.Context,
	doc *domain.Document,
	anns []domain.DateAnnotation,
) ([]domain.DateAnnotation, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: document is nil", domain.ErrInvalidInput)
	}
	if doc.Text == "" {
		return anns, nil
	}

	found, skipped := 0, 0
	for m := range a.matcher.FindSpans(doc.Text) {
		date, ok := a.normaliser.Normalise(m.Text)
		if !ok {
			skipped++
			a.log.Warn("skipping %q at %d-%d in document %s: %v",
				m.Text, m.Start, m.End, doc.ID, domain.ErrUnrecognizedDate)
			continue
		}
		found++
		id := fmt.Sprintf("%s:date_%d", doc.ID, found)
		anns = append(anns, domain.NewDateAnnotation(id, doc.ID, m, date))
	}

	a.log.Debug("document %s: %d dates, %d skipped", doc.ID, found, skipped)
	return anns, nil
}
