// Package bounds provides an annotator that keeps only dates within an
// inclusive range.
package bounds

import (
	"context"
	"fmt"
	"time"

	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
	"github.com/clamsproject/app-datimex-extraction/internal/core/ports/driven"
	"github.com/clamsproject/app-datimex-extraction/internal/dates"
)

// Name is the registry name of the range filter.
const Name = "bounds"

// Ensure Annotator implements the interface.
var _ driven.Annotator = (*Annotator)(nil)

// Annotator drops annotations dated before After or after Before.
// An empty bound is open.
type Annotator struct {
	after  string
	before string
}

// New creates a range filter. Bounds are YYYY-MM-DD dates or empty.
func New(after, before string) (*Annotator, error) {
	for _, b := range []string{after, before} {
		if b == "" {
			continue
		}
		if _, err := time.Parse(dates.CanonicalLayout, b); err != nil {
			return nil, fmt.Errorf("%w: bound %q is not a YYYY-MM-DD date", domain.ErrConfiguration, b)
		}
	}
	if after != "" && before != "" && after > before {
		return nil, fmt.Errorf("%w: after %s is later than before %s", domain.ErrConfiguration, after, before)
	}
	return &Annotator{after: after, before: before}, nil
}

// Name returns the annotator name.
func (a *Annotator) Name() string {
	return Name
}

// Open reports whether neither bound is set.
func (a *Annotator) Open() bool {
	return a.after == "" && a.before == ""
}

// Annotate filters anns in place order. Canonical dates compare correctly
// as strings.
func (a *Annotator) Annotate(
	_ context.Context,
	_ *domain.Document,
	anns []domain.DateAnnotation,
) ([]domain.DateAnnotation, error) {
	if a.Open() {
		return anns, nil
	}

	kept := anns[:0:0]
	for _, ann := range anns {
		if a.after != "" && ann.Date < a.after {
			continue
		}
		if a.before != "" && ann.Date > a.before {
			continue
		}
		kept = append(kept, ann)
	}
	return kept, nil
}
