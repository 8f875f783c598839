package driven

import (
	"context"
	"time"

	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
)

// AnnotationFilter narrows an annotation query. Zero values match everything.
type AnnotationFilter struct {
	// DocumentID restricts results to one document.
	DocumentID string

	// ViewID restricts results to one view.
	ViewID string

	// Since restricts results to views created at or after this time.
	Since time.Time

	// Limit caps the number of results. Zero means no limit.
	Limit int
}

// AnnotationStore persists annotation views.
type AnnotationStore interface {
	// SaveView stores a view and its annotations.
	SaveView(ctx context.Context, view *domain.View) error

	// GetView retrieves a view by ID.
	GetView(ctx context.Context, id string) (*domain.View, error)

	// ListViews returns stored views, newest first.
	ListViews(ctx context.Context) ([]domain.View, error)

	// ListAnnotations returns annotations matching the filter in view then
	// scan order.
	ListAnnotations(ctx context.Context, filter AnnotationFilter) ([]domain.DateAnnotation, error)

	// DeleteView removes a view and its annotations.
	DeleteView(ctx context.Context, id string) error
}
