package driving

import (
	"context"
	"time"

	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
)

// AnnotationQuery narrows a listing of stored annotations.
type AnnotationQuery struct {
	// DocumentID restricts results to one document.
	DocumentID string

	// Since restricts results to runs at or after this time.
	Since time.Time

	// Limit caps the number of results. Zero means no limit.
	Limit int
}

// AnnotationService reads annotations persisted by earlier runs.
type AnnotationService interface {
	// Save persists a view produced by an extraction run.
	Save(ctx context.Context, view *domain.View) error

	// List returns stored annotations matching the query.
	List(ctx context.Context, q AnnotationQuery) ([]domain.DateAnnotation, error)

	// ListViews returns stored views, newest first.
	ListViews(ctx context.Context) ([]domain.View, error)

	// GetView retrieves a stored view by ID.
	GetView(ctx context.Context, id string) (*domain.View, error)

	// DeleteView removes a stored view.
	DeleteView(ctx context.Context, id string) error
}
