package services

import (
	"context"
	"fmt"

	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
	"github.com/clamsproject/app-datimex-extraction/internal/core/ports/driven"
	"github.com/clamsproject/app-datimex-extraction/internal/core/ports/driving"
)

// Ensure AnnotationService implements the interface.
var _ driving.AnnotationService = (*AnnotationService)(nil)

// AnnotationService reads and writes persisted views.
type AnnotationService struct {
	store driven.AnnotationStore
}

// NewAnnotationService creates an annotation service.
// A nil store makes every method return domain.ErrNotImplemented.
func NewAnnotationService(store driven.AnnotationStore) *AnnotationService {
	return &AnnotationService{store: store}
}

// Save persists a view.
func (s *AnnotationService) Save(ctx context.Context, view *domain.View) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	if view == nil || view.ID == "" {
		return fmt.Errorf("%w: view has no ID", domain.ErrInvalidInput)
	}
	return s.store.SaveView(ctx, view)
}

// List returns stored annotations matching the query.
func (s *AnnotationService) List(ctx context.Context, q driving.AnnotationQuery) ([]domain.DateAnnotation, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if q.Limit < 0 {
		return nil, fmt.Errorf("%w: negative limit", domain.ErrInvalidInput)
	}
	return s.store.ListAnnotations(ctx, driven.AnnotationFilter{
		DocumentID: q.DocumentID,
		Since:      q.Since,
		Limit:      q.Limit,
	})
}

// ListViews returns stored views, newest first.
func (s *AnnotationService) ListViews(ctx context.Context) ([]domain.View, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.ListViews(ctx)
}

// GetView retrieves a stored view by ID.
func (s *AnnotationService) GetView(ctx context.Context, id string) (*domain.View, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.GetView(ctx, id)
}

// DeleteView removes a stored view.
func (s *AnnotationService) DeleteView(ctx context.Context, id string) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	return s.store.DeleteView(ctx, id)
}
