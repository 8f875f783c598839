package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
	"github.com/clamsproject/app-datimex-extraction/internal/core/ports/driven"
)

// Ensure AnnotationStore implements the interface.
var _ driven.AnnotationStore = (*AnnotationStore)(nil)

// AnnotationStore is an in-memory implementation of driven.AnnotationStore.
type AnnotationStore struct {
	mu    sync.RWMutex
	views map[string]domain.View
}

// NewAnnotationStore creates a new in-memory annotation store.
func NewAnnotationStore() *AnnotationStore {
	return &AnnotationStore{
		views: make(map[string]domain.View),
	}
}

// SaveView stores or replaces a view.
func (s *AnnotationStore) SaveView(_ context.Context, view *domain.View) error {
	if view == nil {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.views[view.ID] = copyView(view)
	return nil
}

// GetView retrieves a view by ID.
func (s *AnnotationStore) GetView(_ context.Context, id string) (*domain.View, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	view, ok := s.views[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := copyView(&view)
	return &out, nil
}

// ListViews returns all views, newest first.
func (s *AnnotationStore) ListViews(_ context.Context) ([]domain.View, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedViews(), nil
}

// ListAnnotations returns matching annotations, newest view first and scan
// order within a view.
func (s *AnnotationStore) ListAnnotations(
	_ context.Context,
	filter driven.AnnotationFilter,
) ([]domain.DateAnnotation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.DateAnnotation
	for _, view := range s.sortedViews() {
		if filter.ViewID != "" && view.ID != filter.ViewID {
			continue
		}
		if !filter.Since.IsZero() && view.Timestamp.Before(filter.Since) {
			continue
		}
		for _, ann := range view.Annotations {
			if filter.DocumentID != "" && ann.DocumentID != filter.DocumentID {
				continue
			}
			result = append(result, ann)
			if filter.Limit > 0 && len(result) >= filter.Limit {
				return result, nil
			}
		}
	}
	return result, nil
}

// DeleteView removes a view. Deleting a missing view is not an error.
func (s *AnnotationStore) DeleteView(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.views, id)
	return nil
}

// sortedViews must be called with the lock held.
func (s *AnnotationStore) sortedViews() []domain.View {
	views := make([]domain.View, 0, len(s.views))
	for _, v := range s.views {
		views = append(views, copyView(&v))
	}
	sort.Slice(views, func(i, j int) bool {
		if views[i].Timestamp.Equal(views[j].Timestamp) {
			return views[i].ID < views[j].ID
		}
		return views[i].Timestamp.After(views[j].Timestamp)
	})
	return views
}

func copyView(v *domain.View) domain.View {
	out := *v
	out.Parameters = v.Parameters.Clone()
	out.Annotations = append([]domain.DateAnnotation(nil), v.Annotations...)
	return out
}
