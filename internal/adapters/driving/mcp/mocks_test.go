package mcp

import (
	"context"

	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
	"github.com/clamsproject/app-datimex-extraction/internal/core/ports/driving"
)

// mockExtractionService is a mock implementation of driving.ExtractionService.
type mockExtractionService struct {
	annotations []domain.DateAnnotation
	metadata    domain.AppMetadata
	err         error

	gotText   string
	gotParams domain.Parameters
}

func (m *mockExtractionService) Annotate(
	_ context.Context,
	_ *domain.Container,
	_ domain.Parameters,
) (*domain.View, error) {
	return nil, m.err
}

func (m *mockExtractionService) ExtractText(
	_ context.Context,
	text string,
	params domain.Parameters,
) ([]domain.DateAnnotation, error) {
	m.gotText = text
	m.gotParams = params
	return m.annotations, m.err
}

func (m *mockExtractionService) LoadDocuments(_ context.Context, _ []domain.RawDocument) (*domain.Container, error) {
	return nil, m.err
}

func (m *mockExtractionService) Metadata() domain.AppMetadata {
	return m.metadata
}

// mockAnnotationService is a mock implementation of driving.AnnotationService.
type mockAnnotationService struct {
	annotations []domain.DateAnnotation
	views       []domain.View
	view        *domain.View
	err         error

	gotQuery driving.AnnotationQuery
}

func (m *mockAnnotationService) Save(_ context.Context, _ *domain.View) error {
	return m.err
}

func (m *mockAnnotationService) List(_ context.Context, q driving.AnnotationQuery) ([]domain.DateAnnotation, error) {
	m.gotQuery = q
	return m.annotations, m.err
}

func (m *mockAnnotationService) ListViews(_ context.Context) ([]domain.View, error) {
	return m.views, m.err
}

func (m *mockAnnotationService) GetView(_ context.Context, _ string) (*domain.View, error) {
	return m.view, m.err
}

func (m *mockAnnotationService) DeleteView(_ context.Context, _ string) error {
	return m.err
}
