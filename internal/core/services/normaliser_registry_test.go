package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
	"github.com/clamsproject/app-datimex-extraction/internal/core/ports/driven"
)

type stubNormaliser struct {
	name     string
	types    []string
	priority int
}

func (n *stubNormaliser) SupportedMIMETypes() []string { return n.types }
func (n *stubNormaliser) Priority() int                { return n.priority }

func (n *stubNormaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	return &driven.NormaliseResult{Document: domain.Document{
		Type:     domain.DocumentTypeText,
		MIMEType: raw.MIMEType,
		Text:     n.name,
	}}, nil
}

func TestNormaliserRegistry_Priority(t *testing.T) {
	r := NewNormaliserRegistry(
		&stubNormaliser{name: "fallback", types: []string{"text/plain"}, priority: 5},
		&stubNormaliser{name: "preferred", types: []string{"text/plain"}, priority: 50},
		&stubNormaliser{name: "second", types: []string{"text/plain"}, priority: 50},
	)

	result, err := r.Normalise(context.Background(), &domain.RawDocument{MIMEType: "text/plain"})
	require.NoError(t, err)
	assert.Equal(t, "preferred", result.Document.Text)
}

func TestNormaliserRegistry_MIMEParameters(t *testing.T) {
	r := NewNormaliserRegistry(&stubNormaliser{name: "html", types: []string{"text/html"}, priority: 50})

	tests := []string{"text/html", "text/html; charset=utf-8", "TEXT/HTML"}
	for _, mt := range tests {
		t.Run(mt, func(t *testing.T) {
			result, err := r.Normalise(context.Background(), &domain.RawDocument{MIMEType: mt})
			require.NoError(t, err)
			assert.Equal(t, "html", result.Document.Text)
		})
	}
}

func TestNormaliserRegistry_Unsupported(t *testing.T) {
	r := NewNormaliserRegistry()

	_, err := r.Normalise(context.Background(), &domain.RawDocument{MIMEType: "image/png"})
	assert.True(t, errors.Is(err, domain.ErrUnsupportedType))

	_, err = r.Normalise(context.Background(), nil)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestNormaliserRegistry_SupportedMIMETypes(t *testing.T) {
	r := NewNormaliserRegistry(
		&stubNormaliser{types: []string{"text/plain", "text/csv"}, priority: 5},
	)
	r.Register(&stubNormaliser{types: []string{"text/html", "text/plain"}, priority: 50})

	assert.Equal(t, []string{"text/csv", "text/html", "text/plain"}, r.SupportedMIMETypes())
}
