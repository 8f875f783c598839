package extractor

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
	"github.com/clamsproject/app-datimex-extraction/internal/dates"
	"github.com/clamsproject/app-datimex-extraction/internal/logger"
)

func textDoc(id, text string) *domain.Document {
	return &domain.Document{ID: id, Type: domain.DocumentTypeText, Text: text}
}

func TestAnnotator_Name(t *testing.T) {
	assert.Equal(t, "dates", New().Name())
}

func TestAnnotator_Annotate(t *testing.T) {
	a := New(WithLogger(logger.Discard()))
	doc := textDoc("d1", "Meeting on 12/05/2023 and again on March 3, 2024.")

	anns, err := a.Annotate(context.Background(), doc, nil)
	require.NoError(t, err)
	require.Len(t, anns, 2)

	assert.Equal(t, domain.DateAnnotation{
		ID: "d1:date_1", DocumentID: "d1", Start: 11, End: 21,
		Text: "12/05/2023", Date: "2023-05-12", Category: domain.CategoryDate,
	}, anns[0])
	assert.Equal(t, domain.DateAnnotation{
		ID: "d1:date_2", DocumentID: "d1", Start: 35, End: 48,
		Text: "March 3, 2024", Date: "2024-03-03", Category: domain.CategoryDate,
	}, anns[1])
}

func TestAnnotator_EmptyText(t *testing.T) {
	a := New(WithLogger(logger.Discard()))

	anns, err := a.Annotate(context.Background(), textDoc("d1", ""), nil)
	require.NoError(t, err)
	assert.Empty(t, anns)
}

func TestAnnotator_NilDocument(t *testing.T) {
	_, err := New().Annotate(context.Background(), nil, nil)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestAnnotator_AppendsToExisting(t *testing.T) {
	a := New(WithLogger(logger.Discard()))
	prior := []domain.DateAnnotation{{ID: "d0:date_1", DocumentID: "d0", Date: "1999-01-01"}}

	anns, err := a.Annotate(context.Background(), textDoc("d1", "2001-02-03"), prior)
	require.NoError(t, err)
	require.Len(t, anns, 2)
	assert.Equal(t, "d0:date_1", anns[0].ID)
	assert.Equal(t, "2001-02-03", anns[1].Date)
}

func TestAnnotator_UnrecognisedIsSkippedWithWarning(t *testing.T) {
	var buf bytes.Buffer
	a := New(WithLogger(logger.New(&buf)))

	anns, err := a.Annotate(context.Background(), textDoc("d1", "Invalid: 99/99/9999 valid: 01/01/2000"), nil)
	require.NoError(t, err)
	require.Len(t, anns, 1)
	assert.Equal(t, "2000-01-01", anns[0].Date)
	assert.Equal(t, "d1:date_1", anns[0].ID)

	out := buf.String()
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "99/99/9999")
}

func TestAnnotator_CustomPattern(t *testing.T) {
	a := New(WithPattern(dates.MustCompile(`\d{4}-\d{2}-\d{2}`)), WithLogger(logger.Discard()))

	anns, err := a.Annotate(context.Background(), textDoc("d1", "01/02/2020 and 2020-02-01"), nil)
	require.NoError(t, err)
	require.Len(t, anns, 1)
	assert.Equal(t, 15, anns[0].Start)
}

func TestAnnotator_CustomNormaliser(t *testing.T) {
	n := dates.NewNormaliser(dates.Template{Name: "month/day/year", Layout: "1/2/2006"})
	a := New(WithNormaliser(n), WithLogger(logger.Discard()))

	anns, err := a.Annotate(context.Background(), textDoc("d1", "03/04/2020"), nil)
	require.NoError(t, err)
	require.Len(t, anns, 1)
	assert.Equal(t, "2020-03-04", anns[0].Date)
}

func TestAnnotator_Idempotent(t *testing.T) {
	a := New(WithLogger(logger.Discard()))
	doc := textDoc("d1", "From 1 January 2020 to 2020-12-31, then 5/6/21.")

	first, err := a.Annotate(context.Background(), doc, nil)
	require.NoError(t, err)
	second, err := a.Annotate(context.Background(), doc, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
