package cli

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
)

// seedView stores a view with one annotation per date.
func seedView(t *testing.T, env *testEnv, id string, ts time.Time, dates ...string) {
	t.Helper()
	view := &domain.View{ID: id, App: "datimex-extraction", Timestamp: ts}
	for i, d := range dates {
		view.Annotations = append(view.Annotations, domain.DateAnnotation{
			ID:         fmt.Sprintf("d1:date_%d", i),
			DocumentID: "d1",
			Start:      i * 20,
			End:        i*20 + 10,
			Text:       d,
			Date:       d,
			Category:   domain.CategoryDate,
		})
	}
	require.NoError(t, env.store.SaveView(t.Context(), view))
}

func TestAnnotationsList(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()
	seedView(t, env, "v1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "2020-01-01", "2020-02-02")
	seedView(t, env, "v2", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), "2021-03-03")

	out := mustRun(t, "", "annotations", "list")
	assert.Contains(t, out, "2020-01-01")
	assert.Contains(t, out, "2021-03-03")
	assert.Contains(t, out, "3 dates found.")
}

func TestAnnotationsList_Filters(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()
	seedView(t, env, "v1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "2020-01-01", "2020-02-02")
	seedView(t, env, "v2", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), "2021-03-03")

	out := mustRun(t, "", "annotations", "list", "--json", "--since", "2024-03-01")
	var anns []domain.DateAnnotation
	require.NoError(t, json.Unmarshal([]byte(out), &anns))
	require.Len(t, anns, 1)
	assert.Equal(t, "2021-03-03", anns[0].Date)

	out = mustRun(t, "", "annotations", "list", "--json", "--limit", "1", "--document", "d1")
	anns = nil
	require.NoError(t, json.Unmarshal([]byte(out), &anns))
	assert.Len(t, anns, 1)
}

func TestAnnotationsList_Empty(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	out := mustRun(t, "", "annotations", "list")
	assert.Contains(t, out, "No dates found.")
}

func TestAnnotationsList_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"since", []string{"--since", "not a date"}, "invalid --since"},
		{"limit", []string{"--limit", "-1"}, "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cleanup := setupTestServices(t)
			defer cleanup()

			_, err := run(t, "", append([]string{"annotations", "list"}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestAnnotationsViews(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()

	out := mustRun(t, "", "annotations", "views")
	assert.Contains(t, out, "No stored runs.")

	seedView(t, env, "v1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "2020-01-01")
	out = mustRun(t, "", "annotations", "views")
	assert.Contains(t, out, "v1")
	assert.Contains(t, out, "VIEW")
}

func TestAnnotationsGet(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()
	seedView(t, env, "v1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "2020-01-01")

	out := mustRun(t, "", "annotations", "get", "v1")
	assert.Contains(t, out, "View v1")
	assert.Contains(t, out, "2020-01-01")

	out = mustRun(t, "", "annotations", "get", "v1", "--json")
	var view domain.View
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, "v1", view.ID)
	assert.Len(t, view.Annotations, 1)

	_, err := run(t, "", "annotations", "get", "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAnnotationsDelete(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()
	seedView(t, env, "v1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "2020-01-01")

	out := mustRun(t, "", "annotations", "delete", "v1")
	assert.Contains(t, out, "Deleted view v1")

	_, err := env.store.GetView(t.Context(), "v1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAnnotations_NoStorage(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()
	annotationService = nil

	for _, args := range [][]string{
		{"annotations", "list"},
		{"annotations", "views"},
		{"annotations", "get", "v1"},
		{"annotations", "delete", "v1"},
	} {
		_, err := run(t, "", args...)
		require.Error(t, err, args)
		assert.Contains(t, err.Error(), "not configured")
	}
}
