package mmif

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
)

const sampleInput = `{
  "metadata": {"mmif": "http://mmif.clams.ai/1.0.0"},
  "documents": [
    {"@type": "http://mmif.clams.ai/vocabulary/TextDocument/v1",
     "properties": {"id": "d1", "text": {"@value": "Meeting on 12/05/2023.", "@language": "en"}}},
    {"@type": "VideoDocument",
     "properties": {"id": "d2", "location": "file:///media/clip.mp4", "mime": "video/mp4"}}
  ],
  "views": []
}`

func TestDecode(t *testing.T) {
	c, err := DecodeBytes([]byte(sampleInput))
	require.NoError(t, err)

	require.Len(t, c.Documents, 2)
	assert.Equal(t, "d1", c.Documents[0].ID)
	assert.Equal(t, domain.DocumentTypeText, c.Documents[0].Type)
	assert.Equal(t, "Meeting on 12/05/2023.", c.Documents[0].Text)

	assert.Equal(t, domain.DocumentTypeVideo, c.Documents[1].Type)
	assert.Equal(t, "file:///media/clip.mp4", c.Documents[1].URI)
	assert.Equal(t, "video/mp4", c.Documents[1].MIMEType)
	assert.Empty(t, c.Views)

	texts := c.TextDocuments()
	require.Len(t, texts, 1)
	assert.Equal(t, "d1", texts[0].ID)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", "not json"},
		{"missing id", `{"documents": [{"@type": "TextDocument", "properties": {}}]}`},
		{"duplicate id", `{"documents": [
			{"@type": "TextDocument", "properties": {"id": "d1"}},
			{"@type": "TextDocument", "properties": {"id": "d1"}}]}`},
		{"view not an object", `{"documents": [], "views": [1]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeBytes([]byte(tt.input))
			assert.True(t, errors.Is(err, domain.ErrInvalidInput), "got %v", err)
		})
	}
}

func TestTypeName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"TextDocument", "TextDocument"},
		{"http://mmif.clams.ai/vocabulary/TextDocument/v1", "TextDocument"},
		{"http://mmif.clams.ai/vocabulary/AudioDocument/v2", "AudioDocument"},
		{"http://mmif.clams.ai/vocabulary/ImageDocument", "ImageDocument"},
		{"http://mmif.clams.ai/vocabulary/ImageDocument/", "ImageDocument"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, typeName(tt.in), tt.in)
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	ts := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	c := &domain.Container{
		Documents: []domain.Document{
			{ID: "d1", Type: domain.DocumentTypeText, Text: "On 2020-01-02 & later", MIMEType: "text/plain"},
			{ID: "d2", Type: domain.DocumentTypeAudio, URI: "file:///a.wav"},
		},
	}
	c.AddView(&domain.View{
		ID:         "v1",
		App:        "datimex-extraction",
		Timestamp:  ts,
		Parameters: domain.Parameters{"pattern": `\d{4}-\d{2}-\d{2}`},
		Annotations: []domain.DateAnnotation{
			{ID: "d1:date_1", DocumentID: "d1", Start: 3, End: 13, Text: "2020-01-02", Date: "2020-01-02", Category: domain.CategoryDate},
		},
	})

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, c, false))
	assert.Contains(t, buf.String(), `"@type":"http://mmif.clams.ai/vocabulary/TextDocument/v1"`)
	assert.Contains(t, buf.String(), `"& later"`)

	back, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, c.Documents[0].Text, back.Documents[0].Text)
	assert.Equal(t, "", back.Documents[1].Text)
	require.Len(t, back.Views, 1)
	assert.Equal(t, c.Views[0].Annotations, back.Views[0].Annotations)
	assert.Equal(t, c.Views[0].Parameters, back.Views[0].Parameters)
	assert.True(t, ts.Equal(back.Views[0].Timestamp))
}

func TestEncode_ViewDeclaresCategory(t *testing.T) {
	c := &domain.Container{}
	c.AddView(&domain.View{ID: "v1", App: "datimex-extraction"})

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, c, true))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	views := raw["views"].([]any)
	meta := views[0].(map[string]any)["metadata"].(map[string]any)
	contains := meta["contains"].(map[string]any)
	assert.Equal(t, map[string]any{"category": "DATE"}, contains[TypeURI(AnnotationType)])
	assert.Equal(t, []any{}, views[0].(map[string]any)["annotations"])
	assert.Contains(t, buf.String(), "\n  ")
}

const tokenView = `{"id":"v_0","metadata":{"app":"http://apps.clams.ai/spacy-wrapper/v1.1","timestamp":"2023-03-21T14:22:48.447913","contains":{"http://vocab.lappsgrid.org/Token":{"document":"d1"}}},"annotations":[{"@type":"http://vocab.lappsgrid.org/Token","properties":{"id":"t1","start":0,"end":2,"word":"on"}},{"@type":"http://vocab.lappsgrid.org/Token","properties":{"id":"t2","start":3,"end":13,"word":"12/05/2023","pos":["CD"]}}]}`

func containerWithViews(views ...string) string {
	return `{"metadata":{"mmif":"http://mmif.clams.ai/1.0.0"},` +
		`"documents":[{"@type":"TextDocument","properties":{"id":"d1","text":{"@value":"on 12/05/2023"}}}],` +
		`"views":[` + strings.Join(views, ",") + `]}`
}

func TestRoundTrip_ForeignViewUnchanged(t *testing.T) {
	c, err := DecodeBytes([]byte(containerWithViews(tokenView)))
	require.NoError(t, err)
	require.Len(t, c.Views, 1)
	assert.Empty(t, c.Views[0].Annotations)

	c.AddView(&domain.View{
		ID:  "v_1",
		App: "datimex-extraction",
		Annotations: []domain.DateAnnotation{
			{ID: "d1:date_1", DocumentID: "d1", Start: 3, End: 13, Text: "12/05/2023", Date: "2023-05-12", Category: domain.CategoryDate},
		},
	})

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, c, false))
	assert.Contains(t, buf.String(), tokenView)

	var out struct {
		Views []json.RawMessage `json:"views"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out.Views, 2)
	assert.Equal(t, tokenView, string(out.Views[0]))
	assert.Contains(t, string(out.Views[1]), `"date":"2023-05-12"`)
}

func TestRoundTrip_ForeignViewPretty(t *testing.T) {
	c, err := DecodeBytes([]byte(containerWithViews(tokenView)))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, c, true))

	var out struct {
		Views []json.RawMessage `json:"views"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out.Views, 1)
	assert.JSONEq(t, tokenView, string(out.Views[0]))
}

func TestDecode_ZonelessTimestamp(t *testing.T) {
	c, err := DecodeBytes([]byte(containerWithViews(tokenView)))
	require.NoError(t, err)

	want := time.Date(2023, 3, 21, 14, 22, 48, 447913000, time.UTC)
	assert.True(t, want.Equal(c.Views[0].Timestamp), "got %v", c.Views[0].Timestamp)
}

func TestDecode_UnknownTimestampKept(t *testing.T) {
	v := `{"id":"v1","metadata":{"app":"x","timestamp":"yesterday"},"annotations":[]}`
	c, err := DecodeBytes([]byte(containerWithViews(v)))
	require.NoError(t, err)
	assert.True(t, c.Views[0].Timestamp.IsZero())

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, c, false))
	assert.Contains(t, buf.String(), v)
}

func TestDecode_LiftsOnlyDateAnnotations(t *testing.T) {
	v := `{"id":"v1","metadata":{"app":"x","parameters":{"pattern":"\\d{4}","pretty":true}},"annotations":[` +
		`{"@type":"http://mmif.clams.ai/vocabulary/Annotation/v1","properties":{"id":"a1","document":"d1","start":3,"end":13,"text":"12/05/2023","date":"2023-05-12","category":"DATE"}},` +
		`{"@type":"http://mmif.clams.ai/vocabulary/Annotation/v1","properties":{"id":"a2","category":"PERSON"}},` +
		`{"@type":"http://mmif.clams.ai/vocabulary/TimeFrame/v1","properties":{"id":"tf1","start":"oops"}}]}`

	c, err := DecodeBytes([]byte(containerWithViews(v)))
	require.NoError(t, err)
	require.Len(t, c.Views, 1)
	require.Len(t, c.Views[0].Annotations, 1)
	assert.Equal(t, "a1", c.Views[0].Annotations[0].ID)
	assert.Equal(t, "2023-05-12", c.Views[0].Annotations[0].Date)
	assert.Equal(t, domain.Parameters{"pattern": `\d{4}`, "pretty": "true"}, c.Views[0].Parameters)
}
