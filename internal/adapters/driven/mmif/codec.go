// Package mmif encodes and decodes document containers as MMIF-style JSON.
//
// Only the parts of MMIF the extraction pipeline reads or writes are
// modelled: documents with their text, and views holding annotations.
// Document and annotation types are written as vocabulary URIs and read
// either as URIs or as bare names such as "TextDocument".
//
// Views already present in a container belong to other runs. They are
// kept as read and written back unchanged; only their DATE annotations
// are surfaced on the decoded view.
package mmif

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
)

// Format identifiers.
const (
	SpecVersion   = "http://mmif.clams.ai/1.0.0"
	VocabularyURI = "http://mmif.clams.ai/vocabulary/"
	typeVersion   = "/v1"
)

// AnnotationType is the vocabulary name of a date annotation.
const AnnotationType = "Annotation"

type container struct {
	Metadata  metadata          `json:"metadata"`
	Documents []document        `json:"documents"`
	Views     []json.RawMessage `json:"views"`
}

type metadata struct {
	MMIF string `json:"mmif"`
}

type document struct {
	Type       string        `json:"@type"`
	Properties docProperties `json:"properties"`
}

type docProperties struct {
	ID       string         `json:"id"`
	MIME     string         `json:"mime,omitempty"`
	Location string         `json:"location,omitempty"`
	Title    string         `json:"title,omitempty"`
	Text     *textValue     `json:"text,omitempty"`
	Extra    map[string]any `json:"metadata,omitempty"`
}

type textValue struct {
	Value    string `json:"@value"`
	Language string `json:"@language,omitempty"`
}

type view struct {
	ID          string       `json:"id"`
	Metadata    viewMetadata `json:"metadata"`
	Annotations []annotation `json:"annotations"`
}

type viewMetadata struct {
	App        string                       `json:"app"`
	Timestamp  string                       `json:"timestamp,omitempty"`
	Parameters map[string]string            `json:"parameters,omitempty"`
	Contains   map[string]map[string]string `json:"contains,omitempty"`
}

// inView is the decoding side of view. Annotations and parameter values
// stay raw so that vocabularies other than DATE never fail a decode.
type inView struct {
	ID       string `json:"id"`
	Metadata struct {
		App        string                     `json:"app"`
		Timestamp  string                     `json:"timestamp"`
		Parameters map[string]json.RawMessage `json:"parameters"`
	} `json:"metadata"`
	Annotations []json.RawMessage `json:"annotations"`
}

type annotation struct {
	Type       string          `json:"@type"`
	Properties annotationProps `json:"properties"`
}

type annotationProps struct {
	ID       string `json:"id"`
	Document string `json:"document"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Text     string `json:"text"`
	Date     string `json:"date"`
	Category string `json:"category"`
}

// timestampLayouts are tried in order. mmif-python writes isoformat()
// timestamps, which carry no zone; those are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// TypeURI returns the vocabulary URI of a type name.
func TypeURI(name string) string {
	return VocabularyURI + name + typeVersion
}

// typeName reduces a vocabulary URI to its type name. Bare names are
// returned unchanged.
func typeName(t string) string {
	t = strings.TrimSuffix(t, "/")
	if !strings.Contains(t, "/") {
		return t
	}
	parts := strings.Split(t, "/")
	name := parts[len(parts)-1]
	if strings.HasPrefix(name, "v") && len(parts) > 1 {
		name = parts[len(parts)-2]
	}
	return name
}

// Decode reads a container. Malformed input is reported as
// domain.ErrInvalidInput.
func Decode(r io.Reader) (*domain.Container, error) {
	var in container
	dec := json.NewDecoder(r)
	if err := dec.Decode(&in); err != nil {
		return nil, fmt.Errorf("%w: decoding container: %v", domain.ErrInvalidInput, err)
	}

	c := &domain.Container{Documents: make([]domain.Document, 0, len(in.Documents))}
	seen := make(map[string]bool, len(in.Documents))
	for i, d := range in.Documents {
		id := d.Properties.ID
		if id == "" {
			return nil, fmt.Errorf("%w: document %d has no id", domain.ErrInvalidInput, i)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: duplicate document id %q", domain.ErrInvalidInput, id)
		}
		seen[id] = true

		doc := domain.Document{
			ID:       id,
			Type:     domain.DocumentType(typeName(d.Type)),
			URI:      d.Properties.Location,
			MIMEType: d.Properties.MIME,
			Title:    d.Properties.Title,
			Metadata: d.Properties.Extra,
		}
		if d.Properties.Text != nil {
			doc.Text = d.Properties.Text.Value
		}
		c.Documents = append(c.Documents, doc)
	}

	for i, raw := range in.Views {
		var v inView
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("%w: view %d: %v", domain.ErrInvalidInput, i, err)
		}
		c.Views = append(c.Views, decodeView(v, raw))
	}

	return c, nil
}

// decodeView keeps raw for re-encoding and lifts out the DATE annotations.
// Timestamps in an unknown format are left zero rather than rejected.
func decodeView(v inView, raw json.RawMessage) *domain.View {
	dv := &domain.View{
		ID:          v.ID,
		App:         v.Metadata.App,
		Annotations: make([]domain.DateAnnotation, 0),
		Raw:         append([]byte(nil), raw...),
	}
	if ts, ok := parseTimestamp(v.Metadata.Timestamp); ok {
		dv.Timestamp = ts
	}
	if len(v.Metadata.Parameters) > 0 {
		dv.Parameters = make(domain.Parameters, len(v.Metadata.Parameters))
		for k, val := range v.Metadata.Parameters {
			var str string
			if err := json.Unmarshal(val, &str); err != nil {
				str = string(val)
			}
			dv.Parameters[k] = str
		}
	}
	for _, rawAnn := range v.Annotations {
		var a annotation
		if err := json.Unmarshal(rawAnn, &a); err != nil {
			continue
		}
		p := a.Properties
		if typeName(a.Type) != AnnotationType || p.Category != domain.CategoryDate {
			continue
		}
		dv.Annotations = append(dv.Annotations, domain.DateAnnotation{
			ID:         p.ID,
			DocumentID: p.Document,
			Start:      p.Start,
			End:        p.End,
			Text:       p.Text,
			Date:       p.Date,
			Category:   p.Category,
		})
	}
	return dv
}

// DecodeBytes is Decode over a byte slice.
func DecodeBytes(data []byte) (*domain.Container, error) {
	return Decode(bytes.NewReader(data))
}

// Encode writes c as JSON. Pretty output is indented by two spaces.
func Encode(w io.Writer, c *domain.Container, pretty bool) error {
	out := container{
		Metadata:  metadata{MMIF: SpecVersion},
		Documents: make([]document, 0, len(c.Documents)),
		Views:     make([]json.RawMessage, 0, len(c.Views)),
	}

	for _, d := range c.Documents {
		doc := document{
			Type: TypeURI(d.Type.String()),
			Properties: docProperties{
				ID:       d.ID,
				MIME:     d.MIMEType,
				Location: d.URI,
				Title:    d.Title,
				Extra:    d.Metadata,
			},
		}
		if d.IsText() {
			doc.Properties.Text = &textValue{Value: d.Text}
		}
		out.Documents = append(out.Documents, doc)
	}

	for _, v := range c.Views {
		if len(v.Raw) > 0 {
			out.Views = append(out.Views, json.RawMessage(v.Raw))
			continue
		}
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(encodeView(v)); err != nil {
			return fmt.Errorf("encoding view %s: %w", v.ID, err)
		}
		out.Views = append(out.Views, bytes.TrimSpace(buf.Bytes()))
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}

func encodeView(v *domain.View) view {
	ov := view{
		ID: v.ID,
		Metadata: viewMetadata{
			App:        v.App,
			Parameters: v.Parameters,
			Contains: map[string]map[string]string{
				TypeURI(AnnotationType): {"category": domain.CategoryDate},
			},
		},
		Annotations: make([]annotation, 0, len(v.Annotations)),
	}
	if !v.Timestamp.IsZero() {
		ov.Metadata.Timestamp = v.Timestamp.Format(time.RFC3339Nano)
	}
	for _, a := range v.Annotations {
		ov.Annotations = append(ov.Annotations, annotation{
			Type: TypeURI(AnnotationType),
			Properties: annotationProps{
				ID:       a.ID,
				Document: a.DocumentID,
				Start:    a.Start,
				End:      a.End,
				Text:     a.Text,
				Date:     a.Date,
				Category: a.Category,
			},
		})
	}
	return ov
}
