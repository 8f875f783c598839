package normalisers

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
)

// Metadata keys set on every normalised document.
const (
	MetaMIMEType = "mime_type"
	MetaFormat   = "format"
)

// NewTextDocument builds a text document for raw with the extracted text.
// Caller metadata is copied and tagged with the MIME type and format.
func NewTextDocument(raw *domain.RawDocument, format, title, text string) domain.Document {
	metadata := make(map[string]any, len(raw.Metadata)+2)
	for k, v := range raw.Metadata {
		metadata[k] = v
	}
	metadata[MetaMIMEType] = raw.MIMEType
	metadata[MetaFormat] = format

	return domain.Document{
		ID:        uuid.New().String(),
		Type:      domain.DocumentTypeText,
		URI:       raw.URI,
		MIMEType:  raw.MIMEType,
		Title:     title,
		Text:      text,
		Metadata:  metadata,
		CreatedAt: time.Now(),
	}
}

// Title returns the caller-supplied title in raw's metadata, or one derived
// from the URI.
func Title(raw *domain.RawDocument) string {
	if title, ok := raw.Metadata["title"].(string); ok && title != "" {
		return title
	}
	return TitleFromURI(raw.URI)
}

// TitleFromURI derives a human-readable title from a file name:
// "meeting_notes-2020.txt" becomes "meeting notes 2020".
func TitleFromURI(uri string) string {
	filename := filepath.Base(uri)
	filename = strings.TrimSuffix(filename, filepath.Ext(filename))
	return strings.NewReplacer("_", " ", "-", " ").Replace(filename)
}
