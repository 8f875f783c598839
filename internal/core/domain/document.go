package domain

import "time"

// DocumentType identifies the kind of media a document carries.
type DocumentType string

// Document types understood by the container.
const (
	// DocumentTypeText is a document with text content.
	DocumentTypeText DocumentType = "TextDocument"

	// DocumentTypeAudio is an audio document.
	DocumentTypeAudio DocumentType = "AudioDocument"

	// DocumentTypeVideo is a video document.
	DocumentTypeVideo DocumentType = "VideoDocument"

	// DocumentTypeImage is an image document.
	DocumentTypeImage DocumentType = "ImageDocument"
)

// IsValid returns true if the document type is recognised.
func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentTypeText, DocumentTypeAudio, DocumentTypeVideo, DocumentTypeImage:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t DocumentType) String() string {
	return string(t)
}

// Document is a single entry in a Container.
// Text documents are the only ones eligible for date extraction.
type Document struct {
	// ID is the unique identifier for the document within its container.
	ID string

	// Type is the media type of the document.
	Type DocumentType

	// URI is the original location (file path, URL, etc).
	URI string

	// MIMEType is the content type the document was normalised from.
	MIMEType string

	// Title is the human-readable title.
	Title string

	// Text is the full text content. Empty for non-text documents.
	Text string

	// Metadata contains arbitrary key-value pairs.
	Metadata map[string]any

	// CreatedAt is when the document was added to the container.
	CreatedAt time.Time
}

// IsText returns true if the document is a text document.
func (d *Document) IsText() bool {
	return d.Type == DocumentTypeText
}
