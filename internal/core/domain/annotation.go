package domain

// CategoryDate is the category attached to every date annotation.
const CategoryDate = "DATE"

// DateMatch is a date-like span found in a text.
// Start and End are code point (rune) offsets forming the half-open range
// [Start, End), the way MMIF consumers index text.
type DateMatch struct {
	// Start is the offset of the first code point of the match.
	Start int

	// End is the offset one past the last code point of the match.
	End int

	// Text is the matched substring.
	Text string
}

// Len returns the length of the match in code points.
func (m DateMatch) Len() int {
	return m.End - m.Start
}

// DateAnnotation attaches a normalised date to a span of a document.
type DateAnnotation struct {
	// ID is the unique identifier for the annotation.
	ID string `json:"id"`

	// DocumentID links to the Document the span belongs to.
	DocumentID string `json:"document"`

	// Start is the span start offset within the document text.
	Start int `json:"start"`

	// End is the span end offset within the document text.
	End int `json:"end"`

	// Text is the raw matched text.
	Text string `json:"text"`

	// Date is the canonical YYYY-MM-DD form of Text.
	Date string `json:"date"`

	// Category is always CategoryDate.
	Category string `json:"category"`
}

// NewDateAnnotation builds an annotation for a normalised match.
func NewDateAnnotation(id, documentID string, m DateMatch, date string) DateAnnotation {
	return DateAnnotation{
		ID:         id,
		DocumentID: documentID,
		Start:      m.Start,
		End:        m.End,
		Text:       m.Text,
		Date:       date,
		Category:   CategoryDate,
	}
}
