package html

import (
	"context"
	"strings"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
	"github.com/clamsproject/app-datimex-extraction/internal/core/ports/driven"
	"github.com/clamsproject/app-datimex-extraction/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles HTML documents.
type Normaliser struct{}

// New creates a new HTML normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/html", "application/xhtml+xml"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Generic MIME normaliser, higher than plaintext
}

// Normalise converts an HTML document to its visible text.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	title, text := extract(string(raw.Content))
	if title == "" {
		title = normalisers.Title(raw)
	}

	return &driven.NormaliseResult{
		Document: normalisers.NewTextDocument(raw, "html", title, text),
	}, nil
}

// hidden elements contribute no text. Nested occurrences are counted.
var hidden = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Head:     true,
	atom.Title:    true,
	atom.Svg:      true,
	atom.Template: true,
}

// blocks start a new line when opened or closed.
var blocks = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Br: true, atom.Hr: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Ul: true, atom.Ol: true, atom.Li: true, atom.Tr: true,
	atom.Blockquote: true, atom.Pre: true, atom.Table: true,
	atom.Section: true, atom.Article: true, atom.Header: true, atom.Footer: true,
}

// cells are separated by a space so adjacent values do not run together.
var cells = map[atom.Atom]bool{atom.Td: true, atom.Th: true}

// extract tokenizes content once and returns the first <title> and the
// visible text. Malformed markup is read the way a browser's tokenizer
// would; nothing is rejected.
func extract(content string) (title, text string) {
	z := xhtml.NewTokenizer(strings.NewReader(content))

	var (
		body      strings.Builder
		head      strings.Builder
		skip      int
		inTitle   bool
		titleDone bool
	)

	for {
		tt := z.Next()
		if tt == xhtml.ErrorToken {
			// io.EOF, or a truncated document; either way the text so far stands.
			break
		}

		switch tt {
		case xhtml.TextToken:
			if inTitle {
				head.Write(z.Text())
			}
			if skip == 0 {
				body.Write(z.Text())
			}
		case xhtml.StartTagToken, xhtml.EndTagToken, xhtml.SelfClosingTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			if a == atom.Title && !titleDone {
				inTitle = tt == xhtml.StartTagToken
				titleDone = tt == xhtml.EndTagToken
			}
			if hidden[a] {
				switch tt {
				case xhtml.StartTagToken:
					skip++
				case xhtml.EndTagToken:
					if skip > 0 {
						skip--
					}
				}
				continue
			}
			if skip > 0 {
				continue
			}
			switch {
			case blocks[a]:
				body.WriteByte('\n')
			case cells[a]:
				body.WriteByte(' ')
			}
		}
	}

	return strings.TrimSpace(collapse(head.String())), tidy(body.String())
}

// StripHTML removes markup and returns the readable text, one non-empty
// line per block with runs of white space collapsed.
func StripHTML(content string) string {
	_, text := extract(content)
	return text
}

// tidy collapses each line and drops the empty ones.
func tidy(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = collapse(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// collapse joins the fields of s with single spaces. strings.Fields
// treats the no-break space that &nbsp; decodes to as white space.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
