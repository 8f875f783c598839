// Package eml provides a Normaliser for RFC 822 email messages.
package eml

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"strings"

	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
	"github.com/clamsproject/app-datimex-extraction/internal/core/ports/driven"
	"github.com/clamsproject/app-datimex-extraction/internal/normalisers"
	"github.com/clamsproject/app-datimex-extraction/internal/normalisers/html"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// DateLayout renders the Date header in the text so that the default date
// pattern recognises it.
const DateLayout = "Mon, January 2, 2006 15:04:05 -0700"

// Normaliser handles EML (email) documents.
type Normaliser struct{}

// New creates a new EML normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"message/rfc822"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Generic MIME normaliser
}

// Normalise converts an email into text: a header block followed by the
// body. Plain text parts are preferred over HTML ones.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	msg, err := mail.ReadMessage(bytes.NewReader(raw.Content))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	body, err := messageBody(msg.Header.Get("Content-Type"), msg.Body)
	if err != nil {
		return nil, err
	}

	h := headers{
		from:    decodeHeader(msg.Header.Get("From")),
		to:      decodeHeader(msg.Header.Get("To")),
		date:    msg.Header.Get("Date"),
		subject: decodeHeader(msg.Header.Get("Subject")),
	}
	if sent, err := mail.ParseDate(h.date); err == nil {
		h.date = sent.Format(DateLayout)
		h.sent = sent.UTC().Format("2006-01-02")
	}

	title := h.subject
	if title == "" {
		title = normalisers.Title(raw)
	}

	doc := normalisers.NewTextDocument(raw, "eml", title, h.text()+"\n"+strings.TrimSpace(body))
	doc.Text = strings.TrimSpace(doc.Text)
	for key, val := range map[string]string{"from": h.from, "to": h.to, "date": h.sent} {
		if val != "" {
			doc.Metadata[key] = val
		}
	}

	return &driven.NormaliseResult{Document: doc}, nil
}

type headers struct {
	from, to, date, subject string

	// sent is the canonical date of the Date header, if it parsed.
	sent string
}

// text renders the non-empty headers one per line.
func (h headers) text() string {
	var b strings.Builder
	for _, f := range []struct{ name, val string }{
		{"From", h.from},
		{"To", h.to},
		{"Date", h.date},
		{"Subject", h.subject},
	} {
		if f.val != "" {
			fmt.Fprintf(&b, "%s: %s\n", f.name, f.val)
		}
	}
	return b.String()
}

// decodeHeader decodes RFC 2047 encoded words, returning the header as-is
// if it cannot be decoded.
func decodeHeader(header string) string {
	if header == "" {
		return ""
	}
	decoded, err := new(mime.WordDecoder).DecodeHeader(header)
	if err != nil {
		return header
	}
	return decoded
}

// messageBody extracts the readable text of a body with the given
// Content-Type.
func messageBody(contentType string, r io.Reader) (string, error) {
	if contentType == "" {
		contentType = "text/plain"
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = "text/plain"
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		return multipartBody(r, params["boundary"]), nil
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: reading body: %v", domain.ErrInvalidInput, err)
	}
	if mediaType == "text/html" {
		return html.StripHTML(string(body)), nil
	}
	return string(body), nil
}

// multipartBody joins the text parts of a multipart body, falling back to
// the HTML parts when there is no plain text. Unreadable parts are skipped.
func multipartBody(r io.Reader, boundary string) string {
	if boundary == "" {
		return ""
	}

	var textParts, htmlParts []string
	mr := multipart.NewReader(r, boundary)
	for {
		part, err := mr.NextPart()
		if err != nil {
			break
		}

		mediaType, params, err := mime.ParseMediaType(part.Header.Get("Content-Type"))
		if err != nil {
			mediaType = "text/plain"
		}
		content, err := io.ReadAll(part)
		part.Close()
		if err != nil {
			continue
		}

		switch {
		case mediaType == "text/plain":
			textParts = append(textParts, string(content))
		case mediaType == "text/html":
			htmlParts = append(htmlParts, html.StripHTML(string(content)))
		case strings.HasPrefix(mediaType, "multipart/"):
			if nested := multipartBody(bytes.NewReader(content), params["boundary"]); nested != "" {
				textParts = append(textParts, nested)
			}
		}
	}

	if len(textParts) > 0 {
		return strings.Join(textParts, "\n")
	}
	return strings.Join(htmlParts, "\n")
}
