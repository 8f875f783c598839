package dates

import (
	"fmt"
	"strings"
	"time"

	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
)

// CanonicalLayout is the layout of a normalised date.
const CanonicalLayout = "2006-01-02"

// Unrecognised is the value returned alongside false by Normalise.
const Unrecognised = ""

// Template is one date layout the Normaliser tries.
type Template struct {
	// Name describes the layout, e.g. "day/month/year".
	Name string

	// Layout is a time.Parse reference layout.
	Layout string
}

// defaultTemplates is ordered: the first layout that parses wins, so
// day-first numeric layouts take precedence over month-first ones.
var defaultTemplates = []Template{
	{Name: "day/month/year", Layout: "2/1/2006"},
	{Name: "day-month-year", Layout: "2-1-2006"},
	{Name: "month/day/year", Layout: "1/2/2006"},
	{Name: "month-day-year", Layout: "1-2-2006"},
	{Name: "year-month-day", Layout: "2006-1-2"},
	{Name: "month day, year", Layout: "January 2, 2006"},
	{Name: "day month year", Layout: "2 January 2006"},
}

// DefaultTemplates returns a copy of the built-in template list.
func DefaultTemplates() []Template {
	out := make([]Template, len(defaultTemplates))
	copy(out, defaultTemplates)
	return out
}

// Normaliser converts raw date text to YYYY-MM-DD.
type Normaliser struct {
	templates []Template
}

// NewNormaliser creates a normaliser trying templates in the given order.
// With no templates the built-in list is used.
func NewNormaliser(templates ...Template) *Normaliser {
	if len(templates) == 0 {
		templates = defaultTemplates
	}
	return &Normaliser{templates: templates}
}

// Templates returns the templates in the order they are tried.
func (n *Normaliser) Templates() []Template {
	out := make([]Template, len(n.templates))
	copy(out, n.templates)
	return out
}

// Normalise returns the canonical form of raw and true, or Unrecognised and
// false when no template matches.
func (n *Normaliser) Normalise(raw string) (string, bool) {
	t, _, ok := n.parse(raw)
	if !ok {
		return Unrecognised, false
	}
	return t.Format(CanonicalLayout), true
}

// Match returns the name of the template that parses raw.
func (n *Normaliser) Match(raw string) (string, bool) {
	_, name, ok := n.parse(raw)
	return name, ok
}

// Parse is like Normalise but returns the parsed time, or an error wrapping
// domain.ErrUnrecognizedDate.
func (n *Normaliser) Parse(raw string) (time.Time, error) {
	t, _, ok := n.parse(raw)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrUnrecognizedDate, raw)
	}
	return t, nil
}

func (n *Normaliser) parse(raw string) (time.Time, string, bool) {
	value := strings.Join(strings.Fields(raw), " ")
	if value == "" {
		return time.Time{}, "", false
	}
	for _, tmpl := range n.templates {
		t, err := time.Parse(tmpl.Layout, value)
		if err != nil || t.Year() < 1 {
			continue
		}
		return t, tmpl.Name, true
	}
	return time.Time{}, "", false
}

var defaultNormaliser = NewNormaliser()

// Normalise normalises raw with the built-in templates.
func Normalise(raw string) (string, bool) {
	return defaultNormaliser.Normalise(raw)
}
