package dates

import (
	"iter"
	"unicode/utf8"

	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
)

// Matcher finds date-like spans in text.
type Matcher struct {
	pattern *Pattern
}

// NewMatcher creates a matcher for the given pattern.
// A nil pattern uses the default.
func NewMatcher(p *Pattern) *Matcher {
	if p == nil {
		p = defaultPattern
	}
	return &Matcher{pattern: p}
}

// Pattern returns the matcher's pattern.
func (m *Matcher) Pattern() *Pattern {
	return m.pattern
}

// FindSpans returns the non-overlapping matches of the pattern in text,
// left to right, with offsets counted in code points. The scan runs when
// the sequence is ranged over, so the sequence can be iterated any number
// of times. Empty matches are dropped.
func (m *Matcher) FindSpans(text string) iter.Seq[domain.DateMatch] {
	return func(yield func(domain.DateMatch) bool) {
		if text == "" {
			return
		}
		// Matches are ordered, so one cursor converts every byte offset.
		var bytePos, runePos int
		toRunes := func(b int) int {
			runePos += utf8.RuneCountInString(text[bytePos:b])
			bytePos = b
			return runePos
		}
		for _, loc := range m.pattern.re.FindAllStringIndex(text, -1) {
			if loc[1] <= loc[0] {
				continue
			}
			start := toRunes(loc[0])
			end := toRunes(loc[1])
			if !yield(domain.DateMatch{Start: start, End: end, Text: text[loc[0]:loc[1]]}) {
				return
			}
		}
	}
}

// FindDateSpans is a shorthand for NewMatcher(p).FindSpans(text).
func FindDateSpans(text string, p *Pattern) iter.Seq[domain.DateMatch] {
	return NewMatcher(p).FindSpans(text)
}
