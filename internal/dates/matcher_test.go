package dates

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
)

func collect(t *testing.T, text string, p *Pattern) []domain.DateMatch {
	t.Helper()
	return slices.Collect(FindDateSpans(text, p))
}

func TestFindDateSpans_EmptyText(t *testing.T) {
	assert.Empty(t, collect(t, "", nil))
}

func TestFindDateSpans_NoDates(t *testing.T) {
	assert.Empty(t, collect(t, "Nothing to see here, move along.", nil))
}

func TestFindDateSpans_Scenario(t *testing.T) {
	text := "The event was on 12/05/2023 and repeated May 3, 2024."

	matches := collect(t, text, nil)
	require.Len(t, matches, 2)

	assert.Equal(t, "12/05/2023", matches[0].Text)
	assert.Equal(t, strings.Index(text, "12/05/2023"), matches[0].Start)
	assert.Equal(t, matches[0].Start+len("12/05/2023"), matches[0].End)

	assert.Equal(t, "May 3, 2024", matches[1].Text)
	assert.Equal(t, strings.Index(text, "May 3, 2024"), matches[1].Start)
}

func TestFindDateSpans_DefaultShapes(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"numeric slash", "due 3/4/2020 sharp", "3/4/2020"},
		{"numeric dash two digit year", "filed 03-04-20.", "03-04-20"},
		{"day month year", "born 7 March 1990 in Leeds", "7 March 1990"},
		{"iso", "released 2021-11-30 worldwide", "2021-11-30"},
		{"month day year", "signed on July 4, 1776.", "July 4, 1776"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := collect(t, tt.text, nil)
			require.Len(t, matches, 1)
			assert.Equal(t, tt.want, matches[0].Text)
			assert.Equal(t, tt.text[matches[0].Start:matches[0].End], matches[0].Text)
		})
	}
}

func TestFindDateSpans_InvalidCalendarDateStillMatches(t *testing.T) {
	matches := collect(t, "bogus 99/99/9999 value", nil)
	require.Len(t, matches, 1)
	assert.Equal(t, "99/99/9999", matches[0].Text)
}

func TestFindDateSpans_SpansAreOrderedAndDisjoint(t *testing.T) {
	text := "1/1/2000, 2 Feb 2001, 2002-03-03 and April 4, 2003; 5-5-2005 then 6/6/06"

	matches := collect(t, text, nil)
	require.NotEmpty(t, matches)

	prevEnd := 0
	for _, m := range matches {
		assert.GreaterOrEqual(t, m.Start, prevEnd)
		assert.Less(t, m.Start, m.End)
		assert.LessOrEqual(t, m.End, len(text))
		assert.Equal(t, text[m.Start:m.End], m.Text)
		prevEnd = m.End
	}
}

func TestFindDateSpans_CustomPattern(t *testing.T) {
	p := MustCompile(`\d{4}`)
	matches := collect(t, "from 1999 to 2024", p)
	require.Len(t, matches, 2)
	assert.Equal(t, "1999", matches[0].Text)
	assert.Equal(t, "2024", matches[1].Text)
}

func TestFindDateSpans_DropsEmptyMatches(t *testing.T) {
	p := MustCompile(`x*`)
	matches := collect(t, "abxxc", p)
	require.Len(t, matches, 1)
	assert.Equal(t, "xx", matches[0].Text)
	assert.Equal(t, 2, matches[0].Start)
	assert.Equal(t, 4, matches[0].End)
}

func TestMatcher_Restartable(t *testing.T) {
	m := NewMatcher(nil)
	seq := m.FindSpans("on 2020-01-01 and 2020-02-02")

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)
	assert.Len(t, first, 2)
}

func TestMatcher_EarlyStop(t *testing.T) {
	m := NewMatcher(nil)
	count := 0
	for range m.FindSpans("2020-01-01 2020-02-02 2020-03-03") {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestNewMatcher_NilUsesDefault(t *testing.T) {
	assert.Same(t, Default(), NewMatcher(nil).Pattern())
}

func TestFindDateSpans_NonASCIIOffsetsAreCodePoints(t *testing.T) {
	text := "Réunion 2020-01-01, café à 3 mars 2021"

	matches := collect(t, text, nil)
	require.Len(t, matches, 2)

	assert.Equal(t, 8, matches[0].Start)
	assert.Equal(t, 18, matches[0].End)
	assert.Equal(t, "2020-01-01", matches[0].Text)

	runes := []rune(text)
	for _, m := range matches {
		assert.Equal(t, m.Text, string(runes[m.Start:m.End]))
		assert.Equal(t, len([]rune(m.Text)), m.Len())
	}
}
