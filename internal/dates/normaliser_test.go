package dates

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
)

func TestNormalise_Templates(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"12/05/2023", "2023-05-12"},
		{"3/4/2020", "2020-04-03"},
		{"31-12-1999", "1999-12-31"},
		{"12/31/1999", "1999-12-31"},
		{"12-31-1999", "1999-12-31"},
		{"2021-11-30", "2021-11-30"},
		{"May 3, 2024", "2024-05-03"},
		{"september 9, 2009", "2009-09-09"},
		{"7 March 1990", "1990-03-07"},
		{"29/02/2024", "2024-02-29"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := Normalise(tt.raw)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalise_AmbiguousResolvesDayFirst(t *testing.T) {
	for i := 0; i < 3; i++ {
		got, ok := Normalise("03-04-2020")
		require.True(t, ok)
		assert.Equal(t, "2020-04-03", got)
	}

	name, ok := NewNormaliser().Match("03-04-2020")
	require.True(t, ok)
	assert.Equal(t, "day-month-year", name)
}

func TestNormalise_FallsBackToMonthFirst(t *testing.T) {
	// 13 cannot be a month, so the day-first layouts fail.
	name, ok := NewNormaliser().Match("05/13/2021")
	require.True(t, ok)
	assert.Equal(t, "month/day/year", name)

	got, _ := Normalise("05/13/2021")
	assert.Equal(t, "2021-05-13", got)
}

func TestNormalise_Unrecognised(t *testing.T) {
	for _, raw := range []string{
		"",
		"   ",
		"99/99/9999",
		"31/02/2023",
		"29/02/2023",
		"12/05/23",
		"0000-01-01",
		"Smarch 3, 2024",
		"3 apples 2024",
		"yesterday",
	} {
		t.Run(raw, func(t *testing.T) {
			got, ok := Normalise(raw)
			assert.False(t, ok)
			assert.Equal(t, Unrecognised, got)
		})
	}
}

func TestNormalise_CollapsesWhitespace(t *testing.T) {
	got, ok := Normalise("  May\t 3,\n 2024 ")
	require.True(t, ok)
	assert.Equal(t, "2024-05-03", got)

	got, ok = Normalise("7  March   1990")
	require.True(t, ok)
	assert.Equal(t, "1990-03-07", got)
}

func TestNormalise_OutputIsValidCalendarDate(t *testing.T) {
	canonical := regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	for _, raw := range []string{"1/1/2000", "31/1/2000", "2000-2-29", "December 31, 1999", "1 January 0001"} {
		got, ok := Normalise(raw)
		require.True(t, ok, raw)
		assert.Regexp(t, canonical, got)

		parsed, err := time.Parse(CanonicalLayout, got)
		require.NoError(t, err)
		assert.Equal(t, got, parsed.Format(CanonicalLayout))
	}
}

func TestNormaliser_CustomTemplates(t *testing.T) {
	n := NewNormaliser(Template{Name: "month/day/year", Layout: "1/2/2006"})

	got, ok := n.Normalise("03/04/2020")
	require.True(t, ok)
	assert.Equal(t, "2020-03-04", got)

	_, ok = n.Normalise("2020-03-04")
	assert.False(t, ok)
	assert.Len(t, n.Templates(), 1)
}

func TestNormaliser_Parse(t *testing.T) {
	n := NewNormaliser()

	tm, err := n.Parse("2021-11-30")
	require.NoError(t, err)
	assert.Equal(t, time.November, tm.Month())

	_, err = n.Parse("not a date")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnrecognizedDate))
}

func TestDefaultTemplates_Copy(t *testing.T) {
	tmpls := DefaultTemplates()
	require.Len(t, tmpls, 7)
	assert.Equal(t, "day/month/year", tmpls[0].Name)
	assert.Equal(t, "day month year", tmpls[6].Name)

	tmpls[0].Layout = "broken"
	assert.Equal(t, "2/1/2006", DefaultTemplates()[0].Layout)
}

func TestMatchAndNormalise_Pipeline(t *testing.T) {
	text := "Invoices: 99/99/9999, 2020-02-30, 1 May 2020."
	var got []string
	for m := range FindDateSpans(text, nil) {
		if d, ok := Normalise(m.Text); ok {
			got = append(got, d)
		}
	}
	assert.Equal(t, []string{"2020-05-01"}, got)
}
