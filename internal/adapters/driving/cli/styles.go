package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"
)

// Theme defines the colour palette for terminal output.
type Theme struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Border    lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:   lipgloss.Color("#7C3AED"), // Purple
		Secondary: lipgloss.Color("#06B6D4"), // Cyan
		Muted:     lipgloss.Color("#6C7086"), // Medium gray
		Success:   lipgloss.Color("#A6E3A1"), // Green
		Warning:   lipgloss.Color("#F9E2AF"), // Yellow
		Border:    lipgloss.Color("#45475A"), // Border gray
	}
}

// printer renders command output, styled when writing to a terminal.
type printer struct {
	w      io.Writer
	styled bool

	title   lipgloss.Style
	header  lipgloss.Style
	date    lipgloss.Style
	muted   lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	border  lipgloss.Style
}

func newPrinter(w io.Writer) *printer {
	theme := DefaultTheme()
	return &printer{
		w:       w,
		styled:  isTerminal(w),
		title:   lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		header:  lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary).Padding(0, 1),
		date:    lipgloss.NewStyle().Foreground(theme.Success),
		muted:   lipgloss.NewStyle().Foreground(theme.Muted),
		success: lipgloss.NewStyle().Foreground(theme.Success),
		warning: lipgloss.NewStyle().Foreground(theme.Warning),
		border:  lipgloss.NewStyle().Foreground(theme.Border),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (p *printer) render(style lipgloss.Style, s string) string {
	if !p.styled {
		return s
	}
	return style.Render(s)
}

// Title prints a bold heading line.
func (p *printer) Title(s string) {
	io.WriteString(p.w, p.render(p.title, s)+"\n") //nolint:errcheck
}

// Muted prints a dimmed line.
func (p *printer) Muted(s string) {
	io.WriteString(p.w, p.render(p.muted, s)+"\n") //nolint:errcheck
}

// Success prints a confirmation line.
func (p *printer) Success(s string) {
	io.WriteString(p.w, p.render(p.success, s)+"\n") //nolint:errcheck
}

// Warning prints a warning line.
func (p *printer) Warning(s string) {
	io.WriteString(p.w, p.render(p.warning, s)+"\n") //nolint:errcheck
}

// Table prints rows under headers. dateCol, when >= 0, is highlighted.
func (p *printer) Table(headers []string, rows [][]string, dateCol int) {
	t := table.New().Headers(headers...).Rows(rows...)
	if p.styled {
		t = t.Border(lipgloss.RoundedBorder()).
			BorderStyle(p.border).
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return p.header
				case col == dateCol:
					return p.date.Padding(0, 1)
				default:
					return lipgloss.NewStyle().Padding(0, 1)
				}
			})
	} else {
		t = t.Border(lipgloss.HiddenBorder()).
			BorderTop(false).
			BorderBottom(false).
			BorderLeft(false).
			BorderRight(false).
			BorderHeader(false).
			StyleFunc(func(_, _ int) lipgloss.Style {
				return lipgloss.NewStyle().PaddingRight(2)
			})
	}
	io.WriteString(p.w, t.String()+"\n") //nolint:errcheck
}
