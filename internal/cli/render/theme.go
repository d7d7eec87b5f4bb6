package render

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Suite    lipgloss.Style
	Label    lipgloss.Style
	Muted    lipgloss.Style
	Warn     lipgloss.Style
}

func DefaultTheme() Theme {
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true),
		Subtitle: lipgloss.NewStyle().Faint(true),
		Suite:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Muted:    lipgloss.NewStyle().Faint(true),
		Warn:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	}
}

// PlainTheme renders text unchanged.
func PlainTheme() Theme {
	s := lipgloss.NewStyle()
	return Theme{Title: s, Subtitle: s, Suite: s, Label: s, Muted: s, Warn: s}
}

// ThemeFor styles output only when w is a terminal.
func ThemeFor(w io.Writer) Theme {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return DefaultTheme()
	}
	return PlainTheme()
}
