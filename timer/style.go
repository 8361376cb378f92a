package timer

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ayoisaiah/podium/internal/period"
)

const (
	padding  = 2
	maxWidth = 80
)

type styles struct {
	base      lipgloss.Style
	title     lipgloss.Style
	main      lipgloss.Style
	secondary lipgloss.Style
	hint      lipgloss.Style
	alert     lipgloss.Style
	period    lipgloss.Style
}

func newStyles(darkTheme bool) styles {
	text := lipgloss.Color("#FFFFFF")
	muted := lipgloss.Color("#A0A0A0")

	if !darkTheme {
		text = lipgloss.Color("#000000")
		muted = lipgloss.Color("#555555")
	}

	return styles{
		base:      lipgloss.NewStyle().Padding(1, padding),
		title:     lipgloss.NewStyle().Bold(true).Foreground(text),
		main:      lipgloss.NewStyle().Bold(true).Foreground(text),
		secondary: lipgloss.NewStyle().Foreground(muted),
		hint:      lipgloss.NewStyle().Foreground(muted).Italic(true),
		alert:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5F5F")),
		period:    lipgloss.NewStyle().Padding(0, 1).Foreground(text),
	}
}

// periodStyle paints the period label in the period's colour. Transparent
// colours keep the terminal's background.
func (s styles) periodStyle(info period.Info) lipgloss.Style {
	c := info.Background()
	if c.Alpha() == 0 {
		return s.period
	}

	return s.period.
		Background(lipgloss.Color(c.RGB())).
		Foreground(contrast(c))
}

// contrast picks black or white text for the background c.
func contrast(c period.Color) lipgloss.Color {
	r := float64((c >> 16) & 0xff)
	g := float64((c >> 8) & 0xff)
	b := float64(c & 0xff)

	if 0.299*r+0.587*g+0.114*b > 150 {
		return lipgloss.Color("#000000")
	}

	return lipgloss.Color("#FFFFFF")
}
