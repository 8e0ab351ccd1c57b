package term

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/DerekForgione/Projector/pkg/surface/palette"
)

const focusMarker = "▸"

type styles struct {
	title   lipgloss.Style
	heading lipgloss.Style
	label   lipgloss.Style
	muted   lipgloss.Style
	warning lipgloss.Style
	focus   lipgloss.Style
	control lipgloss.Style
	group   lipgloss.Style
	status  lipgloss.Style
}

func newStyles(p palette.Palette) styles {
	color := func(name string) lipgloss.Color { return lipgloss.Color(p.Token(name)) }
	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(color(palette.Accent)),
		heading: lipgloss.NewStyle().Bold(true).Underline(true).Foreground(color(palette.Accent)),
		label:   lipgloss.NewStyle().Foreground(color(palette.Muted)),
		muted:   lipgloss.NewStyle().Foreground(color(palette.Muted)).Italic(true),
		warning: lipgloss.NewStyle().Bold(true).Foreground(color(palette.Warning)),
		focus:   lipgloss.NewStyle().Bold(true).Foreground(color(palette.Focus)),
		control: lipgloss.NewStyle().Foreground(color(palette.Text)),
		group: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color(palette.Border)).
			Padding(0, 1),
		status: lipgloss.NewStyle().Foreground(color(palette.Muted)),
	}
}
