package tui

import (
	"charm.land/lipgloss/v2"

	"github.com/wethinkt/go-lightbox/internal/tui/theme"
	"github.com/wethinkt/go-lightbox/internal/tuilog"
)

// Styles holds the computed lipgloss styles for the gallery and viewer.
type Styles struct {
	Title        lipgloss.Style
	Info         lipgloss.Style
	Help         lipgloss.Style
	Error        lipgloss.Style
	Frame        lipgloss.Style
	Overlay      lipgloss.Style
	Caption      lipgloss.Style
	ItemNormal   lipgloss.Style
	ItemSelected lipgloss.Style
	ItemDimmed   lipgloss.Style
	Locked       lipgloss.Style
}

// NewStyles builds styles for a theme name; unknown names use dark.
func NewStyles(name string) Styles {
	p, err := theme.LoadByName(name)
	if err != nil {
		tuilog.Log.Warn("theme unavailable, using default", "theme", name, "error", err)
		p = theme.DefaultTheme()
	}
	return stylesFor(p)
}

func stylesFor(p theme.Theme) Styles {
	accent := lipgloss.Color(p.Accent)
	muted := lipgloss.Color(p.Muted)

	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		Info:    lipgloss.NewStyle().Foreground(muted),
		Help:    lipgloss.NewStyle().Foreground(muted),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Error)),
		Frame:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(p.Border)),
		Overlay: lipgloss.NewStyle().Background(lipgloss.Color(p.Overlay)),
		Caption: lipgloss.NewStyle().Italic(true).Foreground(muted),

		ItemNormal: lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color(p.Text)),
		ItemSelected: lipgloss.NewStyle().PaddingLeft(1).Bold(true).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderLeftForeground(accent).
			Foreground(lipgloss.Color(p.Text)),
		ItemDimmed: lipgloss.NewStyle().PaddingLeft(2).Foreground(muted),
		Locked:     lipgloss.NewStyle().Foreground(muted).Italic(true),
	}
}
