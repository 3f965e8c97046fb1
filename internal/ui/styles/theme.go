// Package styles holds the palette and the lipgloss styles built from it.
package styles

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the color palette.
type Theme struct {
	Primary   lipgloss.Color // accent: brand, playing track, focus
	Secondary lipgloss.Color // liked marker, gradient end

	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color
	BgCursor lipgloss.Color

	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	Success lipgloss.Color
	Error   lipgloss.Color

	once   sync.Once
	styles *Styles
}

// Styles are the text styles the views share.
type Styles struct {
	Base    lipgloss.Style
	Muted   lipgloss.Style
	Title   lipgloss.Style
	Playing lipgloss.Style
	Cursor  lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
}

var night = Theme{
	Primary:   "#a78bfa",
	Secondary: "#f1a208",

	FgBase:   "#c0c0c0",
	FgMuted:  "#808080",
	FgSubtle: "#585858",
	BgCursor: "#303030",

	Border:      "#585858",
	BorderFocus: "#a78bfa",

	Success: "#42b883",
	Error:   "#ff5555",
}

// T returns the active theme.
func T() *Theme {
	return &night
}

// S returns the styles for t, built on first use.
func (t *Theme) S() *Styles {
	t.once.Do(func() {
		base := lipgloss.NewStyle().Foreground(t.FgBase)
		t.styles = &Styles{
			Base:    base,
			Muted:   lipgloss.NewStyle().Foreground(t.FgMuted),
			Title:   base.Bold(true),
			Playing: lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
			Cursor:  lipgloss.NewStyle().Background(t.BgCursor).Foreground(t.FgBase),
			Success: lipgloss.NewStyle().Foreground(t.Success),
			Error:   lipgloss.NewStyle().Foreground(t.Error),
		}
	})
	return t.styles
}
