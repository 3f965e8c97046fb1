package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// Gradient renders bold text with a horizontal color gradient between two
// hex colors. Non-hex colors fall back to a plain bold rendering in from.
func Gradient(text string, from, to lipgloss.Color) string {
	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}

	c1, err1 := colorful.Hex(string(from))
	c2, err2 := colorful.Hex(string(to))
	if len(clusters) < 2 || err1 != nil || err2 != nil {
		if text == "" {
			return ""
		}
		return lipgloss.NewStyle().Foreground(from).Bold(true).Render(text)
	}

	// Blend in HCL space for perceptually uniform steps
	var b strings.Builder
	for i, cluster := range clusters {
		t := float64(i) / float64(len(clusters)-1)
		hex := c1.BlendHcl(c2, t).Clamped().Hex()
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Bold(true).Render(cluster))
	}
	return b.String()
}

// Brand renders text in the theme's accent gradient.
func Brand(text string) string {
	t := T()
	return Gradient(text, t.Primary, t.Secondary)
}
