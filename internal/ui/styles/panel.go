package styles

import "github.com/charmbracelet/lipgloss"

// Panel draws content in a rounded border, colored by focus, that is
// innerWidth cells wide inside the border.
func Panel(content string, innerWidth int, focused bool) string {
	border := T().Border
	if focused {
		border = T().BorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(max(innerWidth, 0)).
		Render(content)
}
