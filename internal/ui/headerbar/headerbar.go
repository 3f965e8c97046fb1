// internal/ui/headerbar/headerbar.go
package headerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/wavestream/internal/ui/styles"
)

// Height is the fixed height of the header bar (single line).
const Height = 1

const minWidth = 20

// Tab is one view in the header bar.
type Tab struct {
	Key  string
	Name string
}

// Styles
var (
	activeKeyStyle = lipgloss.NewStyle().
			Foreground(styles.T().Primary).
			Bold(true)

	activeNameStyle = lipgloss.NewStyle().
			Foreground(styles.T().Primary).
			Bold(true)

	inactiveKeyStyle = lipgloss.NewStyle().
				Foreground(styles.T().FgSubtle)

	inactiveNameStyle = lipgloss.NewStyle().
				Foreground(styles.T().FgMuted)

	separatorStyle = lipgloss.NewStyle().
			Foreground(styles.T().Border)
)

// Render returns the header bar: the brand on the left, then the tabs with
// active highlighted, then status (a spinner, say). Content wider than
// width is clipped.
func Render(brand string, tabs []Tab, active int, status string, width int) string {
	if width < minWidth {
		return ""
	}

	parts := make([]string, 0, len(tabs))
	separator := separatorStyle.Render(" │ ")

	for i, t := range tabs {
		var keyStyle, nameStyle lipgloss.Style
		if i == active {
			keyStyle = activeKeyStyle
			nameStyle = activeNameStyle
		} else {
			keyStyle = inactiveKeyStyle
			nameStyle = inactiveNameStyle
		}

		part := keyStyle.Render(t.Key) + " " + nameStyle.Render(t.Name)
		parts = append(parts, part)
	}

	content := strings.Join(parts, separator)
	if brand != "" {
		content = brand + "  " + content
	}
	if status != "" {
		content += " " + status
	}

	return lipgloss.NewStyle().MaxWidth(width).Render(content)
}
