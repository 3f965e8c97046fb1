// Package helpbindings renders a scrollable panel listing the key bindings.
package helpbindings

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/wavestream/internal/keymap"
	"github.com/llehouerou/wavestream/internal/ui"
	"github.com/llehouerou/wavestream/internal/ui/styles"
)

// categoryLabels maps context names to display labels.
var categoryLabels = map[string]string{
	"global":   "General",
	"playback": "Playback",
	"list":     "Track Lists",
	"search":   "Search",
}

// Model holds the state for the help panel.
type Model struct {
	ui.Base
	bindings     []keymap.Binding
	scrollOffset int
}

// New creates a help panel listing every binding.
func New() Model {
	var bindings []keymap.Binding
	for _, ctx := range keymap.Contexts {
		bindings = append(bindings, keymap.ByContext(ctx)...)
	}
	return Model{bindings: bindings}
}

// Reset scrolls back to the top.
func (m *Model) Reset() {
	m.scrollOffset = 0
}

// HandleAction scrolls the panel. It reports whether the action was used.
func (m *Model) HandleAction(a keymap.Action) bool {
	switch a {
	case keymap.ActionMoveDown:
		if m.scrollOffset < m.maxScroll() {
			m.scrollOffset++
		}
	case keymap.ActionMoveUp:
		if m.scrollOffset > 0 {
			m.scrollOffset--
		}
	case keymap.ActionJumpStart:
		m.scrollOffset = 0
	case keymap.ActionJumpEnd:
		m.scrollOffset = m.maxScroll()
	default:
		return false
	}
	return true
}

// View renders the panel at the configured size.
func (m Model) View() string {
	if m.Hidden() {
		return ""
	}

	innerWidth := m.InnerWidth()
	lines := strings.Split(m.buildContent(), "\n")

	start := min(m.scrollOffset, len(lines))
	end := min(start+m.visibleHeight(), len(lines))
	visible := lines[start:end]
	for i, line := range visible {
		visible[i] = lipgloss.NewStyle().MaxWidth(innerWidth).Render(line)
	}

	footerStyle := lipgloss.NewStyle().Foreground(styles.T().FgSubtle)
	content := styles.T().S().Title.Render("Help") + "\n" +
		strings.Join(visible, "\n")
	for range m.visibleHeight() - len(visible) {
		content += "\n"
	}
	content += "\n" + footerStyle.Render(m.buildFooter())

	return styles.Panel(content, innerWidth, true)
}

func (m Model) buildContent() string {
	var sb strings.Builder

	keyStyle := lipgloss.NewStyle().Foreground(styles.T().Primary).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(styles.T().FgBase)
	headerStyle := lipgloss.NewStyle().Foreground(styles.T().Secondary).Bold(true)
	separatorStyle := lipgloss.NewStyle().Foreground(styles.T().Border)

	// Find max key width for alignment
	maxKeyWidth := 0
	for _, b := range m.bindings {
		if w := lipgloss.Width(keymap.Label(b.Keys)); w > maxKeyWidth {
			maxKeyWidth = w
		}
	}

	currentContext := ""
	for _, b := range m.bindings {
		// Add category header when context changes
		if b.Context != currentContext {
			if currentContext != "" {
				sb.WriteString("\n")
			}
			label := categoryLabels[b.Context]
			if label == "" {
				label = b.Context
			}
			sb.WriteString(headerStyle.Render(label))
			sb.WriteString("\n")
			sb.WriteString(separatorStyle.Render(strings.Repeat("─", maxKeyWidth+15)))
			sb.WriteString("\n")
			currentContext = b.Context
		}

		keyStr := keymap.Label(b.Keys)
		paddedKey := keyStr + strings.Repeat(" ", maxKeyWidth-lipgloss.Width(keyStr))
		sb.WriteString(keyStyle.Render(paddedKey))
		sb.WriteString("  ")
		sb.WriteString(descStyle.Render(b.Description))
		sb.WriteString("\n")
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

func (m Model) buildFooter() string {
	if m.totalLines() <= m.visibleHeight() {
		return "?/esc close"
	}
	return "j/k scroll · ?/esc close"
}

func (m Model) visibleHeight() int {
	// Border, title and footer.
	return m.Rows(ui.BorderSize + 2)
}

func (m Model) totalLines() int {
	return strings.Count(m.buildContent(), "\n") + 1
}

func (m Model) maxScroll() int {
	total := m.totalLines()
	visible := m.visibleHeight()
	if total <= visible {
		return 0
	}
	return total - visible
}
