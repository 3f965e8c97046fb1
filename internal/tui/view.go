package tui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/wavestream/internal/playback"
	"github.com/llehouerou/wavestream/internal/ui/headerbar"
	"github.com/llehouerou/wavestream/internal/ui/playerbar"
	"github.com/llehouerou/wavestream/internal/ui/render"
	"github.com/llehouerou/wavestream/internal/ui/styles"
)

const noticeHeight = 1

// View renders the whole screen.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var body string
	if m.showHelp {
		body = m.help.View()
	} else {
		body = m.lists[m.active].View()
		if m.sideQueue() {
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.lists[viewQueue].View())
		}
	}

	snap := m.snapshot
	liked := snap.Track != nil && m.svc.IsLiked(snap.Track.ID)
	bar := playerbar.Render(playerbar.NewState(snap, liked), m.width)

	parts := []string{m.renderHeader(), body, m.renderNotice()}
	if bar != "" {
		parts = append(parts, bar)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderHeader() string {
	if m.searching {
		return m.search.View()
	}

	var tabs []headerbar.Tab
	active := 0
	for v := range viewCount {
		if v == viewSearch && m.query == "" {
			continue
		}
		key := strconv.Itoa(int(v) + 1)
		if v == viewSearch {
			key = "/"
		}
		if v == m.active {
			active = len(tabs)
		}
		tabs = append(tabs, headerbar.Tab{Key: key, Name: viewTitles[v]})
	}

	var status string
	if m.loading[m.active] {
		status = m.spinner.View()
	}
	return headerbar.Render(styles.Brand("wavestream"), tabs, active, status, m.width)
}

func (m Model) renderNotice() string {
	if m.notice == nil {
		return render.EmptyLine(m.width)
	}
	s := styles.T().S()
	text := m.notice.Message
	if text == "" {
		text = m.notice.Title
	}
	text = render.Truncate(render.Sanitize(text), m.width-2)
	if m.notice.Level == playback.NoticeError {
		return " " + s.Error.Render(text)
	}
	return " " + s.Success.Render(text)
}
