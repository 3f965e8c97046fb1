package tracklist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/wavestream/internal/playlist"
	"github.com/llehouerou/wavestream/internal/ui/render"
	"github.com/llehouerou/wavestream/internal/ui/styles"
)

const (
	playingSymbol = "▶"
	likedSymbol   = "♥"
	detailWidth   = 16
)

// PlayCount renders the catalog play count, e.g. "12,345 plays".
func PlayCount(_ int, t playlist.Track) string {
	if t.PlayCount == nil {
		return ""
	}
	return humanize.Comma(*t.PlayCount) + " plays"
}

// View renders the panel.
func (m Model) View() string {
	if m.Hidden() {
		return ""
	}

	innerWidth := m.InnerWidth()
	listHeight := m.listHeight()

	header := m.renderHeader(innerWidth)
	separator := render.Separator(innerWidth)

	var body string
	if m.status != "" || len(m.tracks) == 0 {
		body = m.renderStatus(innerWidth, listHeight)
	} else {
		body = m.renderTrackList(innerWidth, listHeight)
	}

	content := header + "\n" + separator + "\n" + body

	return styles.Panel(content, innerWidth, m.IsFocused())
}

func (m Model) renderHeader(innerWidth int) string {
	text := m.title
	if len(m.tracks) > 0 {
		text = fmt.Sprintf("%s (%d/%d)", m.title, m.cursor.Pos()+1, len(m.tracks))
	}
	return styles.T().S().Title.Render(render.Fit(text, innerWidth))
}

func (m Model) renderStatus(innerWidth, listHeight int) string {
	status := m.status
	if status == "" {
		status = "Nothing here yet"
	}
	lines := make([]string, 0, max(listHeight, 1))
	lines = append(lines, styles.T().S().Muted.Render(render.Fit(status, innerWidth)))
	for len(lines) < listHeight {
		lines = append(lines, render.EmptyLine(innerWidth))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderTrackList(innerWidth, listHeight int) string {
	c := m.cursor
	c.Resize(len(m.tracks), listHeight)
	start, end := c.Window()

	lines := make([]string, 0, listHeight)
	for idx := start; idx < end; idx++ {
		lines = append(lines, m.renderTrackLine(idx, innerWidth))
	}
	for len(lines) < listHeight {
		lines = append(lines, render.EmptyLine(innerWidth))
	}
	return strings.Join(lines, "\n")
}

// renderTrackLine renders: prefix, liked marker, title, artist, detail.
func (m Model) renderTrackLine(idx, width int) string {
	track := m.tracks[idx]

	prefix := "  "
	if track.ID == m.playing {
		prefix = playingSymbol + " "
	}
	marker := "  "
	if m.isLiked != nil && m.isLiked(track.ID) {
		marker = likedSymbol + " "
	}

	detail := ""
	if m.detail != nil {
		detail = m.detail(idx, track)
	}
	dw := 0
	if detail != "" {
		dw = min(detailWidth, max(width/4, 0))
	}

	contentWidth := max(width-4-dw, 0)
	titleWidth := contentWidth / 2
	artistWidth := contentWidth - titleWidth

	line := prefix + marker +
		render.Fit(track.Title, titleWidth) +
		render.Fit(track.ArtistName(), artistWidth)
	if dw > 0 {
		line += padLeft(render.Truncate(detail, dw), dw)
	}

	return m.lineStyle(idx, track).Render(line)
}

func (m Model) lineStyle(idx int, track playlist.Track) lipgloss.Style {
	s := styles.T().S()
	isCursor := idx == m.cursor.Pos() && m.IsFocused()
	isPlaying := track.ID == m.playing

	switch {
	case isCursor && isPlaying:
		return s.Cursor.Inherit(s.Playing)
	case isCursor:
		return s.Cursor
	case isPlaying:
		return s.Playing
	default:
		return s.Base
	}
}

func padLeft(s string, width int) string {
	return strings.Repeat(" ", max(width-lipgloss.Width(s), 0)) + s
}
