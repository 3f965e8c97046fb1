// Package playerbar renders the now-playing bar at the bottom of the screen.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/wavestream/internal/playback"
	"github.com/llehouerou/wavestream/internal/ui/render"
)

// Height is the rendered height: top border + content + bottom border.
const Height = 3

// State holds everything needed to render the player bar.
type State struct {
	Status   playback.State
	Title    string
	Artist   string
	Liked    bool
	Position time.Duration
	Duration time.Duration
	Volume   float64
	Muted    bool
}

// NewState builds a State from a playback snapshot.
func NewState(snap playback.Snapshot, liked bool) State {
	s := State{
		Status:   snap.State,
		Position: snap.Position,
		Duration: snap.Duration,
		Volume:   snap.Volume,
		Muted:    snap.Muted,
		Liked:    liked,
	}
	if snap.Track != nil {
		s.Title = snap.Track.Title
		s.Artist = snap.Track.ArtistName()
	}
	return s
}

// Render returns the player bar string for the given width.
// Returns empty string when there is nothing to show.
func Render(s State, width int) string {
	if s.Status == playback.StateIdle && s.Title == "" {
		return ""
	}

	// Calculate available width (subtract border and padding)
	innerWidth := max(width-6, 0)

	title := s.Title
	if title == "" {
		title = "Unknown Track"
	}
	if s.Liked {
		title = likedSymbol + " " + title
	}
	info := s.Artist

	timeStr := fmt.Sprintf("%s / %s", formatDuration(s.Position), formatDuration(s.Duration))
	volume := RenderVolumeCompact(s.Volume, s.Muted)
	status := statusSymbol(s.Status)

	separator := "   "
	sepWidth := lipgloss.Width(separator)
	timeWidth := lipgloss.Width(timeStr)
	volumeWidth := lipgloss.Width(volume)
	statusWidth := lipgloss.Width(status + "  ")

	titleWidth := lipgloss.Width(title)
	infoWidth := lipgloss.Width(info)

	minBarWidth := 10
	availableForContent := innerWidth - statusWidth - timeWidth - volumeWidth - sepWidth*3 - minBarWidth

	var styledTitle, styledInfo string
	var usedContentWidth int

	switch {
	case info != "" && titleWidth+sepWidth+infoWidth <= availableForContent:
		styledTitle = titleStyle.Render(title)
		styledInfo = artistStyle.Render(info)
		usedContentWidth = titleWidth + sepWidth + infoWidth
	case info != "" && titleWidth+sepWidth < availableForContent:
		maxInfo := availableForContent - titleWidth - sepWidth
		styledTitle = titleStyle.Render(title)
		styledInfo = artistStyle.Render(render.Truncate(info, maxInfo))
		usedContentWidth = titleWidth + sepWidth + maxInfo
	default:
		maxTitle := max(availableForContent, 10)
		styledTitle = titleStyle.Render(render.Truncate(title, maxTitle))
		usedContentWidth = min(titleWidth, maxTitle)
	}

	barWidth := max(innerWidth-usedContentWidth-statusWidth-timeWidth-volumeWidth-sepWidth*3, minProgressBarWidth)

	var ratio float64
	if s.Duration > 0 {
		ratio = float64(s.Position) / float64(s.Duration)
	}
	filled := min(int(float64(barWidth)*ratio), barWidth)
	filledBar := progressFilledStyle.Render(strings.Repeat("━", filled))
	emptyBar := progressEmptyStyle.Render(strings.Repeat("─", barWidth-filled))

	// Title   Artist   ▶  ━━━───   1:23 / 3:58   🔊 100%
	var content strings.Builder
	content.WriteString(styledTitle)
	if styledInfo != "" {
		content.WriteString(separator)
		content.WriteString(styledInfo)
	}
	content.WriteString(separator)
	content.WriteString(status)
	content.WriteString("  ")
	content.WriteString(filledBar)
	content.WriteString(emptyBar)
	content.WriteString(separator)
	content.WriteString(timeStyle.Render(timeStr))
	content.WriteString(separator)
	content.WriteString(volume)

	return barStyle.Padding(0, 2).Width(width - 2).Render(content.String())
}

func statusSymbol(s playback.State) string {
	switch s {
	case playback.StatePlaying:
		return playSymbol
	case playback.StatePaused:
		return pauseSymbol
	case playback.StateLoading:
		return loadingSymbol
	case playback.StateErrored:
		return errorStyle.Render(errorSymbol)
	case playback.StateIdle:
		return stopSymbol
	}
	return stopSymbol
}

func formatDuration(d time.Duration) string {
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}
