package playerbar

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/wavestream/internal/playback"
	"github.com/llehouerou/wavestream/internal/playlist"
)

func TestNewState(t *testing.T) {
	track := &playlist.Track{ID: "1", Title: "Song", User: &playlist.User{Name: "Uploader"}}
	snap := playback.Snapshot{
		Track:    track,
		State:    playback.StatePaused,
		Position: 30 * time.Second,
		Duration: 3 * time.Minute,
		Volume:   0.5,
		Muted:    true,
	}

	s := NewState(snap, true)

	if s.Title != "Song" || s.Artist != "Uploader" {
		t.Errorf("NewState() title/artist = %q/%q, want Song/Uploader", s.Title, s.Artist)
	}
	if s.Status != playback.StatePaused || !s.Liked || !s.Muted || s.Volume != 0.5 {
		t.Errorf("NewState() = %+v", s)
	}
}

func TestRender_IdleIsEmpty(t *testing.T) {
	if got := Render(State{}, 80); got != "" {
		t.Errorf("Render(idle) = %q, want empty", got)
	}
}

func TestRender_ContainsTrackAndTime(t *testing.T) {
	s := State{
		Status:   playback.StatePlaying,
		Title:    "Song",
		Artist:   "Artist",
		Position: 83 * time.Second,
		Duration: 238 * time.Second,
		Volume:   1,
	}

	got := Render(s, 100)

	for _, want := range []string{"Song", "Artist", "1:23 / 3:58", playSymbol, "100%"} {
		if !strings.Contains(got, want) {
			t.Errorf("Render() missing %q in %q", want, got)
		}
	}
	if h := lipgloss.Height(got); h != Height {
		t.Errorf("Render() height = %d, want %d", h, Height)
	}
}

func TestRender_NarrowTruncates(t *testing.T) {
	s := State{
		Status:   playback.StatePlaying,
		Title:    strings.Repeat("Very Long Title ", 10),
		Artist:   "Artist",
		Duration: time.Minute,
	}

	got := Render(s, 60)

	for line := range strings.SplitSeq(got, "\n") {
		if w := lipgloss.Width(line); w > 60 {
			t.Errorf("line width = %d, want <= 60: %q", w, line)
		}
	}
}

func TestStatusSymbol(t *testing.T) {
	tests := []struct {
		state playback.State
		want  string
	}{
		{playback.StatePlaying, playSymbol},
		{playback.StatePaused, pauseSymbol},
		{playback.StateLoading, loadingSymbol},
		{playback.StateIdle, stopSymbol},
	}
	for _, tt := range tests {
		if got := statusSymbol(tt.state); got != tt.want {
			t.Errorf("statusSymbol(%v) = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestRenderVolumeCompact(t *testing.T) {
	if got := RenderVolumeCompact(0.35, false); !strings.Contains(got, " 35%") || !strings.Contains(got, volumeSymbol) {
		t.Errorf("RenderVolumeCompact(0.35) = %q", got)
	}
	if got := RenderVolumeCompact(0.35, true); !strings.Contains(got, muteSymbol) {
		t.Errorf("RenderVolumeCompact(muted) = %q, want mute icon", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{59 * time.Second, "0:59"},
		{61 * time.Second, "1:01"},
		{61 * time.Minute, "61:00"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
