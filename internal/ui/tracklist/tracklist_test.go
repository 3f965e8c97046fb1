//nolint:goconst // test file with repeated string literals
package tracklist

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/wavestream/internal/keymap"
	"github.com/llehouerou/wavestream/internal/playlist"
)

func tracks(n int) []playlist.Track {
	out := make([]playlist.Track, n)
	for i := range out {
		id := string(rune('a' + i))
		out[i] = playlist.Track{ID: id, Title: "Track " + id, Artist: "Artist " + id}
	}
	return out
}

func newList(n, height int) Model {
	m := New("Trending")
	m.SetSize(60, height)
	m.SetFocused(true)
	m.SetTracks(tracks(n))
	return m
}

func TestHandleAction_Navigation(t *testing.T) {
	m := newList(10, 10)

	m.HandleAction(keymap.ActionMoveDown)
	m.HandleAction(keymap.ActionMoveDown)
	if got := m.SelectedIndex(); got != 2 {
		t.Errorf("SelectedIndex() = %d, want 2", got)
	}

	m.HandleAction(keymap.ActionJumpEnd)
	if got, _ := m.Selected(); got.ID != "j" {
		t.Errorf("Selected() = %q, want j", got.ID)
	}

	m.HandleAction(keymap.ActionJumpStart)
	if got := m.SelectedIndex(); got != 0 {
		t.Errorf("SelectedIndex() = %d, want 0", got)
	}

	if m.HandleAction(keymap.ActionQuit) {
		t.Error("HandleAction(quit) = true, want false")
	}
}

func TestSelected_Empty(t *testing.T) {
	m := New("Liked Songs")
	if _, ok := m.Selected(); ok {
		t.Error("Selected() ok = true on empty list")
	}
}

func TestSetTracks_ClampsCursor(t *testing.T) {
	m := newList(10, 10)
	m.HandleAction(keymap.ActionJumpEnd)

	m.SetTracks(tracks(3))

	if got := m.SelectedIndex(); got != 2 {
		t.Errorf("SelectedIndex() = %d, want 2 after shrinking", got)
	}
}

func TestView_Markers(t *testing.T) {
	m := newList(3, 8)
	m.SetPlaying("b")
	m.SetLiked(func(id string) bool { return id == "c" })

	view := m.View()
	lines := strings.Split(view, "\n")

	var playingLine, likedLine string
	for _, l := range lines {
		if strings.Contains(l, "Track b") {
			playingLine = l
		}
		if strings.Contains(l, "Track c") {
			likedLine = l
		}
	}
	if !strings.Contains(playingLine, playingSymbol) {
		t.Errorf("playing line %q missing %q", playingLine, playingSymbol)
	}
	if !strings.Contains(likedLine, likedSymbol) {
		t.Errorf("liked line %q missing %q", likedLine, likedSymbol)
	}
	if !strings.Contains(view, "Trending (1/3)") {
		t.Errorf("header missing position: %q", lines[1])
	}
}

func TestView_Size(t *testing.T) {
	m := newList(20, 12)

	view := m.View()

	if h := lipgloss.Height(view); h != 12 {
		t.Errorf("View() height = %d, want 12", h)
	}
	for l := range strings.SplitSeq(view, "\n") {
		if w := lipgloss.Width(l); w != 60 {
			t.Errorf("line width = %d, want 60: %q", w, l)
		}
	}
}

func TestView_Status(t *testing.T) {
	m := newList(0, 8)
	m.SetStatus("Loading trending…")

	if view := m.View(); !strings.Contains(view, "Loading trending…") {
		t.Errorf("View() = %q, want status line", view)
	}

	m.SetTracks(tracks(1))
	if view := m.View(); strings.Contains(view, "Loading") {
		t.Error("SetTracks() should clear the status")
	}
}

func TestPlayCount(t *testing.T) {
	n := int64(1234567)
	if got := PlayCount(0, playlist.Track{PlayCount: &n}); got != "1,234,567 plays" {
		t.Errorf("PlayCount() = %q, want %q", got, "1,234,567 plays")
	}
	if got := PlayCount(0, playlist.Track{}); got != "" {
		t.Errorf("PlayCount(nil) = %q, want empty", got)
	}
}
