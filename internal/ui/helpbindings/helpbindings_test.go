package helpbindings

import (
	"strings"
	"testing"

	"github.com/llehouerou/wavestream/internal/keymap"
)

func newHelp(width, height int) Model {
	m := New()
	m.SetSize(width, height)
	return m
}

func TestNew_ListsEveryContext(t *testing.T) {
	m := New()

	if got, want := len(m.bindings), len(keymap.Bindings); got != want {
		t.Errorf("bindings = %d, want %d", got, want)
	}
}

func TestView_ShowsCategoriesAndKeys(t *testing.T) {
	m := newHelp(80, 200)

	view := m.View()

	for _, want := range []string{"Help", "General", "Playback", "Track Lists", "space", "Play/pause"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
	if !strings.Contains(view, "?/esc close") || strings.Contains(view, "j/k scroll") {
		t.Error("footer should not offer scrolling when everything fits")
	}
}

func TestView_ZeroSize(t *testing.T) {
	m := New()
	if got := m.View(); got != "" {
		t.Errorf("View() = %q, want empty at zero size", got)
	}
}

func TestScroll(t *testing.T) {
	m := newHelp(80, 12)

	if !strings.Contains(m.View(), "j/k scroll") {
		t.Error("footer should offer scrolling when content overflows")
	}

	if !m.HandleAction(keymap.ActionMoveUp) || m.scrollOffset != 0 {
		t.Errorf("scrollOffset = %d after up at top, want 0", m.scrollOffset)
	}

	m.HandleAction(keymap.ActionMoveDown)
	if m.scrollOffset != 1 {
		t.Errorf("scrollOffset = %d after down, want 1", m.scrollOffset)
	}

	m.HandleAction(keymap.ActionJumpEnd)
	if m.scrollOffset != m.maxScroll() {
		t.Errorf("scrollOffset = %d after end, want %d", m.scrollOffset, m.maxScroll())
	}
	m.HandleAction(keymap.ActionMoveDown)
	if m.scrollOffset != m.maxScroll() {
		t.Errorf("scrollOffset = %d, want clamped at %d", m.scrollOffset, m.maxScroll())
	}

	m.Reset()
	if m.scrollOffset != 0 {
		t.Errorf("scrollOffset = %d after Reset, want 0", m.scrollOffset)
	}
}

func TestHandleAction_IgnoresOthers(t *testing.T) {
	m := newHelp(80, 12)

	if m.HandleAction(keymap.ActionPlayPause) {
		t.Error("HandleAction(PlayPause) = true, want false")
	}
}
