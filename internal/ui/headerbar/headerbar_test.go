package headerbar

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

var tabs = []Tab{{"1", "Trending"}, {"2", "Liked Songs"}, {"3", "Recently Played"}}

func TestRender_TooNarrow(t *testing.T) {
	if got := Render("wavestream", tabs, 0, "", minWidth-1); got != "" {
		t.Errorf("Render() = %q, want empty below min width", got)
	}
}

func TestRender_ContainsTabsAndStatus(t *testing.T) {
	got := Render("wavestream", tabs, 1, "*", 120)

	for _, want := range []string{"wavestream", "1 Trending", "2 Liked Songs", "3 Recently Played", "*"} {
		if !strings.Contains(got, want) {
			t.Errorf("Render() = %q, missing %q", got, want)
		}
	}
}

func TestRender_ClipsToWidth(t *testing.T) {
	got := Render("wavestream", tabs, 0, "", 30)

	if w := lipgloss.Width(got); w > 30 {
		t.Errorf("width = %d, want <= 30", w)
	}
}
