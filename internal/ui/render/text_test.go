package render

import (
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean", "Night Drive", "Night Drive"},
		{"tab kept", "a\tb", "a\tb"},
		{"newline dropped", "line1\nline2", "line1line2"},
		{"escape dropped", "\x1b[31mred", "[31mred"},
		{"c1 control dropped", "a\u0085b", "ab"},
		{"invalid byte dropped", "caf\xe9", "caf"},
		{"nbsp replaced", "a\u00a0b", "a b"},
		{"literal replacement char kept", "a\ufffdb", "a\ufffdb"},
		{"wide runes", "東京 ナイト", "東京 ナイト"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  string
	}{
		{"fits", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"cut", "hello world", 8, "hello w…"},
		{"one cell", "hello", 1, "…"},
		{"zero width", "hello", 0, ""},
		{"negative width", "hello", -3, ""},
		{"wide runes", "東京東京", 5, "東京…"},
		{"sanitized first", "a\nbcdef", 4, "abc…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.width); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
			}
		})
	}
}

func TestFit(t *testing.T) {
	for _, tt := range []struct {
		input string
		width int
	}{
		{"short", 10},
		{"exactly10!", 10},
		{"much longer than the column", 10},
		{"東京東京東京", 7},
		{"", 4},
	} {
		got := Fit(tt.input, tt.width)
		if w := runewidth.StringWidth(got); w != tt.width {
			t.Errorf("Fit(%q, %d) = %q, width %d", tt.input, tt.width, got, w)
		}
	}
}

func TestSeparatorAndEmptyLine(t *testing.T) {
	if got := Separator(3); got != "───" {
		t.Errorf("Separator(3) = %q", got)
	}
	if got := EmptyLine(2); got != "  " {
		t.Errorf("EmptyLine(2) = %q", got)
	}
	if Separator(-1) != "" || EmptyLine(-1) != "" {
		t.Error("negative widths should render empty")
	}
}
