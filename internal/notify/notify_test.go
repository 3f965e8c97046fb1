package notify

import "testing"

func TestUrgencyValues(t *testing.T) {
	// freedesktop urgency levels
	if UrgencyLow != 0 || UrgencyNormal != 1 || UrgencyCritical != 2 {
		t.Errorf("urgencies = %d/%d/%d, want 0/1/2", UrgencyLow, UrgencyNormal, UrgencyCritical)
	}
}

func TestHintValues(t *testing.T) {
	tests := []struct {
		name  string
		n     Notification
		want  map[string]any
		unset []string
	}{
		{
			name:  "minimal",
			n:     Notification{Title: "t"},
			want:  map[string]any{"urgency": byte(0), "desktop-entry": desktopEntry},
			unset: []string{"category", "transient", "image-path"},
		},
		{
			name: "now playing",
			n: Notification{
				Title:     "t",
				Icon:      "/home/u/.cache/wavestream/covers/abc.img",
				Category:  "x-gnome.music",
				Transient: true,
				Urgency:   UrgencyLow,
			},
			want: map[string]any{
				"category":   "x-gnome.music",
				"transient":  true,
				"image-path": "file:///home/u/.cache/wavestream/covers/abc.img",
			},
		},
		{
			name:  "icon name is not a path",
			n:     Notification{Title: "t", Icon: "audio-x-generic", Urgency: UrgencyCritical},
			want:  map[string]any{"urgency": byte(2)},
			unset: []string{"image-path"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := hintValues(tt.n)
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("hints[%q] = %v, want %v", k, got[k], v)
				}
			}
			for _, k := range tt.unset {
				if _, ok := got[k]; ok {
					t.Errorf("hints[%q] set, want absent", k)
				}
			}
		})
	}
}

func TestEscapeBody(t *testing.T) {
	if got := escapeBody("Drum & Bass <Live>"); got != "Drum &amp; Bass &lt;Live&gt;" {
		t.Errorf("escapeBody() = %q", got)
	}
}

func TestDiscard(t *testing.T) {
	var n Notifier = discard{}
	id, err := n.Notify(Notification{Title: "t"})
	if id != 0 || err != nil {
		t.Errorf("Notify() = %d, %v, want 0, nil", id, err)
	}
	if err := n.Close(1); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
