// Package notify shows desktop notifications for the player: the track
// that started and the notices the playback controller raises.
package notify

import (
	"html"
	"path/filepath"
)

const (
	appName      = "Wavestream"
	desktopEntry = "wavestream"
)

// Urgency is the freedesktop urgency hint.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string  // summary, required
	Body       string  // plain text; escaped before sending
	Icon       string  // image file path or icon name
	Category   string  // e.g. "x-gnome.music"
	Transient  bool    // skip the notification history
	Timeout    int32   // ms, -1 = server default, 0 = never expire
	ReplacesID uint32  // 0 = new notification
	Urgency    Urgency
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends n and returns its id. A notifier with no notification
	// server returns 0 and no error.
	Notify(n Notification) (uint32, error)
	// Close withdraws a notification.
	Close(id uint32) error
}

// hintValues returns the freedesktop hints for n. An absolute Icon is also
// sent as image-path so servers that ignore app_icon files still show it.
func hintValues(n Notification) map[string]any {
	hints := map[string]any{
		"urgency":       byte(n.Urgency),
		"desktop-entry": desktopEntry,
	}
	if n.Category != "" {
		hints["category"] = n.Category
	}
	if n.Transient {
		hints["transient"] = true
	}
	if n.Icon != "" && filepath.IsAbs(n.Icon) {
		hints["image-path"] = "file://" + n.Icon
	}
	return hints
}

// escapeBody escapes the markup subset notification servers interpret.
// Track titles regularly contain "&" and "<".
func escapeBody(s string) string {
	return html.EscapeString(s)
}

// discard is used when no notification server is reachable.
type discard struct{}

func (discard) Notify(Notification) (uint32, error) { return 0, nil }

func (discard) Close(uint32) error { return nil }
