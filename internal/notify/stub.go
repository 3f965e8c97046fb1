//go:build !linux

package notify

// New returns a notifier that drops everything; only Linux desktops are
// supported.
func New() (Notifier, error) {
	return discard{}, nil
}
