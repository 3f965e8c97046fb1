//go:build windows

package stderr

import (
	"os"
	"strings"
)

// Start returns a capture that never delivers lines. Windows audio
// backends do not write to stderr.
func Start() (*Capture, error) {
	return newCapture(strings.NewReader(""), func() {}, func(msg string) {
		_, _ = os.Stderr.WriteString(msg)
	}), nil
}
