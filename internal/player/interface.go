// internal/player/interface.go
package player

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNoSource is returned when playback is requested before a locator is loaded.
	ErrNoSource = errors.New("no source loaded")
	// ErrPlaybackRejected wraps any refusal of the output to start playing.
	ErrPlaybackRejected = errors.New("playback rejected")
	// ErrClosed is returned by a released engine.
	ErrClosed = errors.New("player closed")
)

// Interface is the media engine contract consumed by the playback controller.
//
// Load and Play are the only operations that can fail; everything else is
// a no-op when nothing is loaded. Asynchronous notifications arrive on
// Events in the order the engine observed them.
type Interface interface {
	// Load sets the audio locator and begins buffering. Loading the current
	// locator again only rewinds to zero.
	Load(locator string) error
	// Play starts output. Errors wrap ErrPlaybackRejected.
	Play(ctx context.Context) error
	Pause()
	// Seek moves to position, clamped to [0, Duration].
	Seek(position time.Duration)
	// SetVolume sets the output level, clamped to [0, 1].
	SetVolume(level float64)
	Volume() float64
	Position() time.Duration
	Duration() time.Duration
	Source() string
	Events() <-chan Event
	Close() error
}

// Verify implementations at compile time.
var (
	_ Interface = (*Engine)(nil)
	_ Interface = (*Mock)(nil)
)
