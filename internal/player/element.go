package player

import (
	"context"
	"time"
)

// Handlers are the callbacks an Element reports through. Any field may be
// nil. Elements must not hold internal locks while invoking a handler.
type Handlers struct {
	TimeUpdate     func()
	LoadedMetadata func()
	Ended          func(source string)
	Error          func(source string, err error)
}

// Element is an audio output primitive: one source at a time, with
// position and volume. Engine adapts an Element to Interface.
type Element interface {
	SetSource(src string)
	Source() string
	// Load starts buffering the current source and rewinds to zero.
	Load()
	// Play waits until the source is buffered, then starts output.
	Play(ctx context.Context) error
	Pause()
	CurrentTime() time.Duration
	SetCurrentTime(position time.Duration)
	Duration() time.Duration
	SetVolume(level float64)
	Volume() float64
	SetHandlers(h Handlers)
	Close() error
}
