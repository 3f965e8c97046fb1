package player

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Engine adapts an Element to Interface: it clamps inputs, makes Load
// idempotent and turns element callbacks into Events.
type Engine struct {
	mu     sync.Mutex
	el     Element
	events chan Event
	done   chan struct{}
	closed bool
}

// NewEngine wraps el. The engine owns el from now on.
func NewEngine(el Element) *Engine {
	e := &Engine{
		el:     el,
		events: make(chan Event, eventBufferSize),
		done:   make(chan struct{}),
	}
	el.SetHandlers(Handlers{
		TimeUpdate:     e.onTimeUpdate,
		LoadedMetadata: e.onTimeUpdate,
		Ended:          e.onEnded,
		Error:          e.onError,
	})
	return e
}

// Load sets the locator and begins buffering.
func (e *Engine) Load(locator string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}
	if locator == "" {
		return ErrNoSource
	}
	e.el.Pause()
	if e.el.Source() == locator {
		e.el.SetCurrentTime(0)
		return nil
	}
	e.el.SetSource(locator)
	e.el.Load()
	return nil
}

// Play starts output of the loaded locator.
func (e *Engine) Play(ctx context.Context) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return fmt.Errorf("%w: %w", ErrPlaybackRejected, ErrClosed)
	}
	if e.el.Source() == "" {
		e.mu.Unlock()
		return fmt.Errorf("%w: %w", ErrPlaybackRejected, ErrNoSource)
	}
	el := e.el
	e.mu.Unlock()

	// Play may block while buffering; a concurrent Load aborts it.
	if err := el.Play(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrPlaybackRejected, err)
	}
	return nil
}

// Pause halts output.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.el.Pause()
}

// Seek moves to position, clamped to the loaded duration.
func (e *Engine) Seek(position time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || e.el.Source() == "" {
		return
	}
	e.el.SetCurrentTime(clampPosition(position, e.el.Duration()))
}

// SetVolume sets the output level.
func (e *Engine) SetVolume(level float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.el.SetVolume(clampLevel(level))
}

// Volume returns the output level.
func (e *Engine) Volume() float64 {
	return e.el.Volume()
}

// Position returns the current position.
func (e *Engine) Position() time.Duration {
	return e.el.CurrentTime()
}

// Duration returns the loaded duration, 0 if unknown.
func (e *Engine) Duration() time.Duration {
	return e.el.Duration()
}

// Source returns the loaded locator.
func (e *Engine) Source() string {
	return e.el.Source()
}

// Events returns the notification channel.
func (e *Engine) Events() <-chan Event {
	return e.events
}

// Close releases the element. Events is never closed; use the controller's
// lifetime to stop reading it.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	close(e.done)
	return e.el.Close()
}

func (e *Engine) onTimeUpdate() {
	ev := TimeUpdate{Position: e.el.CurrentTime(), Duration: e.el.Duration()}
	select {
	case e.events <- ev:
	default:
		// Drop: a later update supersedes this one.
	}
}

func (e *Engine) onEnded(source string) {
	e.emit(Ended{Source: source})
}

func (e *Engine) onError(source string, err error) {
	e.emit(Failed{Source: source, Reason: err})
}

// emit delivers an event that must not be dropped.
func (e *Engine) emit(ev Event) {
	select {
	case e.events <- ev:
	case <-e.done:
	}
}

func clampPosition(position, duration time.Duration) time.Duration {
	if position < 0 {
		return 0
	}
	if duration > 0 && position > duration {
		return duration
	}
	return position
}

func clampLevel(level float64) float64 {
	if level < 0 {
		return 0
	}
	if level > 1 {
		return 1
	}
	return level
}
