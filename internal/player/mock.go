// internal/player/mock.go
package player

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Mock is a test double for Interface. It is safe for concurrent use.
type Mock struct {
	mu         sync.Mutex
	source     string
	position   time.Duration
	duration   time.Duration
	volume     float64
	playing    bool
	closed     bool
	loadErr    error
	playErr    error
	playFunc   func(ctx context.Context, source string) error
	loadCalls  []string
	playCalls  int
	pauseCalls int
	seekCalls  []time.Duration
	events     chan Event
}

// NewMock creates a new mock engine for testing.
func NewMock() *Mock {
	return &Mock{
		volume: 1,
		events: make(chan Event, eventBufferSize),
	}
}

func (m *Mock) Load(locator string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadCalls = append(m.loadCalls, locator)
	if m.loadErr != nil {
		return m.loadErr
	}
	if locator == "" {
		return ErrNoSource
	}
	m.source = locator
	m.position = 0
	m.playing = false
	return nil
}

func (m *Mock) Play(ctx context.Context) error {
	m.mu.Lock()
	m.playCalls++
	source := m.source
	fn := m.playFunc
	err := m.playErr
	m.mu.Unlock()

	if source == "" {
		return fmt.Errorf("%w: %w", ErrPlaybackRejected, ErrNoSource)
	}
	if fn != nil {
		err = fn(ctx, source)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPlaybackRejected, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.source == source {
		m.playing = true
	}
	return nil
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pauseCalls++
	m.playing = false
}

func (m *Mock) Seek(position time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekCalls = append(m.seekCalls, position)
	if m.source == "" {
		return
	}
	m.position = clampPosition(position, m.duration)
}

func (m *Mock) SetVolume(level float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = clampLevel(level)
}

func (m *Mock) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

func (m *Mock) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *Mock) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

func (m *Mock) Source() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.source
}

func (m *Mock) Events() <-chan Event {
	return m.events
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.playing = false
	return nil
}

// Test helpers

// SetPlayFunc installs a hook that decides the outcome of each Play call.
// It runs without the mock's lock held and may block.
func (m *Mock) SetPlayFunc(fn func(ctx context.Context, source string) error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playFunc = fn
}

func (m *Mock) SetPlayError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playErr = err
}

func (m *Mock) SetLoadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}

func (m *Mock) SetDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.duration = d
}

func (m *Mock) SetPosition(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = d
}

func (m *Mock) LoadCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.loadCalls...)
}

func (m *Mock) PlayCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playCalls
}

func (m *Mock) PauseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pauseCalls
}

func (m *Mock) SeekCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.seekCalls...)
}

func (m *Mock) IsPlaying() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing
}

func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Emit delivers an engine event to the consumer.
func (m *Mock) Emit(ev Event) {
	m.events <- ev
}

// SimulateEnded reports the current source as finished.
func (m *Mock) SimulateEnded() {
	m.mu.Lock()
	src := m.source
	m.playing = false
	m.mu.Unlock()
	m.Emit(Ended{Source: src})
}

// SimulateError reports a failure for the current source.
func (m *Mock) SimulateError(err error) {
	m.mu.Lock()
	src := m.source
	m.playing = false
	m.mu.Unlock()
	m.Emit(Failed{Source: src, Reason: err})
}
