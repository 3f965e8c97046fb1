package player

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeElement records calls and lets tests fire handlers.
type fakeElement struct {
	mu       sync.Mutex
	src      string
	pos      time.Duration
	dur      time.Duration
	level    float64
	loads    int
	pauses   int
	playErr  error
	handlers Handlers
	closed   bool
}

func (f *fakeElement) SetSource(src string) {
	f.mu.Lock()
	f.src = src
	f.mu.Unlock()
}

func (f *fakeElement) Source() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.src
}

func (f *fakeElement) Load() {
	f.mu.Lock()
	f.loads++
	f.pos = 0
	f.mu.Unlock()
}

func (f *fakeElement) Play(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.playErr
}

func (f *fakeElement) Pause() {
	f.mu.Lock()
	f.pauses++
	f.mu.Unlock()
}

func (f *fakeElement) CurrentTime() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pos
}

func (f *fakeElement) SetCurrentTime(d time.Duration) {
	f.mu.Lock()
	f.pos = d
	f.mu.Unlock()
}

func (f *fakeElement) Duration() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dur
}

func (f *fakeElement) SetVolume(level float64) {
	f.mu.Lock()
	f.level = level
	f.mu.Unlock()
}

func (f *fakeElement) Volume() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.level
}

func (f *fakeElement) SetHandlers(h Handlers) {
	f.handlers = h
}

func (f *fakeElement) Close() error {
	f.closed = true
	return nil
}

func TestEngine_Load_SetsSource(t *testing.T) {
	el := &fakeElement{}
	e := NewEngine(el)

	if err := e.Load("https://cdn.example/a.mp3"); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if e.Source() != "https://cdn.example/a.mp3" {
		t.Errorf("Source() = %q, want https://cdn.example/a.mp3", e.Source())
	}
	if el.loads != 1 {
		t.Errorf("element loads = %d, want 1", el.loads)
	}
}

func TestEngine_Load_EmptyLocator(t *testing.T) {
	e := NewEngine(&fakeElement{})

	if err := e.Load(""); !errors.Is(err, ErrNoSource) {
		t.Errorf("Load(\"\") error = %v, want ErrNoSource", err)
	}
}

func TestEngine_Load_SameLocatorRewindsWithoutReload(t *testing.T) {
	el := &fakeElement{}
	e := NewEngine(el)
	_ = e.Load("a")
	el.pos = 42 * time.Second

	if err := e.Load("a"); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if el.loads != 1 {
		t.Errorf("element loads = %d, want 1", el.loads)
	}
	if e.Position() != 0 {
		t.Errorf("Position() = %v, want 0", e.Position())
	}
}

func TestEngine_Play_NoSource(t *testing.T) {
	e := NewEngine(&fakeElement{})

	err := e.Play(context.Background())

	if !errors.Is(err, ErrPlaybackRejected) {
		t.Errorf("Play() error = %v, want ErrPlaybackRejected", err)
	}
	if !errors.Is(err, ErrNoSource) {
		t.Errorf("Play() error = %v, want wrapped ErrNoSource", err)
	}
}

func TestEngine_Play_WrapsElementError(t *testing.T) {
	cause := errors.New("device busy")
	el := &fakeElement{playErr: cause}
	e := NewEngine(el)
	_ = e.Load("a")

	err := e.Play(context.Background())

	if !errors.Is(err, ErrPlaybackRejected) || !errors.Is(err, cause) {
		t.Errorf("Play() error = %v, want rejected wrapping cause", err)
	}
}

func TestEngine_Seek_Clamps(t *testing.T) {
	el := &fakeElement{dur: 3 * time.Minute}
	e := NewEngine(el)
	_ = e.Load("a")

	tests := []struct {
		name string
		in   time.Duration
		want time.Duration
	}{
		{"negative", -5 * time.Second, 0},
		{"inside", time.Minute, time.Minute},
		{"past end", 10 * time.Minute, 3 * time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e.Seek(tt.in)
			if got := e.Position(); got != tt.want {
				t.Errorf("Seek(%v) Position() = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestEngine_Seek_NoSourceIsNoOp(t *testing.T) {
	el := &fakeElement{pos: 7 * time.Second}
	e := NewEngine(el)

	e.Seek(time.Minute)

	if el.pos != 7*time.Second {
		t.Errorf("position = %v, want unchanged", el.pos)
	}
}

func TestEngine_SetVolume_Clamps(t *testing.T) {
	e := NewEngine(&fakeElement{})

	e.SetVolume(1.5)
	if e.Volume() != 1 {
		t.Errorf("Volume() = %v, want 1", e.Volume())
	}
	e.SetVolume(-0.2)
	if e.Volume() != 0 {
		t.Errorf("Volume() = %v, want 0", e.Volume())
	}
	e.SetVolume(0.4)
	if e.Volume() != 0.4 {
		t.Errorf("Volume() = %v, want 0.4", e.Volume())
	}
}

func TestEngine_Events(t *testing.T) {
	el := &fakeElement{pos: time.Second, dur: time.Minute}
	e := NewEngine(el)

	el.handlers.TimeUpdate()
	el.handlers.Ended("a")
	el.handlers.Error("b", errors.New("decode"))

	if ev, ok := (<-e.Events()).(TimeUpdate); !ok || ev.Position != time.Second || ev.Duration != time.Minute {
		t.Errorf("first event = %#v, want TimeUpdate{1s, 1m}", ev)
	}
	if ev, ok := (<-e.Events()).(Ended); !ok || ev.Source != "a" {
		t.Errorf("second event = %#v, want Ended{a}", ev)
	}
	if ev, ok := (<-e.Events()).(Failed); !ok || ev.Source != "b" || ev.Reason == nil {
		t.Errorf("third event = %#v, want Failed{b}", ev)
	}
}

func TestEngine_TimeUpdate_DropsWhenFull(t *testing.T) {
	el := &fakeElement{}
	e := NewEngine(el)

	for range eventBufferSize + 5 {
		el.handlers.TimeUpdate() // must not block
	}

	if len(e.Events()) != eventBufferSize {
		t.Errorf("buffered events = %d, want %d", len(e.Events()), eventBufferSize)
	}
}

func TestEngine_Close(t *testing.T) {
	el := &fakeElement{}
	e := NewEngine(el)

	if err := e.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !el.closed {
		t.Error("element should be closed")
	}
	if err := e.Load("a"); !errors.Is(err, ErrClosed) {
		t.Errorf("Load() after Close error = %v, want ErrClosed", err)
	}
	if err := e.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
