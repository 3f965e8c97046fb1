package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

const defaultTickInterval = 250 * time.Millisecond

var errSourceChanged = errors.New("source changed while buffering")

var (
	speakerMu          sync.Mutex
	speakerInitialized bool
	speakerSampleRate  beep.SampleRate
)

// initSpeaker opens the audio device at the rate of the first decoded
// stream. Later streams are resampled to it.
func initSpeaker(format beep.Format) error {
	speakerMu.Lock()
	defer speakerMu.Unlock()
	if speakerInitialized {
		return nil
	}
	speakerSampleRate = format.SampleRate
	if err := speaker.Init(speakerSampleRate, speakerSampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init audio device: %w", err)
	}
	speakerInitialized = true
	return nil
}

// SpeakerOptions configures a Speaker.
type SpeakerOptions struct {
	HTTPClient   *http.Client
	TickInterval time.Duration // time update cadence while playing
	SpoolDir     string        // where downloaded streams are buffered; "" for os.TempDir
}

// Speaker is an Element that plays MP3 and FLAC locators on the system
// audio device. HTTP locators are spooled to a temporary file so the
// decoders can seek.
type Speaker struct {
	mu       sync.Mutex
	client   *http.Client
	tick     time.Duration
	spoolDir string
	handlers Handlers

	src      string
	load     *loadState
	state    State
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	level    float64
	stopTick chan struct{}
}

// loadState tracks one buffering attempt.
type loadState struct {
	ready  chan struct{}
	once   sync.Once
	err    error
	cancel context.CancelFunc
}

func (l *loadState) finish(err error) {
	l.once.Do(func() {
		l.err = err
		close(l.ready)
	})
}

// NewSpeaker creates a speaker element.
func NewSpeaker(opts SpeakerOptions) *Speaker {
	client := opts.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	tick := opts.TickInterval
	if tick <= 0 {
		tick = defaultTickInterval
	}
	return &Speaker{
		client:   client,
		tick:     tick,
		spoolDir: opts.SpoolDir,
		level:    1,
	}
}

// SetHandlers installs the notification callbacks.
func (s *Speaker) SetHandlers(h Handlers) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = h
}

// SetSource releases the current stream and records src.
func (s *Speaker) SetSource(src string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releaseLocked()
	s.src = src
}

// Source returns the current locator.
func (s *Speaker) Source() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src
}

// Load starts buffering the current source in the background.
func (s *Speaker) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releaseLocked()
	if s.src == "" {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	ls := &loadState{ready: make(chan struct{}), cancel: cancel}
	s.load = ls
	go s.buffer(ctx, ls, s.src)
}

func (s *Speaker) buffer(ctx context.Context, ls *loadState, src string) {
	streamer, format, err := s.open(ctx, src)

	s.mu.Lock()
	if s.load != ls {
		s.mu.Unlock()
		if streamer != nil {
			_ = streamer.Close()
		}
		return
	}
	if err == nil {
		s.streamer = streamer
		s.format = format
	}
	ls.finish(err)
	h := s.handlers
	s.mu.Unlock()

	if err != nil {
		if h.Error != nil {
			h.Error(src, err)
		}
		return
	}
	if h.LoadedMetadata != nil {
		h.LoadedMetadata()
	}
}

func (s *Speaker) open(ctx context.Context, src string) (beep.StreamSeekCloser, beep.Format, error) {
	u, err := url.Parse(src)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("parse locator: %w", err)
	}
	switch u.Scheme {
	case "http", "https":
		return s.download(ctx, u)
	case "", "file":
		f, err := os.Open(u.Path)
		if err != nil {
			return nil, beep.Format{}, err
		}
		streamer, format, err := decodeStream(f, "", u.Path)
		if err != nil {
			_ = f.Close()
			return nil, beep.Format{}, err
		}
		return streamer, format, nil
	default:
		return nil, beep.Format{}, fmt.Errorf("unsupported locator scheme %q", u.Scheme)
	}
}

func (s *Speaker) download(ctx context.Context, u *url.URL) (beep.StreamSeekCloser, beep.Format, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, beep.Format{}, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("fetch stream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, beep.Format{}, fmt.Errorf("fetch stream: %s", resp.Status)
	}

	f, err := os.CreateTemp(s.spoolDir, "wavestream-*")
	if err != nil {
		return nil, beep.Format{}, err
	}
	sp := &spool{File: f}
	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = sp.Close()
		return nil, beep.Format{}, fmt.Errorf("fetch stream: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		_ = sp.Close()
		return nil, beep.Format{}, err
	}

	streamer, format, err := decodeStream(sp, resp.Header.Get("Content-Type"), u.Path)
	if err != nil {
		_ = sp.Close()
		return nil, beep.Format{}, err
	}
	return streamer, format, nil
}

// Play waits for buffering to finish, then starts or resumes output.
func (s *Speaker) Play(ctx context.Context) error {
	s.mu.Lock()
	ls := s.load
	s.mu.Unlock()
	if ls == nil {
		return ErrNoSource
	}

	select {
	case <-ls.ready:
	case <-ctx.Done():
		return ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.load != ls {
		return errSourceChanged
	}
	if ls.err != nil {
		return ls.err
	}
	if err := initSpeaker(s.format); err != nil {
		return err
	}

	if s.ctrl == nil {
		var playStreamer beep.Streamer = s.streamer
		if s.format.SampleRate != speakerSampleRate {
			playStreamer = beep.Resample(4, s.format.SampleRate, speakerSampleRate, s.streamer)
		}
		s.ctrl = &beep.Ctrl{Streamer: playStreamer}
		s.volume = &effects.Volume{
			Streamer: s.ctrl,
			Base:     2,
			Volume:   levelToVolume(s.level),
			Silent:   s.level <= 0,
		}
		speaker.Play(beep.Seq(s.volume, beep.Callback(func() {
			// Runs on the audio goroutine with the speaker lock held.
			go s.finished(ls)
		})))
	} else {
		speaker.Lock()
		s.ctrl.Paused = false
		speaker.Unlock()
	}
	s.state = Playing
	s.startTickLocked()
	return nil
}

func (s *Speaker) finished(ls *loadState) {
	s.mu.Lock()
	if s.load != ls || s.state == Stopped {
		s.mu.Unlock()
		return
	}
	s.state = Stopped
	s.ctrl = nil
	s.volume = nil
	s.stopTickLocked()
	src := s.src
	h := s.handlers
	s.mu.Unlock()

	if h.Ended != nil {
		h.Ended(src)
	}
}

// Pause halts output, keeping the position.
func (s *Speaker) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.CanPause() || s.ctrl == nil {
		return
	}
	speaker.Lock()
	s.ctrl.Paused = true
	speaker.Unlock()
	s.state = Paused
	s.stopTickLocked()
}

// CurrentTime returns the playback position.
func (s *Speaker) CurrentTime() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := s.streamer.Position()
	speaker.Unlock()
	return s.format.SampleRate.D(pos)
}

// SetCurrentTime seeks to position.
func (s *Speaker) SetCurrentTime(position time.Duration) {
	s.mu.Lock()
	if s.streamer == nil {
		s.mu.Unlock()
		return
	}
	n := min(max(s.format.SampleRate.N(position), 0), s.streamer.Len())
	speaker.Lock()
	_ = s.streamer.Seek(n)
	speaker.Unlock()
	h := s.handlers
	s.mu.Unlock()

	if h.TimeUpdate != nil {
		h.TimeUpdate()
	}
}

// Duration returns the buffered stream length.
func (s *Speaker) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.streamer == nil {
		return 0
	}
	return s.format.SampleRate.D(s.streamer.Len())
}

// SetVolume sets the level (0.0 to 1.0).
func (s *Speaker) SetVolume(level float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.level = level
	if s.volume != nil {
		speaker.Lock()
		s.volume.Volume = levelToVolume(level)
		s.volume.Silent = level <= 0
		speaker.Unlock()
	}
}

// Volume returns the level.
func (s *Speaker) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

// State returns the output state.
func (s *Speaker) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Close stops output and removes any spooled stream.
func (s *Speaker) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releaseLocked()
	s.src = ""
	return nil
}

func (s *Speaker) releaseLocked() {
	if s.load != nil {
		s.load.cancel()
		s.load.finish(errSourceChanged)
		s.load = nil
	}
	if s.ctrl != nil {
		speaker.Clear()
		s.ctrl = nil
		s.volume = nil
	}
	if s.streamer != nil {
		_ = s.streamer.Close()
		s.streamer = nil
	}
	s.stopTickLocked()
	s.state = Stopped
}

func (s *Speaker) startTickLocked() {
	if s.stopTick != nil {
		return
	}
	stop := make(chan struct{})
	s.stopTick = stop
	interval := s.tick
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.mu.Lock()
				h := s.handlers.TimeUpdate
				s.mu.Unlock()
				if h != nil {
					h()
				}
			case <-stop:
				return
			}
		}
	}()
}

func (s *Speaker) stopTickLocked() {
	if s.stopTick != nil {
		close(s.stopTick)
		s.stopTick = nil
	}
}

// spool is a downloaded stream on disk; closing it deletes the file.
type spool struct {
	*os.File
}

func (s *spool) Close() error {
	err := s.File.Close()
	_ = os.Remove(s.Name())
	return err
}

var _ Element = (*Speaker)(nil)
