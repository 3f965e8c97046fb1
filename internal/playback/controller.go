// internal/playback/controller.go
package playback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/llehouerou/wavestream/internal/errmsg"
	"github.com/llehouerou/wavestream/internal/player"
	"github.com/llehouerou/wavestream/internal/playlist"
	"github.com/llehouerou/wavestream/internal/remote"
)

// Controller owns the single audio session: the engine, the queue, the
// current track and the published snapshot.
//
// Blocking steps (stream resolution, engine start, remote calls) run with mu
// released. Each play request takes a new generation; a continuation whose
// generation is no longer current drops its result and returns
// ErrSuperseded.
type Controller struct {
	mu sync.Mutex

	engine player.Interface
	remote Remote
	resume ResumeStore
	volume VolumeStore
	log    *slog.Logger

	queue    *playlist.Queue
	current  *playlist.Track
	state    State
	position time.Duration
	duration time.Duration
	level    float64
	muted    bool

	gen        uint64
	cancelLoad context.CancelFunc
	starting   bool // engine start in flight
	wantPaused bool // Pause arrived while starting

	liked *likedSet

	recentMu sync.Mutex
	recent   []remote.RecentEntry

	subs   []*Subscription
	subsMu sync.Mutex

	ctx      context.Context // cancelled by Close
	cancel   context.CancelFunc
	bg       sync.WaitGroup
	loopDone chan struct{}
	closed   bool
}

// New creates a controller that takes ownership of opts.Engine.
func New(opts Options) *Controller {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		engine:   opts.Engine,
		remote:   opts.Remote,
		resume:   opts.Resume,
		volume:   opts.Volume,
		log:      log,
		queue:    playlist.NewQueue(),
		level:    opts.Engine.Volume(),
		liked:    newLikedSet(),
		ctx:      ctx,
		cancel:   cancel,
		loopDone: make(chan struct{}),
	}
	go c.run()
	return c
}

// Init restores the previous session: the saved volume, the last played
// track (loaded as Idle, not started) and, when signed in, the liked set and
// recently played log. Remote failures are returned for logging only; the
// controller is usable either way.
func (c *Controller) Init(ctx context.Context) error {
	c.loadVolume()
	c.loadResume()

	if !c.signedIn() {
		return nil
	}
	var wg sync.WaitGroup
	var likedErr, recentErr error
	wg.Go(func() { likedErr = c.refreshLiked(ctx) })
	wg.Go(func() { recentErr = c.RefreshRecentlyPlayed(ctx) })
	wg.Wait()
	return errors.Join(likedErr, recentErr)
}

func (c *Controller) loadVolume() {
	if c.volume == nil {
		return
	}
	v, err := c.volume.GetVolume()
	if err != nil {
		c.log.Warn("Could not load volume", "error", fmt.Errorf("%w: %w", ErrPersistence, err))
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.level = clampLevel(v.Volume)
	c.muted = v.Muted
	c.applyVolumeLocked()
	c.publishLocked()
}

func (c *Controller) loadResume() {
	if c.resume == nil {
		return
	}
	t, err := c.resume.LastPlayed()
	if err != nil {
		c.log.Warn("Could not load last played track", "error", fmt.Errorf("%w: %w", ErrPersistence, err))
		return
	}
	if t == nil || !t.Valid() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != nil || c.state != StateIdle {
		return
	}
	c.queue.SetQueue(nil, *t)
	c.current = t
	c.publishLocked()
	c.log.Debug("Restored last played track", "track", t.ID)
}

// Play starts track. With a queue, the queue is replaced and anchored on
// track; without one the current queue is kept if it contains track,
// otherwise the queue becomes [track].
func (c *Controller) Play(ctx context.Context, track playlist.Track, queue ...playlist.Track) error {
	return c.start(ctx, track, queue, true)
}

// start runs one load request. record controls the remote history append.
func (c *Controller) start(ctx context.Context, track playlist.Track, queue []playlist.Track, record bool) error {
	if !track.Valid() {
		return ErrNoTrack
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	gen, loadCtx := c.supersedeLocked(ctx)
	if c.state == StatePlaying {
		c.engine.Pause()
	}
	prev := c.current
	c.anchorLocked(track, queue)
	t := track
	c.current = &t
	c.state = StateLoading
	c.starting = true
	c.wantPaused = false
	c.position, c.duration = 0, 0
	c.publishLocked()
	c.mu.Unlock()

	locator, err := c.locate(loadCtx, t)
	if err != nil {
		return c.fail(gen, t, err)
	}

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return ErrSuperseded
	}
	if err := c.engine.Load(locator); err != nil {
		c.mu.Unlock()
		return c.fail(gen, t, fmt.Errorf("%w: %w", player.ErrPlaybackRejected, err))
	}
	c.mu.Unlock()

	err = c.engine.Play(loadCtx)

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return ErrSuperseded
	}
	if err != nil {
		err = c.failLocked(t, err)
		c.mu.Unlock()
		return err
	}
	c.finishLoadLocked()
	c.state = StatePlaying
	if c.wantPaused {
		c.engine.Pause()
		c.state = StatePaused
		c.wantPaused = false
	}
	c.position = c.engine.Position()
	c.duration = c.engine.Duration()
	c.publishLocked()
	c.broadcast(func(s *Subscription) {
		s.sendTrack(TrackChange{Previous: copyTrack(prev), Current: t})
	})
	if record {
		c.bg.Add(1)
	}
	c.mu.Unlock()

	c.log.Info("Playing", "track", t.ID, "title", t.Title)
	c.saveResume(t)
	if record {
		go c.recordPlay(t)
	}
	return nil
}

// supersedeLocked invalidates any in-flight request and returns the new
// generation with a context that the next request cancels.
func (c *Controller) supersedeLocked(ctx context.Context) (uint64, context.Context) {
	c.gen++
	if c.cancelLoad != nil {
		c.cancelLoad()
	}
	loadCtx, cancel := context.WithCancel(ctx)
	c.cancelLoad = cancel
	return c.gen, loadCtx
}

func (c *Controller) finishLoadLocked() {
	if c.cancelLoad != nil {
		c.cancelLoad()
		c.cancelLoad = nil
	}
	c.starting = false
}

func (c *Controller) anchorLocked(track playlist.Track, queue []playlist.Track) {
	switch {
	case len(queue) > 0:
		c.queue.SetQueue(queue, track)
	case c.queue.Contains(track.ID):
		c.queue.SetQueue(c.queue.Tracks(), track)
	default:
		c.queue.SetQueue(nil, track)
	}
}

func (c *Controller) locate(ctx context.Context, t playlist.Track) (string, error) {
	if t.StreamURL != "" {
		return t.StreamURL, nil
	}
	if c.remote == nil {
		return "", fmt.Errorf("%w: track %s has no stream url", ErrResolution, t.ID)
	}
	locator, err := c.remote.ResolveStreamLocator(ctx, t.ID)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrResolution, err)
	}
	return locator, nil
}

func (c *Controller) fail(gen uint64, t playlist.Track, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return ErrSuperseded
	}
	return c.failLocked(t, err)
}

// failLocked moves to Errored and emits the single notice for the failed
// request.
func (c *Controller) failLocked(t playlist.Track, err error) error {
	c.finishLoadLocked()
	c.state = StateErrored
	c.wantPaused = false
	c.publishLocked()
	c.broadcast(func(s *Subscription) {
		s.sendNotice(errorNotice(errmsg.OpPlaybackStart, t.Title, err))
	})
	c.log.Warn("Playback failed", "track", t.ID, "error", err)
	return err
}

// clearErrorLocked is the Errored -> Idle edge taken by every user action.
func (c *Controller) clearErrorLocked() {
	if c.state == StateErrored {
		c.state = StateIdle
		c.publishLocked()
	}
}

// Pause pauses output. A pause during a load lets the load finish and then
// pauses. Any other state is left alone.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.clearErrorLocked()
	if c.starting {
		c.wantPaused = true
		return
	}
	if c.state != StatePlaying {
		return
	}
	c.engine.Pause()
	c.state = StatePaused
	c.position = c.engine.Position()
	c.publishLocked()
}

// Resume continues a paused track, or loads the current track when nothing
// is loaded (Idle after start-up or after an error).
func (c *Controller) Resume(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.clearErrorLocked()
	if c.starting {
		c.wantPaused = false
		c.mu.Unlock()
		return nil
	}
	switch {
	case c.state == StatePlaying:
		c.mu.Unlock()
		return nil
	case c.state == StatePaused && c.engine.Source() != "":
		return c.unpauseLocked(ctx)
	case c.current == nil:
		c.mu.Unlock()
		return nil
	}
	t := *c.current
	c.mu.Unlock()

	return c.start(ctx, t, nil, false)
}

// unpauseLocked is entered with mu held and releases it.
func (c *Controller) unpauseLocked(ctx context.Context) error {
	gen, loadCtx := c.supersedeLocked(ctx)
	c.starting = true
	t := *c.current
	c.mu.Unlock()

	err := c.engine.Play(loadCtx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return ErrSuperseded
	}
	if err != nil {
		c.finishLoadLocked()
		c.state = StateErrored
		c.wantPaused = false
		c.publishLocked()
		c.broadcast(func(s *Subscription) {
			s.sendNotice(errorNotice(errmsg.OpPlaybackResume, t.Title, err))
		})
		c.log.Warn("Resume failed", "track", t.ID, "error", err)
		return err
	}
	c.finishLoadLocked()
	if c.wantPaused {
		c.engine.Pause()
		c.wantPaused = false
	} else {
		c.state = StatePlaying
	}
	c.position = c.engine.Position()
	c.publishLocked()
	return nil
}

// Toggle pauses when playing (or about to play), resumes otherwise.
func (c *Controller) Toggle(ctx context.Context) error {
	c.mu.Lock()
	playing := c.state == StatePlaying || (c.starting && !c.wantPaused)
	c.mu.Unlock()

	if playing {
		c.Pause()
		return nil
	}
	return c.Resume(ctx)
}

// Next plays the queue entry after the current track, wrapping around.
func (c *Controller) Next(ctx context.Context) error {
	return c.advance(ctx, 1)
}

// Previous plays the queue entry before the current track, wrapping around.
func (c *Controller) Previous(ctx context.Context) error {
	return c.advance(ctx, -1)
}

func (c *Controller) advance(ctx context.Context, step int) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.clearErrorLocked()
	if c.queue.IsEmpty() {
		c.mu.Unlock()
		return nil
	}
	id := ""
	if c.current != nil {
		id = c.current.ID
	}
	var t playlist.Track
	if step > 0 {
		t, _ = c.queue.Next(id)
	} else {
		t, _ = c.queue.Previous(id)
	}
	c.mu.Unlock()

	return c.start(ctx, t, nil, true)
}

// SeekTo moves the loaded track to position.
func (c *Controller) SeekTo(position time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || !c.state.IsActive() {
		return
	}
	c.engine.Seek(position)
	c.position = c.engine.Position()
	c.publishLocked()
}

// SetVolume sets the output level in [0, 1] and unmutes.
func (c *Controller) SetVolume(level float64) {
	c.mu.Lock()
	c.level = clampLevel(level)
	c.muted = false
	c.applyVolumeLocked()
	c.publishLocked()
	level, muted := c.level, c.muted
	c.mu.Unlock()

	c.saveVolume(level, muted)
}

// ToggleMute silences output, or restores the level from before muting.
func (c *Controller) ToggleMute() {
	c.mu.Lock()
	c.muted = !c.muted
	c.applyVolumeLocked()
	c.publishLocked()
	level, muted := c.level, c.muted
	c.mu.Unlock()

	c.saveVolume(level, muted)
}

func (c *Controller) applyVolumeLocked() {
	if c.muted {
		c.engine.SetVolume(0)
		return
	}
	c.engine.SetVolume(c.level)
}

func (c *Controller) saveVolume(level float64, muted bool) {
	if c.volume != nil {
		c.volume.SaveVolume(level, muted)
	}
}

func (c *Controller) saveResume(t playlist.Track) {
	if c.resume == nil {
		return
	}
	if err := c.resume.SaveLastPlayed(t); err != nil {
		c.log.Warn("Could not save last played track", "track", t.ID,
			"error", fmt.Errorf("%w: %w", ErrPersistence, err))
	}
}

// Snapshot returns the current session view.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := c.snapshotLocked()
	if c.state.IsActive() {
		snap.Position = c.engine.Position()
	}
	return snap
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Track:    copyTrack(c.current),
		State:    c.state,
		Position: c.position,
		Duration: c.duration,
		Volume:   c.level,
		Muted:    c.muted,
	}
}

// Queue returns a copy of the queue.
func (c *Controller) Queue() []playlist.Track {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.Tracks()
}

// Subscribe creates a new event subscription. The current snapshot is
// delivered immediately.
func (c *Controller) Subscribe() *Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()
	sub := newSubscription()
	if c.closed {
		sub.close()
		return sub
	}
	sub.sendSnapshot(c.snapshotLocked())
	c.subsMu.Lock()
	c.subs = append(c.subs, sub)
	c.subsMu.Unlock()
	return sub
}

// publishLocked sends the snapshot while mu is held so subscribers see
// snapshots in transition order.
func (c *Controller) publishLocked() {
	snap := c.snapshotLocked()
	c.broadcast(func(s *Subscription) { s.sendSnapshot(snap) })
}

func (c *Controller) broadcast(send func(*Subscription)) {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	for _, sub := range c.subs {
		send(sub)
	}
}

// run consumes engine events until Close.
func (c *Controller) run() {
	defer close(c.loopDone)
	events := c.engine.Events()
	for {
		select {
		case <-c.ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			c.handleEvent(ev)
		}
	}
}

func (c *Controller) handleEvent(ev player.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	switch e := ev.(type) {
	case player.TimeUpdate:
		if !c.state.IsActive() || c.starting {
			return
		}
		c.position = e.Position
		if e.Duration > 0 {
			c.duration = e.Duration
		}
		c.publishLocked()

	case player.Ended:
		// A late Ended from a replaced source must not skip the new track.
		if c.state != StatePlaying || c.starting || e.Source != c.engine.Source() {
			c.log.Debug("Ignoring stale end of stream", "source", e.Source)
			return
		}
		c.bg.Add(1)
		go func() {
			defer c.bg.Done()
			if err := c.advance(c.ctx, 1); err != nil && !errors.Is(err, ErrSuperseded) {
				c.log.Debug("Auto-advance failed", "error", err)
			}
		}()

	case player.Failed:
		// While starting, the pending Play reports the failure itself.
		if c.starting || !c.state.IsActive() || e.Source != c.engine.Source() {
			return
		}
		c.engine.Pause()
		c.state = StateErrored
		c.publishLocked()
		title := ""
		if c.current != nil {
			title = c.current.Title
		}
		c.broadcast(func(s *Subscription) {
			s.sendNotice(errorNotice(errmsg.OpPlaybackStart, title, e.Reason))
		})
		c.log.Warn("Playback error", "source", e.Source, "error", e.Reason)
	}
}

// Close stops the session, waits for background work and releases the
// engine.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.gen++
	if c.cancelLoad != nil {
		c.cancelLoad()
		c.cancelLoad = nil
	}
	c.mu.Unlock()

	c.cancel()
	<-c.loopDone
	c.bg.Wait()

	c.subsMu.Lock()
	for _, sub := range c.subs {
		sub.close()
	}
	c.subs = nil
	c.subsMu.Unlock()

	return c.engine.Close()
}

func (c *Controller) signedIn() bool {
	return c.remote != nil && c.remote.HasCredentials()
}

func copyTrack(t *playlist.Track) *playlist.Track {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}

func clampLevel(level float64) float64 {
	switch {
	case level < 0:
		return 0
	case level > 1:
		return 1
	default:
		return level
	}
}
