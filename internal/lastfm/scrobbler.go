package lastfm

import (
	"context"
	"log/slog"
	"time"

	"github.com/llehouerou/wavestream/internal/playback"
	"github.com/llehouerou/wavestream/internal/state"
)

const (
	minScrobbleDuration = 30 * time.Second
	maxScrobbleWait     = 4 * time.Minute

	defaultRetryInterval = 5 * time.Minute
	maxPendingAttempts   = 10
	maxPendingAge        = 14 * 24 * time.Hour
)

// API is the part of Client the scrobbler needs.
type API interface {
	IsAuthenticated() bool
	UpdateNowPlaying(track ScrobbleTrack) error
	Scrobble(track ScrobbleTrack) error
}

// PendingStore queues scrobbles that could not be submitted.
type PendingStore interface {
	AddPendingScrobble(s state.PendingScrobble) error
	GetPendingScrobbles() ([]state.PendingScrobble, error)
	DeletePendingScrobbles(ids ...int64) error
	UpdatePendingScrobbleAttempt(id int64, errMsg string) error
	DeleteOldPendingScrobbles(maxAge time.Duration) error
}

var (
	_ API          = (*Client)(nil)
	_ PendingStore = (*state.Manager)(nil)
)

// ScrobblerOptions configures a Scrobbler. Store and Logger are optional.
type ScrobblerOptions struct {
	API           API
	Store         PendingStore
	RetryInterval time.Duration
	Logger        *slog.Logger
}

// Scrobbler follows a playback subscription and reports plays to Last.fm.
// A track is scrobbled once per start, after it has played for half its
// length or four minutes, whichever comes first. Tracks shorter than 30
// seconds are never scrobbled. Failed scrobbles are queued in the store
// and retried periodically.
type Scrobbler struct {
	api           API
	store         PendingStore
	retryInterval time.Duration
	log           *slog.Logger

	current *ScrobbleState
}

// NewScrobbler creates a scrobbler. It does nothing until Run is called.
func NewScrobbler(opts ScrobblerOptions) *Scrobbler {
	s := &Scrobbler{
		api:           opts.API,
		store:         opts.Store,
		retryInterval: opts.RetryInterval,
		log:           opts.Logger,
	}
	if s.retryInterval <= 0 {
		s.retryInterval = defaultRetryInterval
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	return s
}

// Run consumes sub until ctx is cancelled or the subscription ends.
func (s *Scrobbler) Run(ctx context.Context, sub *playback.Subscription) {
	ticker := time.NewTicker(s.retryInterval)
	defer ticker.Stop()

	s.RetryPending()
	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Done:
			return
		case e := <-sub.TrackChanged:
			s.TrackChanged(e)
		case snap := <-sub.Snapshots:
			s.Progress(snap)
		case <-ticker.C:
			s.RetryPending()
		}
	}
}

// TrackChanged starts a new scrobble window and announces the track as
// now playing.
func (s *Scrobbler) TrackChanged(e playback.TrackChange) {
	s.current = &ScrobbleState{Track: e.Current, StartedAt: time.Now()}
	if !s.api.IsAuthenticated() {
		return
	}
	if err := s.api.UpdateNowPlaying(FromTrack(e.Current, 0, s.current.StartedAt)); err != nil {
		s.log.Debug("Now playing update failed", "track", e.Current.ID, "error", err)
		return
	}
	s.current.NowPlayingSent = true
}

// Progress scrobbles the current track once snap shows it has played long
// enough.
func (s *Scrobbler) Progress(snap playback.Snapshot) {
	cur := s.current
	if cur == nil || cur.Scrobbled || snap.TrackID() != cur.Track.ID {
		return
	}
	if snap.State != playback.StatePlaying || snap.Duration < minScrobbleDuration {
		return
	}
	if snap.Position < scrobbleThreshold(snap.Duration) {
		return
	}
	cur.Scrobbled = true
	s.submit(FromTrack(cur.Track, snap.Duration, cur.StartedAt), cur.Track.ID)
}

func scrobbleThreshold(d time.Duration) time.Duration {
	return min(d/2, maxScrobbleWait)
}

func (s *Scrobbler) submit(track ScrobbleTrack, trackID string) {
	if !s.api.IsAuthenticated() {
		return
	}
	err := s.api.Scrobble(track)
	if err == nil {
		s.log.Debug("Scrobbled", "track", trackID)
		return
	}
	s.log.Warn("Scrobble failed, queued for retry", "track", trackID, "error", err)
	if s.store == nil {
		return
	}
	pending := state.PendingScrobble{
		TrackID:      trackID,
		Artist:       track.Artist,
		Track:        track.Track,
		DurationSecs: int(track.Duration.Seconds()),
		Timestamp:    track.Timestamp,
		LastError:    err.Error(),
	}
	if err := s.store.AddPendingScrobble(pending); err != nil {
		s.log.Warn("Could not queue scrobble", "track", trackID, "error", err)
	}
}

// RetryPending resubmits queued scrobbles, dropping entries that are too
// old or have failed too often.
func (s *Scrobbler) RetryPending() (succeeded, failed int) {
	if s.store == nil || !s.api.IsAuthenticated() {
		return 0, 0
	}
	if err := s.store.DeleteOldPendingScrobbles(maxPendingAge); err != nil {
		s.log.Warn("Could not prune pending scrobbles", "error", err)
	}
	pending, err := s.store.GetPendingScrobbles()
	if err != nil {
		s.log.Warn("Could not load pending scrobbles", "error", err)
		return 0, 0
	}

	var done []int64
	for i := range pending {
		p := &pending[i]
		if p.Attempts >= maxPendingAttempts {
			done = append(done, p.ID)
			continue
		}
		track := ScrobbleTrack{
			Artist:    p.Artist,
			Track:     p.Track,
			Duration:  time.Duration(p.DurationSecs) * time.Second,
			Timestamp: p.Timestamp,
		}
		if err := s.api.Scrobble(track); err != nil {
			failed++
			_ = s.store.UpdatePendingScrobbleAttempt(p.ID, err.Error())
			continue
		}
		succeeded++
		done = append(done, p.ID)
	}
	if len(done) > 0 {
		if err := s.store.DeletePendingScrobbles(done...); err != nil {
			s.log.Warn("Could not delete pending scrobbles", "error", err)
		}
	}
	if succeeded > 0 || failed > 0 {
		s.log.Info("Retried pending scrobbles", "succeeded", succeeded, "failed", failed)
	}
	return succeeded, failed
}
