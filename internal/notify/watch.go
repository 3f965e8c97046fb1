package notify

import (
	"context"
	"log/slog"

	"github.com/llehouerou/wavestream/internal/playback"
)

const (
	nowPlayingTimeout = 5000
	noticeTimeout     = 4000
	musicCategory     = "x-gnome.music"
)

// WatcherOptions configures a Watcher. Covers and Logger are optional.
type WatcherOptions struct {
	Notifier   Notifier
	Covers     *CoverCache
	NowPlaying bool // announce track changes
	Notices    bool // forward controller notices
	Logger     *slog.Logger
}

// Watcher turns playback events into desktop notifications. Now-playing
// notifications replace each other instead of stacking.
type Watcher struct {
	notifier   Notifier
	covers     *CoverCache
	nowPlaying bool
	notices    bool
	log        *slog.Logger

	nowPlayingID uint32
}

// NewWatcher creates a watcher. It does nothing until Run is called.
func NewWatcher(opts WatcherOptions) *Watcher {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Watcher{
		notifier:   opts.Notifier,
		covers:     opts.Covers,
		nowPlaying: opts.NowPlaying,
		notices:    opts.Notices,
		log:        log,
	}
}

// Run consumes sub until ctx is cancelled or the subscription ends.
func (w *Watcher) Run(ctx context.Context, sub *playback.Subscription) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Done:
			return
		case e := <-sub.TrackChanged:
			w.TrackChanged(ctx, e)
		case n := <-sub.Notices:
			w.Notice(n)
		}
	}
}

// TrackChanged shows the now-playing notification for e.Current.
func (w *Watcher) TrackChanged(ctx context.Context, e playback.TrackChange) {
	if !w.nowPlaying || w.notifier == nil {
		return
	}

	n := Notification{
		Title:      e.Current.Title,
		Body:       e.Current.ArtistName(),
		Category:   musicCategory,
		Transient:  true,
		Timeout:    nowPlayingTimeout,
		ReplacesID: w.nowPlayingID,
		Urgency:    UrgencyLow,
	}
	if w.covers != nil {
		icon, err := w.covers.Path(ctx, e.Current.Artwork.Best())
		if err != nil {
			w.log.Debug("Cover unavailable", "track", e.Current.ID, "error", err)
		}
		n.Icon = icon
	}

	id, err := w.notifier.Notify(n)
	if err != nil {
		w.log.Warn("Now playing notification failed", "error", err)
		return
	}
	w.nowPlayingID = id
}

// Notice forwards a controller notice.
func (w *Watcher) Notice(notice playback.Notice) {
	if !w.notices || w.notifier == nil {
		return
	}

	n := Notification{
		Title:   notice.Title,
		Body:    notice.Message,
		Timeout: noticeTimeout,
		Urgency: UrgencyNormal,
	}
	if notice.Level == playback.NoticeError {
		n.Urgency = UrgencyCritical
	}
	if _, err := w.notifier.Notify(n); err != nil {
		w.log.Warn("Notice notification failed", "op", notice.Op, "error", err)
	}
}
