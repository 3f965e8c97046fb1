package playback

import (
	"context"
	"log/slog"
	"time"

	"github.com/llehouerou/wavestream/internal/player"
	"github.com/llehouerou/wavestream/internal/playlist"
	"github.com/llehouerou/wavestream/internal/remote"
	"github.com/llehouerou/wavestream/internal/state"
)

// Service defines the playback session contract consumed by front ends.
type Service interface {
	// Session setup: resume snapshot, saved volume, liked set and history.
	Init(ctx context.Context) error

	// Playback control. Blocking calls return once the engine has started
	// (or refused) output; a request overtaken by a newer one returns
	// ErrSuperseded.
	Play(ctx context.Context, track playlist.Track, queue ...playlist.Track) error
	Pause()
	Resume(ctx context.Context) error
	Toggle(ctx context.Context) error
	Next(ctx context.Context) error
	Previous(ctx context.Context) error
	SeekTo(position time.Duration)

	// Volume
	SetVolume(level float64)
	ToggleMute()

	// Likes
	ToggleLike(ctx context.Context, track playlist.Track) LikeResult
	IsLiked(trackID string) bool

	// State queries
	Snapshot() Snapshot
	Queue() []playlist.Track
	RecentlyPlayed() []remote.RecentEntry
	RefreshRecentlyPlayed(ctx context.Context) error

	// Event subscription
	Subscribe() *Subscription

	// Lifecycle
	Close() error
}

// Remote is the session backend used by the controller.
type Remote interface {
	HasCredentials() bool
	ResolveStreamLocator(ctx context.Context, trackID string) (string, error)
	AppendRecentlyPlayed(ctx context.Context, track playlist.Track) ([]remote.RecentEntry, error)
	FetchRecentlyPlayed(ctx context.Context) ([]remote.RecentEntry, error)
	SetLiked(ctx context.Context, track playlist.Track, action remote.LikeAction) ([]playlist.Track, error)
	FetchLikedSet(ctx context.Context) ([]playlist.Track, error)
}

// ResumeStore persists the last successfully played track.
type ResumeStore interface {
	SaveLastPlayed(t playlist.Track) error
	LastPlayed() (*playlist.Track, error)
}

// VolumeStore persists the output level.
type VolumeStore interface {
	GetVolume() (*state.VolumeState, error)
	SaveVolume(volume float64, muted bool)
}

// Options configures a Controller. Engine is required; the stores are
// optional and Remote may be nil for an offline session that only plays
// tracks carrying their own StreamURL.
type Options struct {
	Engine player.Interface
	Remote Remote
	Resume ResumeStore
	Volume VolumeStore
	Logger *slog.Logger
}

// Verify implementations at compile time.
var (
	_ Service     = (*Controller)(nil)
	_ Remote      = (*remote.Client)(nil)
	_ Remote      = (*remote.Mock)(nil)
	_ ResumeStore = (*state.Manager)(nil)
	_ VolumeStore = (*state.Manager)(nil)
	_ ResumeStore = (*state.Mock)(nil)
	_ VolumeStore = (*state.Mock)(nil)
)
