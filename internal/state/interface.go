// internal/state/interface.go
package state

import (
	"time"

	"github.com/llehouerou/wavestream/internal/playlist"
)

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	SaveLastPlayed(t playlist.Track) error
	LastPlayed() (*playlist.Track, error)
	ClearLastPlayed() error

	Token() (string, error)
	SaveToken(token string) error
	DeleteToken() error

	GetVolume() (*VolumeState, error)
	SaveVolume(volume float64, muted bool)

	GetLastfmSession() (*LastfmSession, error)
	SaveLastfmSession(username, sessionKey string) error
	DeleteLastfmSession() error
	AddPendingScrobble(s PendingScrobble) error
	GetPendingScrobbles() ([]PendingScrobble, error)
	DeletePendingScrobbles(ids ...int64) error
	UpdatePendingScrobbleAttempt(id int64, errMsg string) error
	DeleteOldPendingScrobbles(maxAge time.Duration) error

	Close() error
}

// Verify implementations at compile time.
var (
	_ Interface = (*Manager)(nil)
	_ Interface = (*Mock)(nil)
)
