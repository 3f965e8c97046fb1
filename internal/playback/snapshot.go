package playback

import (
	"time"

	"github.com/llehouerou/wavestream/internal/playlist"
)

// Snapshot is the published view of the session. Observers get their own
// copy and never see later mutations.
type Snapshot struct {
	Track    *playlist.Track
	State    State
	Position time.Duration
	Duration time.Duration
	Volume   float64 // user level, kept while muted
	Muted    bool
}

// Progress returns Position/Duration in [0, 1], or 0 when the duration is
// unknown.
func (s Snapshot) Progress() float64 {
	if s.Duration <= 0 || s.Position <= 0 {
		return 0
	}
	p := float64(s.Position) / float64(s.Duration)
	if p > 1 {
		return 1
	}
	return p
}

// TrackID returns the current track id, or "".
func (s Snapshot) TrackID() string {
	if s.Track == nil {
		return ""
	}
	return s.Track.ID
}
