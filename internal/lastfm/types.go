package lastfm

import (
	"time"

	"github.com/shkh/lastfm-go/lastfm"

	"github.com/llehouerou/wavestream/internal/playlist"
)

// ScrobbleTrack is what Last.fm needs to know about a listen.
type ScrobbleTrack struct {
	Artist    string
	Track     string
	Duration  time.Duration
	Timestamp time.Time // playback start
}

func (t ScrobbleTrack) params() lastfm.P {
	p := lastfm.P{"artist": t.Artist, "track": t.Track}
	if t.Duration > 0 {
		p["duration"] = int(t.Duration.Seconds())
	}
	return p
}

// FromTrack builds scrobble metadata for a catalog track. The uploader
// stands in for the artist when the catalog has none.
func FromTrack(t playlist.Track, duration time.Duration, startedAt time.Time) ScrobbleTrack {
	return ScrobbleTrack{
		Artist:    t.ArtistName(),
		Track:     t.Title,
		Duration:  duration,
		Timestamp: startedAt,
	}
}

// ScrobbleState tracks the scrobbling status of the current track.
type ScrobbleState struct {
	Track          playlist.Track // Current track
	StartedAt      time.Time      // When playback started
	Scrobbled      bool           // Whether this track has been scrobbled
	NowPlayingSent bool           // Whether now playing was sent
}
