package playback

import (
	"github.com/llehouerou/wavestream/internal/errmsg"
	"github.com/llehouerou/wavestream/internal/playlist"
	"github.com/llehouerou/wavestream/internal/remote"
)

// TrackChange is emitted each time output starts on a track, including a
// replay of the same track.
//
// Emitted by:
//   - Play, Next, Previous: once the engine reports playback started
//   - Resume: only on a cold start that had to load the track
//   - engine end of stream: through the automatic advance
//
// NOT emitted by:
//   - Pause and plain Resume of a loaded track
//   - requests superseded before output started
//
// Side effects that follow the current track (desktop notification,
// scrobbling, MPRIS metadata) hang off this event.
type TrackChange struct {
	Previous *playlist.Track
	Current  playlist.Track
}

// LikeChange is emitted when the local liked set changes membership for a
// track, optimistic flips and rollbacks included.
type LikeChange struct {
	TrackID string
	Liked   bool
}

// RecentChange carries the refreshed recently-played log.
type RecentChange struct {
	Entries []remote.RecentEntry
}

// NoticeLevel classifies a Notice.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeError
)

// Notice is a user-visible message. Failed user actions produce exactly one
// error notice; background failures produce none.
type Notice struct {
	Level   NoticeLevel
	Op      errmsg.Op
	Title   string
	Message string
	Err     error
}

func errorNotice(op errmsg.Op, subject string, err error) Notice {
	return Notice{
		Level:   NoticeError,
		Op:      op,
		Title:   "Error",
		Message: errmsg.FormatWith(op, subject, err),
		Err:     err,
	}
}
