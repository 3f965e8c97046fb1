package playback

import "errors"

var (
	// ErrResolution means no stream locator could be obtained for a track.
	ErrResolution = errors.New("stream resolution failed")
	// ErrPersistence wraps failed resume-store or remote log writes. It is
	// only logged.
	ErrPersistence = errors.New("persistence failed")
	// ErrSuperseded is returned to a request overtaken by a newer one.
	ErrSuperseded = errors.New("superseded by a newer request")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("playback controller closed")
	// ErrNoTrack is returned when a track without an id is requested.
	ErrNoTrack = errors.New("no track")
)
