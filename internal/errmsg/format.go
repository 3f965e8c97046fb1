// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Playback operations
	OpPlaybackStart  Op = "start playback"
	OpPlaybackResume Op = "resume playback"
	OpPlaybackSkip   Op = "skip track"
	OpPlaybackSeek   Op = "seek"
	OpStreamResolve  Op = "resolve stream"

	// Session operations
	OpLikeToggle   Op = "update liked songs"
	OpLikedLoad    Op = "load liked songs"
	OpRecentLoad   Op = "load recently played"
	OpRecentAppend Op = "record play"
	OpResumeSave   Op = "save last played track"
	OpResumeLoad   Op = "load last played track"
	OpVolumeSave   Op = "save volume"

	// Catalog operations
	OpCatalogTrack    Op = "load track"
	OpCatalogTrending Op = "load trending tracks"
	OpCatalogSearch   Op = "search tracks"

	// Playlist operations
	OpPlaylistLoad     Op = "load playlists"
	OpPlaylistCreate   Op = "create playlist"
	OpPlaylistDelete   Op = "delete playlist"
	OpPlaylistAddTrack Op = "add track to playlist"
	OpPlaylistRemove   Op = "remove track from playlist"

	// Last.fm
	OpLastfmAuth       Op = "authenticate with Last.fm"
	OpLastfmScrobble   Op = "scrobble track"
	OpLastfmNowPlaying Op = "update now playing"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
