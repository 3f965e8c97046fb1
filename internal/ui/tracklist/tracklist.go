// Package tracklist renders a scrollable list of catalog tracks with a
// cursor, the playing marker and liked markers.
package tracklist

import (
	"github.com/llehouerou/wavestream/internal/keymap"
	"github.com/llehouerou/wavestream/internal/playlist"
	"github.com/llehouerou/wavestream/internal/ui"
	"github.com/llehouerou/wavestream/internal/ui/cursor"
)

// DetailFunc returns the right-hand column for the track at index i.
type DetailFunc func(i int, t playlist.Track) string

// Model is a track list panel.
type Model struct {
	ui.Base
	title   string
	tracks  []playlist.Track
	cursor  cursor.Cursor
	playing string
	isLiked func(id string) bool
	detail  DetailFunc
	status  string
}

// New creates an empty list with the given header title.
func New(title string) Model {
	return Model{
		title:  title,
		cursor: cursor.New(ui.ScrollMargin),
		detail: PlayCount,
	}
}

// SetTracks replaces the tracks and clears the status line.
func (m *Model) SetTracks(tracks []playlist.Track) {
	m.tracks = tracks
	m.status = ""
	m.cursor.Resize(len(tracks), m.listHeight())
}

// Tracks returns the listed tracks.
func (m Model) Tracks() []playlist.Track {
	return m.tracks
}

// Title returns the header title.
func (m Model) Title() string {
	return m.title
}

// SetTitle replaces the header title.
func (m *Model) SetTitle(title string) {
	m.title = title
}

// SetStatus shows a message (loading, error, empty result) instead of
// the list.
func (m *Model) SetStatus(status string) {
	m.status = status
}

// SetPlaying marks the track with the given id as playing.
func (m *Model) SetPlaying(id string) {
	m.playing = id
}

// SetLiked sets the liked lookup used for markers.
func (m *Model) SetLiked(isLiked func(id string) bool) {
	m.isLiked = isLiked
}

// SetDetail sets the right-hand column renderer.
func (m *Model) SetDetail(fn DetailFunc) {
	m.detail = fn
}

// Selected returns the track under the cursor.
func (m Model) Selected() (playlist.Track, bool) {
	pos := m.cursor.Pos()
	if pos >= len(m.tracks) {
		return playlist.Track{}, false
	}
	return m.tracks[pos], true
}

// SelectedIndex returns the cursor position.
func (m Model) SelectedIndex() int {
	return m.cursor.Pos()
}

// HandleAction applies a navigation action and reports whether it was one.
func (m *Model) HandleAction(a keymap.Action) bool {
	m.cursor.Resize(len(m.tracks), m.listHeight())
	switch a {
	case keymap.ActionMoveDown:
		m.cursor.Move(1)
	case keymap.ActionMoveUp:
		m.cursor.Move(-1)
	case keymap.ActionJumpStart:
		m.cursor.Jump(0)
	case keymap.ActionJumpEnd:
		m.cursor.Jump(len(m.tracks) - 1)
	case keymap.ActionPageDown:
		m.cursor.HalfPage(1)
	case keymap.ActionPageUp:
		m.cursor.HalfPage(-1)
	default:
		return false
	}
	return true
}

func (m Model) listHeight() int {
	return m.Rows(ui.PanelOverhead)
}
