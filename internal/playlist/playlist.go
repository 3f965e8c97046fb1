package playlist

import "slices"

// Playlist is an ordered run of tracks. The same track may appear more
// than once.
type Playlist struct {
	tracks []Track
}

// NewPlaylist returns a playlist holding a copy of tracks.
func NewPlaylist(tracks ...Track) *Playlist {
	return &Playlist{tracks: slices.Clone(tracks)}
}

func (p *Playlist) Add(tracks ...Track) {
	p.tracks = append(p.tracks, tracks...)
}

// Replace swaps the contents for a copy of tracks.
func (p *Playlist) Replace(tracks ...Track) {
	p.tracks = append(p.tracks[:0], tracks...)
}

func (p *Playlist) Clear() {
	p.tracks = p.tracks[:0]
}

// Tracks returns a copy of the tracks, never nil.
func (p *Playlist) Tracks() []Track {
	return append([]Track{}, p.tracks...)
}

// At returns the track at index i.
func (p *Playlist) At(i int) (Track, bool) {
	if i < 0 || i >= len(p.tracks) {
		return Track{}, false
	}
	return p.tracks[i], true
}

func (p *Playlist) Len() int {
	return len(p.tracks)
}

// IndexOf returns the position of the first track with id, or -1.
func (p *Playlist) IndexOf(id string) int {
	return slices.IndexFunc(p.tracks, func(t Track) bool { return t.ID == id })
}
