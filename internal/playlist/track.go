package playlist

import (
	"sort"
	"strconv"
	"strings"
)

// User is the uploader of a catalog track.
type User struct {
	Name string `json:"name"`
}

// Artwork maps a square resolution key ("150x150", "480x480", ...) to an
// image URL.
type Artwork map[string]string

// Best returns the URL of the largest artwork, or "" if none.
func (a Artwork) Best() string {
	keys := make([]string, 0, len(a))
	for k, v := range a {
		if v != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Slice(keys, func(i, j int) bool {
		return artworkSize(keys[i]) > artworkSize(keys[j])
	})
	return a[keys[0]]
}

func artworkSize(key string) int {
	w, _, _ := strings.Cut(key, "x")
	n, err := strconv.Atoi(w)
	if err != nil {
		return 0
	}
	return n
}

// Track is a catalog track. Tracks are values: the queue, the controller and
// the resume store each hold their own copy.
type Track struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Artist      string  `json:"artist,omitempty"`
	User        *User   `json:"user,omitempty"`
	Artwork     Artwork `json:"artwork,omitempty"`
	StreamURL   string  `json:"streamUrl,omitempty"`
	PlayCount   *int64  `json:"play_count,omitempty"`
	ReleaseDate string  `json:"release_date,omitempty"`
}

// ArtistName returns the display artist, falling back to the uploader name.
func (t Track) ArtistName() string {
	if t.Artist != "" {
		return t.Artist
	}
	if t.User != nil {
		return t.User.Name
	}
	return ""
}

// Valid reports whether the track can be played or persisted.
func (t Track) Valid() bool {
	return t.ID != ""
}
