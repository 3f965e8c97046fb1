package playlist

// Queue is the ordered list of tracks eligible for next/previous navigation.
// Duplicate ids are allowed; lookups by id resolve to the first occurrence.
type Queue struct {
	playlist     *Playlist
	currentIndex int // -1 if no anchor
}

// NewQueue creates a new empty queue.
func NewQueue() *Queue {
	return &Queue{
		playlist:     NewPlaylist(),
		currentIndex: -1,
	}
}

// SetQueue replaces the queue contents and positions it on anchor.
// If anchor is not among tracks, the queue becomes the singleton [anchor].
// Returns the anchored track.
func (q *Queue) SetQueue(tracks []Track, anchor Track) Track {
	q.playlist.Replace(tracks...)
	q.currentIndex = q.playlist.IndexOf(anchor.ID)
	if q.currentIndex < 0 {
		q.playlist.Replace(anchor)
		q.currentIndex = 0
	}
	t, _ := q.playlist.At(q.currentIndex)
	return t
}

// Next returns the track after the one with currentID, wrapping from the
// last track to the first. A currentID not in the queue yields the first
// track. Returns false if the queue is empty.
func (q *Queue) Next(currentID string) (Track, bool) {
	return q.neighbor(currentID, 1)
}

// Previous returns the track before the one with currentID, wrapping from
// the first track to the last. A currentID not in the queue yields the first
// track, as with Next. Returns false if the queue is empty.
func (q *Queue) Previous(currentID string) (Track, bool) {
	return q.neighbor(currentID, -1)
}

func (q *Queue) neighbor(currentID string, step int) (Track, bool) {
	n := q.playlist.Len()
	if n == 0 {
		return Track{}, false
	}
	idx := q.playlist.IndexOf(currentID)
	if idx < 0 {
		return q.playlist.At(0)
	}
	return q.playlist.At(((idx+step)%n + n) % n)
}

// Current returns the anchored track, or nil if none.
func (q *Queue) Current() *Track {
	t, ok := q.playlist.At(q.currentIndex)
	if !ok {
		return nil
	}
	return &t
}

// CurrentIndex returns the index of the anchored track (-1 if none).
func (q *Queue) CurrentIndex() int {
	return q.currentIndex
}

// Contains reports whether a track with the given id is queued.
func (q *Queue) Contains(id string) bool {
	return q.playlist.IndexOf(id) >= 0
}

// IndexOf returns the index of the first track with the given id, or -1.
func (q *Queue) IndexOf(id string) int {
	return q.playlist.IndexOf(id)
}

// Clear removes all tracks.
func (q *Queue) Clear() {
	q.playlist.Clear()
	q.currentIndex = -1
}

// Tracks returns all tracks in the queue.
func (q *Queue) Tracks() []Track {
	return q.playlist.Tracks()
}

// Len returns the number of tracks in the queue.
func (q *Queue) Len() int {
	return q.playlist.Len()
}

// IsEmpty returns true if the queue has no tracks.
func (q *Queue) IsEmpty() bool {
	return q.playlist.Len() == 0
}
