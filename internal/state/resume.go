package state

import (
	"encoding/json"
	"errors"

	"github.com/llehouerou/wavestream/internal/playlist"
)

const lastPlayedKey = "lastPlayedTrack"

var errInvalidTrack = errors.New("track has no id")

// SaveLastPlayed records t as the track to offer on next start.
func (m *Manager) SaveLastPlayed(t playlist.Track) error {
	if !t.Valid() {
		return errInvalidTrack
	}
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return setValue(m.db, lastPlayedKey, string(data))
}

// LastPlayed returns the resume track, or nil if none is stored. An
// unreadable value is removed and reported as none.
func (m *Manager) LastPlayed() (*playlist.Track, error) {
	raw, ok, err := getValue(m.db, lastPlayedKey)
	if err != nil || !ok {
		return nil, err
	}

	var t playlist.Track
	if err := json.Unmarshal([]byte(raw), &t); err != nil || !t.Valid() {
		return nil, m.ClearLastPlayed()
	}
	return &t, nil
}

// ClearLastPlayed removes the resume track.
func (m *Manager) ClearLastPlayed() error {
	return deleteValue(m.db, lastPlayedKey)
}
