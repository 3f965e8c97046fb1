// internal/state/mock.go
package state

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/llehouerou/wavestream/internal/playlist"
)

// Mock is an in-memory Interface for tests. It is safe for concurrent use.
type Mock struct {
	mu         sync.Mutex
	lastPlayed string
	token      string
	volume     VolumeState
	session    *LastfmSession
	pending    []PendingScrobble
	nextID     int64
	saveErr    error
	saves      int
	closed     bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{volume: VolumeState{Volume: 1}}
}

func (m *Mock) SaveLastPlayed(t playlist.Track) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	if !t.Valid() {
		return errInvalidTrack
	}
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	m.lastPlayed = string(data)
	return nil
}

func (m *Mock) LastPlayed() (*playlist.Track, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lastPlayed == "" {
		return nil, nil
	}
	var t playlist.Track
	if err := json.Unmarshal([]byte(m.lastPlayed), &t); err != nil || !t.Valid() {
		m.lastPlayed = ""
		return nil, nil
	}
	return &t, nil
}

func (m *Mock) ClearLastPlayed() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastPlayed = ""
	return nil
}

func (m *Mock) Token() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *Mock) SaveToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *Mock) DeleteToken() error {
	return m.SaveToken("")
}

func (m *Mock) GetVolume() (*VolumeState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := m.volume
	return &v, nil
}

func (m *Mock) SaveVolume(volume float64, muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = VolumeState{Volume: volume, Muted: muted}
}

func (m *Mock) GetLastfmSession() (*LastfmSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session, nil
}

func (m *Mock) SaveLastfmSession(username, sessionKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = &LastfmSession{Username: username, SessionKey: sessionKey, LinkedAt: time.Now()}
	return nil
}

func (m *Mock) DeleteLastfmSession() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}

func (m *Mock) AddPendingScrobble(s PendingScrobble) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	s.ID = m.nextID
	s.CreatedAt = time.Now()
	m.pending = append(m.pending, s)
	return nil
}

func (m *Mock) GetPendingScrobbles() ([]PendingScrobble, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PendingScrobble(nil), m.pending...), nil
}

func (m *Mock) DeletePendingScrobbles(ids ...int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	drop := make(map[int64]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := m.pending[:0]
	for _, p := range m.pending {
		if !drop[p.ID] {
			kept = append(kept, p)
		}
	}
	m.pending = kept
	return nil
}

func (m *Mock) UpdatePendingScrobbleAttempt(id int64, errMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.pending {
		if m.pending[i].ID == id {
			m.pending[i].Attempts++
			m.pending[i].LastError = errMsg
			return nil
		}
	}
	return errors.New("pending scrobble not found")
}

func (m *Mock) DeleteOldPendingScrobbles(maxAge time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := time.Now().Add(-maxAge)
	kept := m.pending[:0]
	for _, p := range m.pending {
		if !p.CreatedAt.Before(cutoff) {
			kept = append(kept, p)
		}
	}
	m.pending = kept
	return nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

// SetRawLastPlayed stores an arbitrary resume value, valid or not.
func (m *Mock) SetRawLastPlayed(raw string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastPlayed = raw
}

// SetSaveError makes SaveLastPlayed fail with err.
func (m *Mock) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// Saves returns how many times SaveLastPlayed was called.
func (m *Mock) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
