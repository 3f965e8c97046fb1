package state

import (
	"database/sql"
	"errors"
	"time"
)

// VolumeState represents the saved volume state.
type VolumeState struct {
	Volume float64
	Muted  bool
}

// GetVolume returns the saved volume state.
func (m *Manager) GetVolume() (*VolumeState, error) {
	var volume float64
	var muted bool

	row := m.db.QueryRow(`SELECT volume, muted FROM player_state WHERE id = 1`)
	err := row.Scan(&volume, &muted)
	if errors.Is(err, sql.ErrNoRows) {
		return &VolumeState{Volume: m.defaultVolume, Muted: false}, nil
	}
	if err != nil {
		return nil, err
	}

	return &VolumeState{Volume: volume, Muted: muted}, nil
}

// SetDefaultVolume sets the level GetVolume reports before anything was
// saved.
func (m *Manager) SetDefaultVolume(volume float64) {
	m.defaultVolume = volume
}

// SaveVolume persists the volume. Writes are debounced so dragging the
// level does not hit the disk on every step.
func (m *Manager) SaveVolume(volume float64, muted bool) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &VolumeState{Volume: volume, Muted: muted}

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		m.saveMu.Unlock()

		if pending != nil {
			_ = saveVolume(m.db, *pending)
		}
	})
}

func saveVolume(db *sql.DB, v VolumeState) error {
	_, err := db.Exec(`
		INSERT INTO player_state (id, volume, muted)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			volume = excluded.volume,
			muted = excluded.muted
	`, v.Volume, v.Muted)
	return err
}
