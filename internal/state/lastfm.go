package state

import (
	"context"
	"database/sql"
	"errors"
	"time"

	dbutil "github.com/llehouerou/wavestream/internal/db"
)

// LastfmSession is the linked Last.fm account.
type LastfmSession struct {
	Username   string
	SessionKey string
	LinkedAt   time.Time
}

// PendingScrobble is a listen Last.fm has not accepted yet.
type PendingScrobble struct {
	ID           int64
	TrackID      string
	Artist       string
	Track        string
	DurationSecs int
	Timestamp    time.Time
	Attempts     int
	LastError    string
	CreatedAt    time.Time
}

// GetLastfmSession returns the linked account, or nil.
func (m *Manager) GetLastfmSession() (*LastfmSession, error) {
	var username, sessionKey string
	var linkedAt int64

	err := m.db.QueryRow(`
		SELECT username, session_key, linked_at FROM lastfm_session WHERE id = 1
	`).Scan(&username, &sessionKey, &linkedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // nil session means not linked, not an error
	}
	if err != nil {
		return nil, err
	}

	return &LastfmSession{
		Username:   username,
		SessionKey: sessionKey,
		LinkedAt:   time.Unix(linkedAt, 0),
	}, nil
}

// SaveLastfmSession links an account, replacing any previous one.
func (m *Manager) SaveLastfmSession(username, sessionKey string) error {
	_, err := m.db.Exec(`
		INSERT INTO lastfm_session (id, username, session_key, linked_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			username = excluded.username,
			session_key = excluded.session_key,
			linked_at = excluded.linked_at
	`, username, sessionKey, time.Now().Unix())
	return err
}

// DeleteLastfmSession unlinks the account. Queued scrobbles are kept.
func (m *Manager) DeleteLastfmSession() error {
	_, err := m.db.Exec(`DELETE FROM lastfm_session WHERE id = 1`)
	return err
}

// AddPendingScrobble queues s for retry.
func (m *Manager) AddPendingScrobble(s PendingScrobble) error {
	_, err := m.db.Exec(`
		INSERT INTO lastfm_pending_scrobbles
		(track_id, artist, track, duration_seconds, timestamp, attempts, created_at)
		VALUES (?, ?, ?, ?, ?, 0, ?)
	`, s.TrackID, s.Artist, s.Track, s.DurationSecs, s.Timestamp.Unix(), time.Now().Unix())
	return err
}

const pendingColumns = `id, track_id, artist, track, duration_seconds, timestamp, attempts, last_error, created_at`

// GetPendingScrobbles returns the retry queue, oldest first.
func (m *Manager) GetPendingScrobbles() ([]PendingScrobble, error) {
	rows, err := m.db.Query(`SELECT ` + pendingColumns + `
		FROM lastfm_pending_scrobbles
		ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PendingScrobble
	for rows.Next() {
		s, err := scanPending(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanPending(rows *sql.Rows) (PendingScrobble, error) {
	var (
		s                  PendingScrobble
		lastError          sql.NullString
		played, queuedUnix int64
	)
	err := rows.Scan(&s.ID, &s.TrackID, &s.Artist, &s.Track, &s.DurationSecs,
		&played, &s.Attempts, &lastError, &queuedUnix)
	if err != nil {
		return PendingScrobble{}, err
	}
	s.LastError = dbutil.String(lastError)
	s.Timestamp = time.Unix(played, 0)
	s.CreatedAt = time.Unix(queuedUnix, 0)
	return s, nil
}

// DeletePendingScrobbles removes submitted scrobbles in one transaction.
func (m *Manager) DeletePendingScrobbles(ids ...int64) error {
	if len(ids) == 0 {
		return nil
	}
	return dbutil.WithTx(context.Background(), m.db, func(tx *sql.Tx) error {
		for _, id := range ids {
			if _, err := tx.Exec(`DELETE FROM lastfm_pending_scrobbles WHERE id = ?`, id); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdatePendingScrobbleAttempt records a failed retry.
func (m *Manager) UpdatePendingScrobbleAttempt(id int64, errMsg string) error {
	_, err := m.db.Exec(`
		UPDATE lastfm_pending_scrobbles
		SET attempts = attempts + 1, last_error = ?
		WHERE id = ?
	`, errMsg, id)
	return err
}

// DeleteOldPendingScrobbles drops scrobbles queued more than maxAge ago;
// Last.fm rejects timestamps older than two weeks.
func (m *Manager) DeleteOldPendingScrobbles(maxAge time.Duration) error {
	cutoff := time.Now().Add(-maxAge).Unix()
	_, err := m.db.Exec(`DELETE FROM lastfm_pending_scrobbles WHERE created_at < ?`, cutoff)
	return err
}
