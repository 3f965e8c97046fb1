package state

import (
	"database/sql"
	"errors"
	"time"
)

type queryer interface {
	QueryRow(query string, args ...any) *sql.Row
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// getValue returns the value stored under key and whether it exists.
func getValue(q queryer, key string) (string, bool, error) {
	var value string
	err := q.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func setValue(e execer, key, value string) error {
	_, err := e.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value, time.Now().Unix())
	return err
}

func deleteValue(e execer, key string) error {
	_, err := e.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}
