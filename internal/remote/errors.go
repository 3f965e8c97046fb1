package remote

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrAuthRequired is returned before any I/O when no session credential
	// is available. Callers treat it as "signed out", not as a failure.
	ErrAuthRequired = errors.New("sign in required")
	// ErrNotFound is returned for unknown tracks or playlists.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is returned when the server rejects the credential.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status    int
	Message   string
	RequestID string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, msg)
}

// Unwrap maps well-known statuses onto the package sentinels.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return nil
	}
}

// retryable reports whether the status is worth another attempt.
func (e *APIError) retryable() bool {
	return e.Status >= 500
}
