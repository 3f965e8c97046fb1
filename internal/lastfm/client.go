// Package lastfm links a Last.fm account and scrobbles what the player
// plays.
package lastfm

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/shkh/lastfm-go/lastfm"
)

// ErrNotAuthenticated is returned by calls that need a linked account.
var ErrNotAuthenticated = errors.New("lastfm: no session key")

// unknownUser names an account whose profile lookup failed after a
// successful login.
const unknownUser = "unknown"

// Client is a Last.fm API client holding at most one user session.
type Client struct {
	api    *lastfm.Api
	key    string
	linked bool
}

func New(apiKey, apiSecret string) *Client {
	return &Client{api: lastfm.New(apiKey, apiSecret), key: apiKey}
}

// SetSessionKey restores a session saved by an earlier link.
func (c *Client) SetSessionKey(key string) {
	c.api.SetSession(key)
	c.linked = key != ""
}

func (c *Client) IsAuthenticated() bool {
	return c.linked
}

// GetToken starts the desktop auth flow.
func (c *Client) GetToken() (string, error) {
	token, err := c.api.GetToken()
	if err != nil {
		return "", fmt.Errorf("get token: %w", err)
	}
	return token, nil
}

// GetAuthURL returns the page where the user approves token. When
// callback is set, Last.fm redirects there afterwards.
func (c *Client) GetAuthURL(token, callback string) string {
	q := url.Values{"api_key": {c.key}, "token": {token}}
	if callback != "" {
		q.Set("cb", callback)
	}
	return "https://www.last.fm/api/auth/?" + q.Encode()
}

// GetSession trades an approved token for a session key and keeps it. The
// username is best effort.
func (c *Client) GetSession(token string) (username, sessionKey string, err error) {
	if err := c.api.LoginWithToken(token); err != nil {
		return "", "", fmt.Errorf("get session: %w", err)
	}
	c.linked = true
	sessionKey = c.api.GetSessionKey()

	info, err := c.api.User.GetInfo(nil)
	if err != nil || info.Name == "" {
		return unknownUser, sessionKey, nil //nolint:nilerr // the session is already valid
	}
	return info.Name, sessionKey, nil
}

// UpdateNowPlaying shows track on the user's profile as playing.
func (c *Client) UpdateNowPlaying(track ScrobbleTrack) error {
	if !c.linked {
		return ErrNotAuthenticated
	}
	if _, err := c.api.Track.UpdateNowPlaying(track.params()); err != nil {
		return fmt.Errorf("update now playing: %w", err)
	}
	return nil
}

// Scrobble records a finished listen.
func (c *Client) Scrobble(track ScrobbleTrack) error {
	if !c.linked {
		return ErrNotAuthenticated
	}
	p := track.params()
	p["timestamp"] = track.Timestamp.Unix()
	if _, err := c.api.Track.Scrobble(p); err != nil {
		return fmt.Errorf("scrobble: %w", err)
	}
	return nil
}
