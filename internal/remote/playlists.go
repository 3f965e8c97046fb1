package remote

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/llehouerou/wavestream/internal/playlist"
)

// Playlist is a user playlist stored by the session backend.
type Playlist struct {
	ID          string           `json:"_id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	CoverImage  string           `json:"coverImage,omitempty"`
	Tracks      []playlist.Track `json:"tracks"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

type playlistResponse struct {
	Playlist *Playlist `json:"playlist"`
}

func (r playlistResponse) unwrap(op string) (Playlist, error) {
	if r.Playlist == nil {
		return Playlist{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	p := *r.Playlist
	p.Name = sanitizeName(p.Name)
	p.Tracks = sanitizeTracks(p.Tracks)
	return p, nil
}

func sanitizeName(s string) string {
	return sanitizeTrack(playlist.Track{Title: s}).Title
}

func (c *Client) playlistURL(id string, rest ...string) string {
	u := c.sessionURL + "/playlists"
	if id != "" {
		u += "/" + url.PathEscape(id)
	}
	for _, r := range rest {
		u += "/" + url.PathEscape(r)
	}
	return u
}

// Playlists lists the user's playlists.
func (c *Client) Playlists(ctx context.Context) ([]Playlist, error) {
	var resp struct {
		Playlists []Playlist `json:"playlists"`
	}
	if err := c.get(ctx, c.playlistURL(""), authRequired, &resp); err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	for i := range resp.Playlists {
		resp.Playlists[i].Name = sanitizeName(resp.Playlists[i].Name)
		resp.Playlists[i].Tracks = sanitizeTracks(resp.Playlists[i].Tracks)
	}
	return resp.Playlists, nil
}

// Playlist fetches one playlist with its tracks.
func (c *Client) Playlist(ctx context.Context, id string) (Playlist, error) {
	var resp playlistResponse
	if err := c.get(ctx, c.playlistURL(id), authRequired, &resp); err != nil {
		return Playlist{}, fmt.Errorf("get playlist %s: %w", id, err)
	}
	return resp.unwrap("get playlist " + id)
}

// CreatePlaylist creates an empty playlist.
func (c *Client) CreatePlaylist(ctx context.Context, name, description string) (Playlist, error) {
	body := struct {
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
	}{Name: name, Description: description}

	var resp playlistResponse
	if err := c.postOnce(ctx, c.playlistURL(""), body, &resp); err != nil {
		return Playlist{}, fmt.Errorf("create playlist %q: %w", name, err)
	}
	return resp.unwrap("create playlist")
}

// AddToPlaylist appends a track and returns the updated playlist.
func (c *Client) AddToPlaylist(ctx context.Context, id string, track playlist.Track) (Playlist, error) {
	body := struct {
		Track playlist.Track `json:"track"`
	}{Track: track}

	var resp playlistResponse
	if err := c.post(ctx, c.playlistURL(id, "tracks"), body, &resp); err != nil {
		return Playlist{}, fmt.Errorf("add track %s to playlist %s: %w", track.ID, id, err)
	}
	return resp.unwrap("add to playlist " + id)
}

// RemoveFromPlaylist removes a track and returns the updated playlist.
func (c *Client) RemoveFromPlaylist(ctx context.Context, id, trackID string) (Playlist, error) {
	var resp playlistResponse
	if err := c.del(ctx, c.playlistURL(id, "tracks", trackID), &resp); err != nil {
		return Playlist{}, fmt.Errorf("remove track %s from playlist %s: %w", trackID, id, err)
	}
	return resp.unwrap("remove from playlist " + id)
}

// DeletePlaylist deletes a playlist.
func (c *Client) DeletePlaylist(ctx context.Context, id string) error {
	if err := c.del(ctx, c.playlistURL(id), nil); err != nil {
		return fmt.Errorf("delete playlist %s: %w", id, err)
	}
	return nil
}
