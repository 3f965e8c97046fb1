package remote

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/llehouerou/wavestream/internal/playlist"
	"github.com/llehouerou/wavestream/internal/ui/render"
)

// Catalog calls attach the credential when one exists but never require it.

// ResolveStreamLocator returns the playable URL for a track.
func (c *Client) ResolveStreamLocator(ctx context.Context, trackID string) (string, error) {
	if trackID == "" {
		return "", fmt.Errorf("resolve stream: %w", ErrNotFound)
	}
	var resp struct {
		Data string `json:"data"`
	}
	endpoint := c.catalogURL + "/tracks/" + url.PathEscape(trackID) + "/stream"
	if err := c.get(ctx, endpoint, authOptional, &resp); err != nil {
		return "", fmt.Errorf("resolve stream %s: %w", trackID, err)
	}
	if resp.Data == "" {
		return "", fmt.Errorf("resolve stream %s: %w", trackID, ErrNotFound)
	}
	return resp.Data, nil
}

// Track fetches catalog metadata for a single track.
func (c *Client) Track(ctx context.Context, trackID string) (playlist.Track, error) {
	var resp struct {
		Data *playlist.Track `json:"data"`
	}
	endpoint := c.catalogURL + "/tracks/" + url.PathEscape(trackID)
	if err := c.get(ctx, endpoint, authOptional, &resp); err != nil {
		return playlist.Track{}, fmt.Errorf("get track %s: %w", trackID, err)
	}
	if resp.Data == nil || !resp.Data.Valid() {
		return playlist.Track{}, fmt.Errorf("get track %s: %w", trackID, ErrNotFound)
	}
	return sanitizeTrack(*resp.Data), nil
}

// Trending returns this week's trending tracks.
func (c *Client) Trending(ctx context.Context, limit int) ([]playlist.Track, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	q.Set("time", "week")

	var resp struct {
		Data []playlist.Track `json:"data"`
	}
	if err := c.get(ctx, c.catalogURL+"/trending?"+q.Encode(), authOptional, &resp); err != nil {
		return nil, fmt.Errorf("get trending: %w", err)
	}
	return sanitizeTracks(resp.Data), nil
}

// Search looks up tracks by free text.
func (c *Client) Search(ctx context.Context, query string, limit, offset int) ([]playlist.Track, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("type", "tracks")
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}

	var resp struct {
		Data []playlist.Track `json:"data"`
	}
	if err := c.get(ctx, c.catalogURL+"/search?"+q.Encode(), authOptional, &resp); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	return sanitizeTracks(resp.Data), nil
}

// sanitizeTrack strips control characters from display fields so bad
// metadata cannot break terminal rendering.
func sanitizeTrack(t playlist.Track) playlist.Track {
	t.Title = render.Sanitize(t.Title)
	t.Artist = render.Sanitize(t.Artist)
	if t.User != nil {
		u := *t.User
		u.Name = render.Sanitize(u.Name)
		t.User = &u
	}
	return t
}

// sanitizeTracks drops entries without an id.
func sanitizeTracks(tracks []playlist.Track) []playlist.Track {
	out := make([]playlist.Track, 0, len(tracks))
	for _, t := range tracks {
		if !t.Valid() {
			continue
		}
		out = append(out, sanitizeTrack(t))
	}
	return out
}
