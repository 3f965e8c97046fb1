package remote

import (
	"context"
	"fmt"
	"time"

	"github.com/llehouerou/wavestream/internal/playlist"
)

// LikeAction is the direction of a like toggle.
type LikeAction string

const (
	Like   LikeAction = "like"
	Unlike LikeAction = "unlike"
)

// RecentEntry is one play in the remote recently-played log.
type RecentEntry struct {
	Track    playlist.Track `json:"track"`
	PlayedAt time.Time      `json:"playedAt"`
}

type recentResponse struct {
	RecentlyPlayed []RecentEntry `json:"recentlyPlayed"`
}

type likedResponse struct {
	LikedSongs []playlist.Track `json:"likedSongs"`
}

// AppendRecentlyPlayed records a play and returns the updated log.
func (c *Client) AppendRecentlyPlayed(ctx context.Context, track playlist.Track) ([]RecentEntry, error) {
	body := struct {
		Track playlist.Track `json:"track"`
	}{Track: track}

	var resp recentResponse
	if err := c.postOnce(ctx, c.sessionURL+"/recently-played", body, &resp); err != nil {
		return nil, fmt.Errorf("append recently played: %w", err)
	}
	return sanitizeRecent(resp.RecentlyPlayed), nil
}

// FetchRecentlyPlayed returns the remote log, most recent first as served.
func (c *Client) FetchRecentlyPlayed(ctx context.Context) ([]RecentEntry, error) {
	var resp recentResponse
	if err := c.get(ctx, c.sessionURL+"/recently-played", authRequired, &resp); err != nil {
		return nil, fmt.Errorf("get recently played: %w", err)
	}
	return sanitizeRecent(resp.RecentlyPlayed), nil
}

// SetLiked likes or unlikes a track and returns the authoritative liked
// collection.
func (c *Client) SetLiked(ctx context.Context, track playlist.Track, action LikeAction) ([]playlist.Track, error) {
	body := struct {
		Track  playlist.Track `json:"track"`
		Action LikeAction     `json:"action"`
	}{Track: track, Action: action}

	var resp likedResponse
	if err := c.post(ctx, c.sessionURL+"/auth/like-song", body, &resp); err != nil {
		return nil, fmt.Errorf("%s track %s: %w", action, track.ID, err)
	}
	return sanitizeTracks(resp.LikedSongs), nil
}

// FetchLikedSet returns the user's liked songs.
func (c *Client) FetchLikedSet(ctx context.Context) ([]playlist.Track, error) {
	var resp likedResponse
	if err := c.get(ctx, c.sessionURL+"/auth/liked-songs", authRequired, &resp); err != nil {
		return nil, fmt.Errorf("get liked songs: %w", err)
	}
	return sanitizeTracks(resp.LikedSongs), nil
}

func sanitizeRecent(entries []RecentEntry) []RecentEntry {
	out := make([]RecentEntry, 0, len(entries))
	for _, e := range entries {
		if !e.Track.Valid() {
			continue
		}
		e.Track = sanitizeTrack(e.Track)
		out = append(out, e)
	}
	return out
}
