package playback

import (
	"context"
	"errors"
	"fmt"

	"github.com/llehouerou/wavestream/internal/playlist"
	"github.com/llehouerou/wavestream/internal/remote"
)

// RecentlyPlayed returns the last fetched recently-played log.
func (c *Controller) RecentlyPlayed() []remote.RecentEntry {
	c.recentMu.Lock()
	defer c.recentMu.Unlock()
	return append([]remote.RecentEntry(nil), c.recent...)
}

// RefreshRecentlyPlayed refetches the log. Signed out it does nothing.
func (c *Controller) RefreshRecentlyPlayed(ctx context.Context) error {
	if !c.signedIn() {
		return nil
	}
	entries, err := c.remote.FetchRecentlyPlayed(ctx)
	if err != nil {
		if errors.Is(err, remote.ErrAuthRequired) {
			return nil
		}
		return err
	}
	c.setRecent(entries)
	return nil
}

func (c *Controller) setRecent(entries []remote.RecentEntry) {
	c.recentMu.Lock()
	c.recent = append([]remote.RecentEntry(nil), entries...)
	c.recentMu.Unlock()

	c.broadcast(func(s *Subscription) {
		s.sendRecent(RecentChange{Entries: append([]remote.RecentEntry(nil), entries...)})
	})
}

// recordPlay appends t to the remote log. It runs in the background after a
// successful start; the caller has already added it to bg.
func (c *Controller) recordPlay(t playlist.Track) {
	defer c.bg.Done()
	if !c.signedIn() {
		return
	}
	entries, err := c.remote.AppendRecentlyPlayed(c.ctx, t)
	if err != nil {
		if errors.Is(err, remote.ErrAuthRequired) || c.ctx.Err() != nil {
			c.log.Debug("Skipped recording play", "track", t.ID, "error", err)
			return
		}
		c.log.Warn("Could not record play", "track", t.ID,
			"error", fmt.Errorf("%w: %w", ErrPersistence, err))
		return
	}
	c.setRecent(entries)
}
