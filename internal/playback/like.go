package playback

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/llehouerou/wavestream/internal/errmsg"
	"github.com/llehouerou/wavestream/internal/playlist"
	"github.com/llehouerou/wavestream/internal/remote"
)

// LikeOutcome tags the result of ToggleLike.
type LikeOutcome int

const (
	// LikeApplied means the remote store accepted the change.
	LikeApplied LikeOutcome = iota
	// LikeRolledBack means the change was not kept; Err says why.
	LikeRolledBack
)

// String returns the outcome name.
func (o LikeOutcome) String() string {
	switch o {
	case LikeApplied:
		return "Applied"
	case LikeRolledBack:
		return "RolledBack"
	default:
		return "Unknown"
	}
}

// LikeResult is the outcome of a like toggle. Liked is the local membership
// once the toggle settled.
type LikeResult struct {
	Outcome LikeOutcome
	Liked   bool
	Err     error
}

// likedSet is the optimistic local mirror of the remote liked songs.
// pending counts unsettled toggles per track; reconciliation with the
// server never overrides a track that still has one in flight.
type likedSet struct {
	mu      sync.Mutex
	ids     map[string]struct{}
	pending map[string]int
}

func newLikedSet() *likedSet {
	return &likedSet{
		ids:     make(map[string]struct{}),
		pending: make(map[string]int),
	}
}

func (l *likedSet) has(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.ids[id]
	return ok
}

func (l *likedSet) setLocked(id string, liked bool) {
	if liked {
		l.ids[id] = struct{}{}
	} else {
		delete(l.ids, id)
	}
}

// flip toggles id, marks it pending and returns the new membership.
func (l *likedSet) flip(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, was := l.ids[id]
	l.setLocked(id, !was)
	l.pending[id]++
	return !was
}

func (l *likedSet) settleLocked(id string) {
	l.pending[id]--
	if l.pending[id] <= 0 {
		delete(l.pending, id)
	}
}

// rollback settles a failed flip to liked. The flip is only undone when no
// other toggle of id is still in flight. Returns the membership and whether
// it changed.
func (l *likedSet) rollback(id string, liked bool) (bool, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.settleLocked(id)
	_, now := l.ids[id]
	if l.pending[id] > 0 || now != liked {
		return now, false
	}
	l.setLocked(id, !liked)
	return !liked, true
}

// reconcile settles a successful toggle of id (if non-empty) and replaces
// the set with the server's, keeping tracks with toggles in flight. Returns
// the membership changes.
func (l *likedSet) reconcile(id string, server []playlist.Track) []LikeChange {
	l.mu.Lock()
	defer l.mu.Unlock()
	if id != "" {
		l.settleLocked(id)
	}

	authoritative := make(map[string]struct{}, len(server))
	for _, t := range server {
		authoritative[t.ID] = struct{}{}
	}

	var changes []LikeChange
	for localID := range l.ids {
		if _, ok := authoritative[localID]; ok || l.pending[localID] > 0 {
			continue
		}
		delete(l.ids, localID)
		changes = append(changes, LikeChange{TrackID: localID, Liked: false})
	}
	for serverID := range authoritative {
		if _, ok := l.ids[serverID]; ok || l.pending[serverID] > 0 {
			continue
		}
		l.ids[serverID] = struct{}{}
		changes = append(changes, LikeChange{TrackID: serverID, Liked: true})
	}
	return changes
}

// IsLiked reports whether trackID is in the local liked set.
func (c *Controller) IsLiked(trackID string) bool {
	return c.liked.has(trackID)
}

// ToggleLike flips the liked state of track immediately and confirms it with
// the remote store. On failure the flip is undone and an error notice is
// emitted. Signed out, nothing changes and the result carries
// remote.ErrAuthRequired without a notice. Playback state is never touched.
func (c *Controller) ToggleLike(ctx context.Context, track playlist.Track) LikeResult {
	if !track.Valid() {
		return LikeResult{Outcome: LikeRolledBack, Err: ErrNoTrack}
	}
	if !c.signedIn() {
		return LikeResult{
			Outcome: LikeRolledBack,
			Liked:   c.liked.has(track.ID),
			Err:     remote.ErrAuthRequired,
		}
	}

	liked := c.liked.flip(track.ID)
	c.broadcast(func(s *Subscription) {
		s.sendLike(LikeChange{TrackID: track.ID, Liked: liked})
	})

	action := remote.Like
	if !liked {
		action = remote.Unlike
	}
	server, err := c.remote.SetLiked(ctx, track, action)
	if err != nil {
		now, changed := c.liked.rollback(track.ID, liked)
		if changed {
			c.broadcast(func(s *Subscription) {
				s.sendLike(LikeChange{TrackID: track.ID, Liked: now})
			})
		}
		if !errors.Is(err, remote.ErrAuthRequired) {
			c.broadcast(func(s *Subscription) {
				s.sendNotice(errorNotice(errmsg.OpLikeToggle, track.Title, err))
			})
		}
		c.log.Warn("Like toggle failed", "track", track.ID, "action", action, "error", err)
		return LikeResult{Outcome: LikeRolledBack, Liked: now, Err: err}
	}

	changes := c.liked.reconcile(track.ID, server)
	c.broadcast(func(s *Subscription) {
		for _, ch := range changes {
			s.sendLike(ch)
		}
		s.sendNotice(likeNotice(track, action))
	})
	return LikeResult{Outcome: LikeApplied, Liked: c.liked.has(track.ID)}
}

func likeNotice(t playlist.Track, action remote.LikeAction) Notice {
	if action == remote.Like {
		return Notice{
			Level:   NoticeInfo,
			Op:      errmsg.OpLikeToggle,
			Title:   "Added to Liked Songs",
			Message: fmt.Sprintf("%s has been added to your liked songs", t.Title),
		}
	}
	return Notice{
		Level:   NoticeInfo,
		Op:      errmsg.OpLikeToggle,
		Title:   "Removed from Liked Songs",
		Message: fmt.Sprintf("%s has been removed from your liked songs", t.Title),
	}
}

func (c *Controller) refreshLiked(ctx context.Context) error {
	tracks, err := c.remote.FetchLikedSet(ctx)
	if err != nil {
		if errors.Is(err, remote.ErrAuthRequired) {
			return nil
		}
		return err
	}
	changes := c.liked.reconcile("", tracks)
	c.broadcast(func(s *Subscription) {
		for _, ch := range changes {
			s.sendLike(ch)
		}
	})
	return nil
}
