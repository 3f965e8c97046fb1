package remote

import (
	"context"
	"sync"
	"time"

	"github.com/llehouerou/wavestream/internal/playlist"
)

// LikeCall records one SetLiked invocation on Mock.
type LikeCall struct {
	TrackID string
	Action  LikeAction
}

// Mock is an in-memory backend for tests. It is safe for concurrent use.
type Mock struct {
	mu          sync.Mutex
	signedIn    bool
	locators    map[string]string
	resolveFunc func(ctx context.Context, trackID string) (string, error)
	likeFunc    func(ctx context.Context, track playlist.Track, action LikeAction) error
	liked       []playlist.Track
	recent      []RecentEntry
	appendErr   error
	fetchErr    error

	resolveCalls []string
	likeCalls    []LikeCall
	appendCalls  []playlist.Track
}

// NewMock returns a signed-in mock with no tracks.
func NewMock() *Mock {
	return &Mock{
		signedIn: true,
		locators: make(map[string]string),
	}
}

func (m *Mock) HasCredentials() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.signedIn
}

func (m *Mock) ResolveStreamLocator(ctx context.Context, trackID string) (string, error) {
	m.mu.Lock()
	m.resolveCalls = append(m.resolveCalls, trackID)
	fn := m.resolveFunc
	locator, ok := m.locators[trackID]
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, trackID)
	}
	if !ok {
		return "", ErrNotFound
	}
	return locator, nil
}

func (m *Mock) AppendRecentlyPlayed(_ context.Context, track playlist.Track) ([]RecentEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.signedIn {
		return nil, ErrAuthRequired
	}
	m.appendCalls = append(m.appendCalls, track)
	if m.appendErr != nil {
		return nil, m.appendErr
	}
	entry := RecentEntry{Track: track, PlayedAt: time.Now()}
	m.recent = append([]RecentEntry{entry}, m.recent...)
	return append([]RecentEntry(nil), m.recent...), nil
}

func (m *Mock) FetchRecentlyPlayed(_ context.Context) ([]RecentEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.signedIn {
		return nil, ErrAuthRequired
	}
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return append([]RecentEntry(nil), m.recent...), nil
}

func (m *Mock) SetLiked(ctx context.Context, track playlist.Track, action LikeAction) ([]playlist.Track, error) {
	m.mu.Lock()
	if !m.signedIn {
		m.mu.Unlock()
		return nil, ErrAuthRequired
	}
	m.likeCalls = append(m.likeCalls, LikeCall{TrackID: track.ID, Action: action})
	fn := m.likeFunc
	m.mu.Unlock()

	if fn != nil {
		if err := fn(ctx, track, action); err != nil {
			return nil, err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.liked[:0:0]
	for _, t := range m.liked {
		if t.ID != track.ID {
			kept = append(kept, t)
		}
	}
	if action == Like {
		kept = append(kept, track)
	}
	m.liked = kept
	return append([]playlist.Track(nil), m.liked...), nil
}

func (m *Mock) FetchLikedSet(_ context.Context) ([]playlist.Track, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.signedIn {
		return nil, ErrAuthRequired
	}
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return append([]playlist.Track(nil), m.liked...), nil
}

// Test helpers

func (m *Mock) SetSignedIn(signedIn bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.signedIn = signedIn
}

// SetLocator makes trackID resolvable to locator.
func (m *Mock) SetLocator(trackID, locator string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locators[trackID] = locator
}

// SetResolveFunc overrides locator resolution. It runs without the mock's
// lock held and may block.
func (m *Mock) SetResolveFunc(fn func(ctx context.Context, trackID string) (string, error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolveFunc = fn
}

// SetLikeFunc runs before each SetLiked is applied; a non-nil error fails
// the call without changing the liked set.
func (m *Mock) SetLikeFunc(fn func(ctx context.Context, track playlist.Track, action LikeAction) error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.likeFunc = fn
}

func (m *Mock) SetLikedTracks(tracks ...playlist.Track) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.liked = append([]playlist.Track(nil), tracks...)
}

func (m *Mock) SetRecent(entries ...RecentEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recent = append([]RecentEntry(nil), entries...)
}

func (m *Mock) SetAppendError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appendErr = err
}

func (m *Mock) SetFetchError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchErr = err
}

func (m *Mock) ResolveCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.resolveCalls...)
}

func (m *Mock) LikeCalls() []LikeCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]LikeCall(nil), m.likeCalls...)
}

func (m *Mock) AppendCalls() []playlist.Track {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]playlist.Track(nil), m.appendCalls...)
}
