package playback

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
//
// Snapshots holds only the latest value: a slow reader skips intermediate
// snapshots but always sees the most recent one. The other channels are
// buffered and drop events when full.
type Subscription struct {
	Snapshots     <-chan Snapshot
	TrackChanged  <-chan TrackChange
	LikeChanged   <-chan LikeChange
	RecentChanged <-chan RecentChange
	Notices       <-chan Notice
	Done          <-chan struct{}

	// Internal write channels
	snapshotCh chan Snapshot
	trackCh    chan TrackChange
	likeCh     chan LikeChange
	recentCh   chan RecentChange
	noticeCh   chan Notice
	doneCh     chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		snapshotCh: make(chan Snapshot, 1),
		trackCh:    make(chan TrackChange, eventBufferSize),
		likeCh:     make(chan LikeChange, eventBufferSize),
		recentCh:   make(chan RecentChange, eventBufferSize),
		noticeCh:   make(chan Notice, eventBufferSize),
		doneCh:     make(chan struct{}),
	}
	s.Snapshots = s.snapshotCh
	s.TrackChanged = s.trackCh
	s.LikeChanged = s.likeCh
	s.RecentChanged = s.recentCh
	s.Notices = s.noticeCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// sendSnapshot replaces any unread snapshot with snap. Callers serialize
// sends.
func (s *Subscription) sendSnapshot(snap Snapshot) {
	for {
		select {
		case s.snapshotCh <- snap:
			return
		default:
		}
		select {
		case <-s.snapshotCh:
		default:
		}
	}
}

// sendTrack sends a track change event (non-blocking).
func (s *Subscription) sendTrack(e TrackChange) {
	select {
	case s.trackCh <- e:
	default:
		// Drop if buffer full
	}
}

// sendLike sends a like change event (non-blocking).
func (s *Subscription) sendLike(e LikeChange) {
	select {
	case s.likeCh <- e:
	default:
	}
}

// sendRecent sends a recently-played refresh (non-blocking).
func (s *Subscription) sendRecent(e RecentChange) {
	select {
	case s.recentCh <- e:
	default:
	}
}

// sendNotice sends a notice (non-blocking).
func (s *Subscription) sendNotice(n Notice) {
	select {
	case s.noticeCh <- n:
	default:
	}
}
