//nolint:goconst // test file with repeated string literals
package playback

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"testing/synctest"
	"time"

	"github.com/llehouerou/wavestream/internal/player"
	"github.com/llehouerou/wavestream/internal/playlist"
	"github.com/llehouerou/wavestream/internal/remote"
	"github.com/llehouerou/wavestream/internal/state"
)

var (
	trackA = playlist.Track{ID: "a", Title: "Alpha"}
	trackB = playlist.Track{ID: "b", Title: "Bravo"}
	trackC = playlist.Track{ID: "c", Title: "Charlie"}
)

func locator(id string) string {
	return "https://cdn.test/" + id + ".mp3"
}

type fixture struct {
	c      *Controller
	engine *player.Mock
	remote *remote.Mock
	store  *state.Mock
}

// newFixture must be called inside a synctest bubble; the caller closes the
// controller.
func newFixture() *fixture {
	f := &fixture{
		engine: player.NewMock(),
		remote: remote.NewMock(),
		store:  state.NewMock(),
	}
	for _, id := range []string{"a", "b", "c"} {
		f.remote.SetLocator(id, locator(id))
	}
	f.c = New(Options{
		Engine: f.engine,
		Remote: f.remote,
		Resume: f.store,
		Volume: f.store,
		Logger: slog.New(slog.DiscardHandler),
	})
	return f
}

func (f *fixture) assertState(t *testing.T, want State, wantTrack string) {
	t.Helper()
	snap := f.c.Snapshot()
	if snap.State != want {
		t.Errorf("Snapshot().State = %v, want %v", snap.State, want)
	}
	if got := snap.TrackID(); got != wantTrack {
		t.Errorf("Snapshot().Track = %q, want %q", got, wantTrack)
	}
}

func drainNotices(sub *Subscription) []Notice {
	var out []Notice
	for {
		select {
		case n := <-sub.Notices:
			out = append(out, n)
		default:
			return out
		}
	}
}

func TestPlay_Success(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture()
		defer f.c.Close()
		ctx := context.Background()
		sub := f.c.Subscribe()

		if err := f.c.Play(ctx, trackA, trackA, trackB, trackC); err != nil {
			t.Fatalf("Play() error = %v", err)
		}
		synctest.Wait()

		f.assertState(t, StatePlaying, "a")
		if got := f.engine.LoadCalls(); len(got) != 1 || got[0] != locator("a") {
			t.Errorf("LoadCalls() = %v, want [%s]", got, locator("a"))
		}
		if !f.engine.IsPlaying() {
			t.Error("engine IsPlaying() = false, want true")
		}

		saved, err := f.store.LastPlayed()
		if err != nil || saved == nil || saved.ID != "a" {
			t.Errorf("LastPlayed() = %v, %v, want track a", saved, err)
		}
		if got := f.remote.AppendCalls(); len(got) != 1 || got[0].ID != "a" {
			t.Errorf("AppendCalls() = %v, want [a]", got)
		}
		if got := f.c.RecentlyPlayed(); len(got) != 1 || got[0].Track.ID != "a" {
			t.Errorf("RecentlyPlayed() = %v, want [a]", got)
		}

		select {
		case tc := <-sub.TrackChanged:
			if tc.Current.ID != "a" || tc.Previous != nil {
				t.Errorf("TrackChanged = %+v, want current a, no previous", tc)
			}
		default:
			t.Error("no TrackChanged event")
		}
		if n := drainNotices(sub); len(n) != 0 {
			t.Errorf("notices = %v, want none", n)
		}
	})
}

func TestPlay_UsesTrackStreamURL(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture()
		defer f.c.Close()

		direct := playlist.Track{ID: "d", Title: "Direct", StreamURL: "file:///music/d.mp3"}
		if err := f.c.Play(context.Background(), direct); err != nil {
			t.Fatalf("Play() error = %v", err)
		}
		if got := f.remote.ResolveCalls(); len(got) != 0 {
			t.Errorf("ResolveCalls() = %v, want none", got)
		}
		if got := f.engine.Source(); got != "file:///music/d.mp3" {
			t.Errorf("engine Source() = %q, want %q", got, "file:///music/d.mp3")
		}
	})
}

func TestPlay_InvalidTrack(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture()
		defer f.c.Close()

		err := f.c.Play(context.Background(), playlist.Track{Title: "no id"})
		if !errors.Is(err, ErrNoTrack) {
			t.Errorf("Play() error = %v, want ErrNoTrack", err)
		}
		f.assertState(t, StateIdle, "")
	})
}

func TestPlay_SupersededDuringResolution(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture()
		defer f.c.Close()
		ctx := context.Background()

		f.remote.SetResolveFunc(func(ctx context.Context, id string) (string, error) {
			if id == "a" {
				<-ctx.Done()
				return "", ctx.Err()
			}
			return locator(id), nil
		})

		errA := make(chan error, 1)
		go func() { errA <- f.c.Play(ctx, trackA) }()
		synctest.Wait()
		f.assertState(t, StateLoading, "a")

		if err := f.c.Play(ctx, trackB); err != nil {
			t.Fatalf("Play(b) error = %v", err)
		}
		if err := <-errA; !errors.Is(err, ErrSuperseded) {
			t.Errorf("Play(a) error = %v, want ErrSuperseded", err)
		}
		synctest.Wait()

		f.assertState(t, StatePlaying, "b")
		if got := f.engine.LoadCalls(); len(got) != 1 || got[0] != locator("b") {
			t.Errorf("LoadCalls() = %v, want only b", got)
		}
	})
}

func TestPlay_SupersededDuringEngineStart(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture()
		defer f.c.Close()
		ctx := context.Background()
		sub := f.c.Subscribe()

		f.engine.SetPlayFunc(func(ctx context.Context, source string) error {
			if source == locator("a") {
				<-ctx.Done()
				return ctx.Err()
			}
			return nil
		})

		errA := make(chan error, 1)
		go func() { errA <- f.c.Play(ctx, trackA) }()
		synctest.Wait()

		if err := f.c.Play(ctx, trackB); err != nil {
			t.Fatalf("Play(b) error = %v", err)
		}
		if err := <-errA; !errors.Is(err, ErrSuperseded) {
			t.Errorf("Play(a) error = %v, want ErrSuperseded", err)
		}
		synctest.Wait()

		f.assertState(t, StatePlaying, "b")
		if got := f.engine.Source(); got != locator("b") {
			t.Errorf("engine Source() = %q, want %q", got, locator("b"))
		}
		if n := drainNotices(sub); len(n) != 0 {
			t.Errorf("notices = %v, want none for a superseded request", n)
		}
		saved, _ := f.store.LastPlayed()
		if saved == nil || saved.ID != "b" {
			t.Errorf("LastPlayed() = %v, want b", saved)
		}
	})
}

func TestPlay_ResolutionFailureThenSuccess(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture()
		defer f.c.Close()
		ctx := context.Background()
		sub := f.c.Subscribe()

		missing := playlist.Track{ID: "missing", Title: "Gone"}
		err := f.c.Play(ctx, missing)
		if !errors.Is(err, ErrResolution) || !errors.Is(err, remote.ErrNotFound) {
			t.Fatalf("Play() error = %v, want ErrResolution wrapping ErrNotFound", err)
		}
		synctest.Wait()
		f.assertState(t, StateErrored, "missing")

		notices := drainNotices(sub)
		if len(notices) != 1 {
			t.Fatalf("notices = %d, want exactly 1", len(notices))
		}
		if notices[0].Level != NoticeError {
			t.Errorf("notice level = %v, want NoticeError", notices[0].Level)
		}
		if f.store.Saves() != 0 {
			t.Errorf("resume saves = %d, want 0", f.store.Saves())
		}

		if err := f.c.Play(ctx, trackB); err != nil {
			t.Fatalf("Play(b) error = %v", err)
		}
		synctest.Wait()
		f.assertState(t, StatePlaying, "b")
		if n := drainNotices(sub); len(n) != 0 {
			t.Errorf("notices after success = %v, want none", n)
		}
	})
}

func TestPlay_Rejected(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture()
		defer f.c.Close()

		f.engine.SetPlayError(errors.New("output device busy"))
		err := f.c.Play(context.Background(), trackA)
		if !errors.Is(err, player.ErrPlaybackRejected) {
			t.Fatalf("Play() error = %v, want ErrPlaybackRejected", err)
		}
		synctest.Wait()

		f.assertState(t, StateErrored, "a")
		if f.store.Saves() != 0 {
			t.Errorf("resume saves = %d, want 0", f.store.Saves())
		}
		if got := f.remote.AppendCalls(); len(got) != 0 {
			t.Errorf("AppendCalls() = %v, want none", got)
		}
	})
}

func TestPlay_PersistenceFailureIsSilent(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture()
		defer f.c.Close()
		sub := f.c.Subscribe()

		f.store.SetSaveError(errors.New("disk full"))
		f.remote.SetAppendError(errors.New("server down"))

		if err := f.c.Play(context.Background(), trackA); err != nil {
			t.Fatalf("Play() error = %v, want nil", err)
		}
		synctest.Wait()

		f.assertState(t, StatePlaying, "a")
		if n := drainNotices(sub); len(n) != 0 {
			t.Errorf("notices = %v, want none", n)
		}
	})
}

func TestPlay_QueueContext(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture()
		defer f.c.Close()
		ctx := context.Background()

		if err := f.c.Play(ctx, trackA, trackA, trackB, trackC); err != nil {
			t.Fatalf("Play() error = %v", err)
		}
		// No queue given, track already queued: queue is kept.
		if err := f.c.Play(ctx, trackC); err != nil {
			t.Fatalf("Play(c) error = %v", err)
		}
		if got := f.c.Queue(); len(got) != 3 {
			t.Errorf("len(Queue()) = %d, want 3", len(got))
		}

		// Track outside the queue: singleton.
		f.remote.SetLocator("x", locator("x"))
		if err := f.c.Play(ctx, playlist.Track{ID: "x"}); err != nil {
			t.Fatalf("Play(x) error = %v", err)
		}
		got := f.c.Queue()
		if len(got) != 1 || got[0].ID != "x" {
			t.Errorf("Queue() = %v, want [x]", got)
		}
	})
}

func TestNext_Wraparound(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture()
		defer f.c.Close()
		ctx := context.Background()

		if err := f.c.Play(ctx, trackB, trackA, trackB, trackC); err != nil {
			t.Fatalf("Play() error = %v", err)
		}

		if err := f.c.Next(ctx); err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		f.assertState(t, StatePlaying, "c")

		if err := f.c.Next(ctx); err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		f.assertState(t, StatePlaying, "a")

		if err := f.c.Previous(ctx); err != nil {
			t.Fatalf("Previous() error = %v", err)
		}
		f.assertState(t, StatePlaying, "c")
	})
}

func TestNext_EmptyQueue(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture()
		defer f.c.Close()

		if err := f.c.Next(context.Background()); err != nil {
			t.Errorf("Next() error = %v, want nil", err)
		}
		if err := f.c.Previous(context.Background()); err != nil {
			t.Errorf("Previous() error = %v, want nil", err)
		}
		f.assertState(t, StateIdle, "")
		if got := f.engine.LoadCalls(); len(got) != 0 {
			t.Errorf("LoadCalls() = %v, want none", got)
		}
	})
}

func TestEnded_SingletonReplays(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture()
		defer f.c.Close()

		if err := f.c.Play(context.Background(), trackA); err != nil {
			t.Fatalf("Play() error = %v", err)
		}
		f.engine.SetPosition(3 * time.Minute)

		f.engine.SimulateEnded()
		synctest.Wait()

		f.assertState(t, StatePlaying, "a")
		if got := f.engine.LoadCalls(); len(got) != 2 || got[1] != locator("a") {
			t.Errorf("LoadCalls() = %v, want a loaded twice", got)
		}
		if got := f.c.Snapshot().Position; got != 0 {
			t.Errorf("Snapshot().Position = %v, want 0", got)
		}
	})
}

func TestEnded_AdvancesQueue(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture()
		defer f.c.Close()

		if err := f.c.Play(context.Background(), trackA, trackA, trackB); err != nil {
			t.Fatalf("Play() error = %v", err)
		}
		f.engine.SimulateEnded()
		synctest.Wait()

		f.assertState(t, StatePlaying, "b")
	})
}

func TestEnded_StaleSourceIgnored(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture()
		defer f.c.Close()

		if err := f.c.Play(context.Background(), trackA, trackA, trackB); err != nil {
			t.Fatalf("Play() error = %v", err)
		}
		f.engine.Emit(player.Ended{Source: "https://cdn.test/old.mp3"})
		synctest.Wait()

		f.assertState(t, StatePlaying, "a")
		if got := f.engine.LoadCalls(); len(got) != 1 {
			t.Errorf("LoadCalls() = %v, want 1 load", got)
		}
	})
}

func TestFailedEvent_Errored(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture()
		defer f.c.Close()
		sub := f.c.Subscribe()

		if err := f.c.Play(context.Background(), trackA); err != nil {
			t.Fatalf("Play() error = %v", err)
		}
		f.engine.SimulateError(errors.New("decode error"))
		synctest.Wait()

		f.assertState(t, StateErrored, "a")
		if n := drainNotices(sub); len(n) != 1 {
			t.Errorf("notices = %d, want 1", len(n))
		}

		// Next user action leaves Errored.
		f.c.Pause()
		f.assertState(t, StateIdle, "a")
	})
}

func TestTimeUpdate_UpdatesSnapshot(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture()
		defer f.c.Close()

		if err := f.c.Play(context.Background(), trackA); err != nil {
			t.Fatalf("Play() error = %v", err)
		}
		sub := f.c.Subscribe()
		<-sub.Snapshots

		f.engine.Emit(player.TimeUpdate{Position: 42 * time.Second, Duration: 3 * time.Minute})
		synctest.Wait()

		snap := <-sub.Snapshots
		if snap.Position != 42*time.Second || snap.Duration != 3*time.Minute {
			t.Errorf("snapshot position/duration = %v/%v, want 42s/3m", snap.Position, snap.Duration)
		}
	})
}

func TestPauseResume(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture()
		defer f.c.Close()
		ctx := context.Background()

		// Pause with nothing loaded is a no-op.
		f.c.Pause()
		f.assertState(t, StateIdle, "")

		if err := f.c.Play(ctx, trackA); err != nil {
			t.Fatalf("Play() error = %v", err)
		}
		f.c.Pause()
		f.assertState(t, StatePaused, "a")
		if f.engine.IsPlaying() {
			t.Error("engine IsPlaying() = true after Pause")
		}

		if err := f.c.Resume(ctx); err != nil {
			t.Fatalf("Resume() error = %v", err)
		}
		f.assertState(t, StatePlaying, "a")
		if got := f.engine.LoadCalls(); len(got) != 1 {
			t.Errorf("LoadCalls() = %v, want no reload on resume", got)
		}

		if err := f.c.Toggle(ctx); err != nil {
			t.Fatalf("Toggle() error = %v", err)
		}
		f.assertState(t, StatePaused, "a")
		if err := f.c.Toggle(ctx); err != nil {
			t.Fatalf("Toggle() error = %v", err)
		}
		f.assertState(t, StatePlaying, "a")
	})
}

func TestPause_DuringLoading(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture()
		defer f.c.Close()

		release := make(chan struct{})
		f.engine.SetPlayFunc(func(context.Context, string) error {
			<-release
			return nil
		})

		done := make(chan error, 1)
		go func() { done <- f.c.Play(context.Background(), trackA) }()
		synctest.Wait()
		f.assertState(t, StateLoading, "a")

		f.c.Pause()
		f.assertState(t, StateLoading, "a")

		close(release)
		if err := <-done; err != nil {
			t.Fatalf("Play() error = %v", err)
		}
		f.assertState(t, StatePaused, "a")
		if f.engine.IsPlaying() {
			t.Error("engine IsPlaying() = true, want paused after load")
		}
	})
}

func TestResume_ColdStart(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture()
		defer f.c.Close()
		ctx := context.Background()

		if err := f.store.SaveLastPlayed(trackB); err != nil {
			t.Fatalf("SaveLastPlayed() error = %v", err)
		}
		if err := f.c.Init(ctx); err != nil {
			t.Fatalf("Init() error = %v", err)
		}
		f.assertState(t, StateIdle, "b")
		if got := f.c.Queue(); len(got) != 1 || got[0].ID != "b" {
			t.Errorf("Queue() = %v, want [b]", got)
		}
		if got := f.engine.LoadCalls(); len(got) != 0 {
			t.Errorf("LoadCalls() = %v, want none before Resume", got)
		}

		if err := f.c.Resume(ctx); err != nil {
			t.Fatalf("Resume() error = %v", err)
		}
		synctest.Wait()
		f.assertState(t, StatePlaying, "b")
		if got := f.remote.AppendCalls(); len(got) != 0 {
			t.Errorf("AppendCalls() = %v, want none for a resume", got)
		}
	})
}

func TestResume_AfterErrorRetries(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture()
		defer f.c.Close()
		ctx := context.Background()

		f.engine.SetPlayError(errors.New("busy"))
		if err := f.c.Play(ctx, trackA); err == nil {
			t.Fatal("Play() error = nil, want rejection")
		}
		f.engine.SetPlayError(nil)

		if err := f.c.Resume(ctx); err != nil {
			t.Fatalf("Resume() error = %v", err)
		}
		f.assertState(t, StatePlaying, "a")
	})
}

func TestInit_LoadsSession(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture()
		defer f.c.Close()

		f.remote.SetLikedTracks(trackB)
		f.remote.SetRecent(remote.RecentEntry{Track: trackC})
		f.store.SaveVolume(0.3, true)

		if err := f.c.Init(context.Background()); err != nil {
			t.Fatalf("Init() error = %v", err)
		}
		if !f.c.IsLiked("b") {
			t.Error("IsLiked(b) = false, want true")
		}
		if got := f.c.RecentlyPlayed(); len(got) != 1 || got[0].Track.ID != "c" {
			t.Errorf("RecentlyPlayed() = %v, want [c]", got)
		}
		snap := f.c.Snapshot()
		if snap.Volume != 0.3 || !snap.Muted {
			t.Errorf("Snapshot volume = %v muted = %v, want 0.3 true", snap.Volume, snap.Muted)
		}
		if got := f.engine.Volume(); got != 0 {
			t.Errorf("engine Volume() = %v, want 0 while muted", got)
		}
	})
}

func TestInit_SignedOutAndFailures(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture()
		defer f.c.Close()

		f.remote.SetSignedIn(false)
		if err := f.c.Init(context.Background()); err != nil {
			t.Errorf("Init() signed out error = %v, want nil", err)
		}

		f.remote.SetSignedIn(true)
		f.remote.SetFetchError(errors.New("server down"))
		if err := f.c.Init(context.Background()); err == nil {
			t.Error("Init() error = nil, want fetch failure")
		}
	})
}

func TestInit_CorruptResumeIgnored(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture()
		defer f.c.Close()

		f.store.SetRawLastPlayed("{not json")
		if err := f.c.Init(context.Background()); err != nil {
			t.Fatalf("Init() error = %v", err)
		}
		f.assertState(t, StateIdle, "")
	})
}

func TestRefreshRecentlyPlayed(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture()
		defer f.c.Close()
		sub := f.c.Subscribe()

		f.remote.SetRecent(remote.RecentEntry{Track: trackB}, remote.RecentEntry{Track: trackA})
		if err := f.c.RefreshRecentlyPlayed(context.Background()); err != nil {
			t.Fatalf("RefreshRecentlyPlayed() error = %v", err)
		}
		got := f.c.RecentlyPlayed()
		if len(got) != 2 || got[0].Track.ID != "b" || got[1].Track.ID != "a" {
			t.Errorf("RecentlyPlayed() = %v, want [b a]", got)
		}
		select {
		case ev := <-sub.RecentChanged:
			if len(ev.Entries) != 2 {
				t.Errorf("RecentChange entries = %d, want 2", len(ev.Entries))
			}
		default:
			t.Error("no RecentChange after refresh")
		}

		f.remote.SetFetchError(errors.New("server down"))
		if err := f.c.RefreshRecentlyPlayed(context.Background()); err == nil {
			t.Error("RefreshRecentlyPlayed() error = nil, want fetch failure")
		}
		if got := f.c.RecentlyPlayed(); len(got) != 2 {
			t.Errorf("RecentlyPlayed() after failure = %v, want previous log kept", got)
		}

		f.remote.SetSignedIn(false)
		if err := f.c.RefreshRecentlyPlayed(context.Background()); err != nil {
			t.Errorf("RefreshRecentlyPlayed() signed out error = %v, want nil", err)
		}
	})
}

func TestSeekTo(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture()
		defer f.c.Close()

		f.c.SeekTo(time.Minute)
		if got := f.engine.SeekCalls(); len(got) != 0 {
			t.Errorf("SeekCalls() = %v, want none while idle", got)
		}

		if err := f.c.Play(context.Background(), trackA); err != nil {
			t.Fatalf("Play() error = %v", err)
		}
		f.engine.SetDuration(3 * time.Minute)

		f.c.SeekTo(time.Minute)
		if got := f.c.Snapshot().Position; got != time.Minute {
			t.Errorf("Position = %v, want 1m", got)
		}
		f.c.SeekTo(10 * time.Minute)
		if got := f.c.Snapshot().Position; got != 3*time.Minute {
			t.Errorf("Position = %v, want clamped 3m", got)
		}
	})
}

func TestVolume_MuteRestores(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture()
		defer f.c.Close()

		f.c.SetVolume(0.6)
		if got := f.engine.Volume(); got != 0.6 {
			t.Errorf("engine Volume() = %v, want 0.6", got)
		}

		f.c.ToggleMute()
		snap := f.c.Snapshot()
		if !snap.Muted || snap.Volume != 0.6 {
			t.Errorf("muted snapshot = %v/%v, want true/0.6", snap.Muted, snap.Volume)
		}
		if got := f.engine.Volume(); got != 0 {
			t.Errorf("engine Volume() = %v, want 0", got)
		}

		f.c.ToggleMute()
		if got := f.engine.Volume(); got != 0.6 {
			t.Errorf("engine Volume() = %v, want 0.6 after unmute", got)
		}

		f.c.SetVolume(7)
		if got := f.c.Snapshot().Volume; got != 1 {
			t.Errorf("Volume = %v, want clamped 1", got)
		}
		saved, _ := f.store.GetVolume()
		if saved.Volume != 1 || saved.Muted {
			t.Errorf("saved volume = %+v, want {1 false}", saved)
		}
	})
}

func TestClose(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture()
		sub := f.c.Subscribe()

		if err := f.c.Play(context.Background(), trackA); err != nil {
			t.Fatalf("Play() error = %v", err)
		}
		if err := f.c.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
		<-sub.Done

		if !f.engine.Closed() {
			t.Error("engine not closed")
		}
		if err := f.c.Play(context.Background(), trackB); !errors.Is(err, ErrClosed) {
			t.Errorf("Play() after Close error = %v, want ErrClosed", err)
		}
		if err := f.c.Close(); err != nil {
			t.Errorf("second Close() error = %v", err)
		}
	})
}

func TestClose_CancelsPendingLoad(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture()
		f.remote.SetResolveFunc(func(ctx context.Context, _ string) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		})

		done := make(chan error, 1)
		go func() { done <- f.c.Play(context.Background(), trackA) }()
		synctest.Wait()

		if err := f.c.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
		if err := <-done; !errors.Is(err, ErrSuperseded) {
			t.Errorf("Play() error = %v, want ErrSuperseded", err)
		}
	})
}
