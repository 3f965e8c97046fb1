package tui

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/wavestream/internal/playback"
	"github.com/llehouerou/wavestream/internal/playlist"
)

const noticeTTL = 4 * time.Second

// Messages from the playback subscription.
type (
	snapshotMsg      playback.Snapshot
	trackChangedMsg  playback.TrackChange
	likeChangedMsg   playback.LikeChange
	recentChangedMsg playback.RecentChange
	noticeMsg        playback.Notice
	subClosedMsg     struct{}
)

// stderrMsg carries a line captured from native audio libraries.
type stderrMsg string

type tracksLoadedMsg struct {
	view   view
	query  string
	tracks []playlist.Track
	err    error
}

// actionDoneMsg reports the outcome of a playback command.
type actionDoneMsg struct {
	op  string
	err error
}

type likeDoneMsg playback.LikeResult

type clearNoticeMsg struct {
	id int
}

// waitForEvent blocks until the next subscription event.
func waitForEvent(sub *playback.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case s := <-sub.Snapshots:
			return snapshotMsg(s)
		case e := <-sub.TrackChanged:
			return trackChangedMsg(e)
		case e := <-sub.LikeChanged:
			return likeChangedMsg(e)
		case e := <-sub.RecentChanged:
			return recentChangedMsg(e)
		case n := <-sub.Notices:
			return noticeMsg(n)
		case <-sub.Done:
			return subClosedMsg{}
		}
	}
}

func waitForStderr(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		line, ok := <-ch
		if !ok {
			return nil
		}
		return stderrMsg(line)
	}
}

// loadCmd fetches the tracks for v. Queue has nothing to fetch.
func (m Model) loadCmd(v view) tea.Cmd {
	ctx, catalog, svc, query := m.ctx, m.catalog, m.svc, m.query
	switch v {
	case viewTrending:
		return func() tea.Msg {
			tracks, err := catalog.Trending(ctx, trendingLimit)
			return tracksLoadedMsg{view: v, tracks: tracks, err: err}
		}
	case viewLiked:
		return func() tea.Msg {
			tracks, err := catalog.FetchLikedSet(ctx)
			return tracksLoadedMsg{view: v, tracks: tracks, err: err}
		}
	case viewRecent:
		return func() tea.Msg {
			// Success arrives as a RecentChange event.
			err := svc.RefreshRecentlyPlayed(ctx)
			if err != nil {
				return tracksLoadedMsg{view: v, err: err}
			}
			entries := svc.RecentlyPlayed()
			tracks := make([]playlist.Track, len(entries))
			for i, e := range entries {
				tracks[i] = e.Track
			}
			return tracksLoadedMsg{view: v, tracks: tracks}
		}
	case viewSearch:
		if query == "" {
			return nil
		}
		return func() tea.Msg {
			tracks, err := catalog.Search(ctx, query, searchLimit, 0)
			return tracksLoadedMsg{view: v, query: query, tracks: tracks, err: err}
		}
	default:
		return nil
	}
}

// runCmd wraps a blocking playback call.
func runCmd(op string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{op: op, err: fn()}
	}
}

func (m Model) playCmd(track playlist.Track, queue []playlist.Track) tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return runCmd("play", func() error { return svc.Play(ctx, track, queue...) })
}

func (m Model) toggleCmd() tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return runCmd("toggle", func() error { return svc.Toggle(ctx) })
}

func (m Model) nextCmd() tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return runCmd("next", func() error { return svc.Next(ctx) })
}

func (m Model) previousCmd() tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return runCmd("previous", func() error { return svc.Previous(ctx) })
}

func (m Model) likeCmd(track playlist.Track) tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		return likeDoneMsg(svc.ToggleLike(ctx, track))
	}
}

func clearNoticeCmd(id int) tea.Cmd {
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return clearNoticeMsg{id: id}
	})
}

// quiet reports errors the user does not need to see: a newer command
// took over, or there was nothing to act on.
func quiet(err error) bool {
	return err == nil ||
		errors.Is(err, playback.ErrSuperseded) ||
		errors.Is(err, playback.ErrNoTrack) ||
		errors.Is(err, playback.ErrClosed)
}
