package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/wavestream/internal/errmsg"
	"github.com/llehouerou/wavestream/internal/keymap"
	"github.com/llehouerou/wavestream/internal/playback"
	"github.com/llehouerou/wavestream/internal/remote"
	"github.com/llehouerou/wavestream/internal/ui/headerbar"
	"github.com/llehouerou/wavestream/internal/ui/layout"
	"github.com/llehouerou/wavestream/internal/ui/playerbar"
)

var loadOps = [viewCount]errmsg.Op{
	viewTrending: errmsg.OpCatalogTrending,
	viewLiked:    errmsg.OpLikedLoad,
	viewRecent:   errmsg.OpRecentLoad,
	viewSearch:   errmsg.OpCatalogSearch,
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.handleSearchKey(msg)
		}
		return m.handleKey(msg)

	case snapshotMsg:
		prev, wasVisible := m.snapshot.TrackID(), m.playerVisible()
		m.snapshot = playback.Snapshot(msg)
		if m.snapshot.TrackID() != prev {
			m.syncPlaying()
		}
		if m.playerVisible() != wasVisible {
			m.resize()
		}
		return m, waitForEvent(m.sub)

	case trackChangedMsg:
		m.lists[viewQueue].SetTracks(m.svc.Queue())
		m.syncPlaying()
		return m, waitForEvent(m.sub)

	case likeChangedMsg:
		// Liked markers read the service directly; only the liked view
		// needs its membership refreshed.
		if m.loaded[viewLiked] {
			m.loaded[viewLiked] = false
			if m.active == viewLiked {
				return m, tea.Batch(waitForEvent(m.sub), m.beginLoad(viewLiked))
			}
		}
		return m, waitForEvent(m.sub)

	case recentChangedMsg:
		m.setRecent(msg.Entries)
		return m, waitForEvent(m.sub)

	case noticeMsg:
		n := playback.Notice(msg)
		return m, tea.Batch(waitForEvent(m.sub), m.showNotice(n))

	case subClosedMsg:
		return m, tea.Quit

	case stderrMsg:
		// Logging it would feed the line back into the capture.
		return m, tea.Batch(waitForStderr(m.stderr), m.showNotice(playback.Notice{
			Level:   playback.NoticeInfo,
			Title:   "stderr",
			Message: string(msg),
		}))

	case tracksLoadedMsg:
		return m.handleLoaded(msg)

	case actionDoneMsg:
		// Failures already arrived as notices.
		if !quiet(msg.err) {
			m.log.Debug("Playback command failed", "op", msg.op, "error", msg.err)
		}
		return m, nil

	case likeDoneMsg:
		if errors.Is(msg.Err, remote.ErrAuthRequired) {
			return m, m.showNotice(playback.Notice{
				Level:   playback.NoticeInfo,
				Op:      errmsg.OpLikeToggle,
				Title:   "Not signed in",
				Message: "Sign in to like tracks",
			})
		}
		return m, nil

	case clearNoticeMsg:
		if msg.id == m.noticeID {
			m.notice = nil
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) resize() {
	barHeight := 0
	if m.playerVisible() {
		barHeight = playerbar.Height
	}
	height := layout.ContentHeight(m.height, layout.ContentOpts{
		HeaderHeight:    headerbar.Height,
		PlayerBarHeight: barHeight,
		NoticeHeight:    noticeHeight,
	})

	side := m.sideQueue()
	mainWidth := layout.MainWidth(m.width, side)
	for v := range viewCount {
		m.lists[v].SetSize(mainWidth, height)
	}
	if side {
		m.lists[viewQueue].SetSize(layout.QueueWidth(m.width, side), height)
	}
	m.help.SetSize(m.width, height)
	m.search.Width = max(m.width-4, 0)
}

func (m Model) playerVisible() bool {
	return m.snapshot.Track != nil || m.snapshot.State != playback.StateIdle
}

// sideQueue reports whether the queue is drawn beside the active list.
func (m Model) sideQueue() bool {
	return layout.IsWideMode(m.width) && m.active != viewQueue && !m.showHelp
}

func (m *Model) showNotice(n playback.Notice) tea.Cmd {
	m.noticeID++
	m.notice = &n
	return clearNoticeCmd(m.noticeID)
}

func (m Model) handleLoaded(msg tracksLoadedMsg) (tea.Model, tea.Cmd) {
	v := msg.view
	// A newer search replaced this one.
	if v == viewSearch && msg.query != m.query {
		return m, nil
	}
	m.loading[v] = false
	if msg.err != nil {
		m.log.Warn("Loading view failed", "view", viewTitles[v], "error", msg.err)
		if len(m.lists[v].Tracks()) == 0 {
			m.lists[v].SetStatus(errmsg.Format(loadOps[v], msg.err))
		}
		return m, nil
	}
	m.loaded[v] = true
	if v == viewRecent {
		// The RecentChange event carries timestamps; only fill the list if
		// the service had nothing to broadcast.
		if len(m.recent.entries) == 0 {
			m.lists[v].SetTracks(msg.tracks)
		}
	} else {
		m.lists[v].SetTracks(msg.tracks)
	}
	if len(m.lists[v].Tracks()) == 0 {
		m.lists[v].SetStatus(emptyStatus(v))
	}
	return m, nil
}

func emptyStatus(v view) string {
	switch v {
	case viewLiked:
		return "No liked songs yet"
	case viewRecent:
		return "Nothing played yet"
	case viewSearch:
		return "No results"
	default:
		return "Nothing here"
	}
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "enter":
		m.searching = false
		m.search.Blur()
		q := strings.TrimSpace(m.search.Value())
		if q == "" {
			return m, nil
		}
		m.query = q
		m.lists[viewSearch].SetTitle("Search: " + q)
		m.lists[viewSearch].SetTracks(nil)
		m.loaded[viewSearch] = false
		cmd := m.switchTo(viewSearch)
		if cmd == nil {
			// A previous search is still in flight; start this one anyway.
			cmd = m.beginLoad(viewSearch)
		}
		return m, cmd
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Resolve(msg.String())

	if m.showHelp {
		if m.help.HandleAction(action) {
			return m, nil
		}
		switch action {
		case keymap.ActionQuit:
			return m, tea.Quit
		case keymap.ActionHelp, keymap.ActionCancel:
			m.showHelp = false
			m.resize()
		}
		return m, nil
	}

	if m.activeList().HandleAction(action) {
		return m, nil
	}

	switch action {
	case keymap.ActionQuit:
		return m, tea.Quit
	case keymap.ActionHelp:
		m.showHelp = true
		m.help.Reset()
		m.resize()
	case keymap.ActionCancel:
		m.notice = nil
	case keymap.ActionSearch:
		m.searching = true
		m.search.SetValue("")
		return m, m.search.Focus()
	case keymap.ActionSwitchView:
		return m, m.switchTo(m.nextView())
	case keymap.ActionViewTrending:
		return m, m.switchTo(viewTrending)
	case keymap.ActionViewLiked:
		return m, m.switchTo(viewLiked)
	case keymap.ActionViewRecent:
		return m, m.switchTo(viewRecent)
	case keymap.ActionViewQueue:
		return m, m.switchTo(viewQueue)
	case keymap.ActionRefresh:
		m.loaded[m.active] = false
		if m.active == viewQueue {
			m.lists[viewQueue].SetTracks(m.svc.Queue())
			return m, nil
		}
		if m.loading[m.active] {
			return m, nil
		}
		return m, m.beginLoad(m.active)

	case keymap.ActionSelect:
		l := m.activeList()
		track, ok := l.Selected()
		if !ok {
			return m, nil
		}
		return m, m.playCmd(track, l.Tracks())
	case keymap.ActionLikeSelected:
		if track, ok := m.activeList().Selected(); ok {
			return m, m.likeCmd(track)
		}

	case keymap.ActionPlayPause:
		return m, m.toggleCmd()
	case keymap.ActionNextTrack:
		return m, m.nextCmd()
	case keymap.ActionPrevTrack:
		return m, m.previousCmd()
	case keymap.ActionSeekForward:
		if m.snapshot.State.IsActive() {
			m.svc.SeekTo(m.snapshot.Position + seekStep)
		}
	case keymap.ActionSeekBack:
		if m.snapshot.State.IsActive() {
			m.svc.SeekTo(max(m.snapshot.Position-seekStep, 0))
		}
	case keymap.ActionVolumeUp:
		m.svc.SetVolume(m.snapshot.Volume + volumeStep)
	case keymap.ActionVolumeDown:
		m.svc.SetVolume(m.snapshot.Volume - volumeStep)
	case keymap.ActionToggleMute:
		m.svc.ToggleMute()
	case keymap.ActionLikePlaying:
		if m.snapshot.Track != nil {
			return m, m.likeCmd(*m.snapshot.Track)
		}
	}
	return m, nil
}

// nextView cycles the tabs. Search joins the cycle once a query ran.
func (m Model) nextView() view {
	next := m.active + 1
	if next == viewSearch && m.query == "" {
		next++
	}
	if next >= viewCount {
		next = viewTrending
	}
	return next
}
