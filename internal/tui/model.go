// Package tui is the terminal front end: catalog browsing, liked songs,
// recently played, the play queue and the player bar.
package tui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/wavestream/internal/keymap"
	"github.com/llehouerou/wavestream/internal/playback"
	"github.com/llehouerou/wavestream/internal/playlist"
	"github.com/llehouerou/wavestream/internal/remote"
	"github.com/llehouerou/wavestream/internal/ui/helpbindings"
	"github.com/llehouerou/wavestream/internal/ui/tracklist"
)

const (
	trendingLimit = 50
	searchLimit   = 50
	seekStep      = 5 * time.Second
	volumeStep    = 0.05
)

// Catalog is the browsing side of the backend.
type Catalog interface {
	Trending(ctx context.Context, limit int) ([]playlist.Track, error)
	Search(ctx context.Context, query string, limit, offset int) ([]playlist.Track, error)
	FetchLikedSet(ctx context.Context) ([]playlist.Track, error)
}

var _ Catalog = (*remote.Client)(nil)

type view int

const (
	viewTrending view = iota
	viewLiked
	viewRecent
	viewQueue
	viewSearch
	viewCount
)

var viewTitles = [viewCount]string{
	viewTrending: "Trending",
	viewLiked:    "Liked Songs",
	viewRecent:   "Recently Played",
	viewQueue:    "Queue",
	viewSearch:   "Search",
}

// Options configures the front end. Stderr is optional.
type Options struct {
	Service playback.Service
	Catalog Catalog
	Stderr  <-chan string
	Logger  *slog.Logger
}

// Model is the root bubbletea model.
type Model struct {
	ctx     context.Context
	svc     playback.Service
	catalog Catalog
	sub     *playback.Subscription
	stderr  <-chan string
	keys    *keymap.Resolver
	log     *slog.Logger

	lists   [viewCount]tracklist.Model
	loaded  [viewCount]bool
	loading [viewCount]bool
	active  view
	recent  *recentLog

	search    textinput.Model
	searching bool
	query     string

	spinner  spinner.Model
	snapshot playback.Snapshot
	notice   *playback.Notice
	noticeID int
	showHelp bool
	help     helpbindings.Model

	width, height int
}

// New creates the root model and subscribes to the service. ctx bounds
// every request the front end makes.
func New(ctx context.Context, opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	search := textinput.New()
	search.Placeholder = "Search tracks"
	search.Prompt = "/ "
	search.CharLimit = 200

	m := Model{
		ctx:     ctx,
		svc:     opts.Service,
		catalog: opts.Catalog,
		stderr:  opts.Stderr,
		keys:    keymap.NewResolver(keymap.Bindings),
		log:     log,
		search:  search,
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		recent:  &recentLog{},
		help:    helpbindings.New(),
	}
	m.sub = m.svc.Subscribe()
	m.snapshot = m.svc.Snapshot()

	for v := range viewCount {
		l := tracklist.New(viewTitles[v])
		l.SetLiked(m.svc.IsLiked)
		m.lists[v] = l
	}
	m.lists[viewRecent].SetDetail(m.recent.playedAgo)
	m.lists[viewQueue].SetDetail(nil)
	m.lists[m.active].SetFocused(true)

	m.setRecent(m.svc.RecentlyPlayed())
	m.lists[viewQueue].SetTracks(m.svc.Queue())
	m.loaded[viewQueue] = true
	m.syncPlaying()
	m.beginLoad(viewTrending)

	return m
}

// Init starts the event bridge and loads the first view.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		waitForEvent(m.sub),
		m.spinner.Tick,
		m.loadCmd(viewTrending),
	}
	if m.stderr != nil {
		cmds = append(cmds, waitForStderr(m.stderr))
	}
	return tea.Batch(cmds...)
}

// recentLog is shared by the model copies bubbletea makes, so the recent
// list's detail column always sees the latest entries.
type recentLog struct {
	entries []remote.RecentEntry
}

// playedAgo renders the recently-played timestamp, e.g. "3 minutes ago".
func (r *recentLog) playedAgo(i int, _ playlist.Track) string {
	if i >= len(r.entries) || r.entries[i].PlayedAt.IsZero() {
		return ""
	}
	return humanize.Time(r.entries[i].PlayedAt)
}

func (m *Model) setRecent(entries []remote.RecentEntry) {
	m.recent.entries = entries
	tracks := make([]playlist.Track, len(entries))
	for i, e := range entries {
		tracks[i] = e.Track
	}
	m.lists[viewRecent].SetTracks(tracks)
	m.loaded[viewRecent] = true
}

func (m *Model) syncPlaying() {
	id := m.snapshot.TrackID()
	for v := range viewCount {
		m.lists[v].SetPlaying(id)
	}
}

func (m *Model) activeList() *tracklist.Model {
	return &m.lists[m.active]
}

func (m *Model) switchTo(v view) tea.Cmd {
	m.lists[m.active].SetFocused(false)
	m.active = v
	m.lists[v].SetFocused(true)
	m.resize()
	if v == viewQueue {
		m.lists[v].SetTracks(m.svc.Queue())
	}
	if !m.loaded[v] && !m.loading[v] {
		return m.beginLoad(v)
	}
	return nil
}

// beginLoad marks v as loading and returns the command that fetches it.
func (m *Model) beginLoad(v view) tea.Cmd {
	cmd := m.loadCmd(v)
	if cmd == nil {
		return nil
	}
	m.loading[v] = true
	if len(m.lists[v].Tracks()) == 0 {
		m.lists[v].SetStatus("Loading " + strings.ToLower(viewTitles[v]) + "…")
	}
	return cmd
}
