package keymap

// Contexts lists the binding groups in help order.
var Contexts = []string{"global", "playback", "list", "search"}

// Binding maps keys to an action and documents it.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "list", "search"
}

// Bindings contains all key bindings, in help order.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit application", "global"},
	{ActionSwitchView, []string{"tab"}, "Next view", "global"},
	{ActionViewTrending, []string{"1", "f1"}, "Trending", "global"},
	{ActionViewLiked, []string{"2", "f2"}, "Liked songs", "global"},
	{ActionViewRecent, []string{"3", "f3"}, "Recently played", "global"},
	{ActionViewQueue, []string{"4", "f4"}, "Queue", "global"},
	{ActionSearch, []string{"/"}, "Search", "global"},
	{ActionRefresh, []string{"r"}, "Refresh view", "global"},
	{ActionHelp, []string{"?"}, "Show help", "global"},

	// Playback
	{ActionPlayPause, []string{" "}, "Play/pause", "playback"},
	{ActionNextTrack, []string{"n", "pgdown"}, "Next track", "playback"},
	{ActionPrevTrack, []string{"p", "pgup"}, "Previous track", "playback"},
	{ActionSeekForward, []string{"shift+right", "L"}, "Seek +5s", "playback"},
	{ActionSeekBack, []string{"shift+left", "H"}, "Seek -5s", "playback"},
	{ActionVolumeUp, []string{"+", "="}, "Volume up", "playback"},
	{ActionVolumeDown, []string{"-"}, "Volume down", "playback"},
	{ActionToggleMute, []string{"m"}, "Mute", "playback"},
	{ActionLikePlaying, []string{"f"}, "Like playing track", "playback"},

	// Track lists
	{ActionMoveDown, []string{"j", "down"}, "Move down", "list"},
	{ActionMoveUp, []string{"k", "up"}, "Move up", "list"},
	{ActionJumpStart, []string{"g", "home"}, "First item", "list"},
	{ActionJumpEnd, []string{"G", "end"}, "Last item", "list"},
	{ActionPageDown, []string{"ctrl+d"}, "Half page down", "list"},
	{ActionPageUp, []string{"ctrl+u"}, "Half page up", "list"},
	{ActionSelect, []string{"enter"}, "Play from here", "list"},
	{ActionLikeSelected, []string{"F"}, "Like selected track", "list"},

	// Search input
	{ActionSelect, []string{"enter"}, "Run search", "search"},
	{ActionCancel, []string{"esc"}, "Cancel search", "search"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
