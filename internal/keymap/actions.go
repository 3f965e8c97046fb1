// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit       Action = "quit"
	ActionSwitchView Action = "switch_view"
	ActionSearch     Action = "search"
	ActionHelp       Action = "help"
	ActionRefresh    Action = "refresh"

	// View switching
	ActionViewTrending Action = "view_trending"
	ActionViewLiked    Action = "view_liked"
	ActionViewRecent   Action = "view_recent"
	ActionViewQueue    Action = "view_queue"

	// Playback actions
	ActionPlayPause    Action = "play_pause"
	ActionNextTrack    Action = "next_track"
	ActionPrevTrack    Action = "prev_track"
	ActionSeekForward  Action = "seek_forward"
	ActionSeekBack     Action = "seek_back"
	ActionVolumeUp     Action = "volume_up"
	ActionVolumeDown   Action = "volume_down"
	ActionToggleMute   Action = "toggle_mute"
	ActionLikePlaying  Action = "like_playing"
	ActionLikeSelected Action = "like_selected"

	// Navigation actions
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"
	ActionPageUp    Action = "page_up"
	ActionPageDown  Action = "page_down"

	// Selection/activation actions
	ActionSelect Action = "select" // enter - play with the list as queue
	ActionCancel Action = "cancel" // esc - leave search input
)
