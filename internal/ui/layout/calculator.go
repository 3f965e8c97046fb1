// Package layout provides pure functions for UI dimension calculations.
package layout

// WideThreshold is the terminal width from which the queue is shown beside
// the active list instead of only in its own tab.
const WideThreshold = 120

// ContentOpts contains the parameters needed to calculate content height.
type ContentOpts struct {
	HeaderHeight    int
	PlayerBarHeight int // 0 if nothing is loaded
	NoticeHeight    int
}

// ContentHeight calculates the available height for the main content area:
// the terminal height minus header, player bar and notice line.
func ContentHeight(windowHeight int, opts ContentOpts) int {
	height := windowHeight
	height -= opts.HeaderHeight
	height -= opts.PlayerBarHeight
	height -= opts.NoticeHeight
	return max(height, 0)
}

// IsWideMode returns true if the terminal is wide enough for the side queue.
func IsWideMode(width int) bool {
	return width >= WideThreshold
}

// MainWidth calculates the width of the active list. With the side queue
// shown it gets 2/3 of the width.
func MainWidth(windowWidth int, sideQueue bool) int {
	if sideQueue {
		return windowWidth * 2 / 3
	}
	return windowWidth
}

// QueueWidth calculates the width of the side queue: whatever the main
// list leaves.
func QueueWidth(windowWidth int, sideQueue bool) int {
	if !sideQueue {
		return 0
	}
	return windowWidth - MainWidth(windowWidth, sideQueue)
}
