// Package ui holds what the panels have in common: focus and size state
// and the border geometry.
package ui

const (
	// ScrollMargin is how many rows stay visible past the cursor.
	ScrollMargin = 5

	// BorderSize is what a rounded border takes on each axis.
	BorderSize = 2

	// PanelOverhead is the rows a list panel spends outside its rows:
	// border, title and separator.
	PanelOverhead = BorderSize + 2
)
