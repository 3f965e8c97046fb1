package ui

// Base is embedded by panel models for focus and size.
type Base struct {
	width, height int
	focused       bool
}

func (b *Base) SetFocused(focused bool) { b.focused = focused }

func (b Base) IsFocused() bool { return b.focused }

// SetSize sets the outer size, border included.
func (b *Base) SetSize(width, height int) {
	b.width = width
	b.height = height
}

func (b Base) Width() int  { return b.width }
func (b Base) Height() int { return b.height }

// InnerWidth is the width inside the border.
func (b Base) InnerWidth() int {
	return max(b.width-BorderSize, 0)
}

// Rows is the height left after overhead rows, never below one.
func (b Base) Rows(overhead int) int {
	return max(b.height-overhead, 1)
}

// Hidden reports whether the panel has not been sized yet.
func (b Base) Hidden() bool {
	return b.width == 0 || b.height == 0
}
