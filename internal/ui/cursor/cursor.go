// Package cursor tracks the selected row of a list and the window of rows
// on screen.
package cursor

// Cursor is a selected row in a list of n rows, shown height rows at a
// time. The window scrolls so the cursor keeps margin rows of context.
type Cursor struct {
	pos, top  int
	margin    int
	n, height int
}

func New(margin int) Cursor {
	return Cursor{margin: margin}
}

func (c Cursor) Pos() int { return c.pos }

// Resize updates the list length and window height, pulling the cursor and
// the window back into range.
func (c *Cursor) Resize(n, height int) {
	c.n, c.height = max(n, 0), max(height, 0)
	c.Jump(c.pos)
}

// Move moves the cursor by delta rows.
func (c *Cursor) Move(delta int) {
	c.Jump(c.pos + delta)
}

// HalfPage moves half a window down, or up when dir is negative.
func (c *Cursor) HalfPage(dir int) {
	step := max(c.height/2, 1)
	if dir < 0 {
		step = -step
	}
	c.Move(step)
}

// Jump selects row pos, clamped to the list.
func (c *Cursor) Jump(pos int) {
	if c.n == 0 {
		c.pos, c.top = 0, 0
		return
	}
	c.pos = min(max(pos, 0), c.n-1)
	c.scroll()
}

func (c *Cursor) scroll() {
	if c.height == 0 {
		return
	}
	// Margins larger than half the window would pin the cursor.
	margin := min(c.margin, (c.height-1)/2)
	if c.pos < c.top+margin {
		c.top = c.pos - margin
	}
	if c.pos > c.top+c.height-1-margin {
		c.top = c.pos - c.height + 1 + margin
	}
	c.top = min(max(c.top, 0), max(c.n-c.height, 0))
}

// Window returns the rows on screen, [start, end).
func (c Cursor) Window() (start, end int) {
	if c.n == 0 || c.height == 0 {
		return 0, 0
	}
	return c.top, min(c.top+c.height, c.n)
}
