package cursor

import "testing"

func newCursor(margin, n, height int) Cursor {
	c := New(margin)
	c.Resize(n, height)
	return c
}

func TestMove(t *testing.T) {
	tests := []struct {
		name      string
		margin    int
		start     int
		delta     int
		n, height int
		wantPos   int
		wantStart int
	}{
		{"down without scrolling", 2, 0, 1, 10, 5, 1, 0},
		{"down into the margin scrolls", 2, 0, 3, 10, 5, 3, 1},
		{"down past the end clamps", 2, 8, 5, 10, 5, 9, 5},
		{"up into the margin scrolls", 2, 9, -5, 10, 5, 4, 2},
		{"up past the start clamps", 2, 2, -5, 10, 5, 0, 0},
		{"short list never scrolls", 2, 0, 2, 3, 5, 2, 0},
		{"zero margin", 0, 0, 4, 10, 5, 4, 0},
		{"zero margin scrolls at the edge", 0, 4, 1, 10, 5, 5, 1},
		{"large margin is capped", 10, 0, 3, 20, 5, 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCursor(tt.margin, tt.n, tt.height)
			c.Jump(tt.start)
			c.Move(tt.delta)

			if c.Pos() != tt.wantPos {
				t.Errorf("Pos() = %d, want %d", c.Pos(), tt.wantPos)
			}
			if start, _ := c.Window(); start != tt.wantStart {
				t.Errorf("Window() start = %d, want %d", start, tt.wantStart)
			}
		})
	}
}

func TestMove_EmptyList(t *testing.T) {
	c := newCursor(2, 0, 5)
	c.Move(3)
	if c.Pos() != 0 {
		t.Errorf("Pos() = %d, want 0", c.Pos())
	}
	if start, end := c.Window(); start != 0 || end != 0 {
		t.Errorf("Window() = [%d, %d), want empty", start, end)
	}
}

func TestJump(t *testing.T) {
	c := newCursor(2, 100, 10)

	c.Jump(99)
	if start, end := c.Window(); c.Pos() != 99 || start != 90 || end != 100 {
		t.Errorf("Jump(99): pos %d window [%d, %d), want 99 [90, 100)", c.Pos(), start, end)
	}

	c.Jump(0)
	if start, end := c.Window(); c.Pos() != 0 || start != 0 || end != 10 {
		t.Errorf("Jump(0): pos %d window [%d, %d), want 0 [0, 10)", c.Pos(), start, end)
	}

	c.Jump(-4)
	if c.Pos() != 0 {
		t.Errorf("Jump(-4) pos = %d, want 0", c.Pos())
	}
}

func TestHalfPage(t *testing.T) {
	c := newCursor(2, 50, 10)

	c.HalfPage(1)
	if c.Pos() != 5 {
		t.Errorf("HalfPage(1) pos = %d, want 5", c.Pos())
	}
	c.HalfPage(-1)
	c.HalfPage(-1)
	if c.Pos() != 0 {
		t.Errorf("HalfPage(-1) x2 pos = %d, want 0", c.Pos())
	}

	tiny := newCursor(0, 5, 1)
	tiny.HalfPage(1)
	if tiny.Pos() != 1 {
		t.Errorf("HalfPage on a one-row window pos = %d, want 1", tiny.Pos())
	}
}

func TestResize(t *testing.T) {
	tests := []struct {
		name      string
		pos       int
		n, height int
		wantPos   int
		wantStart int
		wantEnd   int
	}{
		{"list shrinks below the cursor", 40, 10, 5, 9, 5, 10},
		{"list emptied", 40, 0, 5, 0, 0, 0},
		{"window grows past the list", 40, 50, 60, 40, 0, 50},
		{"window shrinks", 40, 50, 4, 40, 38, 42},
		{"zero height", 40, 50, 0, 40, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCursor(2, 50, 10)
			c.Jump(tt.pos)
			c.Resize(tt.n, tt.height)

			if c.Pos() != tt.wantPos {
				t.Errorf("Pos() = %d, want %d", c.Pos(), tt.wantPos)
			}
			start, end := c.Window()
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("Window() = [%d, %d), want [%d, %d)", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}
