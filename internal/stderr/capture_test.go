package stderr

import (
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestCapture_DeliversLines(t *testing.T) {
	r, w := io.Pipe()
	c := newCapture(r, func() { w.Close() }, func(string) {})

	go func() {
		fmt.Fprintln(w, "ALSA lib pcm.c:8545: underrun occurred")
		fmt.Fprintln(w, "   ")
		fmt.Fprintln(w, "second")
	}()

	if got := <-c.Lines(); got != "ALSA lib pcm.c:8545: underrun occurred" {
		t.Errorf("first line = %q", got)
	}
	if got := <-c.Lines(); got != "second" {
		t.Errorf("second line = %q, want blank lines skipped", got)
	}

	tail := c.Stop()
	if len(tail) != 2 {
		t.Errorf("Stop() = %v, want 2 lines", tail)
	}
	if _, ok := <-c.Lines(); ok {
		t.Error("Lines() still open after Stop")
	}
}

func TestCapture_TailKeepsLastLines(t *testing.T) {
	var b strings.Builder
	for i := range keptLines + 5 {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	c := newCapture(strings.NewReader(b.String()), func() {}, func(string) {})

	tail := c.Stop()
	if len(tail) != keptLines {
		t.Fatalf("len(Stop()) = %d, want %d", len(tail), keptLines)
	}
	if tail[0] != "line 5" || tail[keptLines-1] != fmt.Sprintf("line %d", keptLines+4) {
		t.Errorf("tail = %v, want the last %d lines", tail, keptLines)
	}
}

func TestCapture_WriteOriginal(t *testing.T) {
	var got string
	c := newCapture(strings.NewReader(""), func() {}, func(s string) { got += s })

	c.WriteOriginal("fatal\n")
	c.Stop()

	if got != "fatal\n" {
		t.Errorf("WriteOriginal wrote %q, want %q", got, "fatal\n")
	}
}

func TestCapture_StopIsIdempotent(t *testing.T) {
	restores := 0
	c := newCapture(strings.NewReader("x\n"), func() { restores++ }, func(string) {})

	c.Stop()
	c.Stop()

	if restores != 1 {
		t.Errorf("restore calls = %d, want 1", restores)
	}
}
