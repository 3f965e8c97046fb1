// Package stderr captures output that native audio libraries (ALSA, the
// MP3 and FLAC decoders) write straight to file descriptor 2, so it does
// not draw over the terminal UI.
package stderr

import (
	"bufio"
	"io"
	"strings"
	"sync"
)

const (
	bufferedLines = 100
	keptLines     = 20
)

// Capture owns a redirected stderr. Lines are delivered on Lines until Stop.
type Capture struct {
	restore func()
	write   func(string)
	lines   chan string

	mu   sync.Mutex
	tail []string
	done chan struct{}
	once sync.Once
}

func newCapture(r io.Reader, restore func(), write func(string)) *Capture {
	c := &Capture{
		restore: restore,
		write:   write,
		lines:   make(chan string, bufferedLines),
		done:    make(chan struct{}),
	}
	go c.read(r)
	return c
}

func (c *Capture) read(r io.Reader) {
	defer close(c.done)
	defer close(c.lines)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		c.keep(line)
		select {
		case c.lines <- line:
		default:
			// Nobody is reading fast enough; the line is still in the tail.
		}
	}
}

func (c *Capture) keep(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.tail) == keptLines {
		c.tail = c.tail[1:]
	}
	c.tail = append(c.tail, line)
}

// Lines delivers captured lines. It is closed after Stop.
func (c *Capture) Lines() <-chan string {
	return c.lines
}

// WriteOriginal writes to the terminal's stderr, bypassing the capture.
func (c *Capture) WriteOriginal(msg string) {
	c.write(msg)
}

// Stop restores stderr and returns the last captured lines.
func (c *Capture) Stop() []string {
	c.once.Do(func() {
		c.restore()
		<-c.done
	})
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.tail...)
}
