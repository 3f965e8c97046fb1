//go:build !windows

package stderr

import (
	"os"
	"syscall"
)

// Start redirects file descriptor 2 into a pipe. Call it early in main,
// before any audio library is initialized. On error stderr is untouched
// and the program can carry on without capture.
func Start() (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	fd := int(os.Stderr.Fd())
	orig, err := syscall.Dup(fd)
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}
	if err := syscall.Dup2(int(w.Fd()), fd); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	restore := func() {
		_ = syscall.Dup2(orig, fd)
		_ = syscall.Close(orig)
		// fd 2 no longer refers to the pipe, so closing w ends the reader.
		w.Close()
	}
	write := func(msg string) {
		_, _ = syscall.Write(orig, []byte(msg))
	}
	c := newCapture(r, restore, write)
	go func() {
		<-c.done
		r.Close()
	}()
	return c, nil
}
