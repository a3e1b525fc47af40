package term

import (
	"sync"

	"golang.org/x/term"

	"git.sr.ht/~rockorager/termi/log"
)

var (
	activeMu sync.Mutex
	// active tracks descriptors with a raw mode session
	active = map[int]bool{}
)

// RawMode is a raw mode session on a terminal. Release it with Restore,
// usually deferred right after MakeRaw succeeds
type RawMode struct {
	fd       int
	state    *term.State
	restored bool
}

// MakeRaw saves the terminal mode of fd and switches it to raw mode: no
// echo, no line buffering, no input or output processing. Only one session
// may be active on a descriptor at a time
func MakeRaw(fd int) (*RawMode, error) {
	activeMu.Lock()
	defer activeMu.Unlock()
	if active[fd] {
		return nil, ErrActive
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	active[fd] = true
	log.Trace("raw mode entered on fd %d", fd)
	return &RawMode{
		fd:    fd,
		state: state,
	}, nil
}

// Restore puts the terminal back in the mode it had when MakeRaw was called.
// Failing to do so is logged and otherwise ignored. Calling Restore more than
// once is a no-op
func (r *RawMode) Restore() {
	activeMu.Lock()
	defer activeMu.Unlock()
	if r.restored {
		return
	}
	r.restored = true
	delete(active, r.fd)
	if err := term.Restore(r.fd, r.state); err != nil {
		log.Warn("couldn't restore terminal mode on fd %d: %v", r.fd, err)
		return
	}
	log.Trace("raw mode restored on fd %d", r.fd)
}
