package termi

import (
	"errors"
	"fmt"
	"io"
	"syscall"
	"time"

	"git.sr.ht/~rockorager/termi/log"
	"git.sr.ht/~rockorager/termi/term"
)

const ttyBufferLen = 1024

// source is the input an EventLoop reads from
type source interface {
	// wait blocks until the source can be read or the timeout elapses. A
	// negative timeout waits forever, a zero timeout doesn't block
	wait(timeout time.Duration) (bool, error)
	read(p []byte) (int, error)
}

// EventLoop reads and decodes replies from a terminal. Events which a caller
// isn't waiting for are kept, in order, for later calls.
//
// An EventLoop is not safe for concurrent use
type EventLoop struct {
	src     source
	buf     [ttyBufferLen]byte
	decoder *decoder
	// events are decoded events not yet returned by Read
	events *queue[Event]
	// skipped holds the events examined and not matched by the current
	// Poll or Read
	skipped []Event
}

// NewEventLoop returns an EventLoop reading from fd. Input already pending on
// fd is discarded
func NewEventLoop(fd int) (*EventLoop, error) {
	if err := term.FlushInput(fd); err != nil {
		return nil, fmt.Errorf("flush terminal input: %w", err)
	}
	return newEventLoop(fdSource(fd)), nil
}

func newEventLoop(src source) *EventLoop {
	return &EventLoop{
		src:     src,
		decoder: newDecoder(),
		events:  newQueue[Event](),
		skipped: make([]Event, 0, 32),
	}
}

// Poll reports if an event matching filter is available, waiting at most
// timeout for one to arrive. A zero timeout checks without blocking, Forever
// waits without a deadline. A matching event is moved to the front of the
// queue, where the next Read will find it
func (l *EventLoop) Poll(timeout time.Duration, filter Filter) (bool, error) {
	if l.events.anyMatch(filter.Match) {
		return true, nil
	}

	t := newPollTimeout(timeout)
	for {
		ev, err := l.tryRead(t.leftover())
		if err != nil {
			l.restoreSkipped()
			return false, err
		}
		if ev != nil {
			if filter.Match(ev) {
				l.restoreSkipped()
				l.events.pushFront(ev)
				return true, nil
			}
			l.skipped = append(l.skipped, ev)
		}
		// Events already decoded are examined even when time is up
		if t.leftover() == 0 && !l.decoder.pending() {
			l.restoreSkipped()
			return false, nil
		}
	}
}

// Read blocks until an event matching filter is available and returns it.
// Events skipped over stay queued in their original order
func (l *EventLoop) Read(filter Filter) (Event, error) {
	for {
		for {
			ev, ok := l.events.pop()
			if !ok {
				break
			}
			if filter.Match(ev) {
				l.events.prepend(l.skipped)
				l.clearSkipped()
				return ev, nil
			}
			l.skipped = append(l.skipped, ev)
		}
		if _, err := l.Poll(Forever, filter); err != nil {
			return nil, err
		}
	}
}

// restoreSkipped puts the skipped events back at the end of the queue. The
// queue only ever holds events older than the skipped ones when this is
// called
func (l *EventLoop) restoreSkipped() {
	l.events.extend(l.skipped)
	l.clearSkipped()
}

func (l *EventLoop) clearSkipped() {
	for i := range l.skipped {
		l.skipped[i] = nil
	}
	l.skipped = l.skipped[:0]
}

// tryRead returns the next decoded event, reading from the source until one
// is complete or timeout elapses. It returns a nil Event on timeout
func (l *EventLoop) tryRead(timeout time.Duration) (Event, error) {
	if ev, ok := l.decoder.next(); ok {
		return ev, nil
	}

	t := newPollTimeout(timeout)
	leftover := t.leftover()
	for {
		ready, err := l.src.wait(leftover)
		switch {
		case isTransient(err):
			log.Trace("wait interrupted: %v", err)
		case err != nil:
			return nil, err
		case !ready:
			return nil, nil
		default:
			ev, err := l.readOnce()
			if err != nil {
				return nil, err
			}
			if ev != nil {
				return ev, nil
			}
		}

		leftover = t.leftover()
		if leftover == 0 {
			return nil, nil
		}
	}
}

// readOnce reads whatever the source has and decodes it. It returns the first
// completed event, if any
func (l *EventLoop) readOnce() (Event, error) {
	for {
		n, err := l.src.read(l.buf[:])
		switch {
		case errors.Is(err, syscall.EINTR):
			continue
		case errors.Is(err, syscall.EAGAIN):
			return nil, nil
		case err != nil:
			return nil, err
		case n == 0:
			return nil, io.EOF
		}
		log.Trace("[stdin] read %q", l.buf[:n])
		l.decoder.advance(l.buf[:n])
		ev, _ := l.decoder.next()
		return ev, nil
	}
}

// isTransient reports if a failed wait should be retried
func isTransient(err error) bool {
	return errors.Is(err, syscall.EINTR) || errors.Is(err, syscall.EAGAIN)
}
