// Package termi detects optional terminal features by querying the terminal
// and waiting for its reply.
//
// Each query is followed by a primary device attributes request. Terminals
// answer those in order, so a DA1 reply arriving first means the feature is
// not supported. A terminal which answers nothing before the deadline makes
// the query fail with ErrTimeout.
package termi

import (
	"errors"
	"fmt"

	"git.sr.ht/~rockorager/termi/log"
	"git.sr.ht/~rockorager/termi/term"
)

// ErrTimeout is returned when the terminal sent no reply at all before the
// deadline. Support is unknown: the terminal may be slow or may not answer
// device attribute queries
var ErrTimeout = errors.New("terminal did not reply before the deadline")

// query puts the terminal in raw mode, sends q followed by a primary device
// attributes query and waits for the first event matching filter. filter
// must match PrimaryDeviceAttributes: every terminal answers it, so getting
// it first means the terminal ignored q. In that case query returns a nil
// Event
func query(opts Options, q string, filter Filter) (Event, error) {
	opts = opts.withDefaults()

	tty, err := opts.openTTY()
	if err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	defer tty.Close()

	raw, err := term.MakeRaw(tty.Fd())
	if err != nil {
		return nil, fmt.Errorf("enter raw mode: %w", err)
	}
	defer raw.Restore()

	loop, err := NewEventLoop(tty.Fd())
	if err != nil {
		return nil, err
	}

	log.Debug("writing query %q", q+primaryAttributes)
	if err := opts.writeQuery(q + primaryAttributes); err != nil {
		return nil, fmt.Errorf("write query: %w", err)
	}

	deadline := newPollTimeout(opts.Timeout)
	ok, err := loop.Poll(deadline.leftover(), filter)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrTimeout
	}
	ev, err := loop.Read(filter)
	if err != nil {
		return nil, err
	}
	if _, ok := ev.(PrimaryDeviceAttributes); ok {
		log.Debug("primary device attributes received before a reply")
		return nil, nil
	}
	log.Debug("reply received: %#v", ev)

	// The DA1 reply is still on its way. Take it out of the input so it
	// isn't mistaken for a reply to a later query
	da := primaryDeviceAttributesFilter{}
	if ok, err := loop.Poll(deadline.leftover(), da); ok && err == nil {
		_, _ = loop.Read(da)
	}
	return ev, nil
}
