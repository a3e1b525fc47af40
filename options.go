package termi

import (
	"io"
	"os"
	"time"

	"git.sr.ht/~rockorager/termi/log"
	"git.sr.ht/~rockorager/termi/term"
)

// DefaultTimeout is how long queries wait for the terminal to reply
const DefaultTimeout = 2 * time.Second

// Options configure a query. The zero value queries the terminal the process
// is attached to
type Options struct {
	// Timeout is how long to wait for the terminal to reply. When zero,
	// TERMI_TIMEOUT is used if set, otherwise DefaultTimeout
	Timeout time.Duration
	// TTY is the terminal to query. When nil, replies are read from
	// standard input if it is a terminal and from the controlling
	// terminal otherwise
	TTY *os.File
	// Output receives the query if the controlling terminal can't be
	// opened for writing. Defaults to os.Stdout. Unused when TTY is set
	Output io.Writer
}

func (o Options) withDefaults() Options {
	o.applyEnv()
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.Output == nil {
		o.Output = os.Stdout
	}
	return o
}

func (o *Options) applyEnv() {
	if o.Timeout > 0 {
		return
	}
	if s := os.Getenv("TERMI_TIMEOUT"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d <= 0 {
			log.Warn("ignoring invalid TERMI_TIMEOUT %q", s)
			return
		}
		o.Timeout = d
	}
}

// openDevice opens the controlling terminal for writing queries
var openDevice = term.OpenTTY

// openTTY returns the descriptor replies are read from
func (o Options) openTTY() (*term.FileDesc, error) {
	if o.TTY != nil {
		return term.Borrowed(int(o.TTY.Fd())), nil
	}
	return term.GetTTY()
}

// writeQuery sends a query to the terminal. It prefers opening the
// controlling terminal over writing to Output, which may be redirected
func (o Options) writeQuery(query string) error {
	if o.TTY != nil {
		_, err := io.WriteString(o.TTY, query)
		return err
	}
	tty, err := openDevice()
	if err != nil {
		log.Warn("couldn't open terminal for writing, using fallback output: %v", err)
		_, err = io.WriteString(o.Output, query)
		return err
	}
	defer tty.Close()
	_, err = tty.Write([]byte(query))
	return err
}
