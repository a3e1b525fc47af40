//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd

package termi

import (
	"bytes"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
	xterm "golang.org/x/term"
)

// fakeTerminal opens a pty and answers every query written to it. A query
// ends with the primary device attributes request. reply returns what the
// terminal sends back
func fakeTerminal(t *testing.T, reply func(query string) string) *os.File {
	t.Helper()
	ptmx, tty, err := pty.Open()
	require.NoError(t, err)
	t.Cleanup(func() {
		ptmx.Close()
		tty.Close()
	})

	go func() {
		var pending []byte
		buf := make([]byte, 256)
		for {
			n, err := ptmx.Read(buf)
			if err != nil {
				return
			}
			pending = append(pending, buf[:n]...)
			for {
				i := bytes.Index(pending, []byte(primaryAttributes))
				if i < 0 {
					break
				}
				end := i + len(primaryAttributes)
				query := string(pending[:end])
				pending = pending[end:]
				if r := reply(query); r != "" {
					_, _ = ptmx.Write([]byte(r))
				}
			}
		}
	}()
	return tty
}

// assertNoInput fails if anything is left unread on tty
func assertNoInput(t *testing.T, tty *os.File) {
	fds := []unix.PollFd{{Fd: int32(tty.Fd()), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, 50)
	require.NoError(t, err)
	assert.Zero(t, n, "unread input left on the terminal")
}

func TestQueryKeyboardEnhancement(t *testing.T) {
	queries := make(chan string, 1)
	tty := fakeTerminal(t, func(q string) string {
		queries <- q
		return "\x1b[?5u\x1b[?62;22c"
	})
	before, err := xterm.GetState(int(tty.Fd()))
	require.NoError(t, err)

	flags, ok, err := QueryKeyboardEnhancement(Options{TTY: tty})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, DisambiguateEscapeCodes|ReportAlternateKeys, flags)
	assert.Equal(t, "\x1b[?u\x1b[0c", <-queries)

	after, err := xterm.GetState(int(tty.Fd()))
	require.NoError(t, err)
	assert.Equal(t, before, after, "terminal mode restored")
	assertNoInput(t, tty)
}

func TestQueryKeyboardEnhancementUnsupported(t *testing.T) {
	tty := fakeTerminal(t, func(string) string {
		return "\x1b[?62;22c"
	})

	flags, ok, err := QueryKeyboardEnhancement(Options{TTY: tty})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, flags)
}

func TestQueryTimeout(t *testing.T) {
	tty := fakeTerminal(t, func(string) string { return "" })
	before, err := xterm.GetState(int(tty.Fd()))
	require.NoError(t, err)

	start := time.Now()
	_, ok, err := QueryKeyboardEnhancement(Options{TTY: tty, Timeout: 100 * time.Millisecond})
	elapsed := time.Since(start)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.False(t, ok)
	assert.GreaterOrEqual(t, elapsed, 100*time.Millisecond)
	assert.Less(t, elapsed, DefaultTimeout)

	after, err := xterm.GetState(int(tty.Fd()))
	require.NoError(t, err)
	assert.Equal(t, before, after, "terminal mode restored")
}

var notificationQueryRe = regexp.MustCompile(`^\x1b\]99;i=([a-zA-Z0-9_\-+.]+):p=\?;\x1b\\\x1b\[0c$`)

func TestQueryDesktopNotifications(t *testing.T) {
	tty := fakeTerminal(t, func(q string) string {
		m := notificationQueryRe.FindStringSubmatch(q)
		if m == nil {
			return "\x1b[?62c"
		}
		return "\x1b]99;i=someone-else:p=?;a=report\x1b\\" +
			"\x1b]99;i=" + m[1] + ":p=?;a=focus,report:o=always\x1b\\" +
			"\x1b[?62c"
	})

	support, ok, err := QueryDesktopNotifications(Options{TTY: tty})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Regexp(t, `^[0-9a-f]{32}$`, support.Identifier)
	assert.Equal(t, map[string][]string{
		"a": {"focus", "report"},
		"o": {"always"},
	}, support.Options)
	assertNoInput(t, tty)
}

func TestQueryDesktopNotificationsUnsupported(t *testing.T) {
	tty := fakeTerminal(t, func(string) string {
		return "\x1b[?62;22c"
	})

	_, ok, err := QueryDesktopNotifications(Options{TTY: tty})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestQueryDesktopNotificationsOtherIdentifier(t *testing.T) {
	tty := fakeTerminal(t, func(string) string {
		return "\x1b]99;i=someone-else:p=?;a=report\x1b\\"
	})

	_, ok, err := QueryDesktopNotifications(Options{TTY: tty, Timeout: 100 * time.Millisecond})
	assert.ErrorIs(t, err, ErrTimeout)
	assert.False(t, ok)
}
