//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd

package term

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

const ttyPath = "/dev/tty"

// OpenTTY opens the controlling terminal for reading and writing
func OpenTTY() (*FileDesc, error) {
	fd, err := unix.Open(ttyPath, unix.O_RDWR|unix.O_CLOEXEC, 0o666)
	if err != nil {
		return nil, &os.PathError{Op: "open", Path: ttyPath, Err: err}
	}
	return Owned(fd), nil
}

// GetTTY returns the descriptor terminal replies should be read from: standard
// input when it is a terminal, otherwise the controlling terminal
func GetTTY() (*FileDesc, error) {
	stdin := int(os.Stdin.Fd())
	if term.IsTerminal(stdin) {
		return Borrowed(stdin), nil
	}
	return OpenTTY()
}

// IsTerminal reports if fd refers to a terminal
func IsTerminal(fd int) bool {
	return term.IsTerminal(fd)
}

func writeFd(fd int, p []byte) (int, error) {
	written := 0
	for written < len(p) {
		n, err := unix.Write(fd, p[written:])
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return written, err
		}
		written += n
	}
	return written, nil
}

func closeFd(fd int) error {
	return unix.Close(fd)
}
