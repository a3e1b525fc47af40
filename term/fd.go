// Package term gives access to the terminal a process is attached to
package term

import (
	"errors"
	"os"
)

var (
	// ErrUnsupported is returned on platforms without termios
	ErrUnsupported = errors.New("term: terminal access not supported on this platform")
	// ErrActive is returned by MakeRaw when the descriptor is already in a
	// raw mode session
	ErrActive = errors.New("term: raw mode already active on descriptor")
)

// FileDesc is a terminal file descriptor. An owned descriptor was opened by
// this package and is closed by Close. A borrowed descriptor belongs to
// someone else (usually os.Stdin) and Close leaves it open
type FileDesc struct {
	fd     int
	owned  bool
	closed bool
}

// Owned wraps a descriptor the caller is responsible for closing
func Owned(fd int) *FileDesc {
	return &FileDesc{fd: fd, owned: true}
}

// Borrowed wraps a descriptor which must never be closed through the
// FileDesc
func Borrowed(fd int) *FileDesc {
	return &FileDesc{fd: fd}
}

// Fd returns the raw descriptor
func (f *FileDesc) Fd() int {
	return f.fd
}

// IsOwned reports if Close releases the descriptor
func (f *FileDesc) IsOwned() bool {
	return f.owned
}

// Write writes all of p to the descriptor
func (f *FileDesc) Write(p []byte) (int, error) {
	if f.closed {
		return 0, os.ErrClosed
	}
	return writeFd(f.fd, p)
}

// Close closes an owned descriptor. It is a no-op for borrowed ones. Closing
// an owned descriptor a second time returns os.ErrClosed
func (f *FileDesc) Close() error {
	if !f.owned {
		return nil
	}
	if f.closed {
		return os.ErrClosed
	}
	f.closed = true
	return closeFd(f.fd)
}
