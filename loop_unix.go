//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd

package termi

import (
	"time"

	"golang.org/x/sys/unix"
)

// fdSource reads from a file descriptor, waiting with poll(2)
type fdSource int

func (fd fdSource) wait(timeout time.Duration) (bool, error) {
	fds := []unix.PollFd{
		{Fd: int32(fd), Events: unix.POLLIN},
	}
	n, err := unix.Poll(fds, pollMillis(timeout))
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

func (fd fdSource) read(p []byte) (int, error) {
	return unix.Read(int(fd), p)
}
