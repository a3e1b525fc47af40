//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package term

import "golang.org/x/sys/unix"

// FREAD from sys/fcntl.h
const fread = 0x1

// FlushInput discards input the terminal received but nobody read yet
func FlushInput(fd int) error {
	return unix.IoctlSetPointerInt(fd, unix.TIOCFLUSH, fread)
}
