package term

import "golang.org/x/sys/unix"

// FlushInput discards input the terminal received but nobody read yet
func FlushInput(fd int) error {
	return unix.IoctlSetInt(fd, unix.TCFLSH, unix.TCIFLUSH)
}
