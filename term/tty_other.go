//go:build !darwin && !dragonfly && !freebsd && !linux && !netbsd && !openbsd

package term

func OpenTTY() (*FileDesc, error) {
	return nil, ErrUnsupported
}

func GetTTY() (*FileDesc, error) {
	return nil, ErrUnsupported
}

func IsTerminal(fd int) bool {
	return false
}

func FlushInput(fd int) error {
	return ErrUnsupported
}

func writeFd(fd int, p []byte) (int, error) {
	return 0, ErrUnsupported
}

func closeFd(fd int) error {
	return ErrUnsupported
}
