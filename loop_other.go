//go:build !darwin && !dragonfly && !freebsd && !linux && !netbsd && !openbsd

package termi

import (
	"time"

	"git.sr.ht/~rockorager/termi/term"
)

type fdSource int

func (fd fdSource) wait(timeout time.Duration) (bool, error) {
	return false, term.ErrUnsupported
}

func (fd fdSource) read(p []byte) (int, error) {
	return 0, term.ErrUnsupported
}
