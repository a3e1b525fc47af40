package termi

import (
	"math"
	"strconv"
	"time"
)

// Forever makes EventLoop.Poll wait without a deadline
const Forever time.Duration = -1

// pollTimeout tracks how much of a timeout is left. A zero timeout never
// blocks, a negative one never expires
type pollTimeout struct {
	timeout time.Duration
	start   time.Time
}

func newPollTimeout(timeout time.Duration) pollTimeout {
	return pollTimeout{
		timeout: timeout,
		start:   time.Now(),
	}
}

// leftover returns the time remaining, measured on the monotonic clock. It
// returns Forever for timeouts which never expire
func (t pollTimeout) leftover() time.Duration {
	switch {
	case t.timeout < 0:
		return Forever
	case t.timeout == 0:
		return 0
	}
	elapsed := time.Since(t.start)
	if elapsed >= t.timeout {
		return 0
	}
	return t.timeout - elapsed
}

// maxPollTimeout is the largest timeout in milliseconds safe to pass to
// poll(2). Kernels before 2.6.37 treat timeouts above LONG_MAX / CONFIG_HZ
// (about 30 minutes with CONFIG_HZ=1200) as infinite on 32 bit platforms.
// 1789569 is the limit libuv uses
func maxPollTimeout() int64 {
	if strconv.IntSize == 32 {
		return 1789569
	}
	return math.MaxInt32
}

// pollMillis converts d to a poll(2) timeout. Partial milliseconds round up so
// a small positive leftover doesn't turn into a non-blocking poll. Negative
// durations wait forever
func pollMillis(d time.Duration) int {
	if d < 0 {
		return -1
	}
	ms := int64(d / time.Millisecond)
	if d%time.Millisecond != 0 {
		ms += 1
	}
	if max := maxPollTimeout(); ms > max {
		ms = max
	}
	return int(ms)
}
