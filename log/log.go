// Package log is the leveled logger used throughout termi. Nothing is written
// until a handler is installed with SetHandler
package log

import (
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/slog"
)

const (
	LevelError int = iota
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

// levelTrace sits below slog.LevelDebug
const levelTrace = slog.Level(-8)

var (
	level  = LevelError
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	slogLevels = [...]slog.Level{
		LevelError: slog.LevelError,
		LevelWarn:  slog.LevelWarn,
		LevelInfo:  slog.LevelInfo,
		LevelDebug: slog.LevelDebug,
		LevelTrace: levelTrace,
	}
	names = [...]string{
		LevelError: "error",
		LevelWarn:  "warn",
		LevelInfo:  "info",
		LevelDebug: "debug",
		LevelTrace: "trace",
	}
)

// SetLevel sets the most verbose level logged, clamped to LevelError..LevelTrace
func SetLevel(l int) {
	switch {
	case l < LevelError:
		l = LevelError
	case l > LevelTrace:
		l = LevelTrace
	}
	level = l
}

// SetHandler sends all further records to h
func SetHandler(h slog.Handler) {
	logger = slog.New(h)
}

// SlogLevel returns the slog.Level records of level l are logged at. Use it to
// configure the minimum level of a handler passed to SetHandler
func SlogLevel(l int) slog.Level {
	if l < LevelError || l > LevelTrace {
		return slog.LevelError
	}
	return slogLevels[l]
}

// ParseLevel parses a level name such as "debug" or "trace"
func ParseLevel(s string) (int, error) {
	for l, name := range names {
		if strings.EqualFold(s, name) {
			return l, nil
		}
	}
	return LevelError, fmt.Errorf("unknown log level %q", s)
}

func output(l int, format string, args ...any) {
	if level < l {
		return
	}
	message := format
	if len(args) > 0 {
		message = fmt.Sprintf(format, args...)
	}
	logger.Log(context.Background(), slogLevels[l], message)
}

func Trace(format string, args ...any) {
	output(LevelTrace, format, args...)
}

func Debug(format string, args ...any) {
	output(LevelDebug, format, args...)
}

func Info(format string, args ...any) {
	output(LevelInfo, format, args...)
}

func Warn(format string, args ...any) {
	output(LevelWarn, format, args...)
}

func Error(format string, args ...any) {
	output(LevelError, format, args...)
}
