package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level represents logging severity.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

const maxVerbosity = 4

var (
	mu               sync.RWMutex
	currentLevel     = LevelWarn
	currentVerbosity = 0
	std              = log.New(os.Stderr, "", log.LstdFlags|log.Lmsgprefix)
)

// SetOutput redirects log lines, e.g. to keep them off the game trace on stdout.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// SetVerbosity configures logger output from count of -v flags (0-4).
func SetVerbosity(count int) {
	if count < 0 {
		count = 0
	}
	if count > maxVerbosity {
		count = maxVerbosity
	}
	mu.Lock()
	defer mu.Unlock()
	currentVerbosity = count
	currentLevel = LevelForVerbosity(count)
}

// LevelForVerbosity maps a -v count to the level it enables.
func LevelForVerbosity(count int) Level {
	switch {
	case count <= 0:
		return LevelWarn
	case count == 1:
		return LevelInfo
	case count == 2:
		return LevelDebug
	default:
		return LevelTrace
	}
}

// Verbosity returns the stored -v count.
func Verbosity() int {
	mu.RLock()
	defer mu.RUnlock()
	return currentVerbosity
}

// LevelName returns current level label.
func LevelName() string {
	mu.RLock()
	defer mu.RUnlock()
	return currentLevel.String()
}

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarn:
		return "warn"
	case LevelInfo:
		return "info"
	case LevelDebug:
		return "debug"
	case LevelTrace:
		return "trace"
	default:
		return "unknown"
	}
}

// ParseLevel returns Level + verbosity count from string.
func ParseLevel(s string) (Level, int, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return LevelError, 0, nil
	case "warn", "warning":
		return LevelWarn, 0, nil
	case "info":
		return LevelInfo, 1, nil
	case "debug":
		return LevelDebug, 2, nil
	case "trace":
		return LevelTrace, maxVerbosity, nil
	default:
		return LevelWarn, Verbosity(), fmt.Errorf("unknown level %q", s)
	}
}

// Enabled reports whether messages at l are currently printed.
func Enabled(l Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return l <= currentLevel
}

func logf(l Level, prefix, format string, args ...any) {
	if !Enabled(l) {
		return
	}
	msg := fmt.Sprintf(format, args...)
	std.Printf("[%s] %s", strings.ToUpper(prefix), msg)
}

// Errorf always prints.
func Errorf(format string, args ...any) {
	logf(LevelError, "err", format, args...)
}

func Warnf(format string, args ...any) {
	logf(LevelWarn, "warn", format, args...)
}

func Infof(format string, args ...any) {
	logf(LevelInfo, "info", format, args...)
}

func Debugf(format string, args ...any) {
	logf(LevelDebug, "dbg", format, args...)
}

func Tracef(format string, args ...any) {
	logf(LevelTrace, "trc", format, args...)
}
