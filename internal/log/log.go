// ABOUTME: Leveled printf logging over slog levels with a swappable sink.
// ABOUTME: Defaults to io.Discard so nothing lands on the tty while raw mode owns it.

package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Level constants matching slog levels.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var (
	level atomic.Int64

	mu  sync.Mutex
	out io.Writer = io.Discard
)

func init() {
	level.Store(int64(LevelInfo))
}

// SetLevel sets the global log level.
func SetLevel(l slog.Level) {
	level.Store(int64(l))
}

// GetLevel returns the current log level.
func GetLevel() slog.Level {
	return slog.Level(level.Load())
}

// ParseLevel maps a level name ("debug", "info", "warn", "error") to its
// slog level. Matching is case-insensitive.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return LevelInfo, fmt.Errorf("parsing log level %q: %w", s, err)
	}
	return l, nil
}

// SetOutput replaces the sink. A nil writer discards.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = io.Discard
	}
	out = w
}

// Writer returns the current sink.
func Writer() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return out
}

// OpenFile opens path for appending, creating parent directories as needed.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

func enabled(l slog.Level) bool {
	return slog.Level(level.Load()) <= l
}

func emit(tag, format string, args []any) {
	msg := fmt.Sprintf(format, args...)
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(out, "%s [%s] %s\n", time.Now().Format(time.TimeOnly), tag, msg)
}

// Debug logs a debug message if the level allows it.
func Debug(format string, args ...any) {
	if enabled(LevelDebug) {
		emit("DEBUG", format, args)
	}
}

// Info logs an info message if the level allows it.
func Info(format string, args ...any) {
	if enabled(LevelInfo) {
		emit("INFO", format, args)
	}
}

// Warn logs a warning message if the level allows it.
func Warn(format string, args ...any) {
	if enabled(LevelWarn) {
		emit("WARN", format, args)
	}
}

// Error logs an error message (always emitted).
func Error(format string, args ...any) {
	emit("ERROR", format, args)
}
