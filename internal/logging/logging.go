// Package logging provides a shared, structured logger for the memo application.
//
// It wraps the standard library's [log/slog] package and provides a single
// initialization point so all components share the same handlers and log
// level. The log level can be controlled at startup via the MEMO_LOG_LEVEL
// environment variable (debug, info, warn, error). If unset, the default
// level is INFO.
//
// Usage:
//
//	log := logging.New("storage")      // creates a logger tagged with component="storage"
//	log.Warn("cannot save note content: storage inaccessible", "error", err)
//
// The terminal UI owns stdout and the alternate screen, so records are fanned
// out to a JSON log file (MEMO_LOG_FILE, default ~/.memo/memo.log) and, only
// when MEMO_LOG_STDERR is set, to stderr as text. MEMO_LOG_FILE=off disables
// the file.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	slogmulti "github.com/samber/slog-multi"
)

var (
	// initLogger ensures the base logger is created exactly once across all
	// goroutines, even if multiple components call New concurrently.
	initLogger sync.Once

	// baseLogger is the singleton logger instance shared by all components.
	// Component-specific loggers are derived from this via With().
	baseLogger *slog.Logger

	// logFile opens on the first record and is closed by Close.
	logFile = &lazyFile{}
)

// New returns a structured logger scoped to the given component name.
//
// If component is empty, the base logger is returned without any additional
// attributes. The underlying base logger is lazily initialized on the first
// call and reused for all subsequent calls.
func New(component string) *slog.Logger {
	initLogger.Do(func() {
		level := parseLevel(os.Getenv("MEMO_LOG_LEVEL"))
		var stderr io.Writer
		if os.Getenv("MEMO_LOG_STDERR") != "" {
			stderr = os.Stderr
		}
		baseLogger = slog.New(newHandler(level, stderr, logFile))
	})
	if component == "" {
		return baseLogger
	}
	return baseLogger.With("component", component)
}

// Close closes the log file, if one was opened.
func Close() error {
	return logFile.Close()
}

// lazyFile resolves and opens the log file on the first write, so the path
// is read after a test binary's TestMain has set MEMO_LOG_FILE. If the file
// cannot be opened, records are dropped.
type lazyFile struct {
	mu     sync.Mutex
	f      *os.File
	opened bool
}

func (l *lazyFile) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.opened {
		l.opened = true
		if f, err := openLogFile(logFilePath()); err == nil {
			l.f = f
		}
	}
	if l.f == nil {
		return len(p), nil
	}
	return l.f.Write(p)
}

func (l *lazyFile) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	return err
}

// newHandler fans records out to every non-nil writer. With no writers at all
// the records are discarded.
func newHandler(level slog.Level, stderr, file io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	var handlers []slog.Handler
	if stderr != nil {
		handlers = append(handlers, slog.NewTextHandler(stderr, opts))
	}
	if file != nil {
		handlers = append(handlers, slog.NewJSONHandler(file, opts))
	}
	if len(handlers) == 0 {
		handlers = append(handlers, slog.NewTextHandler(io.Discard, opts))
	}
	return slogmulti.Fanout(handlers...)
}

// logFilePath returns "" when MEMO_LOG_FILE is "off".
func logFilePath() string {
	path := strings.TrimSpace(os.Getenv("MEMO_LOG_FILE"))
	if strings.EqualFold(path, "off") {
		return ""
	}
	if path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".memo", "memo.log")
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, os.ErrNotExist
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}

// parseLevel converts a human-readable log level string to a [slog.Level].
//
// Recognized values (case-insensitive, whitespace-trimmed):
//   - "debug"           → slog.LevelDebug
//   - "warn", "warning" → slog.LevelWarn
//   - "error"           → slog.LevelError
//   - anything else     → slog.LevelInfo (the default)
func parseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
