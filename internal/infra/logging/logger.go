// Package logging provides file-based logging for vaultpipe.
// Entries go to Logs/vaultpipe.log and are mirrored to stderr so the
// watcher and the orchestrator share one auditable process log.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/runoshun/vaultpipe/internal/domain"
)

// Ensure Logger implements domain.Logger.
var _ domain.Logger = (*Logger)(nil)

// Logger writes leveled log lines to a file and an optional mirror writer.
// Fields are ordered to minimize memory padding.
type Logger struct {
	file   *os.File
	mirror io.Writer
	path   string
	mu     sync.Mutex
	level  slog.Level
}

// New creates a Logger writing to the given path, mirroring to stderr.
// If path is empty, only the mirror is used.
func New(path string, level slog.Level) *Logger {
	return &Logger{path: path, level: level, mirror: os.Stderr}
}

// Discard returns a logger that drops everything. For tests.
func Discard() *Logger {
	return &Logger{level: slog.LevelError + 4, mirror: io.Discard}
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Close closes the log file if open.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// ensureFile opens the log file lazily. Callers hold l.mu.
func (l *Logger) ensureFile() *os.File {
	if l.file != nil || l.path == "" {
		return l.file
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0o750); err != nil {
		return nil
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // log readable by owner and group
	if err != nil {
		return nil
	}
	l.file = f
	return f
}

// formatLine formats a log entry.
// Format: [2025-12-30 09:32:51] [INFO] [category] message
func formatLine(t time.Time, level slog.Level, category, msg string) string {
	return fmt.Sprintf("[%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		levelToString(level),
		category,
		msg,
	)
}

func levelToString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func (l *Logger) log(level slog.Level, category, msg string) {
	if level < l.level {
		return
	}

	line := formatLine(time.Now(), level, category, msg)

	l.mu.Lock()
	defer l.mu.Unlock()
	if f := l.ensureFile(); f != nil {
		_, _ = io.WriteString(f, line)
	}
	if l.mirror != nil {
		_, _ = io.WriteString(l.mirror, line)
	}
}

// Debug logs a debug message.
func (l *Logger) Debug(category, msg string) {
	l.log(slog.LevelDebug, category, msg)
}

// Info logs an info message.
func (l *Logger) Info(category, msg string) {
	l.log(slog.LevelInfo, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(category, msg string) {
	l.log(slog.LevelWarn, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(category, msg string) {
	l.log(slog.LevelError, category, msg)
}
