// Package logging provides file-based logging for taskdeck.
// It writes to a single log file under the data directory
// (e.g., ~/.local/share/taskdeck/logs/taskdeck.log) so CLI and
// TUI output stay clean.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"taskdeck/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// LogFileName is the name of the log file inside the logs directory.
const LogFileName = "taskdeck.log"

// Logger writes formatted log entries to a file.
// Fields are ordered to minimize memory padding.
type Logger struct {
	file    *os.File
	dataDir string
	mu      sync.Mutex
	level   slog.Level
}

// New creates a new Logger that writes under dataDir/logs.
// If dataDir is empty, logging is disabled (returns a no-op logger).
func New(dataDir string, level slog.Level) *Logger {
	return &Logger{
		dataDir: dataDir,
		level:   level,
	}
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

// LogPath returns the path of the log file.
func (l *Logger) LogPath() string {
	return filepath.Join(l.dataDir, "logs", LogFileName)
}

// ensureFile opens or returns the log file.
func (l *Logger) ensureFile() (*os.File, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		return l.file, nil
	}

	if err := os.MkdirAll(filepath.Join(l.dataDir, "logs"), 0o750); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}

	f, err := os.OpenFile(l.LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l.file = f
	return f, nil
}

// Close closes the log file.
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

// formatLog formats a log entry.
// Format: [2025-12-30 09:32:51] [INFO] [category] message key=value
func formatLog(t time.Time, level slog.Level, category, msg string, args []any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] [%s] [%s] %s",
		t.Format("2006-01-02 15:04:05"),
		levelToString(level),
		category,
		msg,
	)
	for i := 0; i+1 < len(args); i += 2 {
		fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
	}
	b.WriteString("\n")
	return b.String()
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

// log writes a log entry if the level passes the threshold.
func (l *Logger) log(level slog.Level, category, msg string, args []any) {
	if l.dataDir == "" {
		return // Logging disabled
	}

	if level < l.level {
		return // Skip if below minimum level
	}

	entry := formatLog(time.Now(), level, category, msg, args)
	if f, err := l.ensureFile(); err == nil {
		_, _ = io.WriteString(f, entry)
	}
}

// Debug logs a debug message.
func (l *Logger) Debug(category, msg string, args ...any) {
	l.log(slog.LevelDebug, category, msg, args)
}

// Info logs an info message.
func (l *Logger) Info(category, msg string, args ...any) {
	l.log(slog.LevelInfo, category, msg, args)
}

// Warn logs a warning message.
func (l *Logger) Warn(category, msg string, args ...any) {
	l.log(slog.LevelWarn, category, msg, args)
}

// Error logs an error message.
func (l *Logger) Error(category, msg string, args ...any) {
	l.log(slog.LevelError, category, msg, args)
}
