// Package logger writes threadchat's debug log.
//
// The TUI owns the terminal, so nothing may be printed to stdout or stderr while
// it runs. Everything goes to a text log file instead (DefaultLogPath unless Init
// was called with another path).
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l LogLevel) toSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DefaultLogPath is where the log goes when Init is never called.
const DefaultLogPath = "/tmp/threadchat-debug.log"

var (
	mu           sync.Mutex
	slogLogger   *slog.Logger
	levelVar     = new(slog.LevelVar)
	logFile      *os.File
	logPath      string
	initDone     bool
	currentLevel = LevelInfo
)

// SetLevel sets the minimum log level to output
func SetLevel(level LogLevel) {
	mu.Lock()
	defer mu.Unlock()
	currentLevel = level
	levelVar.Set(level.toSlogLevel())
}

// SetDebug enables debug level logging
func SetDebug(enabled bool) {
	if enabled {
		SetLevel(LevelDebug)
	} else {
		SetLevel(LevelInfo)
	}
}

// Init opens path for appending and routes all logging there.
// Calling Init again without Reset is a no-op.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if initDone {
		return nil
	}
	return openLocked(path)
}

// InitWriter routes logging to w. Used by tests and by CLI subcommands that
// want to discard output.
func InitWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()
	install(w)
	logPath = ""
	initDone = true
}

func openLocked(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	logFile = f
	logPath = path
	install(f)
	initDone = true
	slogLogger.Info("Logger initialized", "path", path)
	return nil
}

func install(w io.Writer) {
	levelVar.Set(currentLevel.toSlogLevel())
	slogLogger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelVar}))
}

func ensureInitLocked() {
	if initDone {
		return
	}
	if err := openLocked(DefaultLogPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		// Don't retry on every call.
		install(io.Discard)
		initDone = true
	}
}

func logf(level slog.Level, format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	ensureInitLocked()
	if !slogLogger.Enabled(context.Background(), level) {
		return
	}
	slogLogger.Log(context.Background(), level, fmt.Sprintf(format, args...))
}

// Debug writes a debug message to the log file (only if level is LevelDebug)
func Debug(format string, args ...interface{}) {
	logf(slog.LevelDebug, format, args...)
}

// Info writes an info message to the log file
func Info(format string, args ...interface{}) {
	logf(slog.LevelInfo, format, args...)
}

// Warn writes a warning message to the log file
func Warn(format string, args ...interface{}) {
	logf(slog.LevelWarn, format, args...)
}

// Error writes an error message to the log file
func Error(format string, args ...interface{}) {
	logf(slog.LevelError, format, args...)
}

// Path returns the file currently being written, or "" when logging to a writer.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// Close closes the log file
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	slogLogger = nil
	initDone = false
}

func closeLocked() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// Reset resets the logger state, allowing reinitialization.
// This is primarily for testing purposes.
func Reset() {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()
	initDone = false
	logPath = ""
	slogLogger = nil
	currentLevel = LevelInfo
	levelVar = new(slog.LevelVar)
}

// ClearLogs removes the default log file. Returns the number of files removed.
func ClearLogs() (int, error) {
	if err := os.Remove(DefaultLogPath); err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	return 1, nil
}

// WithComponent returns a slog.Logger with the component attribute pre-attached.
//
//	log := logger.WithComponent("api")
//	log.Info("request done", "path", path, "status", code)
func WithComponent(component string) *slog.Logger {
	return with(slog.String("component", component))
}

// WithThread returns a slog.Logger scoped to a conversation thread.
func WithThread(threadID string) *slog.Logger {
	return with(slog.String("threadID", threadID))
}

func with(attr slog.Attr) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	ensureInitLocked()
	return slogLogger.With(attr)
}
