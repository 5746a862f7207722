// Package logging provides noteskeep's structured logger: a thin wrapper
// around log/slog with optional file rotation via lumberjack.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps slog.Logger with the Info/Warn/Error/Debug surface used
// throughout noteskeep's commands and workspace operations.
type Logger struct {
	logger *slog.Logger
}

// Options configures New.
type Options struct {
	// Level is one of "debug", "info", "warn", "error". Defaults to "info".
	Level string
	// File, if non-empty, directs output to a rotating log file instead of
	// stderr.
	File string
	// JSON selects slog's JSON handler instead of the text handler.
	JSON bool
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// New builds a Logger per opts. A non-empty File routes output through a
// lumberjack.Logger so long-running commands (daemonless but potentially
// scripted in a loop) don't grow an unbounded log file.
func New(opts Options) *Logger {
	var w io.Writer = os.Stderr
	if opts.File != "" {
		w = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
	}

	handlerOpts := &slog.HandlerOptions{Level: parseLevel(opts.Level)}
	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	return &Logger{logger: slog.New(handler)}
}

// Discard returns a Logger that drops everything, for tests.
func Discard() *Logger {
	return &Logger{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func (l *Logger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

// With returns a Logger that always includes the given key/value pairs.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{logger: l.logger.With(args...)}
}

// Slog returns the underlying *slog.Logger for callers that need direct
// slog interop.
func (l *Logger) Slog() *slog.Logger { return l.logger }
