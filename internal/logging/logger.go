// Package logging provides the process-wide structured logger.
//
// Logging is disabled by default so that embedding the editing core in a
// host is silent; hosts call SetLevel or Configure to turn it on.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// LevelOff is above every slog level and disables output.
const LevelOff = slog.Level(1000)

var logger atomic.Pointer[slog.Logger]

func init() {
	Configure(os.Stderr, LevelOff)
}

// Configure replaces the logger with a text handler writing to w at level.
func Configure(w io.Writer, level slog.Level) {
	logger.Store(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})))
}

// SetLevel keeps writing to stderr at the given level.
func SetLevel(level slog.Level) {
	Configure(os.Stderr, level)
}

// SetLogger installs a caller-built logger.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger.Store(l)
	}
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return logger.Load()
}

// With returns a logger carrying the given attributes.
func With(args ...any) *slog.Logger {
	return logger.Load().With(args...)
}

// ParseLevel converts a level name to a slog.Level. Unknown names and "off"
// disable logging.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return LevelOff
	}
}

func Debug(msg string, args ...any) {
	logger.Load().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	logger.Load().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	logger.Load().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	logger.Load().Error(msg, args...)
}
