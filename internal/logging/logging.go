// Package logging wraps log/slog with the small leveled-logger shape the
// driver and module loader need: a package-level default logger writing
// to stderr (so stdout stays free for diagnostic output), configurable
// level, and Debug/Info/Warn/Error helpers that take a message plus
// key-value pairs, in place of the teacher's log.Printf-with-%v calls.
package logging

import (
	"log/slog"
	"os"
)

var defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

// SetLevel adjusts the default logger's minimum level; "debug" turns on
// the per-file/per-module tracing the driver and loader emit.
func SetLevel(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn", "":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelWarn
	}
	defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func Debug(msg string, args ...any) { defaultLogger.Debug(msg, args...) }
func Info(msg string, args ...any)  { defaultLogger.Info(msg, args...) }
func Warn(msg string, args ...any)  { defaultLogger.Warn(msg, args...) }
func Error(msg string, args ...any) { defaultLogger.Error(msg, args...) }
