// Package logger wires the process-wide slog default: JSON lines on stdout
// with source locations, so every package logs through plain slog calls.
package logger

import (
	"log/slog"
	"os"
)

// Setup installs the default JSON logger at the given level.
func Setup(level slog.Level) {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
		Level:     level,
	})
	slog.SetDefault(slog.New(handler))
}

// ParseLevel maps a log-level flag value ("debug", "info", "warn", "error")
// to slog.Level. Anything unrecognized falls back to info.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
