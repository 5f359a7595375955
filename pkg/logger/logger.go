package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Log is usable before Init; it falls back to the process default logger.
var Log = slog.Default()

func Init(w io.Writer, level string) {
	if w == nil {
		w = os.Stdout
	}
	// JSON handler for production-ready logging
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	Log = slog.New(handler)
}

// ParseLevel maps a LOG_LEVEL value to a slog level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
