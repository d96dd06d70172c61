package logging

import (
	"io"
	"log/slog"
)

// New creates a JSON slog logger writing to w with the supplied level
// string. Diagnostics go to stderr in the CLI so that stdout stays reserved
// for report documents.
func New(level string, w io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	return slog.New(handler)
}

func parseLevel(level string) slog.Leveler {
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
