package cli

import (
	"io"
	"log/slog"
)

// newLogger builds the diagnostic logger. Unknown levels fall back to warn.
func newLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(level)}))
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelWarn
	}
	return l
}

func debugEnabled(level string) bool {
	return parseLevel(level) <= slog.LevelDebug
}
