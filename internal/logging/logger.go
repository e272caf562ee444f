package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup installs the global slog logger: JSON to stdout, tagged with the
// service name, level taken from LOG_LEVEL (default info).
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: levelFromEnv(),
	})
	slog.SetDefault(slog.New(handler).With("service", "lostfound-backend"))
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
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
