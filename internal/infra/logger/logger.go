package logger

import (
	"log/slog"
	"os"
)

// New builds the process logger: readable text at debug level in dev, JSON at
// info level everywhere else. Every record carries the service name so the
// dashboard's logs are filterable next to the relay's.
func New(env string) *slog.Logger {
	var h slog.Handler
	if env == "dev" {
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return slog.New(h).With("service", "warehouse-inventory")
}
