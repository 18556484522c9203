package obs

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// NewLogger builds the process logger: tinted console output at debug level
// for local development, JSON with source locations everywhere else. Every
// record carries the service name and environment.
func NewLogger(env string) *slog.Logger {
	var handler slog.Handler
	if env == "dev" || env == "local" {
		handler = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:     slog.LevelInfo,
			AddSource: true,
		})
	}
	return slog.New(handler).With("service", "motorent", "env", env)
}
