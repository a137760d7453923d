package cli

import (
	"io"
	"log/slog"
	"strings"
)

// newLogger builds the slog logger described by cfg writing to w.
func newLogger(w io.Writer, cfg LogConfig) (*slog.Logger, error) {
	var level slog.Level
	switch strings.ToUpper(cfg.Level) {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO", "":
		level = slog.LevelInfo
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		return nil, ConfigError{Key: "log.level", Value: cfg.Level, Reason: "want debug, info, warn or error"}
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "text", "":
		handler = slog.NewTextHandler(w, opts)
	default:
		return nil, ConfigError{Key: "log.format", Value: cfg.Format, Reason: "want text or json"}
	}
	return slog.New(handler), nil
}
