// Package logger builds the application's structured logger.
package logger

import (
	"io"
	"log/slog"
	"strings"

	"github.com/conorfennell/flashflow/internal/config"
)

// New creates a logger writing to w at the configured level and format and
// installs it as the slog default. An unknown level falls back to info.
func New(cfg config.LogConfig, w io.Writer) *slog.Logger {
	level, ok := parseLevel(cfg.Level)
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	log := slog.New(handler)
	slog.SetDefault(log)

	if !ok {
		log.Warn("invalid log level configured, using default level",
			"configured_level", cfg.Level,
			"default_level", "info")
	}
	return log
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
