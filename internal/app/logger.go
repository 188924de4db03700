package app

import (
	"log/slog"
	"os"
)

// NewLogger returns the process logger. LOG_FORMAT=json selects JSON output
// for production; anything else falls back to the text handler used in
// development. Every record carries the service name so the compass API and
// worker logs can be told apart when shipped to the same sink.
func NewLogger(cfg *Config, service string) *slog.Logger {
	opts := &slog.HandlerOptions{AddSource: true}
	var handler slog.Handler
	if cfg != nil && cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler).With(slog.String("service", service))
}
