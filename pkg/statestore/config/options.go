package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/randalmurphal/statestore/pkg/statestore"
	"github.com/randalmurphal/statestore/pkg/statestore/observability"
)

// StoreOptions builds store options from a configuration section.
//
// Recognized keys:
//
//	name: services          # store name for logs, metrics, spans
//	strict_segments: false  # reject numeric-looking string segments
//	diagnostics: true       # false silences the diagnostic logger
//	log_level: warn         # debug|info|warn|error; text handler on stderr
//	metrics: false          # record OpenTelemetry metrics
//	tracing: false          # record OpenTelemetry spans
//
// A non-nil logger takes precedence over log_level.
func StoreOptions[V any](c Config, logger *slog.Logger) []statestore.Option[V] {
	var opts []statestore.Option[V]

	if name := c.String("name", ""); name != "" {
		opts = append(opts, statestore.WithName[V](name))
	}
	if c.Bool("strict_segments", false) {
		opts = append(opts, statestore.WithStrictSegments[V](true))
	}

	switch {
	case !c.Bool("diagnostics", true):
		opts = append(opts, statestore.WithLogger[V](nil))
	case logger != nil:
		opts = append(opts, statestore.WithLogger[V](logger))
	case c.Has("log_level"):
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: parseLevel(c.String("log_level", "")),
		})
		opts = append(opts, statestore.WithLogger[V](slog.New(handler)))
	}

	if c.Bool("metrics", false) {
		opts = append(opts, statestore.WithMetrics[V](observability.NewMetricsRecorder()))
	}
	if c.Bool("tracing", false) {
		opts = append(opts, statestore.WithSpanManager[V](observability.NewSpanManager()))
	}
	return opts
}

// parseLevel maps a level name to a slog.Level, defaulting to warn.
func parseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
