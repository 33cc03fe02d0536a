// Package observability provides diagnostics for statestore: structured
// logging, metrics, and tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// Metrics and tracing are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"strings"
)

// EnrichLogger adds the store name to a logger.
//
// Example:
//
//	enriched := EnrichLogger(logger, "services")
//	enriched.Warn("lookup failed") // includes store=services
func EnrichLogger(logger *slog.Logger, store string) *slog.Logger {
	if logger == nil {
		return nil
	}
	if store == "" {
		return logger
	}
	return logger.With(slog.String("store", store))
}

// LogRegistered logs a successful registration.
func LogRegistered(logger *slog.Logger, key string, depth int) {
	if logger == nil {
		return
	}
	logger.Debug("value registered",
		slog.String("key", key),
		slog.Int("depth", depth),
	)
}

// LogReplacedLeaf logs a registration that turned an existing value into a
// namespace to make room for a deeper key.
func LogReplacedLeaf(logger *slog.Logger, key string, index int, path []string) {
	if logger == nil {
		return
	}
	logger.Warn("value replaced by namespace",
		slog.String("key", key),
		slog.Int("index", index),
		slog.String("path", strings.Join(path, ".")),
	)
}

// LogKeyError logs a key that could not be parsed.
func LogKeyError(logger *slog.Logger, op, key string, index int, kind string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("invalid key",
		slog.String("operation", op),
		slog.String("key", key),
		slog.Int("index", index),
		slog.String("kind", kind),
		slog.String("error", err.Error()),
	)
}

// LogLookupError logs a resolve that did not reach a value.
func LogLookupError(logger *slog.Logger, key, segment string, index int, path []string, kind string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("lookup failed",
		slog.String("key", key),
		slog.String("segment", segment),
		slog.Int("index", index),
		slog.String("path", strings.Join(path, ".")),
		slog.String("kind", kind),
		slog.String("error", err.Error()),
	)
}
