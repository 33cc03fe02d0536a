package statestore

import (
	"log/slog"

	"github.com/randalmurphal/statestore/pkg/statestore/observability"
)

// Option configures a Store.
type Option[V any] func(*Store[V])

// WithName names the store. The name is attached to log records,
// metric attributes and span attributes.
func WithName[V any](name string) Option[V] {
	return func(s *Store[V]) {
		s.name = name
	}
}

// WithLogger sets the diagnostic sink for failed and replacing operations.
// Default: slog.Default(). A nil logger disables diagnostics.
func WithLogger[V any](logger *slog.Logger) Option[V] {
	return func(s *Store[V]) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics recorder.
// Default: observability.NoopMetrics{}.
//
// Example:
//
//	s := statestore.New[any](statestore.WithMetrics[any](observability.NewMetricsRecorder()))
func WithMetrics[V any](m observability.MetricsRecorder) Option[V] {
	return func(s *Store[V]) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithSpanManager sets the span manager used for tracing.
// Default: observability.NoopSpanManager{}.
func WithSpanManager[V any](sm observability.SpanManager) Option[V] {
	return func(s *Store[V]) {
		if sm != nil {
			s.spans = sm
		}
	}
}

// WithStrictSegments rejects string segments that start with an integer
// literal, such as "11" in "11.basim", with ErrKeyType. Integer keys are
// unaffected. Default: false.
func WithStrictSegments[V any](strict bool) Option[V] {
	return func(s *Store[V]) {
		s.strict = strict
	}
}
