package observability

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records statestore metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordRegister records a register call. kind is empty on success,
	// otherwise the failure class.
	RecordRegister(ctx context.Context, store string, depth int, kind string)

	// RecordResolve records a resolve call. kind is empty on success.
	RecordResolve(ctx context.Context, store string, depth int, kind string)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	registers metric.Int64Counter
	resolves  metric.Int64Counter
	errors    metric.Int64Counter
	keyDepth  metric.Int64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("statestore")

	registers, err := meter.Int64Counter("statestore.register.count",
		metric.WithDescription("Number of register calls"),
	)
	if err != nil {
		return nil, err
	}

	resolves, err := meter.Int64Counter("statestore.resolve.count",
		metric.WithDescription("Number of resolve calls"),
	)
	if err != nil {
		return nil, err
	}

	errs, err := meter.Int64Counter("statestore.errors",
		metric.WithDescription("Number of failed register or resolve calls"),
	)
	if err != nil {
		return nil, err
	}

	keyDepth, err := meter.Int64Histogram("statestore.key.depth",
		metric.WithDescription("Number of path segments per key"),
		metric.WithUnit("{segment}"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		registers: registers,
		resolves:  resolves,
		errors:    errs,
		keyDepth:  keyDepth,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordRegister records a register call.
func (m *otelMetrics) RecordRegister(ctx context.Context, store string, depth int, kind string) {
	m.record(ctx, m.registers, "register", store, depth, kind)
}

// RecordResolve records a resolve call.
func (m *otelMetrics) RecordResolve(ctx context.Context, store string, depth int, kind string) {
	m.record(ctx, m.resolves, "resolve", store, depth, kind)
}

func (m *otelMetrics) record(ctx context.Context, counter metric.Int64Counter, op, store string, depth int, kind string) {
	attrs := []attribute.KeyValue{
		attribute.String("store", store),
		attribute.Bool("success", kind == ""),
	}
	counter.Add(ctx, 1, metric.WithAttributes(attrs...))

	if kind != "" {
		m.errors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("store", store),
			attribute.String("operation", op),
			attribute.String("kind", kind),
		))
		return
	}
	m.keyDepth.Record(ctx, int64(depth), metric.WithAttributes(
		attribute.String("store", store),
		attribute.String("operation", op),
	))
}
