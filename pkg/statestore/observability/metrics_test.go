package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// setupMetricsTest creates a test meter provider and returns a function to collect metrics.
func setupMetricsTest(t *testing.T) (*sdkmetric.ManualReader, func()) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	originalProvider := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)

	cleanup := func() {
		otel.SetMeterProvider(originalProvider)
		if err := provider.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down meter provider: %v", err)
		}
	}

	return reader, cleanup
}

// collectMetrics collects all metrics from the reader.
func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) *metricdata.ResourceMetrics {
	var rm metricdata.ResourceMetrics
	err := reader.Collect(context.Background(), &rm)
	require.NoError(t, err)
	return &rm
}

// findMetric finds a metric by name in the collected data.
func findMetric(rm *metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

// sumFor returns the counter value of the datapoint carrying attr=value.
func sumFor(t *testing.T, m *metricdata.Metrics, attr, value string) (int64, bool) {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "Expected Sum type")
	for _, dp := range sum.DataPoints {
		if v, ok := dp.Attributes.Value(attribute.Key(attr)); ok && v.AsString() == value {
			return dp.Value, true
		}
	}
	return 0, false
}

func TestNewMetricsRecorder(t *testing.T) {
	_, cleanup := setupMetricsTest(t)
	defer cleanup()

	recorder := NewMetricsRecorder()
	require.NotNil(t, recorder)

	_, isNoop := recorder.(NoopMetrics)
	assert.False(t, isNoop, "Expected real metrics recorder, got noop")
}

func TestRecordRegister(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("counts calls per store", func(t *testing.T) {
		m.RecordRegister(ctx, "services", 3, "")
		m.RecordRegister(ctx, "services", 1, "")

		rm := collectMetrics(t, reader)
		metric := findMetric(rm, "statestore.register.count")
		require.NotNil(t, metric)

		v, found := sumFor(t, metric, "store", "services")
		require.True(t, found)
		assert.Equal(t, int64(2), v)
	})

	t.Run("records key depth on success", func(t *testing.T) {
		rm := collectMetrics(t, reader)
		metric := findMetric(rm, "statestore.key.depth")
		require.NotNil(t, metric)

		hist, ok := metric.Data.(metricdata.Histogram[int64])
		require.True(t, ok, "Expected Histogram type")
		require.NotEmpty(t, hist.DataPoints)
	})

	t.Run("records errors by kind", func(t *testing.T) {
		m.RecordRegister(ctx, "services", 0, "double_separator")

		rm := collectMetrics(t, reader)
		metric := findMetric(rm, "statestore.errors")
		require.NotNil(t, metric)

		v, found := sumFor(t, metric, "kind", "double_separator")
		require.True(t, found)
		assert.Equal(t, int64(1), v)
	})
}

func TestRecordResolve(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)
	ctx := context.Background()

	m.RecordResolve(ctx, "cache", 2, "")
	m.RecordResolve(ctx, "cache", 2, "not_found")

	rm := collectMetrics(t, reader)

	resolves := findMetric(rm, "statestore.resolve.count")
	require.NotNil(t, resolves)
	sum, ok := resolves.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	assert.Equal(t, int64(2), total)

	errs := findMetric(rm, "statestore.errors")
	require.NotNil(t, errs)
	v, found := sumFor(t, errs, "operation", "resolve")
	require.True(t, found)
	assert.Equal(t, int64(1), v)
}
