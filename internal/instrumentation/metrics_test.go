package instrumentation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := NewMetrics(provider.Meter("test"))
	require.NoError(t, err)
	return m, reader
}

func collectedNames(t *testing.T, reader *sdkmetric.ManualReader) map[string]bool {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	names := make(map[string]bool)
	for _, scope := range rm.ScopeMetrics {
		for _, metric := range scope.Metrics {
			names[metric.Name] = true
		}
	}
	return names
}

func TestRecordSearch(t *testing.T) {
	m, reader := newTestMetrics(t)

	m.RecordSearch(context.Background(), StatusSuccess, 250*time.Millisecond, 3)

	names := collectedNames(t, reader)
	assert.True(t, names["slot_searches_total"])
	assert.True(t, names["slot_search_duration_seconds"])
	assert.True(t, names["slots_found_total"])
}

func TestRecordToolInvocation(t *testing.T) {
	m, reader := newTestMetrics(t)

	m.RecordToolInvocation(context.Background(), "slots_find", StatusError, 10*time.Millisecond)

	names := collectedNames(t, reader)
	assert.True(t, names["tool_invocations_total"])
	assert.True(t, names["tool_duration_seconds"])
}

func TestNoOpMetricsDoNotPanic(t *testing.T) {
	var m Metrics

	m.RecordSearch(context.Background(), StatusSuccess, time.Second, 1)
	m.RecordToolInvocation(context.Background(), "slots_find", StatusSuccess, time.Second)
}

func TestDisabledProvider(t *testing.T) {
	provider, err := NewProvider(context.Background(), Config{Enabled: false})
	require.NoError(t, err)

	assert.False(t, provider.Enabled())
	assert.False(t, provider.UsesPrometheus())
	assert.NotNil(t, provider.Metrics())
	assert.NoError(t, provider.Shutdown(context.Background()))
}
