package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) *metricdata.ResourceMetrics {
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return &rm
}

func findSum(rm *metricdata.ResourceMetrics, name string) (metricdata.Sum[int64], bool) {
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				s, ok := m.Data.(metricdata.Sum[int64])
				return s, ok
			}
		}
	}
	return metricdata.Sum[int64]{}, false
}

func total(s metricdata.Sum[int64]) int64 {
	var n int64
	for _, dp := range s.DataPoints {
		n += dp.Value
	}
	return n
}

func TestMetricsExported(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = provider.Shutdown(context.Background()) }()

	m, err := New(provider)
	require.NoError(t, err)

	m.EventQueued("MOUSEMOVE")
	m.EventQueued("MOUSEMOVE")
	m.EventQueued("A")
	m.MoveCoalesced()
	m.Dispatched("keymap", true)
	m.Dispatched("keymap", false)
	m.Dispatched("ui", false)
	m.Notified(3)

	rm := collect(t, reader)

	queued, ok := findSum(rm, "wm.events.queued")
	require.True(t, ok)
	assert.Equal(t, int64(3), total(queued))
	assert.Len(t, queued.DataPoints, 2, "one point per event type")

	dispatched, ok := findSum(rm, "wm.dispatch.events")
	require.True(t, ok)
	assert.Equal(t, int64(3), total(dispatched))

	notified, ok := findSum(rm, "wm.msgbus.notifications")
	require.True(t, ok)
	assert.Equal(t, int64(3), total(notified))
}

func TestSnapshot(t *testing.T) {
	m := Noop()
	m.EventQueued("A")
	m.TrackpadMerged()
	m.RepeatDropped()
	m.EventForwarded()
	m.Dispatched("modal", true)
	m.Dispatched("modal", false)
	m.Published("property")
	m.Notified(2)
	m.Notified(0)

	assert.Equal(t, Snapshot{
		Queued:         1,
		TrackpadMerged: 1,
		RepeatsDropped: 1,
		Forwarded:      1,
		Matched:        1,
		Unmatched:      1,
		Published:      1,
		Notified:       2,
	}, m.Snapshot())
}
