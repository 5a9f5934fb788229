package app

import (
	"context"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/dshills/wmevent/internal/metrics"
)

// newMetrics creates the pipeline instruments on an SDK meter provider
// backed by a manual reader, so the status line and tests can collect
// without an exporter.
func newMetrics() (*metrics.Metrics, *sdkmetric.ManualReader, func() error, error) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := metrics.New(provider)
	if err != nil {
		_ = provider.Shutdown(context.Background())
		return nil, nil, nil, err
	}
	flush := func() error {
		return provider.Shutdown(context.Background())
	}
	return m, reader, flush, nil
}

// collectCount sums an int64 counter collected from reader.
func collectCount(ctx context.Context, reader *sdkmetric.ManualReader, name string) (int64, error) {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		return 0, err
	}
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					total += dp.Value
				}
			}
		}
	}
	return total, nil
}
