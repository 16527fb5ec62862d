package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/iudanet/possync/internal/sync"
)

// SyncMetricsMeterName is the name used for the sync metrics meter
const SyncMetricsMeterName = "github.com/iudanet/possync/sync"

// SyncMetrics holds the OpenTelemetry instruments for sync cycles
type SyncMetrics struct {
	cycleDuration metric.Float64Histogram
	cycles        metric.Int64Counter
	rows          metric.Int64Counter
	reachable     metric.Int64Gauge
	cursor        metric.Float64Gauge
}

// NewSyncMetrics creates a new SyncMetrics instance with the given meter provider.
// If provider is nil, it returns nil (no-op metrics).
func NewSyncMetrics(provider metric.MeterProvider) (*SyncMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(SyncMetricsMeterName)

	cycleDuration, err := meter.Float64Histogram(
		"possync_cycle_duration_seconds",
		metric.WithDescription("Duration of sync cycles in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300),
	)
	if err != nil {
		return nil, err
	}

	cycles, err := meter.Int64Counter(
		"possync_cycles_total",
		metric.WithDescription("Number of finished sync cycles"),
		metric.WithUnit("{cycle}"),
	)
	if err != nil {
		return nil, err
	}

	rows, err := meter.Int64Counter(
		"possync_rows_total",
		metric.WithDescription("Rows moved between replicas by table, phase and outcome"),
		metric.WithUnit("{row}"),
	)
	if err != nil {
		return nil, err
	}

	reachable, err := meter.Int64Gauge(
		"possync_endpoint_reachable",
		metric.WithDescription("1 if the endpoint was reachable in the last cycle"),
	)
	if err != nil {
		return nil, err
	}

	cursor, err := meter.Float64Gauge(
		"possync_cursor_timestamp_seconds",
		metric.WithDescription("Pull cursor of each table as Unix time"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &SyncMetrics{
		cycleDuration: cycleDuration,
		cycles:        cycles,
		rows:          rows,
		reachable:     reachable,
		cursor:        cursor,
	}, nil
}

// ObserveCycle implements sync.Observer
func (m *SyncMetrics) ObserveCycle(ctx context.Context, res *sync.Result) {
	if m == nil {
		return
	}

	healthy := attribute.Bool("healthy", res.Clean())
	m.cycleDuration.Record(ctx, res.Duration().Seconds(), metric.WithAttributes(healthy))
	m.cycles.Add(ctx, 1, metric.WithAttributes(healthy))

	m.reachable.Record(ctx, boolToInt64(res.LocalReachable), metric.WithAttributes(attribute.String("role", "local")))
	m.reachable.Record(ctx, boolToInt64(res.RemoteReachable), metric.WithAttributes(attribute.String("role", "remote")))

	for _, t := range res.Tables {
		m.recordRows(ctx, t.Table, "push", t.Push.Succeeded, t.Push.Failed)
		m.recordRows(ctx, t.Table, "pull", t.Pull.Succeeded, t.Pull.Failed)

		if !t.Pull.CursorAfter.IsZero() {
			m.cursor.Record(ctx, float64(t.Pull.CursorAfter.UnixMilli())/1000,
				metric.WithAttributes(attribute.String("table", t.Table)))
		}
	}
}

func (m *SyncMetrics) recordRows(ctx context.Context, table, phase string, ok, failed int) {
	if ok > 0 {
		m.rows.Add(ctx, int64(ok), metric.WithAttributes(
			attribute.String("table", table),
			attribute.String("phase", phase),
			attribute.String("outcome", "success"),
		))
	}
	if failed > 0 {
		m.rows.Add(ctx, int64(failed), metric.WithAttributes(
			attribute.String("table", table),
			attribute.String("phase", phase),
			attribute.String("outcome", "failure"),
		))
	}
}

func boolToInt64(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
