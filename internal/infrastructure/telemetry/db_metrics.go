package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"gorm.io/gorm"
)

const (
	dbMetricsPrefix      = "db_metrics"
	dbMetricsStartKey    = "db_metrics:start"
	defaultSlowThreshold = 200 * time.Millisecond
)

// DBMetrics is a GORM plugin recording query counts, latency and slow queries,
// plus observable connection pool gauges.
type DBMetrics struct {
	queryTotal    *Counter
	queryDuration *Histogram
	slowQueries   *Counter
	slowThreshold time.Duration
}

var _ gorm.Plugin = (*DBMetrics)(nil)

// NewDBMetrics creates the instruments. Pool gauges are read from sqlDB on
// every collection; a nil sqlDB skips them.
func NewDBMetrics(meter metric.Meter, sqlDB *sql.DB, slowThreshold time.Duration) (*DBMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if slowThreshold <= 0 {
		slowThreshold = defaultSlowThreshold
	}

	m := &DBMetrics{slowThreshold: slowThreshold}
	var err error
	if m.queryTotal, err = NewCounter(meter, "db_query_total", "Database queries executed", "{queries}"); err != nil {
		return nil, err
	}
	if m.slowQueries, err = NewCounter(meter, "db_slow_query_total", "Database queries slower than the threshold", "{queries}"); err != nil {
		return nil, err
	}
	m.queryDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "db_query_duration_seconds",
		Description: "Database query latency",
		Unit:        "s",
		Boundaries:  DBDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	if sqlDB != nil {
		if err := registerPoolGauges(meter, sqlDB); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func registerPoolGauges(meter metric.Meter, sqlDB *sql.DB) error {
	_, err := meter.Int64ObservableGauge("db_pool_connections",
		metric.WithDescription("Connections in the pool by state"),
		metric.WithUnit("{connections}"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			stats := sqlDB.Stats()
			o.Observe(int64(stats.InUse), metric.WithAttributes(AttrDBPoolState.String("in_use")))
			o.Observe(int64(stats.Idle), metric.WithAttributes(AttrDBPoolState.String("idle")))
			o.Observe(int64(stats.OpenConnections), metric.WithAttributes(AttrDBPoolState.String("open")))
			o.Observe(int64(stats.MaxOpenConnections), metric.WithAttributes(AttrDBPoolState.String("max")))
			return nil
		}),
	)
	if err != nil {
		return err
	}
	_, err = meter.Int64ObservableCounter("db_pool_wait_total",
		metric.WithDescription("Connections waited for because the pool was exhausted"),
		metric.WithUnit("{waits}"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(sqlDB.Stats().WaitCount)
			return nil
		}),
	)
	return err
}

// Name implements gorm.Plugin
func (m *DBMetrics) Name() string {
	return dbMetricsPrefix
}

// Initialize implements gorm.Plugin
func (m *DBMetrics) Initialize(db *gorm.DB) error {
	return registerAround(db, dbMetricsPrefix,
		func(tx *gorm.DB) { tx.InstanceSet(dbMetricsStartKey, time.Now()) },
		m.record,
	)
}

func (m *DBMetrics) record(operation string, tx *gorm.DB) {
	v, ok := tx.InstanceGet(dbMetricsStartKey)
	if !ok {
		return
	}
	start, ok := v.(time.Time)
	if !ok {
		return
	}
	elapsed := time.Since(start)

	ctx := tx.Statement.Context
	if ctx == nil {
		ctx = context.Background()
	}
	status := "ok"
	if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		status = "error"
	}
	attrs := []attribute.KeyValue{
		AttrDBOperation.String(operation),
		AttrDBTable.String(tx.Statement.Table),
	}

	m.queryTotal.Inc(ctx, append(attrs, AttrDBStatus.String(status))...)
	m.queryDuration.RecordDuration(ctx, elapsed, attrs...)
	if elapsed > m.slowThreshold {
		m.slowQueries.Inc(ctx, attrs...)
	}
}
