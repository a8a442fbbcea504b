package telemetry

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type widget struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100"`
}

func newWidgetDB(t *testing.T) (*gorm.DB, *sql.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&widget{}))
	return db, sqlDB
}

func TestNewDBMetrics_NilMeter(t *testing.T) {
	_, err := NewDBMetrics(nil, nil, 0)
	assert.ErrorIs(t, err, ErrMeterNil)
}

func TestDBMetrics_RecordsQueries(t *testing.T) {
	meter, reader := newTestMeter(t)
	db, _ := newWidgetDB(t)
	m, err := NewDBMetrics(meter, nil, time.Nanosecond)
	require.NoError(t, err)
	require.NoError(t, db.Use(m))
	ctx := context.Background()

	require.NoError(t, db.WithContext(ctx).Create(&widget{Name: "bolt"}).Error)
	var found widget
	require.NoError(t, db.WithContext(ctx).First(&found).Error)
	var missing widget
	require.ErrorIs(t, db.WithContext(ctx).First(&missing, 999).Error, gorm.ErrRecordNotFound)
	require.Error(t, db.WithContext(ctx).Exec("SELECT * FROM nowhere").Error)

	rm := collect(t, reader)
	assert.Equal(t, int64(1), counterValue(t, rm, "db_query_total", AttrDBOperation.String("create"), AttrDBTable.String("widgets")))
	assert.Equal(t, int64(2), counterValue(t, rm, "db_query_total", AttrDBOperation.String("query"), AttrDBStatus.String("ok")))
	assert.Equal(t, int64(1), counterValue(t, rm, "db_query_total", AttrDBStatus.String("error")))
	assert.Equal(t, counterValue(t, rm, "db_query_total"), counterValue(t, rm, "db_slow_query_total"))
}

func TestDBMetrics_DefaultThresholdSkipsFastQueries(t *testing.T) {
	meter, reader := newTestMeter(t)
	db, _ := newWidgetDB(t)
	m, err := NewDBMetrics(meter, nil, 0)
	require.NoError(t, err)
	require.NoError(t, db.Use(m))

	require.NoError(t, db.Create(&widget{Name: "nut"}).Error)

	rm := collect(t, reader)
	assert.Equal(t, int64(1), counterValue(t, rm, "db_query_total"))
	if _, recorded := findMetric(rm, "db_slow_query_total"); recorded {
		assert.Zero(t, counterValue(t, rm, "db_slow_query_total"))
	}
}

func TestDBMetrics_PoolGauges(t *testing.T) {
	meter, reader := newTestMeter(t)
	_, sqlDB := newWidgetDB(t)
	_, err := NewDBMetrics(meter, sqlDB, 0)
	require.NoError(t, err)

	rm := collect(t, reader)
	m, ok := findMetric(rm, "db_pool_connections")
	require.True(t, ok)
	gauge, ok := m.Data.(metricdata.Gauge[int64])
	require.True(t, ok)

	states := map[string]int64{}
	for _, dp := range gauge.DataPoints {
		state, _ := dp.Attributes.Value(AttrDBPoolState)
		states[state.AsString()] = dp.Value
	}
	assert.Len(t, states, 4)
	assert.Equal(t, int64(1), states["max"])

	_, ok = findMetric(rm, "db_pool_wait_total")
	assert.True(t, ok)
}
