package telemetry

import (
	"context"
	"testing"

	"github.com/shopdesk/backoffice/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLoggerProvider_Disabled(t *testing.T) {
	lp, err := NewLoggerProvider(context.Background(), config.TelemetryConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, lp.IsEnabled())
	assert.NoError(t, lp.Shutdown(context.Background()))

	base := zap.NewExample()
	assert.Same(t, base, lp.Bridge(base, zapcore.InfoLevel))
}

func TestLevelFilterCore(t *testing.T) {
	inner, logs := observer.New(zapcore.DebugLevel)
	core := &levelFilterCore{Core: inner, minLevel: zapcore.WarnLevel}
	log := zap.New(core)

	log.Debug("dropped")
	log.Info("dropped")
	log.Warn("kept")
	log.With(zap.String("slip", "PN-1")).Error("kept too")

	require.Equal(t, 2, logs.Len())
	entries := logs.All()
	assert.Equal(t, "kept", entries[0].Message)
	assert.Equal(t, "PN-1", entries[1].ContextMap()["slip"])
	assert.False(t, core.With(nil).Enabled(zapcore.InfoLevel))
}

func TestTeeLogger(t *testing.T) {
	baseCore, baseLogs := observer.New(zapcore.InfoLevel)
	extraCore, extraLogs := observer.New(zapcore.WarnLevel)
	log := teeLogger(zap.New(baseCore), extraCore)

	log.Info("order placed", zap.Int64("order_id", 7))
	log.Warn("transition rejected")

	assert.Equal(t, 2, baseLogs.Len())
	require.Equal(t, 1, extraLogs.Len())
	assert.Equal(t, "transition rejected", extraLogs.All()[0].Message)
}
