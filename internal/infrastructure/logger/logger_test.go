package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopdesk/backoffice/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestFromLogConfig(t *testing.T) {
	cfg := FromLogConfig(config.LogConfig{Level: "debug", Format: "console", Output: "stderr"})

	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, "console", cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
	assert.Equal(t, defaultTimeFormat, cfg.TimeFormat)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"bogus", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestNew_WritesServiceFieldToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	log, err := New(&Config{Level: "info", Format: "json", Output: path}, "shop-backoffice")
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("visible")
	_ = Sync(log)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"msg":"visible"`)
	assert.Contains(t, out, `"service":"shop-backoffice"`)
	assert.NotContains(t, out, "hidden")
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestNew_DefaultsTimeFormat(t *testing.T) {
	cfg := &Config{Level: "info", Format: "console", Output: "stdout"}

	log, err := New(cfg, "")
	require.NoError(t, err)
	assert.NotNil(t, log)
	assert.Equal(t, defaultTimeFormat, cfg.TimeFormat)
}

func TestCreateWriter_FallsBackToStdout(t *testing.T) {
	w := createWriter(filepath.Join(t.TempDir(), "missing", "dir", "app.log"))
	assert.NotNil(t, w)
}
