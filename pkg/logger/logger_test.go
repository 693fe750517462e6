package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"quiz_assessment_backend/internal/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		name  string
		level string
		mode  string
		want  zapcore.Level
	}{
		{"debug mode default", "", "debug", zap.DebugLevel},
		{"release mode default", "", "release", zap.InfoLevel},
		{"explicit level", "warn", "debug", zap.WarnLevel},
		{"unknown level falls back", "loud", "release", zap.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, levelFor(tt.level, tt.mode))
		})
	}
}

func TestNew_ConsoleOnly(t *testing.T) {
	var buf bytes.Buffer
	log := New(config.LogConfig{Level: "warn"}, "debug", &buf)

	log.Info("hidden")
	log.Warn("shown", zap.String("project", "ABC123"))
	require.NoError(t, log.Sync())

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "ABC123")
}

func TestNew_WritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	var buf bytes.Buffer
	log := New(config.LogConfig{File: path, MaxSizeMB: 1}, "release", &buf)

	log.Info("submitted", zap.String("period", "baseline"))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"submitted"`)
	assert.Contains(t, string(data), `"period":"baseline"`)
	assert.Contains(t, buf.String(), "submitted")
}
