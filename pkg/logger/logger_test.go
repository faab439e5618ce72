package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &Logger{Logger: zap.New(core)}, logs
}

func TestErrorAttachesError(t *testing.T) {
	log, logs := observed()

	log.Error("failed to save ticket", errors.New("disk full"), zap.String("tenant_id", "t-1"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	fields := entry.ContextMap()
	assert.Equal(t, "disk full", fields["error"])
	assert.Equal(t, "t-1", fields["tenant_id"])
}

func TestNamedAndWith(t *testing.T) {
	log, logs := observed()

	log.Named("index-worker").With(zap.Int("worker", 2)).Infof("processed %d messages", 3)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "index-worker", entry.LoggerName)
	assert.Equal(t, "processed 3 messages", entry.Message)
	assert.Equal(t, int64(2), entry.ContextMap()["worker"])
}

func TestNewLoggerHonoursLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")

	log := NewLogger("production")

	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
}
