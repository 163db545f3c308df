package logger

import (
	"context"
	"testing"

	"github.com/portfolio/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

func TestNew(t *testing.T) {
	t.Run("json format", func(t *testing.T) {
		logger := New(config.LogConfig{Level: "debug", Format: "json", Output: "stdout"})
		assert.NotNil(t, logger)
		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("console format", func(t *testing.T) {
		logger := New(config.LogConfig{Level: "warn", Format: "console", Output: "stderr"})
		assert.NotNil(t, logger)
		assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		logger := New(config.LogConfig{Level: "verbose", Format: "json", Output: "stdout"})
		assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	})
}

func TestNewForEnvironment(t *testing.T) {
	assert.NotNil(t, NewForEnvironment("production"))
	assert.NotNil(t, NewForEnvironment("development"))
}

func TestContextHelpers(t *testing.T) {
	t.Run("logger round trip", func(t *testing.T) {
		logger := zap.NewNop()
		ctx := WithContext(context.Background(), logger)

		assert.Same(t, logger, FromContext(ctx))
	})

	t.Run("missing logger yields nop", func(t *testing.T) {
		assert.NotNil(t, FromContext(context.Background()))
	})

	t.Run("request id", func(t *testing.T) {
		ctx, enriched := WithRequestID(context.Background(), zap.NewNop(), "req-123")

		assert.NotNil(t, enriched)
		assert.Equal(t, "req-123", GetRequestID(ctx))
	})

	t.Run("user id", func(t *testing.T) {
		ctx, _ := WithUserID(context.Background(), zap.NewNop(), "user-456")

		assert.Equal(t, "user-456", GetUserID(ctx))
	})

	t.Run("empty context", func(t *testing.T) {
		assert.Equal(t, "", GetRequestID(context.Background()))
		assert.Equal(t, "", GetUserID(context.Background()))
	})
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("warn"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("info"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("unknown"))
}

func TestGormLogger_LogMode(t *testing.T) {
	gl := NewGormLogger(zap.NewNop(), gormlogger.Warn)
	elevated := gl.LogMode(gormlogger.Info)

	assert.NotSame(t, gl, elevated)
}
