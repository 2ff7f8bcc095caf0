package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"INFO", zapcore.InfoLevel},
		{"unknown", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("creates console logger", func(t *testing.T) {
		logger, err := New(&Config{
			Level:      "debug",
			Format:     "console",
			Output:     "stdout",
			TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		})
		require.NoError(t, err)
		assert.NotNil(t, logger)
	})

	t.Run("creates json logger", func(t *testing.T) {
		logger, err := New(&Config{
			Level:      "info",
			Format:     "json",
			Output:     "stderr",
			TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		})
		require.NoError(t, err)
		assert.NotNil(t, logger)
	})
}

func TestNewForEnvironment(t *testing.T) {
	t.Run("production uses json format", func(t *testing.T) {
		logger, err := NewForEnvironment("production")
		require.NoError(t, err)
		assert.NotNil(t, logger)
	})

	t.Run("development uses console format", func(t *testing.T) {
		logger, err := NewForEnvironment("development")
		require.NoError(t, err)
		assert.NotNil(t, logger)
	})
}

func TestContextHelpers(t *testing.T) {
	t.Run("logger round-trips through context", func(t *testing.T) {
		base := zap.NewNop()
		ctx := WithContext(context.Background(), base)
		assert.Same(t, base, FromContext(ctx))
	})

	t.Run("missing logger yields no-op", func(t *testing.T) {
		assert.NotNil(t, FromContext(context.Background()))
	})

	t.Run("request ID round-trips", func(t *testing.T) {
		ctx, enriched := WithRequestID(context.Background(), zap.NewNop(), "req-123")
		assert.NotNil(t, enriched)
		assert.Equal(t, "req-123", GetRequestID(ctx))
	})

	t.Run("workspace ID round-trips", func(t *testing.T) {
		ctx, _ := WithWorkspaceID(context.Background(), zap.NewNop(), "ws-123")
		assert.Equal(t, "ws-123", GetWorkspaceID(ctx))
	})

	t.Run("user ID round-trips", func(t *testing.T) {
		ctx, _ := WithUserID(context.Background(), zap.NewNop(), "user-123")
		assert.Equal(t, "user-123", GetUserID(ctx))
	})

	t.Run("empty context yields empty identifiers", func(t *testing.T) {
		ctx := context.Background()
		assert.Empty(t, GetRequestID(ctx))
		assert.Empty(t, GetWorkspaceID(ctx))
		assert.Empty(t, GetUserID(ctx))
	})
}

func TestL(t *testing.T) {
	t.Run("returns usable logger without span", func(t *testing.T) {
		ctx := WithContext(context.Background(), zap.NewNop())
		assert.NotNil(t, L(ctx))
	})
}
