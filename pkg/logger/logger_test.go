package logger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/narwhalmedia/requestbot/pkg/interfaces"
	"github.com/narwhalmedia/requestbot/pkg/logger"
)

func TestContextLoggerCarriesTurnFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	base := logger.NewFromZap(zap.New(core))

	ctx := logger.WithFields(context.Background(), base, interfaces.String("turn_id", "t-1"))
	logger.FromContext(ctx, base).Info("searching", interfaces.Error(errors.New("boom")))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "searching", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "t-1", fields["turn_id"])
	assert.Equal(t, "boom", fields["error"])
}

func TestWithContextFallsBackToReceiver(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	base := logger.NewFromZap(zap.New(core))

	base.WithContext(context.Background()).Info("plain")
	assert.Equal(t, 1, logs.Len())
}

func TestBuildRespectsLevel(t *testing.T) {
	cfg := logger.DefaultConfig()
	cfg.Level = "not-a-level"
	l, err := cfg.Build()
	require.NoError(t, err)
	assert.True(t, l.Zap().Core().Enabled(zap.InfoLevel))
	assert.False(t, l.Zap().Core().Enabled(zap.DebugLevel))
}

func TestNoopIsSilent(t *testing.T) {
	l := logger.NewNoop()
	assert.Same(t, l, l.WithFields(interfaces.Int("n", 1)))
}
