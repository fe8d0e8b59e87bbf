package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewWithSink_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithSink("info", "json", zapcore.AddSync(&buf))
	require.NoError(t, err)

	ctx := WithCase(WithRunID(context.Background(), "01HRUN"), "gr-1")
	logger.Debug(ctx, "hidden")
	logger.Info(ctx, "case stored", zap.String("decision.id", "gr-1-1960"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "case stored", entry["msg"])
	assert.Equal(t, "01HRUN", entry["run.id"])
	assert.Equal(t, "gr-1", entry["case.folder"])
	assert.Equal(t, "gr-1-1960", entry["decision.id"])
	assert.Contains(t, entry, "ts")
}

func TestNewWithSink_Invalid(t *testing.T) {
	_, err := NewWithSink("loud", "json", zapcore.AddSync(&bytes.Buffer{}))
	assert.Error(t, err)

	_, err = NewWithSink("info", "xml", zapcore.AddSync(&bytes.Buffer{}))
	assert.Error(t, err)
}

func TestLogger_Levels(t *testing.T) {
	logger := NewTestLogger()
	ctx := context.Background()

	logger.Debug(ctx, "debug message")
	logger.Info(ctx, "info message")
	logger.Warn(ctx, "warn message")
	logger.Error(ctx, "error message")

	logger.AssertLogged(t, zapcore.DebugLevel, "debug")
	logger.AssertLogged(t, zapcore.InfoLevel, "info")
	logger.AssertLogged(t, zapcore.WarnLevel, "warn")
	logger.AssertLogged(t, zapcore.ErrorLevel, "error")
	logger.AssertNotLogged(t, zapcore.ErrorLevel, "info")
	assert.Len(t, logger.All(), 4)
}

func TestLogger_Enabled(t *testing.T) {
	logger, err := NewWithSink("warn", "console", zapcore.AddSync(&bytes.Buffer{}))
	require.NoError(t, err)
	assert.False(t, logger.Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Enabled(zapcore.WarnLevel))
	assert.True(t, logger.Enabled(zapcore.ErrorLevel))

	assert.True(t, NewTestLogger().Enabled(zapcore.DebugLevel))
	assert.False(t, NewNop().Enabled(zapcore.ErrorLevel))
}

func TestLogger_WithAndNamed(t *testing.T) {
	logger := NewTestLogger()
	child := logger.Named("ingest").With(zap.String("source", "local"))

	child.Warn(WithRunID(context.Background(), "run-7"), "ambiguous ponente")

	entries := logger.FilterMessage("ambiguous").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "ingest", entries[0].LoggerName)
	logger.AssertField(t, "ambiguous", "source", "local")
	logger.AssertField(t, "ambiguous", "run.id", "run-7")
}

func TestContextFields_Empty(t *testing.T) {
	assert.Empty(t, ContextFields(context.Background()))
	assert.Empty(t, RunIDFromContext(context.Background()))
}

func TestIsStdoutSyncError(t *testing.T) {
	assert.True(t, isStdoutSyncError(syscall.EINVAL))
	assert.True(t, isStdoutSyncError(syscall.ENOTTY))
	assert.False(t, isStdoutSyncError(syscall.EIO))
	assert.NoError(t, NewNop().Sync())
}
