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

func TestErrorAppendsErrorField(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := &zapLogger{logger: zap.New(core)}

	l.With(zap.String("video_id", "v1")).Error("Failed to publish", errors.New("broker down"), zap.String("event_type", "video.liked"))

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "v1", fields["video_id"])
	assert.Equal(t, "video.liked", fields["event_type"])
	assert.Equal(t, "broker down", fields["error"])
}

func TestErrorWithoutCauseOmitsErrorField(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := &zapLogger{logger: zap.New(core)}

	l.Error("Nothing to blame", nil)

	require.Equal(t, 1, logs.Len())
	assert.NotContains(t, logs.All()[0].ContextMap(), "error")
}

func TestConfigFor(t *testing.T) {
	prod := configFor("production")
	assert.Equal(t, "json", prod.Encoding)
	assert.True(t, prod.DisableStacktrace)
	assert.NotNil(t, prod.Sampling)

	dev := configFor("development")
	assert.Equal(t, "console", dev.Encoding)
	assert.True(t, dev.Level.Enabled(zapcore.DebugLevel))
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Options{Env: "development", Service: "video-hub-api", Level: "loud"})
	assert.Error(t, err)

	l, err := New(Options{Env: "production", Service: "video-hub-api", Level: "warn"})
	require.NoError(t, err)
	assert.NotNil(t, l)
}
