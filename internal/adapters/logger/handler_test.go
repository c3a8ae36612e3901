package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrcacomacaco/zodkit-sub002/internal/adapters/logger"
)

func newHandler(t *testing.T, level slog.Level) (*logger.PrettyHandler, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	return logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: level}), buf
}

func TestPrettyHandler_LevelFiltering(t *testing.T) {
	h, _ := newHandler(t, slog.LevelWarn)

	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestPrettyHandler_LevelIcons(t *testing.T) {
	tests := []struct {
		name  string
		level slog.Level
		want  string
	}{
		{"info has no icon", slog.LevelInfo, "hello\n"},
		{"warn is marked", slog.LevelWarn, "! hello\n"},
		{"error is marked", slog.LevelError, "✗ hello\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, buf := newHandler(t, slog.LevelInfo)
			log := slog.New(h)

			log.Log(context.Background(), tt.level, "hello")
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrettyHandler_Attrs(t *testing.T) {
	h, buf := newHandler(t, slog.LevelInfo)
	log := slog.New(h)

	log.Info("loading", "chunks", 3, "strategy", "hybrid")

	assert.Equal(t, "loading chunks=3 strategy=hybrid\n", buf.String())
}

func TestPrettyHandler_WithAttrsAndGroup(t *testing.T) {
	h, buf := newHandler(t, slog.LevelInfo)
	log := slog.New(h).With("component", "cache").WithGroup("reload")

	log.Info("batch done", "count", 2)

	out := buf.String()
	require.NotEmpty(t, out)
	assert.Contains(t, out, "batch done")
	assert.Contains(t, out, "reload.count=2")
}

func TestPrettyHandler_NilWriterDefaultsToStderr(t *testing.T) {
	assert.NotPanics(t, func() {
		h := logger.NewPrettyHandler(nil, nil)
		assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	})
}
