package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"

	"github.com/mrcacomacaco/zodkit-sub002/internal/adapters/logger"
)

// newTestLogger injects a buffer and disables color for deterministic output.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_InfoAndWarn(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Info("discovery pass complete")
	assert.Contains(t, buf.String(), "discovery pass complete")

	buf.Reset()
	lg.Warn("reload pass exceeded its time budget")
	out := buf.String()
	assert.Contains(t, out, "reload pass exceeded its time budget")
	assert.Contains(t, out, "!", "warnings carry the warning icon")
}

func TestLogger_ErrorNilIsSilent(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_ErrorPlain(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Error(errors.New("snapshot write failed"))

	out := buf.String()
	assert.Contains(t, out, "Error: snapshot write failed")
	assert.NotContains(t, out, "Caused by:")
}

func TestLogger_ErrorChainIsUnwrapped(t *testing.T) {
	lg, buf := newTestLogger(t)

	inner := errors.New("permission denied")
	lg.Error(zerr.Wrap(inner, "cache persistence failed"))

	out := buf.String()
	assert.Contains(t, out, "Error: cache persistence failed")
	assert.Contains(t, out, "Caused by:")
	assert.Contains(t, out, "permission denied")
}

func TestLogger_JSONMode(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	lg.Info("watching started")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "watching started", record["msg"])
	assert.Equal(t, "INFO", record["level"])
}

func TestLogger_JSONModeError(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	lg.Error(errors.New("boom"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "operation failed", record["msg"])
	assert.Contains(t, record, "error")
}

func TestLogger_SetOutputSwitchesDestination(t *testing.T) {
	lg, first := newTestLogger(t)

	lg.Info("to first")

	second := &bytes.Buffer{}
	lg.SetOutput(second)
	lg.Info("to second")

	assert.Contains(t, first.String(), "to first")
	assert.NotContains(t, first.String(), "to second")
	assert.Contains(t, second.String(), "to second")
}
