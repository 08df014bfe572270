package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func newCapturedLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	return NewSlog(slog.New(handler)), &buf
}

func TestSlogLogger_Levels(t *testing.T) {
	t.Run("debug", func(t *testing.T) {
		logger, buf := newCapturedLogger(t)

		logger.Debug("planning batch", "strategy", "capacity-based")

		require.Contains(t, buf.String(), "level=DEBUG")
		require.Contains(t, buf.String(), "planning batch")
		require.Contains(t, buf.String(), "strategy=capacity-based")
	})

	t.Run("info", func(t *testing.T) {
		logger, buf := newCapturedLogger(t)

		logger.Info("batch committed", "assigned", 47)

		require.Contains(t, buf.String(), "level=INFO")
		require.Contains(t, buf.String(), "assigned=47")
	})

	t.Run("warn", func(t *testing.T) {
		logger, buf := newCapturedLogger(t)

		logger.Warn("clone conflict", "deviceId", "D1")

		require.Contains(t, buf.String(), "level=WARN")
		require.Contains(t, buf.String(), "deviceId=D1")
	})

	t.Run("error", func(t *testing.T) {
		logger, buf := newCapturedLogger(t)

		logger.Error("batch rolled back", "batchId", "b-1")

		require.Contains(t, buf.String(), "level=ERROR")
		require.Contains(t, buf.String(), "batchId=b-1")
	})
}

func TestNewSlogDefault(t *testing.T) {
	require.NotNil(t, NewSlogDefault())
}
