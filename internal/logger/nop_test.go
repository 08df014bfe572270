package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNopLogger(t *testing.T) {
	t.Run("creates non-nil logger", func(t *testing.T) {
		require.NotNil(t, NewNop())
	})

	t.Run("all methods are safe to call", func(t *testing.T) {
		nop := NewNop()

		// None of these should panic or produce output.
		nop.Debug("debug message", "key", "value")
		nop.Info("info message")
		nop.Warn("warn message", "count", 3)
		nop.Error("error message", "err", "boom")
		nop.Fatal("fatal message")
	})

	t.Run("fatal does not exit", func(t *testing.T) {
		nop := NewNop()

		nop.Fatal("this must not terminate the test binary")
		// Reaching this line is the assertion.
	})
}
