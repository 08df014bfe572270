package testing

import (
	"testing"

	"github.com/arloliu/fleetslot/internal/logger"
	"github.com/arloliu/fleetslot/types"
)

// NewTestLogger creates a logger that writes through testing.T, so allocator
// log output lands in the test log.
//
// Parameters:
//   - t: The testing.T instance to write logs to
//
// Returns:
//   - types.Logger: Logger backed by t.Logf
func NewTestLogger(t *testing.T) types.Logger {
	return logger.NewTest(t)
}

// NewNopLogger creates a logger that discards everything.
//
// Returns:
//   - types.Logger: No-op logger
func NewNopLogger() types.Logger {
	return logger.NewNop()
}
