package fleetslot

import (
	"fmt"

	"github.com/arloliu/fleetslot/strategy"
)

// Default configuration values.
const (
	// DefaultStrategyName is the strategy used when a caller passes an empty
	// strategy selector. Capacity-based placement is the default for
	// high-priority create-and-execute paths.
	DefaultStrategyName = strategy.NameCapacityBased

	// DefaultMaxBatchSize bounds the number of accounts in one batch request.
	DefaultMaxBatchSize = 500
)

// Config holds allocator configuration.
//
// The zero value is usable after SetDefaults; NewAllocator applies defaults
// and validation automatically.
type Config struct {
	// DefaultStrategy is the strategy name used when a request does not
	// specify one. Must name a built-in strategy or one registered through
	// WithStrategy.
	//
	// Default: "capacity-based"
	DefaultStrategy string `yaml:"defaultStrategy"`

	// MaxBatchSize is the maximum number of account IDs accepted by a single
	// batch request. Zero means DefaultMaxBatchSize; negative disables the
	// guard entirely.
	//
	// Default: 500
	MaxBatchSize int `yaml:"maxBatchSize"`
}

// SetDefaults fills unset fields with their default values.
func (c *Config) SetDefaults() {
	if c.DefaultStrategy == "" {
		c.DefaultStrategy = DefaultStrategyName
	}
	if c.MaxBatchSize == 0 {
		c.MaxBatchSize = DefaultMaxBatchSize
	}
}

// Validate checks the configuration for consistency.
//
// Custom strategy names registered via WithStrategy are validated by
// NewAllocator after option application, so Validate only rejects names that
// are neither built-in nor registered.
//
// Returns:
//   - error: ErrInvalidConfig wrapped with the offending field, or nil
func (c *Config) validate(registered map[string]bool) error {
	if !strategy.Known(c.DefaultStrategy) && !registered[c.DefaultStrategy] {
		return fmt.Errorf("%w: defaultStrategy %q is not registered", ErrInvalidConfig, c.DefaultStrategy)
	}

	return nil
}
