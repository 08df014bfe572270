package fleetslot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfig_SetDefaults(t *testing.T) {
	t.Run("fills zero value", func(t *testing.T) {
		cfg := Config{}
		cfg.SetDefaults()

		require.Equal(t, DefaultStrategyName, cfg.DefaultStrategy)
		require.Equal(t, DefaultMaxBatchSize, cfg.MaxBatchSize)
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		cfg := Config{DefaultStrategy: "fill-first", MaxBatchSize: 50}
		cfg.SetDefaults()

		require.Equal(t, "fill-first", cfg.DefaultStrategy)
		require.Equal(t, 50, cfg.MaxBatchSize)
	})

	t.Run("keeps negative batch size", func(t *testing.T) {
		cfg := Config{MaxBatchSize: -1}
		cfg.SetDefaults()

		require.Equal(t, -1, cfg.MaxBatchSize)
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Run("accepts built-in strategies", func(t *testing.T) {
		for _, name := range []string{"fill-first", "round-robin", "capacity-based"} {
			cfg := Config{DefaultStrategy: name}
			cfg.SetDefaults()

			require.NoError(t, cfg.validate(nil), "strategy %s", name)
		}
	})

	t.Run("accepts registered custom strategy", func(t *testing.T) {
		cfg := Config{DefaultStrategy: "custom"}
		cfg.SetDefaults()

		require.NoError(t, cfg.validate(map[string]bool{"custom": true}))
	})

	t.Run("rejects unknown strategy", func(t *testing.T) {
		cfg := Config{DefaultStrategy: "best-fit"}
		cfg.SetDefaults()

		err := cfg.validate(nil)
		require.ErrorIs(t, err, ErrInvalidConfig)
		require.Contains(t, err.Error(), "best-fit")
	})
}
