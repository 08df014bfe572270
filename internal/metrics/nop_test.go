package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestNopMetrics(t *testing.T) {
	t.Run("creates non-nil collector", func(t *testing.T) {
		require.NotNil(t, NewNop())
	})

	t.Run("all methods are safe to call", func(t *testing.T) {
		nop := NewNop()

		nop.RecordPlanDuration("capacity-based", 0.01)
		nop.RecordPlanSize("capacity-based", 10)
		nop.RecordValidation(true, 5)
		nop.RecordBatchCommit(4, 1, 0.2)
		nop.RecordConflict("clone_taken")
		nop.RecordRollback()
		nop.RecordCapacitySnapshot(3, 12)
	})
}

func TestPrometheusCollector(t *testing.T) {
	t.Run("registers lazily and records without panic", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		collector := NewPrometheus(reg, "fleetslot_test")

		collector.RecordPlanDuration("round-robin", 0.005)
		collector.RecordPlanSize("round-robin", 3)
		collector.RecordValidation(false, 0)
		collector.RecordBatchCommit(2, 1, 0.05)
		collector.RecordConflict("account_taken")
		collector.RecordRollback()
		collector.RecordCapacitySnapshot(2, 4)

		families, err := reg.Gather()
		require.NoError(t, err)
		require.NotEmpty(t, families)
	})

	t.Run("defaults registerer and namespace", func(t *testing.T) {
		collector := NewPrometheus(nil, "")

		require.Equal(t, "fleetslot", collector.namespace)
	})
}
