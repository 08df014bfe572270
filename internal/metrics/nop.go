// Package metrics provides MetricsCollector implementations for the
// fleetslot library.
package metrics

import "github.com/arloliu/fleetslot/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Useful for testing or when external
// metrics collection is used.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: A new no-op metrics collector instance
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// PlannerMetrics implementation

// RecordPlanDuration discards the plan duration metric.
func (n *NopMetrics) RecordPlanDuration(_ /* strategy */ string, _ /* duration */ float64) {
	// No-op
}

// RecordPlanSize discards the plan size metric.
func (n *NopMetrics) RecordPlanSize(_ /* strategy */ string, _ /* size */ int) {
	// No-op
}

// ValidationMetrics implementation

// RecordValidation discards the validation outcome metric.
func (n *NopMetrics) RecordValidation(_ /* valid */ bool, _ /* canAssign */ int) {
	// No-op
}

// CommitMetrics implementation

// RecordBatchCommit discards the batch commit metric.
func (n *NopMetrics) RecordBatchCommit(_ /* assigned */, _ /* failed */ int, _ /* duration */ float64) {
	// No-op
}

// RecordConflict discards the conflict counter.
func (n *NopMetrics) RecordConflict(_ /* kind */ string) {
	// No-op
}

// RecordRollback discards the rollback counter.
func (n *NopMetrics) RecordRollback() {
	// No-op
}

// CapacityMetrics implementation

// RecordCapacitySnapshot discards the capacity gauges.
func (n *NopMetrics) RecordCapacitySnapshot(_ /* devices */, _ /* availableClones */ int) {
	// No-op
}
