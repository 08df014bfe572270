package types

// MetricsCollector defines methods for recording operational metrics.
//
// Implementations should be non-blocking and handle failures gracefully.
// All methods may be called concurrently and must be thread-safe.
//
// This interface composes smaller, domain-focused interfaces for better modularity.
type MetricsCollector interface {
	PlannerMetrics
	ValidationMetrics
	CommitMetrics
	CapacityMetrics
}

// PlannerMetrics defines metrics for planning operations.
type PlannerMetrics interface {
	// RecordPlanDuration records the time taken to compute one plan.
	//
	// Parameters:
	//   - strategy: Strategy name ("round-robin", "fill-first", "capacity-based")
	//   - duration: Time taken in seconds
	RecordPlanDuration(strategy string, duration float64)

	// RecordPlanSize records the number of placements in a computed plan.
	//
	// Parameters:
	//   - strategy: Strategy name
	//   - size: Number of planned placements
	RecordPlanSize(strategy string, size int)
}

// ValidationMetrics defines metrics for feasibility validation.
type ValidationMetrics interface {
	// RecordValidation records a validation outcome.
	//
	// Parameters:
	//   - valid: true when the request passed validation
	//   - canAssign: Number of assignments the validator deemed feasible
	RecordValidation(valid bool, canAssign int)
}

// CommitMetrics defines metrics for transactional batch commits.
type CommitMetrics interface {
	// RecordBatchCommit records the outcome of one batch commit.
	//
	// Parameters:
	//   - assigned: Number of committed assignments
	//   - failed: Number of per-pairing failures
	//   - duration: Transaction time in seconds
	RecordBatchCommit(assigned, failed int, duration float64)

	// RecordConflict records a lost race on a row-conditional update.
	//
	// Parameters:
	//   - kind: Conflict kind ("clone_taken" or "account_taken")
	RecordConflict(kind string)

	// RecordRollback records a whole-batch transaction rollback.
	RecordRollback()
}

// CapacityMetrics defines metrics for capacity snapshots.
type CapacityMetrics interface {
	// RecordCapacitySnapshot sets the fleet-wide capacity gauges.
	//
	// Parameters:
	//   - devices: Number of distinct devices in the inventory
	//   - availableClones: Number of clones currently available fleet-wide
	RecordCapacitySnapshot(devices, availableClones int)
}
