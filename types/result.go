package types

// Validation is the feasibility report produced before any mutation is
// attempted. Warnings are informational and never affect Valid.
type Validation struct {
	// Valid is true when no errors were found. Warnings do not affect it.
	Valid bool `json:"isValid"`

	// CanAssign is min(assignable accounts, available clones).
	CanAssign int `json:"canAssign"`

	// TotalRequested is the number of account IDs in the request.
	TotalRequested int `json:"totalRequested"`

	// Errors lists fatal findings. Non-empty Errors forces Valid=false.
	Errors []string `json:"errors"`

	// Warnings lists non-fatal findings (shortfalls, degraded devices).
	Warnings []string `json:"warnings"`
}

// FailedAccount records one account that could not be assigned during a
// batch commit, with the reason attributed to that specific pairing.
type FailedAccount struct {
	// AccountID is the account's numeric primary key.
	AccountID int64 `json:"accountId"`

	// Username is the account's Instagram username, empty when the failure
	// predates account resolution.
	Username string `json:"instagramUsername,omitempty"`

	// Error describes why the assignment failed.
	Error string `json:"error"`
}

// BatchResult is the structured outcome of one batch assignment run.
//
// Callers always receive a BatchResult for normal operation, never a bare
// error: partial successes are reported through AssignedCount, Assignments,
// and FailedAccounts so a UI can render outcomes such as
// "47 of 50 accounts assigned, 3 failed".
type BatchResult struct {
	// BatchID correlates this run across logs and metrics.
	BatchID string `json:"batchId"`

	// Success is true when at least one assignment was committed.
	Success bool `json:"success"`

	// AssignedCount is the number of committed assignments.
	AssignedCount int `json:"assignedCount"`

	// TotalRequested is the number of account IDs in the request.
	TotalRequested int `json:"totalRequested"`

	// Assignments lists the committed pairings in planner order.
	Assignments []Placement `json:"assignments"`

	// Errors lists batch-level failures (validation findings, rollbacks).
	Errors []string `json:"errors"`

	// FailedAccounts lists per-pairing failures with attributed reasons.
	FailedAccounts []FailedAccount `json:"failedAccounts"`
}
