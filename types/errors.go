package types

import "errors"

// Sentinel errors for the fleetslot library.
//
// These errors provide type-safe error checking using errors.Is() and errors.As().
// All components should use these sentinel errors for known error conditions
// and wrap external errors with context using fmt.Errorf("%s: %w", msg, err).
//
// Error Naming Convention:
//   - Use descriptive names with Err prefix
//   - Group by component (Allocator, Planner, Committer)
//   - Use consistent messages across similar error types

// Allocator errors - Public API errors returned by the Allocator.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrStoreRequired is returned when the injected store is nil.
	ErrStoreRequired = errors.New("store is required")

	// ErrBatchTooLarge is returned when a request exceeds MaxBatchSize.
	ErrBatchTooLarge = errors.New("batch exceeds configured maximum size")
)

// Planner errors - Strategy selection and planning errors.
var (
	// ErrUnknownStrategy is returned when a strategy name is not registered.
	ErrUnknownStrategy = errors.New("unknown assignment strategy")

	// ErrNoAccounts is returned when planning is attempted with no accounts.
	ErrNoAccounts = errors.New("no accounts available for assignment")
)

// Committer errors - Single-pair assignment errors.
var (
	// ErrAccountNotFound is returned when the requested account does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrCloneNotFound is returned when the requested clone does not exist.
	ErrCloneNotFound = errors.New("clone not found")

	// ErrCloneUnavailable is returned when the target clone lost its
	// Available status to a racing caller.
	ErrCloneUnavailable = errors.New("clone no longer available for assignment")

	// ErrAccountUnavailable is returned when the target account lost its
	// Unused status to a racing caller.
	ErrAccountUnavailable = errors.New("account no longer unused")

	// ErrNotAssigned is returned when unassigning an account that holds no
	// assignment.
	ErrNotAssigned = errors.New("account is not assigned to a clone")
)
