package fleetslot

import "github.com/arloliu/fleetslot/types"

// Sentinel errors re-exported from the types package.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = types.ErrInvalidConfig

	// ErrStoreRequired is returned when the injected store is nil.
	ErrStoreRequired = types.ErrStoreRequired

	// ErrBatchTooLarge is returned when a request exceeds MaxBatchSize.
	ErrBatchTooLarge = types.ErrBatchTooLarge

	// ErrUnknownStrategy is returned when a strategy name is not registered.
	ErrUnknownStrategy = types.ErrUnknownStrategy

	// ErrNoAccounts is returned when planning is attempted with no accounts.
	ErrNoAccounts = types.ErrNoAccounts

	// ErrAccountNotFound is returned when the requested account does not exist.
	ErrAccountNotFound = types.ErrAccountNotFound

	// ErrCloneNotFound is returned when the requested clone does not exist.
	ErrCloneNotFound = types.ErrCloneNotFound

	// ErrCloneUnavailable is returned when the target clone lost its
	// Available status to a racing caller.
	ErrCloneUnavailable = types.ErrCloneUnavailable

	// ErrAccountUnavailable is returned when the target account lost its
	// Unused status to a racing caller.
	ErrAccountUnavailable = types.ErrAccountUnavailable

	// ErrNotAssigned is returned when unassigning an account that holds no
	// assignment.
	ErrNotAssigned = types.ErrNotAssigned
)
