package types

import (
	"context"
	"time"
)

// Store is the storage contract consumed by the allocator.
//
// Any relational store supporting transactions and row-level conditional
// updates suffices; the library ships a database/sql implementation in the
// store package and an in-memory implementation in the testing package.
//
// The allocator holds no hidden global state: a Store is injected at
// construction so the allocator is independently testable.
type Store interface {
	// ListClones returns every clone row ordered by (deviceID, cloneNumber).
	// Returns an empty slice, not an error, when the inventory is empty.
	ListClones(ctx context.Context) ([]Clone, error)

	// ListAccounts returns the accounts matching the given IDs, in any
	// status. IDs with no matching row are silently absent from the result;
	// callers detect them by comparing lengths.
	ListAccounts(ctx context.Context, ids []int64) ([]Account, error)

	// Within runs fn inside a single transaction. A non-nil error from fn
	// rolls the transaction back and is returned; otherwise the transaction
	// commits.
	Within(ctx context.Context, fn func(tx Tx) error) error
}

// Tx exposes the conditional row updates available inside one transaction.
//
// Every mutation is guarded by a WHERE clause matching the expected prior
// state rather than an unconditional write: two concurrent allocator calls
// can race on the same rows, and the database's row-level locking inside each
// transaction is the only concurrency guard. A losing racer observes a false
// return and records that pairing as failed instead of erroring the batch.
//
// All methods return (false, nil) when the guard matched zero rows, and a
// non-nil error only for storage-level failures.
type Tx interface {
	// ClaimClone marks an Available clone Assigned and sets its occupant.
	// Guard: clone_status = 'Available'.
	ClaimClone(ctx context.Context, deviceID string, cloneNumber int, username string) (bool, error)

	// ReleaseClone marks a clone Available again and clears its occupant.
	// Guard: current_account = username. Used both to unassign and to revert
	// a claim whose account-side update failed.
	ReleaseClone(ctx context.Context, deviceID string, cloneNumber int, username string) (bool, error)

	// BindAccount records the assignment on the account row.
	// Guard: status = 'Unused' AND assigned_device_id IS NULL.
	BindAccount(ctx context.Context, accountID int64, deviceID string, cloneNumber int, packageName string, at time.Time) (bool, error)

	// UnbindAccount clears the assignment fields and returns the account to
	// the backlog. Guard: assigned_device_id IS NOT NULL.
	UnbindAccount(ctx context.Context, accountID int64) (bool, error)
}
