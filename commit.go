package fleetslot

import (
	"context"
	"fmt"

	"github.com/arloliu/fleetslot/types"
	"github.com/google/uuid"
)

// Per-pairing failure reasons reported in BatchResult.FailedAccounts.
const (
	reasonCloneTaken   = "Clone no longer available for assignment"
	reasonAccountTaken = "Account no longer Unused"
	reasonRolledBack   = "Assignment transaction was rolled back"
)

// Conflict kinds reported to the metrics collector.
const (
	conflictCloneTaken   = "clone_taken"
	conflictAccountTaken = "account_taken"
)

// AssignBatch validates, plans, and commits a batch of account assignments.
//
// The flow is validate → plan fresh → commit in one transaction. Within the
// transaction each planned pairing is applied as two coupled conditional
// updates (clone claim, then account bind) with per-pairing fault isolation:
// a pairing that loses a race to a concurrent caller is recorded in
// FailedAccounts and the batch continues; already-committed pairings are not
// rolled back. When the account-side update fails, the clone-side claim is
// explicitly reverted before continuing, so a surviving transaction never
// carries a half-applied pairing.
//
// Only a hard storage error rolls back the entire batch; in that case the
// result reports zero assignments and every requested account as failed.
//
// AssignBatch never returns a Go error for expected conditions: callers
// always receive a structured result suitable for rendering partial-success
// batches.
//
// Parameters:
//   - ctx: Context for cancellation and deadline
//   - accountIDs: Requested account IDs in priority order
//   - strategyName: Strategy selector ("" for the configured default)
//
// Returns:
//   - *BatchResult: Structured outcome with per-pairing attribution
func (a *Allocator) AssignBatch(ctx context.Context, accountIDs []int64, strategyName string) *BatchResult {
	result := &BatchResult{
		BatchID:        uuid.NewString(),
		TotalRequested: len(accountIDs),
		Assignments:    []Placement{},
		Errors:         []string{},
		FailedAccounts: []FailedAccount{},
	}

	validation := a.ValidateAssignment(ctx, accountIDs)
	if !validation.Valid {
		result.Errors = append(result.Errors, validation.Errors...)
		a.logger.Warn("batch rejected by validation",
			"batchId", result.BatchID, "errors", validation.Errors)

		return result
	}

	// Plans are computed fresh here, not reused from validation time: the
	// gap between the two reads is an accepted staleness window resolved by
	// the conditional updates below.
	plan, err := a.PlanAssignments(ctx, accountIDs, strategyName)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to plan assignments: %v", err))

		return result
	}

	start := a.clock()
	txErr := a.store.Within(ctx, func(tx Tx) error {
		for _, p := range plan {
			ok, err := tx.ClaimClone(ctx, p.DeviceID, p.CloneNumber, p.Username)
			if err != nil {
				return err
			}
			if !ok {
				a.recordConflict(ctx, result, p, reasonCloneTaken, conflictCloneTaken)

				continue
			}

			ok, err = tx.BindAccount(ctx, p.AccountID, p.DeviceID, p.CloneNumber, p.PackageName, a.clock())
			if err != nil {
				return err
			}
			if !ok {
				// Undo the clone-side claim so the surviving transaction
				// carries no half-applied pairing.
				if _, err := tx.ReleaseClone(ctx, p.DeviceID, p.CloneNumber, p.Username); err != nil {
					return err
				}
				a.recordConflict(ctx, result, p, reasonAccountTaken, conflictAccountTaken)

				continue
			}

			result.Assignments = append(result.Assignments, p)
			result.AssignedCount++
		}

		return nil
	})
	if txErr != nil {
		a.rollbackResult(result, accountIDs, plan, txErr)
	} else {
		result.Success = result.AssignedCount > 0
	}

	a.metrics.RecordBatchCommit(result.AssignedCount, len(result.FailedAccounts), a.clock().Sub(start).Seconds())
	a.logger.Info("batch commit finished",
		"batchId", result.BatchID,
		"assigned", result.AssignedCount,
		"failed", len(result.FailedAccounts),
		"requested", result.TotalRequested,
		"success", result.Success)

	a.fireBatchCommitted(ctx, result)

	return result
}

// recordConflict registers one pairing lost to a racing caller.
func (a *Allocator) recordConflict(ctx context.Context, result *BatchResult, p Placement, reason, kind string) {
	failed := FailedAccount{AccountID: p.AccountID, Username: p.Username, Error: reason}
	result.FailedAccounts = append(result.FailedAccounts, failed)
	a.metrics.RecordConflict(kind)
	a.logger.Warn("assignment pairing lost race",
		"batchId", result.BatchID,
		"accountId", p.AccountID,
		"deviceId", p.DeviceID,
		"cloneNumber", p.CloneNumber,
		"reason", reason)

	if a.hooks != nil && a.hooks.OnConflict != nil {
		if err := a.hooks.OnConflict(ctx, failed); err != nil {
			a.logger.Error("OnConflict hook failed", "error", err)
		}
	}
}

// rollbackResult rewrites the result after a whole-batch rollback: nothing
// was committed, so every requested account is reported as failed.
func (a *Allocator) rollbackResult(result *BatchResult, accountIDs []int64, plan []Placement, txErr error) {
	a.metrics.RecordRollback()
	a.logger.Error("batch transaction rolled back", "batchId", result.BatchID, "error", txErr)

	usernames := make(map[int64]string, len(plan))
	for _, p := range plan {
		usernames[p.AccountID] = p.Username
	}

	result.Success = false
	result.AssignedCount = 0
	result.Assignments = []Placement{}
	result.FailedAccounts = result.FailedAccounts[:0]
	result.Errors = append(result.Errors, reasonRolledBack)
	for _, id := range accountIDs {
		result.FailedAccounts = append(result.FailedAccounts, FailedAccount{
			AccountID: id,
			Username:  usernames[id],
			Error:     reasonRolledBack,
		})
	}
}

// fireBatchCommitted invokes the OnBatchCommitted hook when configured.
func (a *Allocator) fireBatchCommitted(ctx context.Context, result *BatchResult) {
	if a.hooks == nil || a.hooks.OnBatchCommitted == nil {
		return
	}
	if err := a.hooks.OnBatchCommitted(ctx, result); err != nil {
		a.logger.Error("OnBatchCommitted hook failed", "batchId", result.BatchID, "error", err)
	}
}

// Assign places a single account on a specific clone, all or nothing.
//
// Unlike AssignBatch there is no partial tolerance: if either the clone
// claim or the account bind loses its guard, the transaction rolls back and
// a sentinel error is returned.
//
// Parameters:
//   - ctx: Context for cancellation and deadline
//   - accountID: Account to place
//   - deviceID: Target device
//   - cloneNumber: Target slot on the device
//
// Returns:
//   - error: ErrAccountNotFound, ErrCloneNotFound, ErrCloneUnavailable,
//     ErrAccountUnavailable, or a wrapped storage error
func (a *Allocator) Assign(ctx context.Context, accountID int64, deviceID string, cloneNumber int) error {
	accounts, err := a.store.ListAccounts(ctx, []int64{accountID})
	if err != nil {
		return fmt.Errorf("failed to read account: %w", err)
	}
	if len(accounts) == 0 {
		return fmt.Errorf("%w: id %d", ErrAccountNotFound, accountID)
	}
	account := accounts[0]

	clone, err := a.findClone(ctx, deviceID, cloneNumber)
	if err != nil {
		return err
	}

	err = a.store.Within(ctx, func(tx Tx) error {
		ok, err := tx.ClaimClone(ctx, deviceID, cloneNumber, account.Username)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s/%d", ErrCloneUnavailable, deviceID, cloneNumber)
		}

		ok, err = tx.BindAccount(ctx, accountID, deviceID, cloneNumber, clone.PackageName, a.clock())
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrAccountUnavailable, account.Username)
		}

		return nil
	})
	if err != nil {
		return err
	}

	a.logger.Info("account assigned",
		"accountId", accountID, "username", account.Username,
		"deviceId", deviceID, "cloneNumber", cloneNumber)

	return nil
}

// Unassign removes a single account from its clone, all or nothing.
//
// Parameters:
//   - ctx: Context for cancellation and deadline
//   - accountID: Account to release
//
// Returns:
//   - error: ErrAccountNotFound, ErrNotAssigned, ErrCloneUnavailable when the
//     clone row no longer references the account, or a wrapped storage error
func (a *Allocator) Unassign(ctx context.Context, accountID int64) error {
	accounts, err := a.store.ListAccounts(ctx, []int64{accountID})
	if err != nil {
		return fmt.Errorf("failed to read account: %w", err)
	}
	if len(accounts) == 0 {
		return fmt.Errorf("%w: id %d", ErrAccountNotFound, accountID)
	}
	account := accounts[0]
	if !account.Assigned() {
		return fmt.Errorf("%w: %s", ErrNotAssigned, account.Username)
	}

	err = a.store.Within(ctx, func(tx Tx) error {
		ok, err := tx.ReleaseClone(ctx, account.AssignedDeviceID, account.AssignedCloneNumber, account.Username)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s/%d does not host %s",
				ErrCloneUnavailable, account.AssignedDeviceID, account.AssignedCloneNumber, account.Username)
		}

		ok, err = tx.UnbindAccount(ctx, accountID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrNotAssigned, account.Username)
		}

		return nil
	})
	if err != nil {
		return err
	}

	a.logger.Info("account unassigned",
		"accountId", accountID, "username", account.Username,
		"deviceId", account.AssignedDeviceID, "cloneNumber", account.AssignedCloneNumber)

	return nil
}

// findClone locates one clone row in the inventory.
func (a *Allocator) findClone(ctx context.Context, deviceID string, cloneNumber int) (types.Clone, error) {
	clones, err := a.store.ListClones(ctx)
	if err != nil {
		return types.Clone{}, fmt.Errorf("failed to read clone inventory: %w", err)
	}

	for _, c := range clones {
		if c.DeviceID == deviceID && c.CloneNumber == cloneNumber {
			return c, nil
		}
	}

	return types.Clone{}, fmt.Errorf("%w: %s/%d", ErrCloneNotFound, deviceID, cloneNumber)
}
