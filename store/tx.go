package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/arloliu/fleetslot/types"
)

// sqlTx implements types.Tx over one open database transaction.
//
// Every mutation carries a WHERE clause matching the expected prior state.
// The boolean result reports whether the guard matched; a false return is an
// expected race outcome, not an error.
type sqlTx struct {
	tx *sql.Tx
}

var _ types.Tx = (*sqlTx)(nil)

// ClaimClone marks an Available clone Assigned and sets its occupant.
func (t *sqlTx) ClaimClone(ctx context.Context, deviceID string, cloneNumber int, username string) (bool, error) {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE clone_inventory
		SET clone_status = ?, current_account = ?
		WHERE device_id = ? AND clone_number = ? AND clone_status = ?`,
		types.StatusAssigned, username, deviceID, cloneNumber, types.StatusAvailable)
	if err != nil {
		return false, fmt.Errorf("failed to claim clone: %w", err)
	}

	return affected(res)
}

// ReleaseClone marks a clone Available again and clears its occupant.
func (t *sqlTx) ReleaseClone(ctx context.Context, deviceID string, cloneNumber int, username string) (bool, error) {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE clone_inventory
		SET clone_status = ?, current_account = NULL
		WHERE device_id = ? AND clone_number = ? AND current_account = ?`,
		types.StatusAvailable, deviceID, cloneNumber, username)
	if err != nil {
		return false, fmt.Errorf("failed to release clone: %w", err)
	}

	return affected(res)
}

// BindAccount records the assignment on the account row.
func (t *sqlTx) BindAccount(ctx context.Context, accountID int64, deviceID string, cloneNumber int, packageName string, at time.Time) (bool, error) {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE ig_accounts
		SET status = ?, assigned_device_id = ?, assigned_clone_number = ?,
		    assigned_package_name = ?, assignment_timestamp = ?
		WHERE id = ? AND status = ? AND assigned_device_id IS NULL`,
		types.AccountAssigned, deviceID, cloneNumber, packageName, at,
		accountID, types.AccountUnused)
	if err != nil {
		return false, fmt.Errorf("failed to bind account: %w", err)
	}

	return affected(res)
}

// UnbindAccount clears the assignment fields and returns the account to the
// backlog.
func (t *sqlTx) UnbindAccount(ctx context.Context, accountID int64) (bool, error) {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE ig_accounts
		SET status = ?, assigned_device_id = NULL, assigned_clone_number = NULL,
		    assigned_package_name = NULL, assignment_timestamp = NULL
		WHERE id = ? AND assigned_device_id IS NOT NULL`,
		types.AccountUnused, accountID)
	if err != nil {
		return false, fmt.Errorf("failed to unbind account: %w", err)
	}

	return affected(res)
}

// affected converts a result's row count into the guard-matched boolean.
func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return n > 0, nil
}
