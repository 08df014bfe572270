// Package store provides the relational types.Store implementation used by
// the allocator.
//
// The implementation issues parameterized conditional UPDATEs over two
// tables (clone_inventory and ig_accounts) through database/sql and assumes
// nothing beyond transactions and row-level conditional updates. It ships
// with the sqlite3 driver; the SQL is intentionally kept to the portable
// subset so other drivers can be swapped in by the caller.
package store

import (
	"context"
	"database/sql"
	"fmt"

	// Registers the sqlite3 driver.
	_ "github.com/mattn/go-sqlite3"

	"github.com/arloliu/fleetslot/types"
)

// SQLStore implements types.Store over a database/sql handle.
//
// The handle is injected rather than held as package-level state so every
// allocator owns its storage dependency explicitly and tests can point at
// throwaway databases.
type SQLStore struct {
	db *sql.DB
}

// Compile-time assertion that SQLStore implements Store.
var _ types.Store = (*SQLStore)(nil)

// Open opens (creating if needed) a sqlite-backed store at the given DSN and
// bootstraps the schema.
//
// Parameters:
//   - dsn: sqlite3 DSN, e.g. "/var/lib/fleetslot/fleet.db?_busy_timeout=5000"
//
// Returns:
//   - *SQLStore: Ready-to-use store
//   - error: Open or schema bootstrap failure
func Open(dsn string) (*SQLStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &SQLStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()

		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

// NewWithDB wraps an existing database handle whose schema is already
// managed externally (e.g. by migrations).
//
// Parameters:
//   - db: Open database handle
//
// Returns:
//   - *SQLStore: Store sharing the caller's handle
func NewWithDB(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Close closes the underlying database handle.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// initSchema creates the tables and indexes.
func (s *SQLStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS clone_inventory (
		device_id TEXT NOT NULL,
		clone_number INTEGER NOT NULL,
		device_name TEXT NOT NULL DEFAULT '',
		package_name TEXT NOT NULL DEFAULT '',
		clone_status TEXT NOT NULL DEFAULT 'Available',
		clone_health TEXT NOT NULL DEFAULT 'Unknown',
		current_account TEXT,
		last_scanned DATETIME,
		PRIMARY KEY (device_id, clone_number)
	);
	CREATE INDEX IF NOT EXISTS idx_clone_inventory_status ON clone_inventory(clone_status);

	CREATE TABLE IF NOT EXISTS ig_accounts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		instagram_username TEXT NOT NULL UNIQUE,
		status TEXT NOT NULL DEFAULT 'Unused',
		assigned_device_id TEXT,
		assigned_clone_number INTEGER,
		assigned_package_name TEXT,
		assignment_timestamp DATETIME
	);
	CREATE INDEX IF NOT EXISTS idx_ig_accounts_status ON ig_accounts(status);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	return nil
}

// ListClones returns every clone row ordered by (deviceID, cloneNumber).
func (s *SQLStore) ListClones(ctx context.Context) ([]types.Clone, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT device_id, clone_number, device_name, package_name,
		       clone_status, clone_health, current_account, last_scanned
		FROM clone_inventory
		ORDER BY device_id, clone_number`)
	if err != nil {
		return nil, fmt.Errorf("failed to list clones: %w", err)
	}
	defer rows.Close()

	clones := []types.Clone{}
	for rows.Next() {
		var (
			c              types.Clone
			currentAccount sql.NullString
			lastScanned    sql.NullTime
		)
		err := rows.Scan(&c.DeviceID, &c.CloneNumber, &c.DeviceName, &c.PackageName,
			&c.Status, &c.Health, &currentAccount, &lastScanned)
		if err != nil {
			return nil, fmt.Errorf("failed to scan clone row: %w", err)
		}
		c.CurrentAccount = currentAccount.String
		c.LastScanned = lastScanned.Time
		clones = append(clones, c)
	}

	return clones, rows.Err()
}

// ListAccounts returns the accounts matching the given IDs, in any status.
func (s *SQLStore) ListAccounts(ctx context.Context, ids []int64) ([]types.Account, error) {
	if len(ids) == 0 {
		return []types.Account{}, nil
	}

	query := `
		SELECT id, instagram_username, status, assigned_device_id,
		       assigned_clone_number, assigned_package_name, assignment_timestamp
		FROM ig_accounts
		WHERE id IN (` + placeholders(len(ids)) + `)
		ORDER BY id`

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []types.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}

	return accounts, rows.Err()
}

// Within runs fn inside a single transaction, committing on nil and rolling
// back on error or panic.
func (s *SQLStore) Within(ctx context.Context, fn func(tx types.Tx) error) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = dbTx.Rollback()
		}
	}()

	if err := fn(&sqlTx{tx: dbTx}); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true

	return nil
}

// UpsertClone inserts or replaces a clone row. Provisioning is normally done
// by the device scanner; this entry point exists for bootstrap tooling and
// tests.
func (s *SQLStore) UpsertClone(ctx context.Context, c types.Clone) error {
	var currentAccount any
	if c.CurrentAccount != "" {
		currentAccount = c.CurrentAccount
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO clone_inventory
			(device_id, clone_number, device_name, package_name, clone_status, clone_health, current_account, last_scanned)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.DeviceID, c.CloneNumber, c.DeviceName, c.PackageName, c.Status, c.Health, currentAccount, c.LastScanned)
	if err != nil {
		return fmt.Errorf("failed to upsert clone: %w", err)
	}

	return nil
}

// InsertAccount inserts an account row and returns its assigned ID.
func (s *SQLStore) InsertAccount(ctx context.Context, a types.Account) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO ig_accounts (instagram_username, status) VALUES (?, ?)`,
		a.Username, a.Status)
	if err != nil {
		return 0, fmt.Errorf("failed to insert account: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted account id: %w", err)
	}

	return id, nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scan code.
type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (types.Account, error) {
	var (
		a           types.Account
		deviceID    sql.NullString
		cloneNumber sql.NullInt64
		packageName sql.NullString
		assignedAt  sql.NullTime
	)

	err := row.Scan(&a.ID, &a.Username, &a.Status, &deviceID, &cloneNumber, &packageName, &assignedAt)
	if err != nil {
		return types.Account{}, fmt.Errorf("failed to scan account row: %w", err)
	}

	a.AssignedDeviceID = deviceID.String
	a.AssignedCloneNumber = int(cloneNumber.Int64)
	a.AssignedPackageName = packageName.String
	a.AssignedAt = assignedAt.Time

	return a, nil
}

// placeholders returns "?, ?, ..." with n markers.
func placeholders(n int) string {
	if n == 0 {
		return ""
	}

	out := make([]byte, 0, n*3)
	for i := range n {
		if i > 0 {
			out = append(out, ", "...)
		}
		out = append(out, '?')
	}

	return string(out)
}
