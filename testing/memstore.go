package testing

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/arloliu/fleetslot/types"
)

// MemStore is an in-memory types.Store with the same conditional-update
// semantics as the relational store.
//
// Fault-injection knobs simulate the race and failure modes the allocator
// must tolerate:
//   - PreTx runs at the start of every Within call, after planning reads but
//     before any conditional update, which is exactly the window where a
//     concurrent allocator call can steal a clone or an account.
//   - ClaimErr / BindErr force a hard storage error on the Nth matching
//     update, which must roll back the whole transaction.
//
// MemStore is safe for concurrent use.
type MemStore struct {
	mu       sync.Mutex
	clones   map[types.CloneKey]types.Clone
	accounts map[int64]types.Account
	nextID   int64

	// PreTx, when non-nil, is invoked at the start of each Within call.
	PreTx func(ms *MemStore)

	// ClaimErr is returned by the ClaimErrOn-th ClaimClone call (1-based;
	// zero means the first call) when non-nil.
	ClaimErr   error
	ClaimErrOn int

	// BindErr is returned by the BindErrOn-th BindAccount call (1-based;
	// zero means the first call) when non-nil.
	BindErr   error
	BindErrOn int

	claimCalls int
	bindCalls  int
}

// Compile-time assertion that MemStore implements Store.
var _ types.Store = (*MemStore)(nil)

// NewMemStore creates an empty in-memory store.
//
// Returns:
//   - *MemStore: Ready-to-seed store
func NewMemStore() *MemStore {
	return &MemStore{
		clones:   make(map[types.CloneKey]types.Clone),
		accounts: make(map[int64]types.Account),
		nextID:   1,
	}
}

// SeedClone inserts or replaces a clone row.
func (ms *MemStore) SeedClone(c types.Clone) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.clones[c.Key()] = c
}

// SeedAccount inserts an account row, assigning an ID when a.ID is zero.
// Returns the account's ID.
func (ms *MemStore) SeedAccount(a types.Account) int64 {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if a.ID == 0 {
		a.ID = ms.nextID
	}
	if a.ID >= ms.nextID {
		ms.nextID = a.ID + 1
	}
	ms.accounts[a.ID] = a

	return a.ID
}

// Clone returns the clone row at the given key.
func (ms *MemStore) Clone(deviceID string, cloneNumber int) (types.Clone, bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	c, ok := ms.clones[types.CloneKey{DeviceID: deviceID, CloneNumber: cloneNumber}]

	return c, ok
}

// Account returns the account row with the given ID.
func (ms *MemStore) Account(id int64) (types.Account, bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	a, ok := ms.accounts[id]

	return a, ok
}

// SetCloneStatus rewrites a clone's status, simulating an out-of-band change.
func (ms *MemStore) SetCloneStatus(deviceID string, cloneNumber int, status types.CloneStatus) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	key := types.CloneKey{DeviceID: deviceID, CloneNumber: cloneNumber}
	if c, ok := ms.clones[key]; ok {
		c.Status = status
		ms.clones[key] = c
	}
}

// SetAccountStatus rewrites an account's status, simulating an out-of-band
// change.
func (ms *MemStore) SetAccountStatus(id int64, status types.AccountStatus) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if a, ok := ms.accounts[id]; ok {
		a.Status = status
		ms.accounts[id] = a
	}
}

// ListClones returns every clone row ordered by (deviceID, cloneNumber).
func (ms *MemStore) ListClones(_ context.Context) ([]types.Clone, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	clones := make([]types.Clone, 0, len(ms.clones))
	for _, c := range ms.clones {
		clones = append(clones, c)
	}
	sort.Slice(clones, func(i, j int) bool {
		if clones[i].DeviceID != clones[j].DeviceID {
			return clones[i].DeviceID < clones[j].DeviceID
		}

		return clones[i].CloneNumber < clones[j].CloneNumber
	})

	return clones, nil
}

// ListAccounts returns the accounts matching the given IDs, in any status.
func (ms *MemStore) ListAccounts(_ context.Context, ids []int64) ([]types.Account, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	accounts := make([]types.Account, 0, len(ids))
	for _, id := range ids {
		if a, ok := ms.accounts[id]; ok {
			accounts = append(accounts, a)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })

	return accounts, nil
}

// Within runs fn against a transactional view: a non-nil error from fn
// restores the pre-transaction state.
func (ms *MemStore) Within(_ context.Context, fn func(tx types.Tx) error) error {
	if ms.PreTx != nil {
		ms.PreTx(ms)
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	snapshot := ms.snapshotLocked()
	if err := fn(&memTx{ms: ms}); err != nil {
		ms.restoreLocked(snapshot)

		return err
	}

	return nil
}

type memSnapshot struct {
	clones   map[types.CloneKey]types.Clone
	accounts map[int64]types.Account
}

func (ms *MemStore) snapshotLocked() memSnapshot {
	snap := memSnapshot{
		clones:   make(map[types.CloneKey]types.Clone, len(ms.clones)),
		accounts: make(map[int64]types.Account, len(ms.accounts)),
	}
	for k, v := range ms.clones {
		snap.clones[k] = v
	}
	for k, v := range ms.accounts {
		snap.accounts[k] = v
	}

	return snap
}

func (ms *MemStore) restoreLocked(snap memSnapshot) {
	ms.clones = snap.clones
	ms.accounts = snap.accounts
}

// memTx implements types.Tx against the live maps; the enclosing Within call
// holds the lock for the whole transaction.
type memTx struct {
	ms *MemStore
}

var _ types.Tx = (*memTx)(nil)

// ClaimClone marks an Available clone Assigned and sets its occupant.
func (t *memTx) ClaimClone(_ context.Context, deviceID string, cloneNumber int, username string) (bool, error) {
	ms := t.ms
	ms.claimCalls++
	if ms.ClaimErr != nil && ms.claimCalls == max(1, ms.ClaimErrOn) {
		return false, ms.ClaimErr
	}

	key := types.CloneKey{DeviceID: deviceID, CloneNumber: cloneNumber}
	c, ok := ms.clones[key]
	if !ok || c.Status != types.StatusAvailable {
		return false, nil
	}

	c.Status = types.StatusAssigned
	c.CurrentAccount = username
	ms.clones[key] = c

	return true, nil
}

// ReleaseClone marks a clone Available again and clears its occupant.
func (t *memTx) ReleaseClone(_ context.Context, deviceID string, cloneNumber int, username string) (bool, error) {
	ms := t.ms

	key := types.CloneKey{DeviceID: deviceID, CloneNumber: cloneNumber}
	c, ok := ms.clones[key]
	if !ok || c.CurrentAccount != username {
		return false, nil
	}

	c.Status = types.StatusAvailable
	c.CurrentAccount = ""
	ms.clones[key] = c

	return true, nil
}

// BindAccount records the assignment on the account row.
func (t *memTx) BindAccount(_ context.Context, accountID int64, deviceID string, cloneNumber int, packageName string, at time.Time) (bool, error) {
	ms := t.ms
	ms.bindCalls++
	if ms.BindErr != nil && ms.bindCalls == max(1, ms.BindErrOn) {
		return false, ms.BindErr
	}

	a, ok := ms.accounts[accountID]
	if !ok || a.Status != types.AccountUnused || a.Assigned() {
		return false, nil
	}

	a.Status = types.AccountAssigned
	a.AssignedDeviceID = deviceID
	a.AssignedCloneNumber = cloneNumber
	a.AssignedPackageName = packageName
	a.AssignedAt = at
	ms.accounts[accountID] = a

	return true, nil
}

// UnbindAccount clears the assignment fields and returns the account to the
// backlog.
func (t *memTx) UnbindAccount(_ context.Context, accountID int64) (bool, error) {
	ms := t.ms

	a, ok := ms.accounts[accountID]
	if !ok || !a.Assigned() {
		return false, nil
	}

	a.Status = types.AccountUnused
	a.AssignedDeviceID = ""
	a.AssignedCloneNumber = 0
	a.AssignedPackageName = ""
	a.AssignedAt = time.Time{}
	ms.accounts[accountID] = a

	return true, nil
}
