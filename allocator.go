package fleetslot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/arloliu/fleetslot/internal/capacity"
	"github.com/arloliu/fleetslot/internal/logging"
	"github.com/arloliu/fleetslot/internal/metrics"
	"github.com/arloliu/fleetslot/strategy"
	"github.com/arloliu/fleetslot/types"
)

// Allocator decides which Instagram account gets placed on which device
// clone slot.
//
// Allocator is the main entry point of the fleetslot library. It handles:
//   - Capacity analysis over the clone inventory
//   - Multi-strategy assignment planning
//   - Pre-commit feasibility validation
//   - Transactional batch commits with per-pairing fault isolation
//
// Allocator holds no hidden state: all inventory and backlog state lives in
// the injected Store, and every invocation reads it fresh. Two concurrent
// allocator calls can race on the same rows; conditional updates inside the
// committer's transaction are the correctness mechanism, with validation
// being advisory only.
//
// Thread Safety: all public methods are safe for concurrent use.
type Allocator struct {
	cfg   Config
	store Store

	strategies map[string]PlanStrategy
	hooks      *Hooks
	metrics    MetricsCollector
	logger     Logger
	clock      func() time.Time
}

// NewAllocator creates a new Allocator with the provided configuration and
// storage handle.
//
// Returns a concrete *Allocator struct following the "accept interfaces,
// return structs" principle. Consumers can define their own interfaces for
// testing if needed.
//
// Parameters:
//   - cfg: Allocator configuration (nil for defaults)
//   - st: Storage handle (relational store or testing.MemStore)
//   - opts: Optional configuration (hooks, metrics, logger, custom strategies)
//
// Returns:
//   - *Allocator: Initialized allocator instance
//   - error: Validation error if the configuration is invalid
//
// Example:
//
//	st, err := store.Open("fleet.db")
//	if err != nil { /* handle */ }
//	alloc, err := fleetslot.NewAllocator(nil, st, fleetslot.WithMetrics(collector))
func NewAllocator(cfg *Config, st Store, opts ...Option) (*Allocator, error) {
	if st == nil {
		return nil, ErrStoreRequired
	}

	var config Config
	if cfg != nil {
		config = *cfg
	}
	config.SetDefaults()

	options := allocatorOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	registered := make(map[string]bool, len(options.strategies))
	for name := range options.strategies {
		registered[name] = true
	}
	if err := config.validate(registered); err != nil {
		return nil, err
	}

	if options.logger == nil {
		options.logger = logging.NewSlogDefault()
	}
	if options.metrics == nil {
		options.metrics = metrics.NewNop()
	}
	if options.clock == nil {
		options.clock = time.Now
	}

	return &Allocator{
		cfg:        config,
		store:      st,
		strategies: options.strategies,
		hooks:      options.hooks,
		metrics:    options.metrics,
		logger:     options.logger,
		clock:      options.clock,
	}, nil
}

// Capacity computes the current per-device capacity aggregates from a fresh
// inventory read.
//
// Capacities are never cached across calls; callers that poll frequently can
// layer the capcache package on top.
//
// Parameters:
//   - ctx: Context for cancellation and deadline
//
// Returns:
//   - []DeviceCapacity: Per-device aggregates sorted by deviceID
//   - error: Storage failure
func (a *Allocator) Capacity(ctx context.Context) ([]DeviceCapacity, error) {
	clones, err := a.store.ListClones(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read clone inventory: %w", err)
	}

	capacities := capacity.Analyze(clones)

	available := 0
	for _, dc := range capacities {
		available += dc.AvailableClones
	}
	a.metrics.RecordCapacitySnapshot(len(capacities), available)

	return capacities, nil
}

// PlanAssignments computes the proposed account-to-clone mapping without
// committing anything.
//
// The accounts actually planned are the requested IDs that are currently
// Unused and unassigned, kept in request order. The plan is computed against
// a point-in-time inventory read and may be stale by commit time; AssignBatch
// recomputes it fresh.
//
// Parameters:
//   - ctx: Context for cancellation and deadline
//   - accountIDs: Requested account IDs in priority order
//   - strategyName: Strategy selector ("" for the configured default)
//
// Returns:
//   - []Placement: Planned pairings in assignment order
//   - error: Unknown strategy or storage failure
func (a *Allocator) PlanAssignments(ctx context.Context, accountIDs []int64, strategyName string) ([]Placement, error) {
	name, planner, err := a.planner(strategyName)
	if err != nil {
		return nil, err
	}

	accounts, clones, err := a.readBacklog(ctx, accountIDs)
	if err != nil {
		return nil, err
	}

	start := a.clock()
	plan, err := planner.Plan(accounts, clones)
	if err != nil {
		return nil, fmt.Errorf("failed to plan assignments: %w", err)
	}

	a.metrics.RecordPlanDuration(name, a.clock().Sub(start).Seconds())
	a.metrics.RecordPlanSize(name, len(plan))
	a.logger.Debug("assignment plan computed",
		"strategy", name, "requested", len(accountIDs), "planned", len(plan))

	return plan, nil
}

// ValidateAssignment performs the pre-commit feasibility check for a batch
// of account IDs without mutating anything.
//
// The report is advisory: a valid report does not reserve rows, and a racing
// allocation between validation and commit is still resolved by the
// committer's conditional updates. Storage failures are converted into an
// invalid report, never returned as a Go error.
//
// Parameters:
//   - ctx: Context for cancellation and deadline
//   - accountIDs: Requested account IDs
//
// Returns:
//   - *Validation: Feasibility report with errors and warnings
func (a *Allocator) ValidateAssignment(ctx context.Context, accountIDs []int64) *Validation {
	v := a.validate(ctx, accountIDs)
	a.metrics.RecordValidation(v.Valid, v.CanAssign)

	return v
}

func (a *Allocator) validate(ctx context.Context, accountIDs []int64) *Validation {
	v := &Validation{
		TotalRequested: len(accountIDs),
		Errors:         []string{},
		Warnings:       []string{},
	}

	if len(accountIDs) == 0 {
		v.Errors = append(v.Errors, "No accounts specified")

		return v
	}

	if a.cfg.MaxBatchSize > 0 && len(accountIDs) > a.cfg.MaxBatchSize {
		v.Errors = append(v.Errors,
			fmt.Sprintf("Requested %d accounts exceeds the maximum batch size of %d", len(accountIDs), a.cfg.MaxBatchSize))

		return v
	}

	accounts, err := a.store.ListAccounts(ctx, accountIDs)
	if err != nil {
		a.logger.Error("validation aborted by storage error", "error", err)
		v.Errors = append(v.Errors, "Validation failed due to a storage error")

		return v
	}

	found := make(map[int64]bool, len(accounts))
	assignable := 0
	var blocked []string
	for _, acct := range accounts {
		found[acct.ID] = true
		if acct.Status.Assignable() && !acct.Assigned() {
			assignable++
		} else {
			blocked = append(blocked, acct.Username)
		}
	}

	var missing []string
	for _, id := range accountIDs {
		if !found[id] {
			missing = append(missing, fmt.Sprintf("%d", id))
		}
	}
	if len(missing) > 0 {
		v.Errors = append(v.Errors, "Accounts not found: "+strings.Join(missing, ", "))
	}
	if len(blocked) > 0 {
		v.Errors = append(v.Errors, "Accounts not available for assignment: "+strings.Join(blocked, ", "))
	}

	clones, err := a.store.ListClones(ctx)
	if err != nil {
		a.logger.Error("validation aborted by storage error", "error", err)
		v.Errors = append(v.Errors, "Validation failed due to a storage error")

		return v
	}

	availableClones := 0
	brokenDevices := make(map[string]bool)
	maintenanceDevices := make(map[string]bool)
	for _, c := range clones {
		switch {
		case c.Status == types.StatusBroken || c.Health == types.HealthBroken:
			brokenDevices[c.DeviceID] = true
		case c.Status == types.StatusMaintenance:
			maintenanceDevices[c.DeviceID] = true
		case c.Status == types.StatusAvailable:
			availableClones++
		}
	}
	if availableClones == 0 {
		v.Errors = append(v.Errors, "No available clones available for assignment")
	}

	v.CanAssign = min(assignable, availableClones)

	if v.CanAssign < v.TotalRequested {
		v.Warnings = append(v.Warnings,
			fmt.Sprintf("Only %d of %d requested accounts can be assigned", v.CanAssign, v.TotalRequested))
	}
	if availableClones < v.TotalRequested {
		v.Warnings = append(v.Warnings,
			fmt.Sprintf("Only %d available clones for %d requested accounts", availableClones, v.TotalRequested))
	}
	if len(brokenDevices) > 0 {
		v.Warnings = append(v.Warnings, fmt.Sprintf("%d devices have broken clones", len(brokenDevices)))
	}
	if len(maintenanceDevices) > 0 {
		v.Warnings = append(v.Warnings, fmt.Sprintf("%d devices have clones under maintenance", len(maintenanceDevices)))
	}

	v.Valid = len(v.Errors) == 0

	return v
}

// planner resolves the strategy selector, preferring strategies registered
// through WithStrategy over built-ins.
func (a *Allocator) planner(strategyName string) (string, PlanStrategy, error) {
	name := strategyName
	if name == "" {
		name = a.cfg.DefaultStrategy
	}

	if s, ok := a.strategies[name]; ok {
		return name, s, nil
	}

	s, err := strategy.ForName(name)
	if err != nil {
		return name, nil, err
	}

	return name, s, nil
}

// readBacklog loads the assignable subset of the requested accounts, in
// request order, together with the full clone inventory.
func (a *Allocator) readBacklog(ctx context.Context, accountIDs []int64) ([]Account, []Clone, error) {
	fetched, err := a.store.ListAccounts(ctx, accountIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read accounts: %w", err)
	}

	byID := make(map[int64]Account, len(fetched))
	for _, acct := range fetched {
		byID[acct.ID] = acct
	}

	accounts := make([]Account, 0, len(accountIDs))
	for _, id := range accountIDs {
		acct, ok := byID[id]
		if !ok || !acct.Status.Assignable() || acct.Assigned() {
			continue
		}
		accounts = append(accounts, acct)
	}

	clones, err := a.store.ListClones(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read clone inventory: %w", err)
	}

	return accounts, clones, nil
}
