// Package fleetslot provides a Go library for placing Instagram accounts on
// emulated device clone slots with capacity-aware planning and transactional
// commits.
//
// Fleetslot decides which account from a backlog lands on which device clone,
// validates feasibility before touching any row, and applies batches as
// conditional row updates inside a single transaction with per-pairing fault
// isolation. All state lives in an injected relational store; the allocator
// itself is stateless and safe for concurrent use.
//
// # Quick Start
//
// Basic usage with default settings:
//
//	import (
//	    "github.com/arloliu/fleetslot"
//	    "github.com/arloliu/fleetslot/store"
//	)
//
//	st, err := store.Open("fleet.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer st.Close()
//
//	alloc, err := fleetslot.NewAllocator(nil, st)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result := alloc.AssignBatch(ctx, accountIDs, "")
//	fmt.Printf("%d of %d assigned\n", result.AssignedCount, result.TotalRequested)
//
// # Key Features
//
//   - Capacity Analysis: Per-device aggregates with a health/utilization efficiency score
//   - Pluggable Strategies: capacity-based (default), round-robin, and fill-first planners
//   - Advisory Validation: Pre-commit feasibility report with actionable errors and warnings
//   - Fault-Isolated Commits: A pairing lost to a racing caller fails alone, the batch continues
//   - Structured Results: Callers always receive a BatchResult, never a bare error, for normal operation
//
// # Architecture
//
// One allocator invocation flows through four read-only stages and one
// mutating stage:
//
//	inventory read → capacity analysis → planning → validation → transactional commit
//
// Only the committer mutates state, and every mutation is a conditional
// UPDATE guarded by the expected prior row state. The database's row-level
// locking inside the commit transaction is the only concurrency guard; a
// losing racer records that pairing as failed rather than erroring the
// whole batch.
package fleetslot
