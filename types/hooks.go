package types

import "context"

// Hooks defines callbacks for allocator events.
//
// All hooks are optional and called synchronously after the transaction that
// produced the event has committed, on the goroutine running the allocator
// call. Hook errors are logged but never fail allocator operations.
//
// Best practices for hook implementation:
//   - Complete quickly (the caller is blocked until the hook returns)
//   - Respect context cancellation
//   - Make hooks idempotent
//   - Handle errors gracefully (return error for logging)
type Hooks struct {
	// OnBatchCommitted is called after a batch commit, successful or not.
	OnBatchCommitted func(ctx context.Context, result *BatchResult) error

	// OnConflict is called for each pairing lost to a racing allocator call.
	OnConflict func(ctx context.Context, failed FailedAccount) error
}
