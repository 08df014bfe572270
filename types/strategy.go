package types

// PlanStrategy computes a proposed account-to-clone mapping.
//
// Strategies implement different placement algorithms:
//   - CapacityBased: Drains the healthiest, most-available devices first (default)
//   - RoundRobin: Spreads load evenly across devices
//   - FillFirst: Drains devices in identifier order
//   - Custom: User-defined algorithms registered on the allocator
//
// Strategy implementations should:
//   - Be deterministic (same input → same output)
//   - Be pure (no I/O, no mutation of the input slices)
//   - Handle edge cases (no accounts, no available clones, broken devices)
//   - Run quickly (called on every batch commit)
type PlanStrategy interface {
	// Plan pairs accounts with clone slots.
	//
	// The full clone inventory is supplied, not just available slots, so
	// strategies can derive device-level aggregates; each strategy selects
	// the slots it considers eligible. The plan length is bounded by
	// min(len(accounts), eligible available clones) and contains no
	// duplicate account or clone.
	//
	// Parameters:
	//   - accounts: Backlog accounts in request order (ID and username used)
	//   - clones: Full clone inventory
	//
	// Returns:
	//   - []Placement: Planned pairings in assignment order
	//   - error: Planning error (e.g., ErrUnknownStrategy from selectors)
	Plan(accounts []Account, clones []Clone) ([]Placement, error)
}
