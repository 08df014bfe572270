package strategy

import (
	"fmt"

	"github.com/arloliu/fleetslot/types"
)

// Strategy names accepted by ForName and the allocator configuration.
const (
	// NameFillFirst selects the fill-first strategy.
	NameFillFirst = "fill-first"

	// NameRoundRobin selects the round-robin strategy.
	NameRoundRobin = "round-robin"

	// NameCapacityBased selects the capacity-based strategy.
	NameCapacityBased = "capacity-based"
)

// ForName returns the built-in strategy registered under the given name.
//
// Parameters:
//   - name: One of NameFillFirst, NameRoundRobin, NameCapacityBased
//
// Returns:
//   - types.PlanStrategy: The selected strategy
//   - error: types.ErrUnknownStrategy wrapped with the offending name
//
// Example:
//
//	s, err := strategy.ForName("capacity-based")
//	if err != nil { /* handle */ }
//	plan, _ := s.Plan(accounts, clones)
func ForName(name string) (types.PlanStrategy, error) {
	switch name {
	case NameFillFirst:
		return NewFillFirst(), nil
	case NameRoundRobin:
		return NewRoundRobin(), nil
	case NameCapacityBased:
		return NewCapacityBased(), nil
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownStrategy, name)
	}
}

// Known reports whether name resolves to a built-in strategy.
func Known(name string) bool {
	_, err := ForName(name)

	return err == nil
}
