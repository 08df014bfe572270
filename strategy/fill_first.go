package strategy

import (
	"sort"

	"github.com/arloliu/fleetslot/types"
)

// FillFirst implements positional assignment over sorted clones.
type FillFirst struct{}

var _ types.PlanStrategy = (*FillFirst)(nil)

// NewFillFirst creates a new fill-first strategy.
//
// The strategy sorts available clones by (deviceID, cloneNumber) and zips
// them positionally with the accounts in input order, draining one device
// completely before touching the next. This is the simplest deterministic
// baseline.
//
// Returns:
//   - *FillFirst: Initialized fill-first strategy
func NewFillFirst() *FillFirst {
	return &FillFirst{}
}

// Plan pairs accounts with clones positionally.
//
// The plan length is min(len(accounts), available clones); no clone or
// account appears twice. Inputs are never mutated.
//
// Parameters:
//   - accounts: Backlog accounts in request order
//   - clones: Full clone inventory
//
// Returns:
//   - []types.Placement: Planned pairings
//   - error: Always nil
func (f *FillFirst) Plan(accounts []types.Account, clones []types.Clone) ([]types.Placement, error) {
	available := availableClones(clones)
	sortClones(available)

	n := min(len(accounts), len(available))
	plan := make([]types.Placement, 0, n)
	for i := range n {
		plan = append(plan, placement(accounts[i], available[i]))
	}

	return plan, nil
}

// availableClones returns a working copy of the clones with StatusAvailable.
// Strategies operate on derived copies so input state is never mutated.
func availableClones(clones []types.Clone) []types.Clone {
	available := make([]types.Clone, 0, len(clones))
	for _, c := range clones {
		if c.Status == types.StatusAvailable {
			available = append(available, c)
		}
	}

	return available
}

// sortClones orders clones by (deviceID, cloneNumber) ascending.
func sortClones(clones []types.Clone) {
	sort.Slice(clones, func(i, j int) bool {
		if clones[i].DeviceID != clones[j].DeviceID {
			return clones[i].DeviceID < clones[j].DeviceID
		}

		return clones[i].CloneNumber < clones[j].CloneNumber
	})
}

// placement builds the plan record for one account/clone pairing.
func placement(account types.Account, clone types.Clone) types.Placement {
	return types.Placement{
		AccountID:   account.ID,
		Username:    account.Username,
		DeviceID:    clone.DeviceID,
		CloneNumber: clone.CloneNumber,
		PackageName: clone.PackageName,
	}
}
