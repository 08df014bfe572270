package strategy

import (
	"sort"

	"github.com/arloliu/fleetslot/internal/capacity"
	"github.com/arloliu/fleetslot/types"
)

// CapacityBased implements efficiency-ranked device draining.
type CapacityBased struct{}

var _ types.PlanStrategy = (*CapacityBased)(nil)

// NewCapacityBased creates a new capacity-based strategy.
//
// The strategy derives per-device capacity aggregates, ranks devices by
// their efficiency score, and drains each device's available clones into
// the account queue before moving to the next. This concentrates load on
// the healthiest, most-available devices first and never places accounts
// on a device with a broken clone.
//
// Returns:
//   - *CapacityBased: Initialized capacity-based strategy
func NewCapacityBased() *CapacityBased {
	return &CapacityBased{}
}

// Plan drains devices in efficiency order.
//
// Devices are filtered to availableClones > 0 and status != Broken, then
// sorted by efficiency descending, with availableClones descending and
// deviceID ascending as tie-breaks. Each device's clones are consumed by
// ascending cloneNumber.
//
// Parameters:
//   - accounts: Backlog accounts in request order
//   - clones: Full clone inventory
//
// Returns:
//   - []types.Placement: Planned pairings
//   - error: Always nil
func (cb *CapacityBased) Plan(accounts []types.Account, clones []types.Clone) ([]types.Placement, error) {
	capacities := capacity.Analyze(clones)

	eligible := capacities[:0:0]
	for _, dc := range capacities {
		if dc.AvailableClones > 0 && dc.Status != types.DeviceBroken {
			eligible = append(eligible, dc)
		}
	}

	sort.Slice(eligible, func(i, j int) bool {
		if eligible[i].Efficiency != eligible[j].Efficiency {
			return eligible[i].Efficiency > eligible[j].Efficiency
		}
		if eligible[i].AvailableClones != eligible[j].AvailableClones {
			return eligible[i].AvailableClones > eligible[j].AvailableClones
		}

		return eligible[i].DeviceID < eligible[j].DeviceID
	})

	queues := make(map[string][]types.Clone)
	for _, c := range availableClones(clones) {
		queues[c.DeviceID] = append(queues[c.DeviceID], c)
	}
	for _, q := range queues {
		sort.Slice(q, func(i, j int) bool { return q[i].CloneNumber < q[j].CloneNumber })
	}

	plan := make([]types.Placement, 0, len(accounts))
	next := 0
	for _, dc := range eligible {
		for _, c := range queues[dc.DeviceID] {
			if next >= len(accounts) {
				return plan, nil
			}
			plan = append(plan, placement(accounts[next], c))
			next++
		}
	}

	return plan, nil
}
