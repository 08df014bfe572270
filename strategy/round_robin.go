package strategy

import (
	"sort"

	"github.com/arloliu/fleetslot/types"
)

// RoundRobin implements even load spreading across devices.
type RoundRobin struct{}

var _ types.PlanStrategy = (*RoundRobin)(nil)

// NewRoundRobin creates a new round-robin strategy.
//
// The strategy walks the sorted distinct list of devices with at least one
// available clone using a rotating cursor, assigning each account to the
// next device in rotation. The goal is to spread load evenly across devices
// rather than draining one device first.
//
// Returns:
//   - *RoundRobin: Initialized round-robin strategy
func NewRoundRobin() *RoundRobin {
	return &RoundRobin{}
}

// Plan assigns each account to the next device in rotation.
//
// For each account the cursor probes up to len(devices) devices, starting at
// the cursor position, for a device with an unused available clone; the
// cursor then advances past the device that served the account. A device
// exhausted mid-rotation is skipped without consuming the account's turn, so
// distribution stays even when devices drain at different rates.
//
// Parameters:
//   - accounts: Backlog accounts in request order
//   - clones: Full clone inventory
//
// Returns:
//   - []types.Placement: Planned pairings
//   - error: Always nil
func (rr *RoundRobin) Plan(accounts []types.Account, clones []types.Clone) ([]types.Placement, error) {
	queues := make(map[string][]types.Clone)
	for _, c := range availableClones(clones) {
		queues[c.DeviceID] = append(queues[c.DeviceID], c)
	}

	deviceIDs := make([]string, 0, len(queues))
	for id, q := range queues {
		sort.Slice(q, func(i, j int) bool { return q[i].CloneNumber < q[j].CloneNumber })
		deviceIDs = append(deviceIDs, id)
	}
	sort.Strings(deviceIDs)

	if len(deviceIDs) == 0 {
		return []types.Placement{}, nil
	}

	plan := make([]types.Placement, 0, len(accounts))
	cursor := 0
	for _, account := range accounts {
		assigned := false
		for attempt := range deviceIDs {
			idx := (cursor + attempt) % len(deviceIDs)
			deviceID := deviceIDs[idx]
			queue := queues[deviceID]
			if len(queue) == 0 {
				continue
			}

			plan = append(plan, placement(account, queue[0]))
			queues[deviceID] = queue[1:]
			cursor = (idx + 1) % len(deviceIDs)
			assigned = true

			break
		}
		if !assigned {
			// Every device is exhausted; later accounts cannot fare better.
			break
		}
	}

	return plan, nil
}
