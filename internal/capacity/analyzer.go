// Package capacity derives per-device aggregates from raw clone inventory rows.
package capacity

import (
	"math"
	"sort"

	"github.com/arloliu/fleetslot/types"
)

// Efficiency scoring weights. The score starts at 100 and is clamped to
// [0, 100] after all adjustments.
const (
	baseScore          = 100.0
	brokenPenalty      = 50.0
	maintenancePenalty = 30.0
	availableBonus     = 10.0
	balancedLoadBonus  = 5.0
	brokenRateWeight   = 0.5
)

// Analyze computes one DeviceCapacity per distinct device in the inventory.
//
// Devices are discovered by scanning clone rows: a device with no clone rows
// does not exist from the allocator's point of view. The result is sorted by
// deviceID ascending and is a pure function of the input; calling Analyze
// twice on unchanged data yields identical results.
//
// Parameters:
//   - clones: Full clone inventory (any order)
//
// Returns:
//   - []types.DeviceCapacity: Per-device aggregates sorted by deviceID
func Analyze(clones []types.Clone) []types.DeviceCapacity {
	byDevice := make(map[string][]types.Clone)
	for _, c := range clones {
		byDevice[c.DeviceID] = append(byDevice[c.DeviceID], c)
	}

	capacities := make([]types.DeviceCapacity, 0, len(byDevice))
	for deviceID, deviceClones := range byDevice {
		capacities = append(capacities, analyzeDevice(deviceID, deviceClones))
	}

	sort.Slice(capacities, func(i, j int) bool {
		return capacities[i].DeviceID < capacities[j].DeviceID
	})

	return capacities
}

// analyzeDevice derives the aggregate for a single device's clones.
func analyzeDevice(deviceID string, clones []types.Clone) types.DeviceCapacity {
	dc := types.DeviceCapacity{
		DeviceID:    deviceID,
		TotalClones: len(clones),
	}

	for _, c := range clones {
		if dc.DeviceName == "" && c.DeviceName != "" {
			dc.DeviceName = c.DeviceName
		}

		if broken(c) {
			dc.BrokenClones++
			continue
		}

		switch c.Status {
		case types.StatusAvailable:
			dc.AvailableClones++
		case types.StatusAssigned:
			dc.AssignedClones++
		case types.StatusLoggedIn:
			dc.LoggedInClones++
		case types.StatusLoginError, types.StatusMaintenance, types.StatusBroken:
			// Login errors and maintenance clones count toward the total but
			// not toward any availability bucket; Broken is handled above.
		}
	}

	dc.Status = deriveStatus(clones)
	dc.UtilizationRate = utilization(dc)
	dc.Efficiency = efficiency(dc)

	return dc
}

// broken reports whether a clone counts as broken, either by lifecycle
// status or by its last health probe.
func broken(c types.Clone) bool {
	return c.Status == types.StatusBroken || c.Health == types.HealthBroken
}

// deriveStatus evaluates the device status in strict priority order:
// Broken > Maintenance > LoggedIn > Available. A single broken clone marks
// the whole device broken regardless of the other clones' states.
func deriveStatus(clones []types.Clone) types.DeviceStatus {
	hasMaintenance := false
	hasLoggedIn := false

	for _, c := range clones {
		if broken(c) {
			return types.DeviceBroken
		}
		switch c.Status {
		case types.StatusMaintenance:
			hasMaintenance = true
		case types.StatusLoggedIn:
			hasLoggedIn = true
		case types.StatusAvailable, types.StatusAssigned, types.StatusLoginError, types.StatusBroken:
		}
	}

	switch {
	case hasMaintenance:
		return types.DeviceMaintenance
	case hasLoggedIn:
		return types.DeviceLoggedIn
	default:
		return types.DeviceAvailable
	}
}

// utilization returns (assigned+loggedIn)/total*100 rounded to 2 decimals,
// and 0 for a device with no clones.
func utilization(dc types.DeviceCapacity) float64 {
	if dc.TotalClones == 0 {
		return 0
	}

	rate := float64(dc.AssignedClones+dc.LoggedInClones) / float64(dc.TotalClones) * 100

	return round2(rate)
}

// efficiency computes the heuristic desirability score for new assignments.
//
// The score starts at 100, is penalized for broken/maintenance devices and a
// high broken-clone rate, and rewarded for spare capacity and balanced load.
// The final value is clamped to [0, 100] so adversarial inputs (all-broken
// devices) never produce a negative score.
func efficiency(dc types.DeviceCapacity) float64 {
	score := baseScore

	switch dc.Status {
	case types.DeviceBroken:
		score -= brokenPenalty
	case types.DeviceMaintenance:
		score -= maintenancePenalty
	case types.DeviceAvailable, types.DeviceLoggedIn:
	}

	if dc.AvailableClones > 0 {
		score += availableBonus
	}
	if dc.UtilizationRate > 10 && dc.UtilizationRate < 90 {
		score += balancedLoadBonus
	}

	if dc.TotalClones > 0 {
		brokenRate := float64(dc.BrokenClones) / float64(dc.TotalClones) * 100
		score -= brokenRate * brokenRateWeight
	}

	return round2(math.Min(100, math.Max(0, score)))
}

// round2 rounds to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
