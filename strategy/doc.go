// Package strategy provides built-in assignment planning strategies.
//
// Planning strategies decide which account lands on which device clone slot.
// The package includes three built-in strategies:
//
//   - CapacityBased: Drains the healthiest, most-available devices first (default for high-priority paths)
//   - RoundRobin: Spreads load evenly across devices via a rotating cursor
//   - FillFirst: Deterministic positional zip over clones sorted by (deviceID, cloneNumber)
//
// # Strategy Selection Guide
//
// CapacityBased:
//   - Use when device health varies across the fleet
//   - Concentrates load on devices with the best efficiency score
//   - Skips devices with any broken clone entirely
//
// RoundRobin:
//   - Use when the fleet is homogeneous and even wear matters
//   - Guarantees no device is loaded more than one account ahead of another
//
// FillFirst:
//   - Use as a simple, fully-predictable baseline
//   - Drains devices in identifier order
//
// Custom strategies can be implemented by satisfying the types.PlanStrategy
// interface and registered on an allocator with fleetslot.WithStrategy.
package strategy
