package fleetslot

import "github.com/arloliu/fleetslot/types"

// Re-export types from the internal types package.
//
// This file provides a stable public API for the library's core types and
// interfaces via type aliases. Internal packages depend on the `types`
// subpackage without depending on the root package, while users get the
// convenient `fleetslot.Clone`, `fleetslot.Store`, etc.
type (
	Clone          = types.Clone
	CloneKey       = types.CloneKey
	Account        = types.Account
	DeviceCapacity = types.DeviceCapacity
	Placement      = types.Placement
	Validation     = types.Validation
	FailedAccount  = types.FailedAccount
	BatchResult    = types.BatchResult
)

// Re-export interfaces from the internal types package for convenience.
type (
	Store            = types.Store
	Tx               = types.Tx
	PlanStrategy     = types.PlanStrategy
	Logger           = types.Logger
	MetricsCollector = types.MetricsCollector
	Hooks            = types.Hooks
)

// Re-export status enums from the internal types package.
type (
	CloneStatus   = types.CloneStatus
	DeviceStatus  = types.DeviceStatus
	AccountStatus = types.AccountStatus
	Health        = types.Health
)

// Re-export clone status constants.
const (
	StatusAvailable   = types.StatusAvailable
	StatusAssigned    = types.StatusAssigned
	StatusLoggedIn    = types.StatusLoggedIn
	StatusLoginError  = types.StatusLoginError
	StatusMaintenance = types.StatusMaintenance
	StatusBroken      = types.StatusBroken
)

// Re-export device status constants.
const (
	DeviceAvailable   = types.DeviceAvailable
	DeviceLoggedIn    = types.DeviceLoggedIn
	DeviceMaintenance = types.DeviceMaintenance
	DeviceBroken      = types.DeviceBroken
)

// Re-export account status constants.
const (
	AccountUnused     = types.AccountUnused
	AccountAssigned   = types.AccountAssigned
	AccountLoggedIn   = types.AccountLoggedIn
	AccountLoginError = types.AccountLoginError
	AccountBanned     = types.AccountBanned
)
