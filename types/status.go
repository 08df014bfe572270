package types

// CloneStatus represents the lifecycle state of a single clone slot.
//
// The allocator only transitions clones between StatusAvailable and
// StatusAssigned; the remaining states are set by external collaborators
// (device scanning, login automation) and are read-only from this library's
// point of view.
type CloneStatus string

const (
	// StatusAvailable indicates the clone slot is free and can host an account.
	StatusAvailable CloneStatus = "Available"

	// StatusAssigned indicates an account has been placed on the clone but has
	// not yet logged in.
	StatusAssigned CloneStatus = "Assigned"

	// StatusLoggedIn indicates the placed account holds an active session.
	StatusLoggedIn CloneStatus = "Logged In"

	// StatusLoginError indicates the placed account failed its last login attempt.
	StatusLoginError CloneStatus = "Login Error"

	// StatusMaintenance indicates the clone is temporarily withheld from assignment.
	StatusMaintenance CloneStatus = "Maintenance"

	// StatusBroken indicates the clone is unusable.
	StatusBroken CloneStatus = "Broken"
)

// Valid reports whether s is one of the known clone statuses.
func (s CloneStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusAssigned, StatusLoggedIn, StatusLoginError, StatusMaintenance, StatusBroken:
		return true
	default:
		return false
	}
}

// DeviceStatus is the aggregate status of a device, derived from its clones.
//
// Derivation follows a strict priority order: a single broken clone marks the
// whole device DeviceBroken regardless of the other clones' states, then
// Maintenance, then LoggedIn, and only a device with none of those is
// DeviceAvailable. See capacity analysis for the derivation itself.
type DeviceStatus string

const (
	// DeviceAvailable indicates no clone on the device is broken, under
	// maintenance, or logged in.
	DeviceAvailable DeviceStatus = "Available"

	// DeviceLoggedIn indicates at least one clone holds an active session.
	DeviceLoggedIn DeviceStatus = "Logged In"

	// DeviceMaintenance indicates at least one clone is under maintenance.
	DeviceMaintenance DeviceStatus = "Maintenance"

	// DeviceBroken indicates at least one clone (or its health probe) is broken.
	DeviceBroken DeviceStatus = "Broken"
)

// Health is the hardware/runtime health of a device or clone as reported by
// the scanning collaborator.
type Health string

const (
	// HealthWorking indicates the last scan succeeded.
	HealthWorking Health = "Working"

	// HealthBroken indicates the last scan found the unit unusable.
	HealthBroken Health = "Broken"

	// HealthUnknown indicates the unit has not been scanned yet.
	HealthUnknown Health = "Unknown"
)

// AccountStatus represents the assignment lifecycle of an Instagram account.
type AccountStatus string

const (
	// AccountUnused indicates the account is in the backlog, eligible for
	// assignment.
	AccountUnused AccountStatus = "Unused"

	// AccountAssigned indicates the account has been placed on a clone.
	AccountAssigned AccountStatus = "Assigned"

	// AccountLoggedIn indicates the account holds an active session on its clone.
	AccountLoggedIn AccountStatus = "Logged In"

	// AccountLoginError indicates the account failed its last login attempt.
	AccountLoginError AccountStatus = "Login Error"

	// AccountBanned indicates the account was banned by the platform.
	AccountBanned AccountStatus = "Banned"
)

// Assignable reports whether the account status permits a new assignment.
// Only backlog accounts are assignable.
func (s AccountStatus) Assignable() bool {
	return s == AccountUnused
}
