package types

import "time"

// Clone represents a single clone slot on an emulated device.
//
// Clones are identified by the composite key (DeviceID, CloneNumber). Rows are
// provisioned out-of-band by device scanning; the allocator only flips Status
// between StatusAvailable and StatusAssigned and sets or clears CurrentAccount.
type Clone struct {
	// DeviceID identifies the host device. Devices are never created or
	// destroyed by the allocator; they are discovered by scanning clone rows.
	DeviceID string `json:"deviceId"`

	// CloneNumber is the slot index on the device.
	CloneNumber int `json:"cloneNumber"`

	// DeviceName is an optional human-readable device label.
	DeviceName string `json:"deviceName,omitempty"`

	// PackageName is the app package installed on this slot.
	PackageName string `json:"packageName"`

	// Status is the slot's lifecycle state.
	Status CloneStatus `json:"cloneStatus"`

	// Health is the slot's last scanned health.
	Health Health `json:"cloneHealth"`

	// CurrentAccount is the username currently occupying the slot.
	// Empty when the slot is unoccupied. This is a weak reference, not
	// ownership: the account row carries the authoritative assignment.
	CurrentAccount string `json:"currentAccount,omitempty"`

	// LastScanned is when the scanning collaborator last probed the slot.
	LastScanned time.Time `json:"lastScanned"`
}

// Key returns the composite identifier of the clone, suitable for map keys
// and log correlation.
func (c Clone) Key() CloneKey {
	return CloneKey{DeviceID: c.DeviceID, CloneNumber: c.CloneNumber}
}

// CloneKey is the composite identity of a clone slot.
type CloneKey struct {
	DeviceID    string
	CloneNumber int
}

// Account represents an Instagram credential record as seen by the allocator.
//
// Invariant maintained by the committer: AssignedDeviceID is non-empty iff
// Status is not AccountUnused and a clone row carries CurrentAccount ==
// Username. The two sides are always updated inside one transaction.
type Account struct {
	// ID is the numeric primary key.
	ID int64 `json:"id"`

	// Username is the unique Instagram username.
	Username string `json:"instagramUsername"`

	// Status is the account's assignment lifecycle state.
	Status AccountStatus `json:"status"`

	// AssignedDeviceID is the device hosting the account, empty when unassigned.
	AssignedDeviceID string `json:"assignedDeviceId,omitempty"`

	// AssignedCloneNumber is the slot hosting the account, meaningful only
	// when AssignedDeviceID is non-empty.
	AssignedCloneNumber int `json:"assignedCloneNumber,omitempty"`

	// AssignedPackageName is the app package of the hosting slot.
	AssignedPackageName string `json:"assignedPackageName,omitempty"`

	// AssignedAt is when the current assignment was committed.
	AssignedAt time.Time `json:"assignmentTimestamp,omitempty"`
}

// Assigned reports whether the account currently occupies a clone.
func (a Account) Assigned() bool {
	return a.AssignedDeviceID != ""
}

// DeviceCapacity is the derived per-device aggregate used for capacity-based
// planning and dashboards.
//
// Capacities are computed fresh from clone rows on every planning pass and
// are never cached inside the allocator; callers may cache them externally
// (see the capcache package).
type DeviceCapacity struct {
	// DeviceID identifies the device.
	DeviceID string `json:"deviceId"`

	// DeviceName is the optional device label, taken from the first clone row
	// that carries one.
	DeviceName string `json:"deviceName,omitempty"`

	// TotalClones is the number of clone slots on the device.
	TotalClones int `json:"totalClones"`

	// AvailableClones is the number of slots with StatusAvailable.
	AvailableClones int `json:"availableClones"`

	// AssignedClones is the number of slots with StatusAssigned.
	AssignedClones int `json:"assignedClones"`

	// LoggedInClones is the number of slots with StatusLoggedIn.
	LoggedInClones int `json:"loggedInClones"`

	// BrokenClones is the number of slots that are broken by status or health.
	BrokenClones int `json:"brokenClones"`

	// Status is the derived aggregate device status.
	Status DeviceStatus `json:"deviceStatus"`

	// UtilizationRate is (assigned+loggedIn)/total*100, rounded to 2 decimals.
	UtilizationRate float64 `json:"utilizationRate"`

	// Efficiency is the heuristic desirability score in [0, 100].
	// Higher scores attract new assignments first under the capacity-based
	// strategy.
	Efficiency float64 `json:"efficiency"`
}

// Placement is one planned account-to-clone pairing, not yet committed.
type Placement struct {
	// AccountID is the account's numeric primary key.
	AccountID int64 `json:"accountId"`

	// Username is the account's Instagram username.
	Username string `json:"instagramUsername"`

	// DeviceID is the target device.
	DeviceID string `json:"deviceId"`

	// CloneNumber is the target slot on the device.
	CloneNumber int `json:"cloneNumber"`

	// PackageName is the app package of the target slot.
	PackageName string `json:"packageName"`
}
