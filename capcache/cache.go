// Package capcache provides a caller-side cache of device capacity snapshots.
//
// The allocator itself always reads capacity fresh; dashboards and status
// endpoints that poll capacity at a high rate can wrap the allocator with a
// Cache to bound the read load on the store. Lookups by device are served
// from a concurrent map, so many readers can share one snapshot without
// contention.
package capcache

import (
	"context"
	"sync"
	"time"

	"github.com/arloliu/fleetslot/types"
	"github.com/puzpuzpuz/xsync/v4"
)

// Source produces a fresh capacity snapshot. *fleetslot.Allocator satisfies
// this via its Capacity method.
type Source interface {
	Capacity(ctx context.Context) ([]types.DeviceCapacity, error)
}

// Cache is a TTL-bounded capacity snapshot cache.
//
// Cache is safe for concurrent use. A snapshot older than the TTL is
// refreshed by the first caller to observe its expiry; concurrent callers
// during a refresh are serialized so the source sees one read per expiry.
type Cache struct {
	source Source
	ttl    time.Duration
	clock  func() time.Time

	mu        sync.Mutex
	fetchedAt time.Time
	snapshot  []types.DeviceCapacity
	byDevice  *xsync.Map[string, types.DeviceCapacity]
}

// New creates a capacity cache over the given source.
//
// Parameters:
//   - source: Snapshot producer (typically a *fleetslot.Allocator)
//   - ttl: Snapshot lifetime; non-positive defaults to 5 seconds
//
// Returns:
//   - *Cache: Initialized cache
//
// Example:
//
//	cache := capcache.New(alloc, 10*time.Second)
//	caps, err := cache.Snapshot(ctx)
func New(source Source, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}

	return &Cache{
		source:   source,
		ttl:      ttl,
		clock:    time.Now,
		byDevice: xsync.NewMap[string, types.DeviceCapacity](),
	}
}

// Snapshot returns the current capacity snapshot, refreshing it from the
// source when the cached one has expired.
//
// The returned slice is shared between callers and must not be mutated.
//
// Parameters:
//   - ctx: Context for cancellation and deadline
//
// Returns:
//   - []types.DeviceCapacity: Per-device aggregates sorted by deviceID
//   - error: Source failure; the stale snapshot is discarded on error
func (c *Cache) Snapshot(ctx context.Context) ([]types.DeviceCapacity, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot != nil && c.clock().Sub(c.fetchedAt) < c.ttl {
		return c.snapshot, nil
	}

	snapshot, err := c.source.Capacity(ctx)
	if err != nil {
		c.snapshot = nil
		c.byDevice.Clear()

		return nil, err
	}

	c.snapshot = snapshot
	c.fetchedAt = c.clock()
	c.byDevice.Clear()
	for _, dc := range snapshot {
		c.byDevice.Store(dc.DeviceID, dc)
	}

	return snapshot, nil
}

// Device returns one device's capacity from the snapshot, refreshing the
// snapshot first when expired.
//
// Parameters:
//   - ctx: Context for cancellation and deadline
//   - deviceID: Device to look up
//
// Returns:
//   - types.DeviceCapacity: The device's aggregate (zero value if unknown)
//   - bool: Whether the device exists in the snapshot
//   - error: Source failure during refresh
func (c *Cache) Device(ctx context.Context, deviceID string) (types.DeviceCapacity, bool, error) {
	if _, err := c.Snapshot(ctx); err != nil {
		return types.DeviceCapacity{}, false, err
	}

	dc, ok := c.byDevice.Load(deviceID)

	return dc, ok, nil
}

// Invalidate drops the cached snapshot so the next read hits the source.
// Call after committing a batch when freshness matters more than load.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snapshot = nil
	c.fetchedAt = time.Time{}
	c.byDevice.Clear()
}
