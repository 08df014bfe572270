package capcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arloliu/fleetslot/types"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	calls    int
	capacity []types.DeviceCapacity
	err      error
}

func (f *fakeSource) Capacity(_ context.Context) ([]types.DeviceCapacity, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}

	return f.capacity, nil
}

func newFakeClock(start time.Time) (func() time.Time, func(time.Duration)) {
	current := start

	return func() time.Time { return current }, func(d time.Duration) { current = current.Add(d) }
}

func TestCache_Snapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("serves cached snapshot within ttl", func(t *testing.T) {
		src := &fakeSource{capacity: []types.DeviceCapacity{{DeviceID: "D1", TotalClones: 4}}}
		cache := New(src, 10*time.Second)
		clock, _ := newFakeClock(time.Now())
		cache.clock = clock

		first, err := cache.Snapshot(ctx)
		require.NoError(t, err)
		second, err := cache.Snapshot(ctx)
		require.NoError(t, err)

		require.Equal(t, first, second)
		require.Equal(t, 1, src.calls, "second read must come from cache")
	})

	t.Run("refreshes after ttl expiry", func(t *testing.T) {
		src := &fakeSource{capacity: []types.DeviceCapacity{{DeviceID: "D1"}}}
		cache := New(src, 10*time.Second)
		clock, advance := newFakeClock(time.Now())
		cache.clock = clock

		_, err := cache.Snapshot(ctx)
		require.NoError(t, err)

		advance(11 * time.Second)
		_, err = cache.Snapshot(ctx)
		require.NoError(t, err)

		require.Equal(t, 2, src.calls)
	})

	t.Run("source error drops stale snapshot", func(t *testing.T) {
		src := &fakeSource{capacity: []types.DeviceCapacity{{DeviceID: "D1"}}}
		cache := New(src, 10*time.Second)
		clock, advance := newFakeClock(time.Now())
		cache.clock = clock

		_, err := cache.Snapshot(ctx)
		require.NoError(t, err)

		src.err = errors.New("store down")
		advance(11 * time.Second)
		_, err = cache.Snapshot(ctx)
		require.Error(t, err)

		_, ok, derr := cache.Device(ctx, "D1")
		require.Error(t, derr, "no stale data may be served after a failed refresh")
		require.False(t, ok)
	})
}

func TestCache_Device(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{capacity: []types.DeviceCapacity{
		{DeviceID: "D1", AvailableClones: 2},
		{DeviceID: "D2", AvailableClones: 0},
	}}
	cache := New(src, time.Minute)

	dc, ok, err := cache.Device(ctx, "D1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 2, dc.AvailableClones)

	_, ok, err = cache.Device(ctx, "D9")
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, 1, src.calls, "device lookups share one snapshot")
}

func TestCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{capacity: []types.DeviceCapacity{{DeviceID: "D1"}}}
	cache := New(src, time.Minute)

	_, err := cache.Snapshot(ctx)
	require.NoError(t, err)

	cache.Invalidate()

	_, err = cache.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, src.calls)
}
