package strategy

import (
	"testing"

	"github.com/arloliu/fleetslot/types"
	"github.com/stretchr/testify/require"
)

func TestRoundRobin_Plan(t *testing.T) {
	t.Run("rotates across devices", func(t *testing.T) {
		clones := []types.Clone{
			testClone("D1", 1, types.StatusAvailable),
			testClone("D1", 2, types.StatusAvailable),
			testClone("D2", 1, types.StatusAvailable),
			testClone("D2", 2, types.StatusAvailable),
		}

		plan, err := NewRoundRobin().Plan(testAccounts(4), clones)

		require.NoError(t, err)
		require.Len(t, plan, 4)
		require.Equal(t, []string{"D1", "D2", "D1", "D2"}, planDevices(plan))
		requireWellFormed(t, plan)
	})

	t.Run("spreads load evenly", func(t *testing.T) {
		// 3 devices x 4 clones, 10 accounts: no device may exceed
		// ceil(10/3) = 4 assignments, and counts differ by at most one.
		var clones []types.Clone
		for _, d := range []string{"D1", "D2", "D3"} {
			for n := 1; n <= 4; n++ {
				clones = append(clones, testClone(d, n, types.StatusAvailable))
			}
		}

		plan, err := NewRoundRobin().Plan(testAccounts(10), clones)

		require.NoError(t, err)
		require.Len(t, plan, 10)

		counts := make(map[string]int)
		for _, p := range plan {
			counts[p.DeviceID]++
		}
		for device, count := range counts {
			require.LessOrEqual(t, count, 4, "device %s overloaded", device)
			require.GreaterOrEqual(t, count, 3, "device %s underloaded", device)
		}
	})

	t.Run("skips exhausted devices without losing accounts", func(t *testing.T) {
		clones := []types.Clone{
			testClone("D1", 1, types.StatusAvailable),
			testClone("D2", 1, types.StatusAvailable),
			testClone("D2", 2, types.StatusAvailable),
			testClone("D2", 3, types.StatusAvailable),
		}

		plan, err := NewRoundRobin().Plan(testAccounts(4), clones)

		require.NoError(t, err)
		require.Len(t, plan, 4, "plan must cover every account while clones remain")
		requireWellFormed(t, plan)
	})

	t.Run("plan length bounded by available clones", func(t *testing.T) {
		clones := []types.Clone{
			testClone("D1", 1, types.StatusAvailable),
			testClone("D2", 1, types.StatusMaintenance),
		}

		plan, err := NewRoundRobin().Plan(testAccounts(3), clones)

		require.NoError(t, err)
		require.Len(t, plan, 1)
	})

	t.Run("no available clones yields empty plan", func(t *testing.T) {
		clones := []types.Clone{testClone("D1", 1, types.StatusBroken)}

		plan, err := NewRoundRobin().Plan(testAccounts(2), clones)

		require.NoError(t, err)
		require.Empty(t, plan)
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		clones := []types.Clone{
			testClone("D2", 1, types.StatusAvailable),
			testClone("D1", 1, types.StatusAvailable),
			testClone("D3", 1, types.StatusAvailable),
		}
		accounts := testAccounts(3)

		first, err1 := NewRoundRobin().Plan(accounts, clones)
		second, err2 := NewRoundRobin().Plan(accounts, clones)

		require.NoError(t, err1)
		require.NoError(t, err2)
		require.Equal(t, first, second)
	})
}

func planDevices(plan []types.Placement) []string {
	devices := make([]string, len(plan))
	for i, p := range plan {
		devices[i] = p.DeviceID
	}

	return devices
}
