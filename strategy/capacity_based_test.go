package strategy

import (
	"testing"

	"github.com/arloliu/fleetslot/types"
	"github.com/stretchr/testify/require"
)

func TestCapacityBased_Plan(t *testing.T) {
	t.Run("prefers healthy device over one with broken clone", func(t *testing.T) {
		clones := []types.Clone{
			testClone("D1", 1, types.StatusAvailable),
			testClone("D1", 2, types.StatusAvailable),
			testClone("D2", 1, types.StatusAvailable),
			testClone("D2", 2, types.StatusBroken),
		}

		plan, err := NewCapacityBased().Plan(testAccounts(2), clones)

		require.NoError(t, err)
		require.Len(t, plan, 2)
		require.Equal(t, []string{"D1", "D1"}, planDevices(plan), "both accounts belong on the healthy device")
		requireWellFormed(t, plan)
	})

	t.Run("excludes broken devices entirely", func(t *testing.T) {
		clones := []types.Clone{
			testClone("D1", 1, types.StatusAvailable),
			testClone("D2", 1, types.StatusAvailable),
			testClone("D2", 2, types.StatusBroken),
		}

		plan, err := NewCapacityBased().Plan(testAccounts(3), clones)

		require.NoError(t, err)
		require.Len(t, plan, 1, "the broken device's spare clone is ineligible")
		require.Equal(t, "D1", plan[0].DeviceID)
	})

	t.Run("drains device clones in clone number order", func(t *testing.T) {
		clones := []types.Clone{
			testClone("D1", 3, types.StatusAvailable),
			testClone("D1", 1, types.StatusAvailable),
			testClone("D1", 2, types.StatusAvailable),
		}

		plan, err := NewCapacityBased().Plan(testAccounts(3), clones)

		require.NoError(t, err)
		require.Equal(t, 1, plan[0].CloneNumber)
		require.Equal(t, 2, plan[1].CloneNumber)
		require.Equal(t, 3, plan[2].CloneNumber)
	})

	t.Run("tie break falls through to available count then device id", func(t *testing.T) {
		// D1 and D2 both score 100; D2 has more spare clones so it drains
		// first. D3 matches D1 exactly, so device ID decides between them.
		clones := []types.Clone{
			testClone("D1", 1, types.StatusAvailable),
			testClone("D2", 1, types.StatusAvailable),
			testClone("D2", 2, types.StatusAvailable),
			testClone("D3", 1, types.StatusAvailable),
		}

		plan, err := NewCapacityBased().Plan(testAccounts(4), clones)

		require.NoError(t, err)
		require.Equal(t, []string{"D2", "D2", "D1", "D3"}, planDevices(plan))
	})

	t.Run("plan length bounded by accounts", func(t *testing.T) {
		clones := []types.Clone{
			testClone("D1", 1, types.StatusAvailable),
			testClone("D1", 2, types.StatusAvailable),
		}

		plan, err := NewCapacityBased().Plan(testAccounts(1), clones)

		require.NoError(t, err)
		require.Len(t, plan, 1)
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		clones := []types.Clone{
			testClone("D2", 1, types.StatusAvailable),
			testClone("D1", 1, types.StatusAssigned),
			testClone("D1", 2, types.StatusAvailable),
			testClone("D3", 1, types.StatusMaintenance),
			testClone("D3", 2, types.StatusAvailable),
		}
		accounts := testAccounts(3)

		first, err1 := NewCapacityBased().Plan(accounts, clones)
		second, err2 := NewCapacityBased().Plan(accounts, clones)

		require.NoError(t, err1)
		require.NoError(t, err2)
		require.Equal(t, first, second)
	})
}

func TestForName(t *testing.T) {
	t.Run("resolves built-in strategies", func(t *testing.T) {
		for _, name := range []string{NameFillFirst, NameRoundRobin, NameCapacityBased} {
			s, err := ForName(name)
			require.NoError(t, err)
			require.NotNil(t, s)
			require.True(t, Known(name))
		}
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		_, err := ForName("best-fit")

		require.ErrorIs(t, err, types.ErrUnknownStrategy)
		require.False(t, Known("best-fit"))
	})
}
