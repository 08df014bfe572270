package capacity

import (
	"testing"

	"github.com/arloliu/fleetslot/types"
	"github.com/stretchr/testify/require"
)

func clone(deviceID string, n int, status types.CloneStatus) types.Clone {
	return types.Clone{
		DeviceID:    deviceID,
		CloneNumber: n,
		PackageName: "com.instagram.android",
		Status:      status,
		Health:      types.HealthWorking,
	}
}

func TestAnalyze_DeviceStatusPriority(t *testing.T) {
	t.Run("single broken clone marks device broken", func(t *testing.T) {
		caps := Analyze([]types.Clone{
			clone("D1", 1, types.StatusAvailable),
			clone("D1", 2, types.StatusBroken),
			clone("D1", 3, types.StatusLoggedIn),
		})

		require.Len(t, caps, 1)
		require.Equal(t, types.DeviceBroken, caps[0].Status)
	})

	t.Run("broken health counts as broken", func(t *testing.T) {
		c := clone("D1", 1, types.StatusAvailable)
		c.Health = types.HealthBroken

		caps := Analyze([]types.Clone{c, clone("D1", 2, types.StatusAvailable)})

		require.Equal(t, types.DeviceBroken, caps[0].Status)
		require.Equal(t, 1, caps[0].BrokenClones)
	})

	t.Run("maintenance outranks logged in", func(t *testing.T) {
		caps := Analyze([]types.Clone{
			clone("D1", 1, types.StatusLoggedIn),
			clone("D1", 2, types.StatusMaintenance),
		})

		require.Equal(t, types.DeviceMaintenance, caps[0].Status)
	})

	t.Run("logged in outranks available", func(t *testing.T) {
		caps := Analyze([]types.Clone{
			clone("D1", 1, types.StatusAvailable),
			clone("D1", 2, types.StatusLoggedIn),
		})

		require.Equal(t, types.DeviceLoggedIn, caps[0].Status)
	})

	t.Run("all idle yields available", func(t *testing.T) {
		caps := Analyze([]types.Clone{
			clone("D1", 1, types.StatusAvailable),
			clone("D1", 2, types.StatusAssigned),
		})

		require.Equal(t, types.DeviceAvailable, caps[0].Status)
	})
}

func TestAnalyze_Utilization(t *testing.T) {
	t.Run("counts assigned and logged in clones", func(t *testing.T) {
		caps := Analyze([]types.Clone{
			clone("D1", 1, types.StatusAssigned),
			clone("D1", 2, types.StatusLoggedIn),
			clone("D1", 3, types.StatusAvailable),
		})

		require.InDelta(t, 66.67, caps[0].UtilizationRate, 0.001)
	})

	t.Run("bounded within 0 and 100", func(t *testing.T) {
		statuses := []types.CloneStatus{
			types.StatusAvailable, types.StatusAssigned, types.StatusLoggedIn,
			types.StatusLoginError, types.StatusMaintenance, types.StatusBroken,
		}
		var clones []types.Clone
		for i, s := range statuses {
			clones = append(clones, clone("D1", i+1, s))
		}

		caps := Analyze(clones)

		require.GreaterOrEqual(t, caps[0].UtilizationRate, 0.0)
		require.LessOrEqual(t, caps[0].UtilizationRate, 100.0)
	})

	t.Run("empty inventory yields no devices", func(t *testing.T) {
		require.Empty(t, Analyze(nil))
	})
}

func TestAnalyze_Efficiency(t *testing.T) {
	t.Run("clamped to 100 for healthy device with spare capacity", func(t *testing.T) {
		caps := Analyze([]types.Clone{
			clone("D1", 1, types.StatusAvailable),
			clone("D1", 2, types.StatusAvailable),
		})

		require.InDelta(t, 100.0, caps[0].Efficiency, 0.001)
	})

	t.Run("never negative for all broken device", func(t *testing.T) {
		caps := Analyze([]types.Clone{
			clone("D1", 1, types.StatusBroken),
			clone("D1", 2, types.StatusBroken),
			clone("D1", 3, types.StatusBroken),
		})

		// 100 - 50 (broken) - 100*0.5 (broken rate) clamps at 0.
		require.Equal(t, 0.0, caps[0].Efficiency)
	})

	t.Run("broken device with spare clone scores below healthy device", func(t *testing.T) {
		caps := Analyze([]types.Clone{
			clone("D1", 1, types.StatusAvailable),
			clone("D1", 2, types.StatusAvailable),
			clone("D2", 1, types.StatusAvailable),
			clone("D2", 2, types.StatusBroken),
		})

		require.Len(t, caps, 2)
		d1, d2 := caps[0], caps[1]
		require.Equal(t, "D1", d1.DeviceID)
		require.Greater(t, d1.Efficiency, d2.Efficiency)
		// 100 - 50 (broken) + 10 (available) - 50*0.5 (broken rate) = 35.
		require.InDelta(t, 35.0, d2.Efficiency, 0.001)
	})

	t.Run("balanced load earns bonus", func(t *testing.T) {
		caps := Analyze([]types.Clone{
			clone("D1", 1, types.StatusAssigned),
			clone("D1", 2, types.StatusAvailable),
		})

		// 100 + 10 (available) + 5 (50% utilization) clamps at 100.
		require.Equal(t, 100.0, caps[0].Efficiency)

		caps = Analyze([]types.Clone{
			clone("D2", 1, types.StatusMaintenance),
			clone("D2", 2, types.StatusAssigned),
			clone("D2", 3, types.StatusAvailable),
			clone("D2", 4, types.StatusAvailable),
		})

		// 100 - 30 (maintenance) + 10 (available) + 5 (25% utilization) = 85.
		require.InDelta(t, 85.0, caps[0].Efficiency, 0.001)
	})
}

func TestAnalyze_Determinism(t *testing.T) {
	clones := []types.Clone{
		clone("D2", 1, types.StatusAvailable),
		clone("D1", 2, types.StatusBroken),
		clone("D1", 1, types.StatusLoggedIn),
		clone("D3", 1, types.StatusMaintenance),
	}

	first := Analyze(clones)
	second := Analyze(clones)

	require.Equal(t, first, second, "analyzer must be a pure function")
	require.Equal(t, []string{"D1", "D2", "D3"}, []string{first[0].DeviceID, first[1].DeviceID, first[2].DeviceID})
}

func TestAnalyze_DeviceName(t *testing.T) {
	unnamed := clone("D1", 1, types.StatusAvailable)
	named := clone("D1", 2, types.StatusAvailable)
	named.DeviceName = "rack-a-phone-3"

	caps := Analyze([]types.Clone{unnamed, named})

	require.Equal(t, "rack-a-phone-3", caps[0].DeviceName)
}
