package flory

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGridExcludesEndpoints(t *testing.T) {
	g := NewGrid(10)

	require.Equal(t, 10, g.Len())
	assert.Greater(t, g.Phi[0], 0.0)
	assert.Less(t, g.Phi[g.Len()-1], 1.0)

	for i := 1; i < g.Len(); i++ {
		assert.Greater(t, g.Phi[i], g.Phi[i-1], "grid must be strictly increasing")
		assert.InDelta(t, g.Dx, g.Phi[i]-g.Phi[i-1], 1e-15, "spacing must be uniform")
	}
}

func TestNewGridCentersHalfForEvenN(t *testing.T) {
	// φ_k = k/(n+2), so k = (n+2)/2 gives exactly 0.5 when n is even.
	for _, n := range []int{10, 200, DefaultPoints} {
		g := NewGrid(n)
		assert.Equal(t, 0.5, g.Phi[n/2], "n=%d", n)
	}
}

func TestEnergiesShapeAndFiniteness(t *testing.T) {
	g := NewGrid(DefaultPoints)
	for _, chi := range []float64{0, 0.02, 0.04, 1.5} {
		profile := Energies(g, chi, 100, 100)
		require.Len(t, profile, g.Len())
		for i, v := range profile {
			require.False(t, math.IsNaN(v) || math.IsInf(v, 0),
				"chi=%g phi=%g gave %v", chi, g.Phi[i], v)
		}
	}
}

func TestEnergyReflectionSymmetry(t *testing.T) {
	// For N_A == N_B the model is invariant under φ → 1−φ: the mirrored
	// evaluation swaps the two entropy terms and leaves the enthalpy term
	// untouched. The φ samples here make 1−φ exact in binary.
	for _, phi := range []float64{0.125, 0.25, 0.375, 0.5} {
		for _, chi := range []float64{0, 0.03, 0.8} {
			assert.InDelta(t,
				Energy(phi, chi, 100, 100),
				Energy(1-phi, chi, 100, 100),
				1e-15, "phi=%g chi=%g", phi, chi)
		}
	}
}

func TestEnergyAsymmetricBlendSkewsWell(t *testing.T) {
	// Longer A chains contribute less mixing entropy, so the well is not
	// mirror-symmetric when N_A != N_B.
	assert.NotEqual(t, Energy(0.25, 0.01, 50, 200), Energy(0.75, 0.01, 50, 200))
}

func TestCriticalChi(t *testing.T) {
	assert.InDelta(t, 0.02, CriticalChi(100, 100), 1e-12)
	assert.InDelta(t, 0.0225, CriticalChi(50, 200), 1e-12)
	// Small-molecule limit: N_A = N_B = 1 gives the classic χ_c = 2.
	assert.InDelta(t, 2.0, CriticalChi(1, 1), 1e-12)
}
