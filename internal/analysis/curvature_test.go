package analysis

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradientConvention(t *testing.T) {
	// y = x² sampled at x = 0..4, dx = 1. Central differences are exact
	// for a parabola at interior points; the boundaries are one-sided.
	y := []float64{0, 1, 4, 9, 16}
	assert.Equal(t, []float64{1, 2, 4, 6, 7}, Gradient(y, 1))
}

func TestGradientSpacing(t *testing.T) {
	y := []float64{0, 1, 4}
	assert.Equal(t, []float64{2, 4, 6}, Gradient(y, 0.5))
}

func TestGradientDegenerateLengths(t *testing.T) {
	assert.Equal(t, []float64{}, Gradient([]float64{}, 1))
	assert.Equal(t, []float64{0}, Gradient([]float64{7}, 1))
	assert.Equal(t, []float64{3, 3}, Gradient([]float64{1, 4}, 1))
}

func TestCurvatureIsGradientAppliedTwice(t *testing.T) {
	y := []float64{0, 1, 4, 9, 16}
	assert.Equal(t, Gradient(Gradient(y, 1), 1), Curvature(y, 1))
	// Gradient of [1,2,4,6,7]: one-sided ends, central interior.
	assert.Equal(t, []float64{1, 1.5, 2, 1.5, 1}, Curvature(y, 1))
}

func TestCrossingsInterpolation(t *testing.T) {
	phi := []float64{0, 1}
	// Symmetric change: crossing at the cell midpoint.
	assert.Equal(t, []float64{0.5}, Crossings([]float64{-1, 1}, phi, 1))
	// Asymmetric change: t = -1/(-3-1) = 0.25.
	assert.Equal(t, []float64{0.25}, Crossings([]float64{1, -3}, phi, 1))
}

func TestCrossingsExactZeroIsNotACrossing(t *testing.T) {
	phi := []float64{0, 1, 2}
	// A grid-node zero fails the strict product test on both sides; this
	// under-counts by design and keeps the interpolation denominator
	// nonzero.
	assert.Empty(t, Crossings([]float64{0, 1, 2}, phi, 1))
	assert.Empty(t, Crossings([]float64{-1, 0, 1}, phi, 1))
	assert.Empty(t, Crossings([]float64{0, 0, 0}, phi, 1))
}

func TestCrossingsNoSignChange(t *testing.T) {
	phi := []float64{0, 1, 2, 3}
	assert.Empty(t, Crossings([]float64{1, 2, 0.5, 3}, phi, 1))
	assert.Empty(t, Crossings([]float64{-1, -2, -0.5}, phi[:3], 1))
}

func TestCrossingsStrictlyInsideCellAndSorted(t *testing.T) {
	phi := []float64{0, 1, 2, 3}
	d2 := []float64{1, -1, 1, -1e-9}
	got := Crossings(d2, phi, 1)
	require.Len(t, got, 3)
	assert.True(t, sort.Float64sAreSorted(got))
	for k, x := range got {
		assert.Greater(t, x, phi[k])
		assert.Less(t, x, phi[k+1])
	}
}
