// Package flory evaluates the Flory–Huggins mixing free energy of a binary
// polymer blend over a fixed composition grid.
package flory

import "math"

// DefaultPoints is the composition resolution used when none is configured.
const DefaultPoints = 5000

// Grid is a uniform composition grid over the open interval (0,1):
// φ_k = k/(n+2) for k = 1..n. Both endpoints are excluded so the log terms
// stay finite. For even n the value 0.5 lands exactly on the grid; an
// exactly mirror-symmetric grid would put a two-point plateau at the center
// of a symmetric blend, and the strict minimum test detects nothing there.
// Immutable after construction and shared read-only across the sweep.
type Grid struct {
	Phi []float64
	Dx  float64
}

// NewGrid builds a grid with n points. n must be at least 3 so the grid has
// interior points to examine; callers validate before construction.
func NewGrid(n int) Grid {
	div := float64(n + 2)
	phi := make([]float64, n)
	for k := range phi {
		phi[k] = float64(k+1) / div
	}
	return Grid{Phi: phi, Dx: 1 / div}
}

// Len returns the number of grid points.
func (g Grid) Len() int { return len(g.Phi) }

// Energy is the mixing free-energy density at a single composition:
//
//	ΔG(φ) = φ·ln(φ)/nA + (1−φ)·ln(1−φ)/nB + χ·φ·(1−φ)
//
// nA and nB are the degrees of polymerization of the two species. Finite
// for φ strictly inside (0,1) and positive nA, nB.
func Energy(phi, chi, nA, nB float64) float64 {
	q := 1 - phi
	return phi*math.Log(phi)/nA + q*math.Log(q)/nB + chi*phi*q
}

// Energies evaluates the free-energy profile for one χ across the whole
// grid, aligned index-for-index with g.Phi. Pure and deterministic; safe to
// call concurrently for distinct χ.
func Energies(g Grid, chi, nA, nB float64) []float64 {
	out := make([]float64, len(g.Phi))
	for i, p := range g.Phi {
		out[i] = Energy(p, chi, nA, nB)
	}
	return out
}

// CriticalChi returns the mean-field critical interaction parameter
// χ_c = ½·(1/√nA + 1/√nB)².
func CriticalChi(nA, nB float64) float64 {
	s := 1/math.Sqrt(nA) + 1/math.Sqrt(nB)
	return 0.5 * s * s
}
