package analysis

import "sort"

// Gradient computes the discrete first derivative of y on a uniform grid
// with spacing dx: central differences at interior points, one-sided at the
// two boundaries. The convention must not change; interpolated crossing
// locations downstream depend on it exactly.
func Gradient(y []float64, dx float64) []float64 {
	n := len(y)
	g := make([]float64, n)
	if n < 2 {
		return g
	}
	g[0] = (y[1] - y[0]) / dx
	g[n-1] = (y[n-1] - y[n-2]) / dx
	for i := 1; i < n-1; i++ {
		g[i] = (y[i+1] - y[i-1]) / (2 * dx)
	}
	return g
}

// Curvature is the discrete second derivative: the gradient operator
// applied to its own output.
func Curvature(y []float64, dx float64) []float64 {
	return Gradient(Gradient(y, dx), dx)
}

// Crossings locates strict sign changes of d2 between adjacent grid points
// and interpolates each crossing linearly within its cell:
//
//	t = −d2[i] / (d2[i+1] − d2[i]),  x0 = phi[i] + t·dx
//
// A product of exactly zero is not a crossing: an exact zero at a grid node
// goes undetected, and the guard keeps the denominator nonzero. phi holds
// the abscissas aligned with d2. The result is sorted ascending.
func Crossings(d2, phi []float64, dx float64) []float64 {
	var out []float64
	for i := 0; i+1 < len(d2); i++ {
		a, b := d2[i], d2[i+1]
		if a*b < 0 {
			t := -a / (b - a)
			out = append(out, phi[i]+t*dx)
		}
	}
	sort.Float64s(out)
	return out
}
