// Package analysis provides the discrete detectors of the sweep: strict
// local-minimum search over a free-energy profile and second-derivative
// zero-crossing interpolation.
package analysis

// Minima returns the indices of strict interior local minima of profile in
// ascending order: 0 < i < len-1 with profile[i] below both neighbors.
// Endpoints are never candidates. Plateaus of equal consecutive values are
// not detected; that is a grid-resolution limitation, not a tolerance knob.
func Minima(profile []float64) []int {
	var idx []int
	for i := 1; i < len(profile)-1; i++ {
		if profile[i] < profile[i-1] && profile[i] < profile[i+1] {
			idx = append(idx, i)
		}
	}
	return idx
}
