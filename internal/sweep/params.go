package sweep

import (
	"fmt"
	"math"
)

// Params holds the sweep-wide invariants. They are validated once before
// any χ is evaluated; an invalid field aborts the whole sweep with no
// partial results.
type Params struct {
	NA         float64 // degree of polymerization, species A
	NB         float64 // degree of polymerization, species B
	ChiStart   float64
	ChiEnd     float64
	ChiStep    float64
	GridPoints int // composition grid resolution
	Workers    int // χ evaluations in flight; <= 1 means serial
}

// ConfigError names the first invalid sweep parameter found.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks every sweep-wide invariant, returning a ConfigError for
// the first violation.
func (p Params) Validate() error {
	switch {
	case math.IsNaN(p.NA) || math.IsInf(p.NA, 0) || p.NA <= 0:
		return &ConfigError{Field: "n_a", Reason: fmt.Sprintf("must be a positive finite number, got %v", p.NA)}
	case math.IsNaN(p.NB) || math.IsInf(p.NB, 0) || p.NB <= 0:
		return &ConfigError{Field: "n_b", Reason: fmt.Sprintf("must be a positive finite number, got %v", p.NB)}
	case math.IsNaN(p.ChiStart) || math.IsInf(p.ChiStart, 0):
		return &ConfigError{Field: "chi_start", Reason: fmt.Sprintf("must be finite, got %v", p.ChiStart)}
	case math.IsNaN(p.ChiEnd) || math.IsInf(p.ChiEnd, 0):
		return &ConfigError{Field: "chi_end", Reason: fmt.Sprintf("must be finite, got %v", p.ChiEnd)}
	case math.IsNaN(p.ChiStep) || math.IsInf(p.ChiStep, 0) || p.ChiStep <= 0:
		return &ConfigError{Field: "chi_step", Reason: fmt.Sprintf("must be a positive finite number, got %v", p.ChiStep)}
	case p.ChiStart > p.ChiEnd:
		return &ConfigError{Field: "chi_start", Reason: fmt.Sprintf("%v exceeds chi_end %v, sweep would be empty", p.ChiStart, p.ChiEnd)}
	case p.GridPoints < 3:
		return &ConfigError{Field: "grid_points", Reason: fmt.Sprintf("need at least 3 points for an interior, got %d", p.GridPoints)}
	}
	return nil
}

// ChiValues expands (start, end, step) into the ascending χ sequence. The
// endpoint is included up to a small tolerance so ranges like [0, 0.04]
// with step 0.01 still end on 0.04 despite binary rounding; start == end
// yields exactly one value. Callers validate step > 0 and start <= end
// first.
func ChiValues(start, end, step float64) []float64 {
	count := int(math.Floor((end-start)/step+1e-9)) + 1
	out := make([]float64, count)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}
