package sweep

import (
	"sort"

	"github.com/talgya/phasesweep/internal/flory"
)

// Point is one (χ, φ) result row.
type Point struct {
	Chi float64
	Phi float64
}

// Table is an append-only sequence of result rows, χ ascending and φ
// ascending within each χ — the order the export schema expects.
type Table []Point

// ChiResult holds the detections for a single χ value. The free-energy
// profile itself is ephemeral: it is discarded once these two slices are
// extracted, and consumers that need it (the renderer) recompute it from
// the pure model.
type ChiResult struct {
	Chi      float64
	Minima   []float64 // φ of each strict local minimum, ascending
	Spinodal []float64 // interpolated curvature zero-crossings, ascending
}

// Result is the complete outcome of one sweep.
type Result struct {
	Params      Params
	Grid        flory.Grid
	CriticalChi float64
	PerChi      []ChiResult
	Binodal     Table // coexistence candidates (raw per-χ minima)
	Spinodal    Table
}

// Regroup reconstitutes per-χ slices from the two flattened tables, e.g.
// after loading an archived run. χ values that contributed no rows to
// either table cannot be recovered; they carried no information.
func Regroup(binodal, spinodal Table) []ChiResult {
	byChi := make(map[float64]*ChiResult)
	var order []float64
	get := func(chi float64) *ChiResult {
		if cr, ok := byChi[chi]; ok {
			return cr
		}
		cr := &ChiResult{Chi: chi}
		byChi[chi] = cr
		order = append(order, chi)
		return cr
	}
	for _, pt := range binodal {
		cr := get(pt.Chi)
		cr.Minima = append(cr.Minima, pt.Phi)
	}
	for _, pt := range spinodal {
		cr := get(pt.Chi)
		cr.Spinodal = append(cr.Spinodal, pt.Phi)
	}
	sort.Float64s(order)
	out := make([]ChiResult, len(order))
	for i, chi := range order {
		out[i] = *byChi[chi]
	}
	return out
}
