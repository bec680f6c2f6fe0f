// Package sweep drives the per-χ free-energy evaluation and folds the
// detections into the binodal and spinodal result tables.
package sweep

import (
	"log/slog"
	"sync"

	"github.com/talgya/phasesweep/internal/analysis"
	"github.com/talgya/phasesweep/internal/flory"
)

// Evaluate runs a single χ: free-energy profile, strict local minima, and
// interpolated curvature crossings. Pure; safe to call concurrently for
// distinct χ against the same shared grid.
func Evaluate(g flory.Grid, chi, nA, nB float64) ChiResult {
	profile := flory.Energies(g, chi, nA, nB)

	var minima []float64
	for _, i := range analysis.Minima(profile) {
		minima = append(minima, g.Phi[i])
	}

	d2 := analysis.Curvature(profile, g.Dx)
	return ChiResult{
		Chi:      chi,
		Minima:   minima,
		Spinodal: analysis.Crossings(d2, g.Phi, g.Dx),
	}
}

// Run executes the whole sweep. Parameters are validated first: an invalid
// configuration aborts before any χ is evaluated and produces no partial
// tables. The result is deterministic — identical inputs give identical
// tables regardless of worker count.
func Run(p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	chis := ChiValues(p.ChiStart, p.ChiEnd, p.ChiStep)
	grid := flory.NewGrid(p.GridPoints)

	slog.Debug("sweep starting",
		"chi_values", len(chis),
		"grid_points", grid.Len(),
		"workers", p.Workers,
	)

	// Each χ index owns exactly one slot, so the parallel path fills the
	// same slice a serial loop would.
	perChi := make([]ChiResult, len(chis))
	if p.Workers > 1 {
		runParallel(grid, p, chis, perChi)
	} else {
		for i, chi := range chis {
			perChi[i] = Evaluate(grid, chi, p.NA, p.NB)
		}
	}

	res := &Result{
		Params:      p,
		Grid:        grid,
		CriticalChi: flory.CriticalChi(p.NA, p.NB),
		PerChi:      perChi,
	}
	// Flatten in χ order; empty per-χ sets contribute nothing, so the two
	// tables may differ in length.
	for _, cr := range perChi {
		for _, phi := range cr.Minima {
			res.Binodal = append(res.Binodal, Point{Chi: cr.Chi, Phi: phi})
		}
		for _, phi := range cr.Spinodal {
			res.Spinodal = append(res.Spinodal, Point{Chi: cr.Chi, Phi: phi})
		}
	}

	slog.Debug("sweep finished",
		"binodal_rows", len(res.Binodal),
		"spinodal_rows", len(res.Spinodal),
	)
	return res, nil
}

// runParallel fans χ indices out to p.Workers goroutines. Workers share
// only the read-only grid and their own output slots.
func runParallel(grid flory.Grid, p Params, chis []float64, perChi []ChiResult) {
	next := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < p.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range next {
				perChi[i] = Evaluate(grid, chis[i], p.NA, p.NB)
			}
		}()
	}
	for i := range chis {
		next <- i
	}
	close(next)
	wg.Wait()
}
