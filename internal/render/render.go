// Package render draws diagnostic plots for a completed sweep: per-χ
// free-energy landscapes and the (φ, χ) phase diagram. All styling, axis
// labeling, and layout live here; the sweep only supplies results.
package render

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/talgya/phasesweep/internal/flory"
	"github.com/talgya/phasesweep/internal/sweep"
)

// Plot file names under the output directory.
const (
	LandscapeFile = "landscape.png"
	DiagramFile   = "phase_diagram.png"
)

// A dense sweep would be unreadable as a curve per χ; the landscape plot
// thins to at most this many curves.
const maxLandscapeCurves = 9

var palette = []color.RGBA{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff},
	{R: 0xe3, G: 0x77, B: 0xc2, A: 0xff},
	{R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff},
	{R: 0xbc, G: 0xbd, B: 0x22, A: 0xff},
}

// Landscape plots ΔG(φ) for a spread of sweep χ values, marking detected
// minima. Profiles are recomputed from the model — the sweep does not
// retain them, and recomputation is exact because the model is pure.
func Landscape(res *sweep.Result, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Flory–Huggins free energy (N_A=%g, N_B=%g)",
		res.Params.NA, res.Params.NB)
	p.X.Label.Text = "φ"
	p.Y.Label.Text = "ΔG_mix"
	p.Legend.Top = true

	stride := 1
	if len(res.PerChi) > maxLandscapeCurves {
		stride = (len(res.PerChi) + maxLandscapeCurves - 1) / maxLandscapeCurves
	}

	for i := 0; i < len(res.PerChi); i += stride {
		cr := res.PerChi[i]
		col := palette[(i/stride)%len(palette)]

		profile := flory.Energies(res.Grid, cr.Chi, res.Params.NA, res.Params.NB)
		xy := make(plotter.XYs, len(profile))
		for j, g := range profile {
			xy[j].X = res.Grid.Phi[j]
			xy[j].Y = g
		}
		line, err := plotter.NewLine(xy)
		if err != nil {
			return fmt.Errorf("landscape line χ=%g: %w", cr.Chi, err)
		}
		line.Color = col
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("χ=%.4g", cr.Chi), line)

		if len(cr.Minima) == 0 {
			continue
		}
		pts := make(plotter.XYs, len(cr.Minima))
		for j, phi := range cr.Minima {
			pts[j].X = phi
			pts[j].Y = flory.Energy(phi, cr.Chi, res.Params.NA, res.Params.NB)
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("landscape minima χ=%g: %w", cr.Chi, err)
		}
		sc.GlyphStyle.Color = col
		sc.GlyphStyle.Radius = vg.Points(2.5)
		p.Add(sc)
	}

	if err := p.Save(7*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save landscape: %w", err)
	}
	return nil
}

// PhaseDiagram plots the binodal and spinodal points in the (φ, χ) plane
// with a dashed rule at the critical χ.
func PhaseDiagram(res *sweep.Result, path string) error {
	p := plot.New()
	p.Title.Text = "Phase diagram"
	p.X.Label.Text = "φ"
	p.Y.Label.Text = "χ"
	p.Legend.Top = true

	if len(res.Binodal) > 0 {
		sc, err := plotter.NewScatter(tableXYs(res.Binodal))
		if err != nil {
			return fmt.Errorf("binodal scatter: %w", err)
		}
		sc.GlyphStyle.Color = palette[0]
		sc.GlyphStyle.Radius = vg.Points(2)
		p.Add(sc)
		p.Legend.Add("binodal (raw minima)", sc)
	}
	if len(res.Spinodal) > 0 {
		sc, err := plotter.NewScatter(tableXYs(res.Spinodal))
		if err != nil {
			return fmt.Errorf("spinodal scatter: %w", err)
		}
		sc.GlyphStyle.Color = palette[1]
		sc.GlyphStyle.Radius = vg.Points(2)
		p.Add(sc)
		p.Legend.Add("spinodal", sc)
	}

	crit := plotter.NewFunction(func(float64) float64 { return res.CriticalChi })
	crit.Color = palette[3]
	crit.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(crit)
	p.Legend.Add(fmt.Sprintf("χ_c = %.4g", res.CriticalChi), crit)

	// Fixed composition axis; χ axis spans the sweep and the critical rule.
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min = min(res.Params.ChiStart, res.CriticalChi)
	p.Y.Max = max(res.Params.ChiEnd, res.CriticalChi) * 1.05

	if err := p.Save(6*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save phase diagram: %w", err)
	}
	return nil
}

// WriteAll renders both plots under dir.
func WriteAll(res *sweep.Result, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create plot dir: %w", err)
	}
	if err := Landscape(res, filepath.Join(dir, LandscapeFile)); err != nil {
		return err
	}
	return PhaseDiagram(res, filepath.Join(dir, DiagramFile))
}

func tableXYs(t sweep.Table) plotter.XYs {
	xy := make(plotter.XYs, len(t))
	for i, pt := range t {
		xy[i].X = pt.Phi
		xy[i].Y = pt.Chi
	}
	return xy
}
