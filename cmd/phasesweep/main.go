// Command phasesweep computes the phase-separation behavior of a binary
// polymer blend across a χ sweep: binodal candidates from raw free-energy
// minima, spinodal points from interpolated curvature sign changes. Results
// go out as CSV tables, an optional SQLite archive, and diagnostic plots.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	"github.com/talgya/phasesweep/internal/config"
	"github.com/talgya/phasesweep/internal/export"
	"github.com/talgya/phasesweep/internal/persistence"
	"github.com/talgya/phasesweep/internal/render"
	"github.com/talgya/phasesweep/internal/sweep"
)

func main() {
	if err := run(); err != nil {
		slog.Error("phasesweep failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "YAML configuration file")
	verbose := flag.Bool("v", false, "debug logging")
	na := flag.Float64("na", 0, "degree of polymerization, species A")
	nb := flag.Float64("nb", 0, "degree of polymerization, species B")
	chiStart := flag.Float64("chi-start", 0, "first χ of the sweep")
	chiEnd := flag.Float64("chi-end", 0, "last χ of the sweep (inclusive)")
	chiStep := flag.Float64("chi-step", 0, "χ increment (must be > 0)")
	gridPoints := flag.Int("grid", 0, "composition grid resolution")
	workers := flag.Int("workers", 0, "parallel χ evaluations (<= 1 is serial)")
	outDir := flag.String("out", "", "output directory for tables and plots")
	noDB := flag.Bool("no-db", false, "skip the SQLite archive")
	noPlots := flag.Bool("no-plots", false, "skip plot rendering")
	flag.Parse()

	setupLogging(*verbose)

	// .env is optional; absence is not an error.
	godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}

	// Flags set on the command line win over file and environment.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "na":
			cfg.NA = *na
		case "nb":
			cfg.NB = *nb
		case "chi-start":
			cfg.ChiStart = *chiStart
		case "chi-end":
			cfg.ChiEnd = *chiEnd
		case "chi-step":
			cfg.ChiStep = *chiStep
		case "grid":
			cfg.GridPoints = *gridPoints
		case "workers":
			cfg.Workers = *workers
		case "out":
			cfg.Output.Dir = *outDir
		}
	})

	params := cfg.Params()
	if err := params.Validate(); err != nil {
		return err
	}

	slog.Info("sweep configured",
		"n_a", params.NA,
		"n_b", params.NB,
		"chi_start", params.ChiStart,
		"chi_end", params.ChiEnd,
		"chi_step", params.ChiStep,
		"grid_points", params.GridPoints,
		"workers", params.Workers,
	)

	start := time.Now()
	res, err := sweep.Run(params)
	if err != nil {
		return err
	}
	slog.Info("sweep complete",
		"chi_values", len(res.PerChi),
		"binodal_rows", humanize.Comma(int64(len(res.Binodal))),
		"spinodal_rows", humanize.Comma(int64(len(res.Spinodal))),
		"critical_chi", fmt.Sprintf("%.6g", res.CriticalChi),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if err := export.WriteResult(cfg.Output.Dir, res); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	slog.Info("tables exported",
		"binodal", filepath.Join(cfg.Output.Dir, export.BinodalFile),
		"spinodal", filepath.Join(cfg.Output.Dir, export.SpinodalFile),
	)

	if cfg.Output.Database != "" && !*noDB {
		if err := archive(cfg.Output.Database, res); err != nil {
			return fmt.Errorf("archive: %w", err)
		}
	}

	if cfg.Output.Plots && !*noPlots {
		if err := render.WriteAll(res, cfg.Output.Dir); err != nil {
			return fmt.Errorf("render: %w", err)
		}
		slog.Info("plots rendered", "dir", cfg.Output.Dir)
	}

	return nil
}

func archive(path string, res *sweep.Result) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	db, err := persistence.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := db.SaveRun(res)
	if err != nil {
		return err
	}
	slog.Info("run archived", "id", id, "path", path)
	return nil
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	// Text for humans at a terminal, JSON when piped.
	var handler slog.Handler
	if isatty.IsTerminal(os.Stdout.Fd()) {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
