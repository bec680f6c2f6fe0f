// Command phaseplot re-exports and re-renders an archived sweep from the
// SQLite archive without recomputing it.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/talgya/phasesweep/internal/export"
	"github.com/talgya/phasesweep/internal/persistence"
	"github.com/talgya/phasesweep/internal/render"
)

func main() {
	if err := run(); err != nil {
		slog.Error("phaseplot failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	dbPath := flag.String("db", "out/phasesweep.db", "SQLite archive path")
	runID := flag.String("run", "", "run id to load (default: most recent)")
	outDir := flag.String("out", "out", "output directory for tables and plots")
	list := flag.Bool("list", false, "list archived runs and exit")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	setupLogging(*verbose)

	db, err := persistence.Open(*dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if *list {
		return listRuns(db)
	}

	id := *runID
	if id == "" {
		if id, err = db.LatestRunID(); err != nil {
			return fmt.Errorf("no run id given and %w", err)
		}
	}

	res, err := db.LoadRun(id)
	if err != nil {
		return err
	}
	slog.Info("run loaded",
		"id", id,
		"n_a", res.Params.NA,
		"n_b", res.Params.NB,
		"binodal_rows", len(res.Binodal),
		"spinodal_rows", len(res.Spinodal),
	)

	if err := export.WriteResult(*outDir, res); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := render.WriteAll(res, *outDir); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	slog.Info("artifacts written", "dir", *outDir)
	return nil
}

func listRuns(db *persistence.DB) error {
	runs, err := db.ListRuns()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no archived runs")
		return nil
	}
	for _, r := range runs {
		age := r.CreatedAt
		if t, err := time.Parse(time.RFC3339, r.CreatedAt); err == nil {
			age = humanize.Time(t)
		}
		fmt.Printf("%s  %s  N_A=%g N_B=%g  χ∈[%g,%g] step %g  grid=%d  χ_c=%.4g\n",
			r.ID, age, r.NA, r.NB, r.ChiStart, r.ChiEnd, r.ChiStep,
			r.GridPoints, r.CriticalChi)
	}
	return nil
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if isatty.IsTerminal(os.Stdout.Fd()) {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
