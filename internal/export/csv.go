// Package export writes the sweep result tables in the fixed two-column
// CSV schema.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/talgya/phasesweep/internal/sweep"
)

// Fixed schema shared by both tables.
var header = []string{"Chi", "Phi"}

// Table file names under the output directory.
const (
	BinodalFile  = "binodal.csv"
	SpinodalFile = "spinodal.csv"
)

// WriteTable writes one (χ, φ) table to path, creating parent directories
// as needed. Rows go out in table order. A write failure leaves the
// in-memory table untouched; the caller can retry elsewhere.
func WriteTable(path string, t sweep.Table) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for _, pt := range t {
		rec := []string{
			strconv.FormatFloat(pt.Chi, 'g', -1, 64),
			strconv.FormatFloat(pt.Phi, 'g', -1, 64),
		}
		if err := w.Write(rec); err != nil {
			f.Close()
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}

// WriteResult writes both tables under dir.
func WriteResult(dir string, res *sweep.Result) error {
	if err := WriteTable(filepath.Join(dir, BinodalFile), res.Binodal); err != nil {
		return fmt.Errorf("binodal: %w", err)
	}
	if err := WriteTable(filepath.Join(dir, SpinodalFile), res.Spinodal); err != nil {
		return fmt.Errorf("spinodal: %w", err)
	}
	return nil
}
