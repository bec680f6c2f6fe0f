// Package config loads sweep configuration from YAML, environment
// variables, and flag overrides applied by the CLI.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/talgya/phasesweep/internal/flory"
	"github.com/talgya/phasesweep/internal/sweep"
)

// Output controls where sweep artifacts land.
type Output struct {
	Dir      string `yaml:"dir"`      // CSV tables and plots
	Database string `yaml:"database"` // SQLite archive; empty disables it
	Plots    bool   `yaml:"plots"`
}

// Config is the full CLI configuration.
type Config struct {
	NA         float64 `yaml:"n_a"`
	NB         float64 `yaml:"n_b"`
	ChiStart   float64 `yaml:"chi_start"`
	ChiEnd     float64 `yaml:"chi_end"`
	ChiStep    float64 `yaml:"chi_step"`
	GridPoints int     `yaml:"grid_points"`
	Workers    int     `yaml:"workers"`
	Output     Output  `yaml:"output"`
}

// DefaultConfig returns the symmetric N=100 blend over the textbook χ
// range, which brackets its critical point χ_c = 0.02.
func DefaultConfig() Config {
	return Config{
		NA:         100,
		NB:         100,
		ChiStart:   0,
		ChiEnd:     0.04,
		ChiStep:    0.001,
		GridPoints: flory.DefaultPoints,
		Workers:    1,
		Output: Output{
			Dir:      "out",
			Database: "out/phasesweep.db",
			Plots:    true,
		},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overlays PHASESWEEP_* environment variables. An unparseable
// value is an error, not a silent fallback.
func (c *Config) ApplyEnv() error {
	if err := floatEnv("PHASESWEEP_NA", &c.NA); err != nil {
		return err
	}
	if err := floatEnv("PHASESWEEP_NB", &c.NB); err != nil {
		return err
	}
	if err := floatEnv("PHASESWEEP_CHI_START", &c.ChiStart); err != nil {
		return err
	}
	if err := floatEnv("PHASESWEEP_CHI_END", &c.ChiEnd); err != nil {
		return err
	}
	if err := floatEnv("PHASESWEEP_CHI_STEP", &c.ChiStep); err != nil {
		return err
	}
	if err := intEnv("PHASESWEEP_GRID_POINTS", &c.GridPoints); err != nil {
		return err
	}
	if err := intEnv("PHASESWEEP_WORKERS", &c.Workers); err != nil {
		return err
	}
	if v, ok := os.LookupEnv("PHASESWEEP_OUTPUT_DIR"); ok && v != "" {
		c.Output.Dir = v
	}
	if v, ok := os.LookupEnv("PHASESWEEP_DATABASE"); ok {
		c.Output.Database = v // empty string is meaningful: disables archive
	}
	if v, ok := os.LookupEnv("PHASESWEEP_PLOTS"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("PHASESWEEP_PLOTS: %w", err)
		}
		c.Output.Plots = b
	}
	return nil
}

// Params converts the configuration to the sweep-level parameter set.
// Validation happens there so the CLI and library share one taxonomy.
func (c Config) Params() sweep.Params {
	return sweep.Params{
		NA:         c.NA,
		NB:         c.NB,
		ChiStart:   c.ChiStart,
		ChiEnd:     c.ChiEnd,
		ChiStep:    c.ChiStep,
		GridPoints: c.GridPoints,
		Workers:    c.Workers,
	}
}

func floatEnv(key string, dst *float64) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = f
	return nil
}

func intEnv(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}
