// Package persistence provides the SQLite archive of completed sweeps.
package persistence

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/phasesweep/internal/flory"
	"github.com/talgya/phasesweep/internal/sweep"
)

// DB wraps a SQLite connection for sweep archival.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		n_a REAL NOT NULL,
		n_b REAL NOT NULL,
		chi_start REAL NOT NULL,
		chi_end REAL NOT NULL,
		chi_step REAL NOT NULL,
		grid_points INTEGER NOT NULL,
		critical_chi REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS binodal_points (
		run_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		chi REAL NOT NULL,
		phi REAL NOT NULL,
		PRIMARY KEY (run_id, seq)
	);

	CREATE TABLE IF NOT EXISTS spinodal_points (
		run_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		chi REAL NOT NULL,
		phi REAL NOT NULL,
		PRIMARY KEY (run_id, seq)
	);

	CREATE INDEX IF NOT EXISTS idx_binodal_run ON binodal_points(run_id);
	CREATE INDEX IF NOT EXISTS idx_spinodal_run ON spinodal_points(run_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Run is one archived sweep row.
type Run struct {
	ID          string  `db:"id"`
	CreatedAt   string  `db:"created_at"` // RFC 3339 UTC, sorts lexicographically
	NA          float64 `db:"n_a"`
	NB          float64 `db:"n_b"`
	ChiStart    float64 `db:"chi_start"`
	ChiEnd      float64 `db:"chi_end"`
	ChiStep     float64 `db:"chi_step"`
	GridPoints  int     `db:"grid_points"`
	CriticalChi float64 `db:"critical_chi"`
}

// SaveRun archives a completed sweep transactionally and returns its
// generated run id.
func (db *DB) SaveRun(res *sweep.Result) (string, error) {
	id := uuid.NewString()

	tx, err := db.conn.Beginx()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs
		(id, created_at, n_a, n_b, chi_start, chi_end, chi_step, grid_points, critical_chi)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, time.Now().UTC().Format(time.RFC3339),
		res.Params.NA, res.Params.NB,
		res.Params.ChiStart, res.Params.ChiEnd, res.Params.ChiStep,
		res.Params.GridPoints, res.CriticalChi,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	if err := insertPoints(tx, "binodal_points", id, res.Binodal); err != nil {
		return "", err
	}
	if err := insertPoints(tx, "spinodal_points", id, res.Spinodal); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit run: %w", err)
	}
	return id, nil
}

func insertPoints(tx *sqlx.Tx, table, runID string, t sweep.Table) error {
	stmt, err := tx.Preparex(fmt.Sprintf(
		`INSERT INTO %s (run_id, seq, chi, phi) VALUES (?, ?, ?, ?)`, table))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, pt := range t {
		if _, err := stmt.Exec(runID, i, pt.Chi, pt.Phi); err != nil {
			return fmt.Errorf("insert %s row %d: %w", table, i, err)
		}
	}
	return nil
}

// LoadRun reconstructs an archived sweep by id. Per-χ slices are regrouped
// from the flattened tables; the composition grid is rebuilt from the
// stored resolution (grid construction is deterministic).
func (db *DB) LoadRun(id string) (*sweep.Result, error) {
	var run Run
	if err := db.conn.Get(&run, `SELECT * FROM runs WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("load run %s: %w", id, err)
	}

	res := &sweep.Result{
		Params: sweep.Params{
			NA:         run.NA,
			NB:         run.NB,
			ChiStart:   run.ChiStart,
			ChiEnd:     run.ChiEnd,
			ChiStep:    run.ChiStep,
			GridPoints: run.GridPoints,
		},
		Grid:        flory.NewGrid(run.GridPoints),
		CriticalChi: run.CriticalChi,
	}

	var err error
	if res.Binodal, err = db.loadPoints("binodal_points", id); err != nil {
		return nil, err
	}
	if res.Spinodal, err = db.loadPoints("spinodal_points", id); err != nil {
		return nil, err
	}
	res.PerChi = sweep.Regroup(res.Binodal, res.Spinodal)

	return res, nil
}

func (db *DB) loadPoints(table, runID string) (sweep.Table, error) {
	rows, err := db.conn.Queryx(fmt.Sprintf(
		`SELECT chi, phi FROM %s WHERE run_id = ? ORDER BY seq`, table), runID)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", table, err)
	}
	defer rows.Close()

	var t sweep.Table
	for rows.Next() {
		var pt sweep.Point
		if err := rows.Scan(&pt.Chi, &pt.Phi); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		t = append(t, pt)
	}
	return t, rows.Err()
}

// ListRuns returns archived runs, newest first.
func (db *DB) ListRuns() ([]Run, error) {
	var runs []Run
	err := db.conn.Select(&runs, `SELECT * FROM runs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// LatestRunID returns the id of the most recently archived run.
func (db *DB) LatestRunID() (string, error) {
	var id string
	err := db.conn.Get(&id, `SELECT id FROM runs ORDER BY created_at DESC, id LIMIT 1`)
	if err != nil {
		return "", fmt.Errorf("latest run: %w", err)
	}
	return id, nil
}
