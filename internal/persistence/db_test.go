package persistence

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/phasesweep/internal/sweep"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func smallResult(t *testing.T) *sweep.Result {
	t.Helper()
	res, err := sweep.Run(sweep.Params{
		NA: 100, NB: 100,
		ChiStart: 0, ChiEnd: 0.04, ChiStep: 0.01,
		GridPoints: 200,
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.Binodal)
	require.NotEmpty(t, res.Spinodal)
	return res
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	db := openTestDB(t)
	res := smallResult(t)

	id, err := db.SaveRun(res)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	loaded, err := db.LoadRun(id)
	require.NoError(t, err)

	assert.Equal(t, res.Binodal, loaded.Binodal)
	assert.Equal(t, res.Spinodal, loaded.Spinodal)
	assert.Equal(t, res.CriticalChi, loaded.CriticalChi)
	assert.Equal(t, res.Params.NA, loaded.Params.NA)
	assert.Equal(t, res.Params.NB, loaded.Params.NB)
	assert.Equal(t, res.Params.ChiStart, loaded.Params.ChiStart)
	assert.Equal(t, res.Params.ChiEnd, loaded.Params.ChiEnd)
	assert.Equal(t, res.Params.ChiStep, loaded.Params.ChiStep)
	assert.Equal(t, res.Params.GridPoints, loaded.Params.GridPoints)
	assert.Equal(t, res.Grid.Phi, loaded.Grid.Phi)
}

func TestLoadRunRegroupsPerChi(t *testing.T) {
	db := openTestDB(t)
	res := smallResult(t)

	id, err := db.SaveRun(res)
	require.NoError(t, err)
	loaded, err := db.LoadRun(id)
	require.NoError(t, err)

	// Only χ values that contributed rows survive the round trip.
	var contributed []sweep.ChiResult
	for _, cr := range res.PerChi {
		if len(cr.Minima) > 0 || len(cr.Spinodal) > 0 {
			contributed = append(contributed, cr)
		}
	}
	assert.Equal(t, contributed, loaded.PerChi)
}

func TestLoadRunUnknownID(t *testing.T) {
	db := openTestDB(t)
	_, err := db.LoadRun("no-such-run")
	assert.Error(t, err)
}

func TestListRunsAndLatest(t *testing.T) {
	db := openTestDB(t)
	res := smallResult(t)

	first, err := db.SaveRun(res)
	require.NoError(t, err)
	second, err := db.SaveRun(res)
	require.NoError(t, err)

	runs, err := db.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	ids := []string{runs[0].ID, runs[1].ID}
	assert.Contains(t, ids, first)
	assert.Contains(t, ids, second)

	latest, err := db.LatestRunID()
	require.NoError(t, err)
	assert.Contains(t, ids, latest)
}

func TestLatestRunIDEmptyArchive(t *testing.T) {
	db := openTestDB(t)
	_, err := db.LatestRunID()
	assert.Error(t, err)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")
	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Re-opening migrates again without error and keeps data.
	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.SaveRun(smallResult(t))
	assert.NoError(t, err)
}
