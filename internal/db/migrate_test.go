package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// Run migrations a second time must be a no-op.
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"studies", "measurements"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{"idx_measurements_study", "idx_measurements_cell"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_RejectsNegativeTime(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO studies (id, name, created_at, updated_at) VALUES ('s1', 'Study', 'now', 'now')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO measurements (id, study_id, operator, target, time_ms, recorded_at)
		VALUES ('m1', 's1', 'A', 'T1', -5, 'now')`)
	assert.Error(t, err)
}

func TestMigrate_CascadesMeasurementsOnStudyDelete(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO studies (id, name, created_at, updated_at) VALUES ('s1', 'Study', 'now', 'now')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO measurements (id, study_id, operator, target, time_ms, recorded_at)
		VALUES ('m1', 's1', 'A', 'T1', 1200, 'now')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM studies WHERE id = 's1'`)
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM measurements`).Scan(&count))
	assert.Equal(t, 0, count)
}
