package db_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/timestudy/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const insertStudy = `INSERT INTO studies (id, name, created_at, updated_at) VALUES (?, ?, '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`

func openUoW(t *testing.T) *db.SQLiteUnitOfWork {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database)
}

func studyName(t *testing.T, uow db.UnitOfWork, id string) (string, bool) {
	t.Helper()
	var name string
	err := uow.WithinReadTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return tx.QueryRowContext(ctx, `SELECT name FROM studies WHERE id = ?`, id).Scan(&name)
	})
	return name, err == nil
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		_, err := tx.ExecContext(ctx, insertStudy, "s1", "Picking")
		return err
	})
	require.NoError(t, err)

	name, found := studyName(t, uow, "s1")
	assert.True(t, found, "row should exist after commit")
	assert.Equal(t, "Picking", name)
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow := openUoW(t)
	failure := errors.New("deliberate failure")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx, insertStudy, "s2", "Packing"); err != nil {
			return err
		}
		return failure
	})
	require.ErrorIs(t, err, failure)

	_, found := studyName(t, uow, "s2")
	assert.False(t, found, "row should not exist after rollback")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow := openUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_, _ = tx.ExecContext(ctx, insertStudy, "s3", "Loading")
			panic("boom")
		})
	})

	_, found := studyName(t, uow, "s3")
	assert.False(t, found, "row should not exist after panic rollback")
}

func TestWithinReadTx_NeverCommits(t *testing.T) {
	uow := openUoW(t)

	err := uow.WithinReadTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		_, err := tx.ExecContext(ctx, insertStudy, "s4", "Sorting")
		return err
	})
	require.NoError(t, err)

	_, found := studyName(t, uow, "s4")
	assert.False(t, found, "writes inside a read transaction are discarded")
}

func TestOpenDB_FileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "timestudy.db")

	database, err := db.OpenDB(path)
	require.NoError(t, err)
	defer database.Close()

	var mode string
	require.NoError(t, database.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)

	var fk int
	require.NoError(t, database.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}
