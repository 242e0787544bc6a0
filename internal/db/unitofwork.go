package db

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx, so repositories work the
// same inside and outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

// TxFunc is the body of a transaction. Repositories built from tx see the
// transaction's view of the database.
type TxFunc func(ctx context.Context, tx DBTX) error

// UnitOfWork manages transactional boundaries.
//
// WithinTx commits when fn returns nil and rolls back otherwise.
// WithinReadTx always rolls back; it gives a consistent snapshot for
// multi-query reads such as loading a study with its measurements.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn TxFunc) error
	WithinReadTx(ctx context.Context, fn TxFunc) error
}

// SQLiteUnitOfWork implements UnitOfWork using database/sql transactions.
type SQLiteUnitOfWork struct {
	db *sql.DB
}

func NewSQLiteUnitOfWork(db *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: db}
}

func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn TxFunc) error {
	return u.run(ctx, fn, true)
}

func (u *SQLiteUnitOfWork) WithinReadTx(ctx context.Context, fn TxFunc) error {
	return u.run(ctx, fn, false)
}

func (u *SQLiteUnitOfWork) run(ctx context.Context, fn TxFunc, commit bool) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if !commit {
		if err := tx.Rollback(); err != nil {
			return fmt.Errorf("ending read transaction: %w", err)
		}
		return nil
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
