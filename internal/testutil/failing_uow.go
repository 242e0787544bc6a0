package testutil

import (
	"context"
	"database/sql"

	"github.com/alexanderramin/timestudy/internal/db"
)

// FailOnNthExecUoW returns Err from the FailOn-th write of each transaction,
// counting from 1. Reads pass through. Use it to check that a multi-row
// write such as an import leaves nothing behind when one row fails.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn db.TxFunc) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failingTx{DBTX: tx, failOn: u.FailOn, err: u.Err})
	})
}

func (u *FailOnNthExecUoW) WithinReadTx(ctx context.Context, fn db.TxFunc) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinReadTx(ctx, fn)
}

type failingTx struct {
	db.DBTX
	writes int
	failOn int
	err    error
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.writes++
	if f.writes == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
