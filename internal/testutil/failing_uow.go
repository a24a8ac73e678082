package testutil

import (
	"context"
	"database/sql"
	"strings"
	"sync"

	"github.com/legalaid/caseprogress/internal/db"
)

// FailOnNthExecUoW runs the callback in a real transaction but makes the
// FailOn-th write (counting from 1) return Err. Reads are never counted.
// After a failure, FailedStatement holds the first line of the rejected SQL.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int
	Err    error

	mu              sync.Mutex
	FailedStatement string
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	inner := db.NewSQLiteUnitOfWork(u.DB)
	return inner.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failingTx{DBTX: tx, uow: u})
	})
}

// Failed reports the statement that was rejected, if any.
func (u *FailOnNthExecUoW) Failed() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.FailedStatement
}

type failingTx struct {
	db.DBTX
	uow   *FailOnNthExecUoW
	execs int
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.execs++
	if f.execs == f.uow.FailOn {
		f.uow.mu.Lock()
		f.uow.FailedStatement = firstLine(query)
		f.uow.mu.Unlock()
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

func firstLine(query string) string {
	query = strings.TrimSpace(query)
	if i := strings.IndexByte(query, '\n'); i >= 0 {
		query = query[:i]
	}
	return strings.TrimSpace(query)
}
