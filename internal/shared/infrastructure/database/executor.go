package database

import (
	"context"
	"database/sql"
)

// Row abstracts pgx.Row and *sql.Row.
type Row interface {
	Scan(dest ...any) error
}

// Rows abstracts pgx.Rows and *sql.Rows.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
	Err() error
}

// Result reports the outcome of an Exec.
type Result interface {
	RowsAffected() (int64, error)
}

// Executor runs SQL statements regardless of the underlying driver.
// Repositories program against this interface so the same code paths work
// inside and outside transactions, on SQLite and on PostgreSQL.
type Executor interface {
	Exec(ctx context.Context, query string, args ...any) (Result, error)
	QueryRow(ctx context.Context, query string, args ...any) Row
	Query(ctx context.Context, query string, args ...any) (Rows, error)
}

// Transaction is an Executor with commit and rollback.
type Transaction interface {
	Executor
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Connection is a database handle that can open transactions.
type Connection interface {
	Executor
	BeginTx(ctx context.Context) (Transaction, error)
	Close() error
	Ping(ctx context.Context) error
	Driver() Driver
}

type sqlResult struct{ result sql.Result }

func (r sqlResult) RowsAffected() (int64, error) { return r.result.RowsAffected() }

// WrapSQLResult adapts a database/sql result to the Result interface.
func WrapSQLResult(r sql.Result) Result { return sqlResult{result: r} }

type sqlRows struct{ rows *sql.Rows }

func (r sqlRows) Next() bool              { return r.rows.Next() }
func (r sqlRows) Scan(dest ...any) error  { return r.rows.Scan(dest...) }
func (r sqlRows) Close() error            { return r.rows.Close() }
func (r sqlRows) Err() error              { return r.rows.Err() }

// WrapSQLRows adapts database/sql rows to the Rows interface.
func WrapSQLRows(r *sql.Rows) Rows { return sqlRows{rows: r} }
