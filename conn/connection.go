// Package conn defines the connection boundary every backend adapter
// implements (Prepare, bind parameters, Execute/Fetch), plus the
// transaction manager and prepared-statement cache built on top of it.
// Every concrete backend (backend/postgres, backend/mysql, backend/sqlite)
// satisfies Connection by wrapping its own driver; this package never
// imports a driver directly.
package conn

import (
	"context"

	"github.com/Serajian/go-query-builder/dialect"
	"github.com/Serajian/go-query-builder/serialize"
)

// Rows is the row-cursor returned by Statement.Fetch.
type Rows interface {
	// Next advances to the next row, returning false at end-of-results or
	// on error (check Err after Next returns false).
	Next() bool
	// Scan copies the current row's column values into dest, in select-
	// list order.
	Scan(dest ...any) error
	// Columns names the result set's columns in order.
	Columns() ([]string, error)
	// Err returns the error, if any, that stopped iteration.
	Err() error
	// Close releases the cursor's resources. Safe to call multiple times.
	Close() error
}

// Statement is a prepared statement bound to one backend connection,
// reused across executions via the QueryId-keyed StatementCache.
type Statement interface {
	// Execute runs the statement with binds and returns the number of rows
	// affected (INSERT/UPDATE/DELETE without RETURNING).
	Execute(ctx context.Context, binds []serialize.BindParam) (rowsAffected int64, err error)
	// Fetch runs the statement with binds and returns a row cursor
	// (SELECT, or INSERT/UPDATE/DELETE with RETURNING).
	Fetch(ctx context.Context, binds []serialize.BindParam) (Rows, error)
	// Close releases the prepared statement on the backend.
	Close() error
}

// Connection is the full boundary a backend adapter implements: dialect
// identity, statement preparation, and transaction/savepoint control. Query
// execution always goes through Prepare first — even a one-shot query is a
// statement prepared, executed once, and (if uncacheable) immediately
// discarded by the caller.
type Connection interface {
	// Dialect reports the SQL dialect this connection speaks.
	Dialect() dialect.Dialect

	// Prepare compiles sql into a backend-native prepared statement. A
	// caller that caches statements keys its own StatementCache; Prepare
	// itself does not consult or populate any cache.
	Prepare(ctx context.Context, sql string) (Statement, error)

	// Begin starts a top-level transaction.
	Begin(ctx context.Context) error
	// Commit commits the current top-level transaction.
	Commit(ctx context.Context) error
	// Rollback rolls back the current top-level transaction.
	Rollback(ctx context.Context) error

	// Savepoint establishes a named savepoint inside the current
	// transaction.
	Savepoint(ctx context.Context, name string) error
	// ReleaseSavepoint releases (commits) a named savepoint.
	ReleaseSavepoint(ctx context.Context, name string) error
	// RollbackToSavepoint rolls back to a named savepoint without ending
	// the enclosing transaction.
	RollbackToSavepoint(ctx context.Context, name string) error

	// Close releases the connection.
	Close() error
}
