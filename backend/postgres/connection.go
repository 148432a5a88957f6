// Package postgres adapts jackc/pgx/v5 to conn.Connection, giving querykit
// a PostgreSQL backend: connection management, prepared statements, and
// driver-error translation into the qkerr taxonomy.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Serajian/go-query-builder/conn"
	"github.com/Serajian/go-query-builder/dialect"
	"github.com/Serajian/go-query-builder/qkerr"
	"github.com/Serajian/go-query-builder/serialize"
)

// Connection wraps a single pgx.Conn. One Connection corresponds to one
// backend connection; pooling (if wanted) belongs to the caller, e.g. by
// holding a pgxpool.Pool and acquiring a fresh Connection per checkout.
type Connection struct {
	conn      *pgx.Conn
	stmtSeq   uint64
	composite *compositeOIDCache
}

// Open establishes a new connection to dsn (a libpq-style connection
// string or URL).
func Open(ctx context.Context, dsn string) (*Connection, error) {
	c, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, Translate(err)
	}
	return &Connection{conn: c, composite: newCompositeOIDCache()}, nil
}

func (c *Connection) Dialect() dialect.Dialect { return dialect.Postgres{} }

// Prepare assigns the statement a unique server-side name and prepares it
// on the connection. The name is never reused, so two queries with
// identical SQL still occupy two prepared statement slots — callers that
// want reuse should hold onto the returned Statement via
// conn.StatementCache rather than re-Prepare the same SQL.
func (c *Connection) Prepare(ctx context.Context, sql string) (conn.Statement, error) {
	name := fmt.Sprintf("qk_%d", atomic.AddUint64(&c.stmtSeq, 1))
	desc, err := c.conn.Prepare(ctx, name, sql)
	if err != nil {
		return nil, Translate(err)
	}
	return &statement{owner: c, conn: c.conn, name: name, paramOIDs: desc.ParamOIDs}, nil
}

func (c *Connection) Begin(ctx context.Context) error {
	_, err := c.conn.Exec(ctx, "BEGIN")
	return Translate(err)
}

func (c *Connection) Commit(ctx context.Context) error {
	_, err := c.conn.Exec(ctx, "COMMIT")
	return Translate(err)
}

func (c *Connection) Rollback(ctx context.Context) error {
	_, err := c.conn.Exec(ctx, "ROLLBACK")
	return Translate(err)
}

func (c *Connection) Savepoint(ctx context.Context, name string) error {
	_, err := c.conn.Exec(ctx, "SAVEPOINT "+name)
	return Translate(err)
}

func (c *Connection) ReleaseSavepoint(ctx context.Context, name string) error {
	_, err := c.conn.Exec(ctx, "RELEASE SAVEPOINT "+name)
	return Translate(err)
}

func (c *Connection) RollbackToSavepoint(ctx context.Context, name string) error {
	_, err := c.conn.Exec(ctx, "ROLLBACK TO SAVEPOINT "+name)
	return Translate(err)
}

func (c *Connection) Close() error { return c.conn.Close(context.Background()) }

type statement struct {
	owner     *Connection
	conn      *pgx.Conn
	name      string
	paramOIDs []uint32
}

func toArgs(binds []serialize.BindParam) []any {
	args := make([]any, len(binds))
	for i, b := range binds {
		args[i] = b.Value
	}
	return args
}

func sqlTypesOf(binds []serialize.BindParam) []string {
	types := make([]string, len(binds))
	for i, b := range binds {
		types[i] = b.SQLType
	}
	return types
}

func (s *statement) Execute(ctx context.Context, binds []serialize.BindParam) (int64, error) {
	if err := s.owner.checkParamTypes(ctx, s.paramOIDs, sqlTypesOf(binds)); err != nil {
		return 0, err
	}
	tag, err := s.conn.Exec(ctx, s.name, toArgs(binds)...)
	if err != nil {
		return 0, Translate(err)
	}
	return tag.RowsAffected(), nil
}

func (s *statement) Fetch(ctx context.Context, binds []serialize.BindParam) (conn.Rows, error) {
	if err := s.owner.checkParamTypes(ctx, s.paramOIDs, sqlTypesOf(binds)); err != nil {
		return nil, err
	}
	rows, err := s.conn.Query(ctx, s.name, toArgs(binds)...)
	if err != nil {
		return nil, Translate(err)
	}
	return &rowCursor{rows: rows}, nil
}

func (s *statement) Close() error {
	return s.conn.Deallocate(context.Background(), s.name)
}

type rowCursor struct{ rows pgx.Rows }

func (r *rowCursor) Next() bool               { return r.rows.Next() }
func (r *rowCursor) Scan(dest ...any) error   { return r.rows.Scan(dest...) }
func (r *rowCursor) Err() error               { return Translate(r.rows.Err()) }
func (r *rowCursor) Close() error             { r.rows.Close(); return nil }
func (r *rowCursor) Columns() ([]string, error) {
	fds := r.rows.FieldDescriptions()
	cols := make([]string, len(fds))
	for i, f := range fds {
		cols[i] = f.Name
	}
	return cols, nil
}

// Translate maps a pgx/pgconn error into a qkerr DatabaseErrorKind,
// switching on the PostgreSQL SQLSTATE code rather than the message text.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return qkerr.UnknownDatabaseError.New(err.Error())
	}
	switch pgErr.Code {
	case "23505":
		return qkerr.UniqueViolation.New(pgErr.Message)
	case "23503":
		return qkerr.ForeignKeyViolation.New(pgErr.Message)
	case "23502":
		return qkerr.NotNullViolation.New(pgErr.Message)
	case "23514":
		return qkerr.CheckViolation.New(pgErr.Message)
	case "40001":
		return qkerr.SerializationFailure.New(pgErr.Message)
	case "25006":
		return qkerr.ReadOnlyTransaction.New(pgErr.Message)
	case "08000", "08003", "08006":
		return qkerr.UnableToSendCommand.New(pgErr.Message)
	default:
		return qkerr.UnknownDatabaseError.New(pgErr.Message)
	}
}
