// Package sqlite adapts mattn/go-sqlite3 (through database/sql) to
// conn.Connection, giving querykit a SQLite backend.
package sqlite

import (
	"context"
	"database/sql"
	"errors"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/Serajian/go-query-builder/conn"
	"github.com/Serajian/go-query-builder/dialect"
	"github.com/Serajian/go-query-builder/qkerr"
	"github.com/Serajian/go-query-builder/serialize"
)

// Connection pins one database/sql connection for the lifetime of this
// Connection, the same reasoning as backend/mysql: SAVEPOINT nesting must
// run on one SQLite session, and SQLite only supports one writer at a time
// regardless.
type Connection struct {
	db *sql.DB
	c  *sql.Conn
}

// Open opens the SQLite database at dsn (a file path, or "file::memory:"
// for an in-memory database) using the "sqlite3" driver.
func Open(ctx context.Context, dsn string) (*Connection, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, Translate(err)
	}
	db.SetMaxOpenConns(1)
	c, err := db.Conn(ctx)
	if err != nil {
		db.Close()
		return nil, Translate(err)
	}
	return &Connection{db: db, c: c}, nil
}

func (c *Connection) Dialect() dialect.Dialect { return dialect.SQLite{} }

func (c *Connection) Prepare(ctx context.Context, query string) (conn.Statement, error) {
	stmt, err := c.c.PrepareContext(ctx, query)
	if err != nil {
		return nil, Translate(err)
	}
	return &statement{stmt: stmt}, nil
}

func (c *Connection) Begin(ctx context.Context) error {
	_, err := c.c.ExecContext(ctx, "BEGIN")
	return Translate(err)
}

func (c *Connection) Commit(ctx context.Context) error {
	_, err := c.c.ExecContext(ctx, "COMMIT")
	return Translate(err)
}

func (c *Connection) Rollback(ctx context.Context) error {
	_, err := c.c.ExecContext(ctx, "ROLLBACK")
	return Translate(err)
}

func (c *Connection) Savepoint(ctx context.Context, name string) error {
	_, err := c.c.ExecContext(ctx, "SAVEPOINT "+name)
	return Translate(err)
}

func (c *Connection) ReleaseSavepoint(ctx context.Context, name string) error {
	_, err := c.c.ExecContext(ctx, "RELEASE "+name)
	return Translate(err)
}

func (c *Connection) RollbackToSavepoint(ctx context.Context, name string) error {
	_, err := c.c.ExecContext(ctx, "ROLLBACK TO "+name)
	return Translate(err)
}

func (c *Connection) Close() error {
	if err := c.c.Close(); err != nil {
		c.db.Close()
		return err
	}
	return c.db.Close()
}

type statement struct{ stmt *sql.Stmt }

func toArgs(binds []serialize.BindParam) ([]any, error) {
	args := make([]any, len(binds))
	for i, b := range binds {
		v, err := coerceArg(b.SQLType, b.Value)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

func (s *statement) Execute(ctx context.Context, binds []serialize.BindParam) (int64, error) {
	args, err := toArgs(binds)
	if err != nil {
		return 0, err
	}
	res, err := s.stmt.ExecContext(ctx, args...)
	if err != nil {
		return 0, Translate(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, Translate(err)
	}
	return n, nil
}

func (s *statement) Fetch(ctx context.Context, binds []serialize.BindParam) (conn.Rows, error) {
	args, err := toArgs(binds)
	if err != nil {
		return nil, err
	}
	rows, err := s.stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, Translate(err)
	}
	return &rowCursor{rows: rows}, nil
}

func (s *statement) Close() error { return s.stmt.Close() }

type rowCursor struct{ rows *sql.Rows }

func (r *rowCursor) Next() bool                 { return r.rows.Next() }
func (r *rowCursor) Scan(dest ...any) error     { return r.rows.Scan(dest...) }
func (r *rowCursor) Columns() ([]string, error) { return r.rows.Columns() }
func (r *rowCursor) Err() error                 { return Translate(r.rows.Err()) }
func (r *rowCursor) Close() error               { return r.rows.Close() }

// Translate maps a mattn/go-sqlite3 error into a qkerr DatabaseErrorKind by
// its extended result code.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return qkerr.UnknownDatabaseError.New(err.Error())
	}
	switch se.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return qkerr.UniqueViolation.New(se.Error())
	case sqlite3.ErrConstraintForeignKey:
		return qkerr.ForeignKeyViolation.New(se.Error())
	case sqlite3.ErrConstraintNotNull:
		return qkerr.NotNullViolation.New(se.Error())
	case sqlite3.ErrConstraintCheck:
		return qkerr.CheckViolation.New(se.Error())
	}
	switch se.Code {
	case sqlite3.ErrBusy, sqlite3.ErrLocked:
		return qkerr.SerializationFailure.New(se.Error())
	case sqlite3.ErrReadonly:
		return qkerr.ReadOnlyTransaction.New(se.Error())
	case sqlite3.ErrCantOpen, sqlite3.ErrIoErr:
		return qkerr.UnableToSendCommand.New(se.Error())
	default:
		return qkerr.UnknownDatabaseError.New(se.Error())
	}
}
