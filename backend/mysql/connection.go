// Package mysql adapts go-sql-driver/mysql (through database/sql) to
// conn.Connection, giving querykit a MySQL/MariaDB backend.
package mysql

import (
	"context"
	"database/sql"
	"errors"

	mysqldriver "github.com/go-sql-driver/mysql"

	"github.com/Serajian/go-query-builder/conn"
	"github.com/Serajian/go-query-builder/dialect"
	"github.com/Serajian/go-query-builder/qkerr"
	"github.com/Serajian/go-query-builder/serialize"
)

// Connection pins one database/sql connection out of the pool for the
// lifetime of this Connection. Savepoint-based nesting requires every
// statement in a logical transaction to run on the same underlying MySQL
// session, which database/sql only guarantees via an explicit *sql.Conn.
type Connection struct {
	db *sql.DB
	c  *sql.Conn
}

// Open opens db ("mysql" driver) and checks out one dedicated connection.
func Open(ctx context.Context, dsn string) (*Connection, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, Translate(err)
	}
	c, err := db.Conn(ctx)
	if err != nil {
		db.Close()
		return nil, Translate(err)
	}
	return &Connection{db: db, c: c}, nil
}

func (c *Connection) Dialect() dialect.Dialect { return dialect.MySQL{} }

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
	_, err := c.c.ExecContext(ctx, "RELEASE SAVEPOINT "+name)
	return Translate(err)
}

func (c *Connection) RollbackToSavepoint(ctx context.Context, name string) error {
	_, err := c.c.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+name)
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
		v, err := normalizeArg(b.SQLType, b.Value)
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

// Translate maps a go-sql-driver/mysql error into a qkerr DatabaseErrorKind
// by MySQL error number, since message text varies with server version and
// locale.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	var me *mysqldriver.MySQLError
	if !errors.As(err, &me) {
		return qkerr.UnknownDatabaseError.New(err.Error())
	}
	switch me.Number {
	case 1062:
		return qkerr.UniqueViolation.New(me.Message)
	case 1451, 1452:
		return qkerr.ForeignKeyViolation.New(me.Message)
	case 1048, 1364:
		return qkerr.NotNullViolation.New(me.Message)
	case 3819:
		return qkerr.CheckViolation.New(me.Message)
	case 1213:
		return qkerr.SerializationFailure.New(me.Message)
	case 1792:
		return qkerr.ReadOnlyTransaction.New(me.Message)
	case 2006, 2013:
		return qkerr.UnableToSendCommand.New(me.Message)
	default:
		return qkerr.UnknownDatabaseError.New(me.Message)
	}
}
