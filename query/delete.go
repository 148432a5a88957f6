package query

import (
	"errors"

	"github.com/Serajian/go-query-builder/dialect"
	"github.com/Serajian/go-query-builder/expr"
	"github.com/Serajian/go-query-builder/schema"
	"github.com/Serajian/go-query-builder/serialize"
	"github.com/Serajian/go-query-builder/sqltype"
)

// errEmptyChangeset is returned by UpdateStatement.ToSQL when Set was never
// called — an UPDATE with no SET list has no SQL rendering.
var errEmptyChangeset = errors.New("query: UPDATE has no SET assignments")

// DeleteStatement is DELETE FROM table WHERE ... [RETURNING ...].
type DeleteStatement struct {
	table     *schema.Table
	where     expr.TypedExpr[sqltype.Bool]
	returning []string
	err       error
}

// DeleteFrom starts a DELETE statement for table.
func DeleteFrom(table *schema.Table) *DeleteStatement {
	return &DeleteStatement{table: table}
}

func (s *DeleteStatement) fail(err error) *DeleteStatement {
	if s.err == nil {
		s.err = err
	}
	return s
}

// Err returns the first validation error recorded by a builder method.
func (s *DeleteStatement) Err() error { return s.err }

// Filter adds pred to the WHERE clause, AND-combined with any existing
// predicate.
func (s *DeleteStatement) Filter(pred expr.TypedExpr[sqltype.Bool]) *DeleteStatement {
	if err := expr.RequireNonAggregate(pred); err != nil {
		return s.fail(err)
	}
	if s.where == nil {
		s.where = pred
	} else {
		s.where = expr.And(s.where, pred)
	}
	return s
}

// Returning sets the RETURNING column list (PostgreSQL/SQLite only).
func (s *DeleteStatement) Returning(columns ...string) *DeleteStatement {
	s.returning = columns
	return s
}

// ToSQL renders the statement through d.
func (s *DeleteStatement) ToSQL(d dialect.Dialect) (string, []serialize.BindParam, bool, error) {
	if s.err != nil {
		return "", nil, false, s.err
	}
	pass := d.NewPass()
	pass.PushSQL("DELETE FROM ")
	if err := pass.PushIdentifier(s.table.Name()); err != nil {
		return "", nil, false, err
	}

	if s.where != nil {
		pass.PushSQL(" WHERE ")
		if err := s.where.WalkAST(pass.Reborrow()); err != nil {
			return "", nil, false, err
		}
	}

	if d.SupportsReturning() && len(s.returning) > 0 {
		pass.PushSQL(" RETURNING ")
		for i, c := range s.returning {
			if i > 0 {
				pass.PushSQL(", ")
			}
			if err := pass.PushIdentifier(c); err != nil {
				return "", nil, false, err
			}
		}
	}

	return pass.SQL(), pass.Binds(), pass.Cacheable(), nil
}
