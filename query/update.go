package query

import (
	"github.com/Serajian/go-query-builder/dialect"
	"github.com/Serajian/go-query-builder/expr"
	"github.com/Serajian/go-query-builder/schema"
	"github.com/Serajian/go-query-builder/serialize"
	"github.com/Serajian/go-query-builder/sqltype"
)

// AsChangeset is any type that can produce the SET-list for an UPDATE —
// the core's analogue of #[derive(AsChangeset)]. AssignmentRow already
// implements it.
type AsChangeset interface {
	ChangesetAssignments() []Assignment
}

func (r AssignmentRow) ChangesetAssignments() []Assignment { return []Assignment(r) }

// UpdateStatement is UPDATE table SET ... WHERE ... [RETURNING ...].
//
// Unlike rawsql's write guard (a render-time WHERE 1=0 safeguard lifted by
// Builder.Unsafe), an
// UpdateStatement with no WHERE predicate at all is accepted here: an
// explicit, intentional whole-table update is a valid (if rare) statement,
// and the typed Filter method already makes an accidental omission harder
// to reach than a stringly-typed builder's would be.
type UpdateStatement struct {
	table     *schema.Table
	set       []Assignment
	where     expr.TypedExpr[sqltype.Bool]
	returning []string
	err       error
}

// Update starts an UPDATE statement for table.
func Update(table *schema.Table) *UpdateStatement {
	return &UpdateStatement{table: table}
}

func (s *UpdateStatement) fail(err error) *UpdateStatement {
	if s.err == nil {
		s.err = err
	}
	return s
}

// Err returns the first validation error recorded by a builder method.
func (s *UpdateStatement) Err() error { return s.err }

// Set applies the changeset's assignments.
func (s *UpdateStatement) Set(c AsChangeset) *UpdateStatement {
	s.set = append(s.set, c.ChangesetAssignments()...)
	return s
}

// Filter adds pred to the WHERE clause, AND-combined with any existing
// predicate.
func (s *UpdateStatement) Filter(pred expr.TypedExpr[sqltype.Bool]) *UpdateStatement {
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
func (s *UpdateStatement) Returning(columns ...string) *UpdateStatement {
	s.returning = columns
	return s
}

// ToSQL renders the statement through d.
func (s *UpdateStatement) ToSQL(d dialect.Dialect) (string, []serialize.BindParam, bool, error) {
	if s.err != nil {
		return "", nil, false, s.err
	}
	if len(s.set) == 0 {
		return "", nil, false, errEmptyChangeset
	}
	pass := d.NewPass()
	pass.PushSQL("UPDATE ")
	if err := pass.PushIdentifier(s.table.Name()); err != nil {
		return "", nil, false, err
	}
	pass.PushSQL(" SET ")
	for i, a := range s.set {
		if i > 0 {
			pass.PushSQL(", ")
		}
		if err := pass.PushIdentifier(a.column); err != nil {
			return "", nil, false, err
		}
		pass.PushSQL(" = ")
		if err := a.value.WalkAST(pass.Reborrow()); err != nil {
			return "", nil, false, err
		}
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
