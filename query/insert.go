package query

import (
	"fmt"
	"sort"

	"github.com/Serajian/go-query-builder/dialect"
	"github.com/Serajian/go-query-builder/schema"
	"github.com/Serajian/go-query-builder/serialize"
)

// Insertable is any type that can produce one row's worth of Assignments —
// the core's analogue of the #[derive(Insertable)] struct. A plain
// []Assignment already implements it via AssignmentRow.
type Insertable interface {
	InsertAssignments() []Assignment
}

// AssignmentRow adapts a literal []Assignment into an Insertable, for
// callers that build rows without a dedicated struct type.
type AssignmentRow []Assignment

func (r AssignmentRow) InsertAssignments() []Assignment { return []Assignment(r) }

// conflictClause holds an ON CONFLICT/ON DUPLICATE KEY UPDATE target and
// resolution, mirroring const.go's ConflictColumns/ConflictConstraint/
// ConflictDoNothing/ConflictUpdateSet fields.
type conflictClause struct {
	targetColumns  []string
	targetOnConstr string
	doNothing      bool
	doUpdate       []Assignment
}

// InsertStatement is INSERT INTO table (cols) VALUES (...), (...), ... with
// an optional upsert resolution and RETURNING list.
type InsertStatement struct {
	table     *schema.Table
	columns   []string
	rows      [][]Assignment // parallel to columns; empty = DEFAULT VALUES
	defaults  bool
	conflict  *conflictClause
	returning []string

	err error
}

// InsertInto starts an INSERT statement for table.
func InsertInto(table *schema.Table) *InsertStatement {
	return &InsertStatement{table: table}
}

func (s *InsertStatement) fail(err error) *InsertStatement {
	if s.err == nil {
		s.err = err
	}
	return s
}

// Err returns the first validation error recorded by a builder method.
func (s *InsertStatement) Err() error { return s.err }

// Values adds one row. Every row passed to Values must assign
// exactly the same column set as the first row — a batch insert shares one
// statically known column list across all its rows.
func (s *InsertStatement) Values(row Insertable) *InsertStatement {
	assignments := row.InsertAssignments()
	cols := make([]string, len(assignments))
	for i, a := range assignments {
		cols[i] = a.column
	}
	sort.Strings(cols)

	if len(s.rows) == 0 {
		s.columns = cols
	} else if !sameColumns(s.columns, cols) {
		return s.fail(fmt.Errorf("query: batch insert row has columns %v, expected %v", cols, s.columns))
	}

	sorted := make([]Assignment, len(assignments))
	copy(sorted, assignments)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].column < sorted[j].column })
	s.rows = append(s.rows, sorted)
	return s
}

func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// DefaultValues renders INSERT INTO table DEFAULT VALUES (PostgreSQL/
// SQLite), or INSERT INTO table () VALUES () on MySQL, which has no
// DEFAULT VALUES syntax.
func (s *InsertStatement) DefaultValues() *InsertStatement {
	s.defaults = true
	return s
}

// OnConflictColumns sets the ON CONFLICT(cols) target (PostgreSQL/SQLite).
func (s *InsertStatement) OnConflictColumns(columns ...string) *InsertStatement {
	s.conflict = &conflictClause{targetColumns: columns}
	return s
}

// OnConflictConstraint sets ON CONFLICT ON CONSTRAINT name.
func (s *InsertStatement) OnConflictConstraint(name string) *InsertStatement {
	s.conflict = &conflictClause{targetOnConstr: name}
	return s
}

// DoNothing resolves the conflict with DO NOTHING / INSERT IGNORE-style
// no-op.
func (s *InsertStatement) DoNothing() *InsertStatement {
	if s.conflict == nil {
		s.conflict = &conflictClause{}
	}
	s.conflict.doNothing = true
	return s
}

// DoUpdate resolves the conflict with DO UPDATE SET / ON DUPLICATE KEY
// UPDATE, assigning each Assignment. Use Excluded/ValuesRef to reference
// the row that would have been inserted.
func (s *InsertStatement) DoUpdate(assignments ...Assignment) *InsertStatement {
	if s.conflict == nil {
		s.conflict = &conflictClause{}
	}
	s.conflict.doUpdate = assignments
	s.conflict.doNothing = false
	return s
}

// Returning sets the RETURNING column list (PostgreSQL/SQLite only).
func (s *InsertStatement) Returning(columns ...string) *InsertStatement {
	s.returning = columns
	return s
}

// ToSQL renders the statement through d.
func (s *InsertStatement) ToSQL(d dialect.Dialect) (string, []serialize.BindParam, bool, error) {
	if s.err != nil {
		return "", nil, false, s.err
	}
	pass := d.NewPass()
	pass.PushSQL("INSERT INTO ")
	if err := pass.PushIdentifier(s.table.Name()); err != nil {
		return "", nil, false, err
	}

	if s.defaults || len(s.rows) == 0 {
		if d.Name() == "mysql" {
			pass.PushSQL(" () VALUES ()")
		} else {
			pass.PushSQL(" DEFAULT VALUES")
		}
	} else {
		pass.PushSQL(" (")
		for i, c := range s.columns {
			if i > 0 {
				pass.PushSQL(", ")
			}
			if err := pass.PushIdentifier(c); err != nil {
				return "", nil, false, err
			}
		}
		pass.PushSQL(") VALUES ")
		for ri, row := range s.rows {
			if ri > 0 {
				pass.PushSQL(", ")
			}
			pass.PushSQL("(")
			for i, a := range row {
				if i > 0 {
					pass.PushSQL(", ")
				}
				if err := a.value.WalkAST(pass.Reborrow()); err != nil {
					return "", nil, false, err
				}
			}
			pass.PushSQL(")")
		}
	}

	if err := s.renderConflict(d, pass); err != nil {
		return "", nil, false, err
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

// ToSQLStatements renders this INSERT as one or more statements. Every
// dialect except a Features.Legacy-marked SQLite (pre-3.7.11, no multi-row
// VALUES syntax) always returns exactly one, identical to ToSQL. A legacy
// SQLite target with more than one row fans the batch out into one INSERT
// statement per row instead, each sharing this statement's columns,
// conflict resolution, and RETURNING list.
func (s *InsertStatement) ToSQLStatements(d dialect.Dialect) ([]string, [][]serialize.BindParam, bool, error) {
	if d.SupportsMultiRowValues() || len(s.rows) <= 1 {
		sql, binds, cacheable, err := s.ToSQL(d)
		if err != nil {
			return nil, nil, false, err
		}
		return []string{sql}, [][]serialize.BindParam{binds}, cacheable, nil
	}

	stmts := make([]string, 0, len(s.rows))
	binds := make([][]serialize.BindParam, 0, len(s.rows))
	cacheable := true
	for _, row := range s.rows {
		single := &InsertStatement{
			table:     s.table,
			columns:   s.columns,
			rows:      [][]Assignment{row},
			conflict:  s.conflict,
			returning: s.returning,
		}
		sql, b, c, err := single.ToSQL(d)
		if err != nil {
			return nil, nil, false, err
		}
		stmts = append(stmts, sql)
		binds = append(binds, b)
		if !c {
			cacheable = false
		}
	}
	return stmts, binds, cacheable, nil
}

func (s *InsertStatement) renderConflict(d dialect.Dialect, pass *serialize.AstPass) error {
	if s.conflict == nil {
		return nil
	}
	c := s.conflict

	if d.UpsertForm() == dialect.UpsertOnDuplicateKey {
		if len(c.doUpdate) == 0 && !c.doNothing {
			return nil
		}
		pass.PushSQL(" ON DUPLICATE KEY UPDATE ")
		if c.doNothing {
			// MySQL has no DO NOTHING; the conventional no-op idiom
			// re-assigns the first key column to itself.
			if len(s.columns) == 0 {
				return fmt.Errorf("query: ON DUPLICATE KEY UPDATE DO NOTHING needs at least one column")
			}
			col := s.columns[0]
			pass.PushSQL(col + " = ")
			return pass.PushIdentifier(col)
		}
		for i, a := range c.doUpdate {
			if i > 0 {
				pass.PushSQL(", ")
			}
			if err := pass.PushIdentifier(a.column); err != nil {
				return err
			}
			pass.PushSQL(" = ")
			if err := a.value.WalkAST(pass.Reborrow()); err != nil {
				return err
			}
		}
		return nil
	}

	if len(c.targetColumns) == 0 && c.targetOnConstr == "" && !c.doNothing && len(c.doUpdate) == 0 {
		return nil
	}

	pass.PushSQL(" ON CONFLICT ")
	if c.targetOnConstr != "" {
		pass.PushSQL("ON CONSTRAINT ")
		if err := pass.PushIdentifier(c.targetOnConstr); err != nil {
			return err
		}
	} else if len(c.targetColumns) > 0 {
		pass.PushSQL("(")
		for i, col := range c.targetColumns {
			if i > 0 {
				pass.PushSQL(", ")
			}
			if err := pass.PushIdentifier(col); err != nil {
				return err
			}
		}
		pass.PushSQL(")")
	}

	if c.doNothing {
		pass.PushSQL(" DO NOTHING")
		return nil
	}
	if len(c.doUpdate) > 0 {
		pass.PushSQL(" DO UPDATE SET ")
		for i, a := range c.doUpdate {
			if i > 0 {
				pass.PushSQL(", ")
			}
			if err := pass.PushIdentifier(a.column); err != nil {
				return err
			}
			pass.PushSQL(" = ")
			if err := a.value.WalkAST(pass.Reborrow()); err != nil {
				return err
			}
		}
	}
	return nil
}
