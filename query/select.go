// Package query assembles the nine-slot SELECT pipeline, INSERT/UPDATE/
// DELETE statements, joins, and upserts on top of the expression algebra in
// expr, serializing through a dialect.Dialect.
//
// Builder methods mirror qb.QueryBuilder's chaining style (Select/From/
// Where/... each returning the receiver) but validate as they go: a method
// that would build an ill-formed query (an aggregate in WHERE, a column
// outside GROUP BY's functional dependency) records a sticky error on the
// statement instead of panicking, and the terminal method (ToSQL) returns
// that error first.
package query

import (
	"fmt"

	"github.com/Serajian/go-query-builder/dialect"
	"github.com/Serajian/go-query-builder/expr"
	"github.com/Serajian/go-query-builder/schema"
	"github.com/Serajian/go-query-builder/serialize"
	"github.com/Serajian/go-query-builder/sqltype"
)

// OrderExpr pairs an ordering expression with its direction.
type OrderExpr struct {
	expr expr.Expr
	desc bool
}

// Asc orders by e ascending.
func Asc(e expr.Expr) OrderExpr { return OrderExpr{expr: e} }

// Desc orders by e descending.
func Desc(e expr.Expr) OrderExpr { return OrderExpr{expr: e, desc: true} }

// JoinKind is INNER/LEFT/RIGHT/FULL, mirroring const.go's JoinType.
type JoinKind int

const (
	JoinInner JoinKind = iota
	JoinLeft
	JoinRight
	JoinFull
)

func (k JoinKind) sql() string {
	switch k {
	case JoinLeft:
		return "LEFT JOIN"
	case JoinRight:
		return "RIGHT JOIN"
	case JoinFull:
		return "FULL OUTER JOIN"
	default:
		return "INNER JOIN"
	}
}

type joinEntry struct {
	kind   JoinKind
	target *schema.Table
	on     expr.TypedExpr[sqltype.Bool]
}

// LockClause is a trailing row-locking clause (FOR UPDATE, FOR SHARE, ...).
type LockClause string

const (
	NoLock       LockClause = ""
	ForUpdate    LockClause = "FOR UPDATE"
	ForNoKeyUpd  LockClause = "FOR NO KEY UPDATE"
	ForShare     LockClause = "FOR SHARE"
	ForKeyShare  LockClause = "FOR KEY SHARE"
)

// SelectStatement is the nine-slot SELECT pipeline: FROM (with its JOINs),
// SELECT, DISTINCT, WHERE, GROUP BY, HAVING, ORDER BY, LIMIT/OFFSET, and a
// trailing locking clause. SL is the select list's expression type —
// typically a *expr.ColumnRef[ST], an expr.Tuple2..4, or expr.ExprList for
// a dynamically assembled projection.
type SelectStatement[SL expr.Expr] struct {
	from       *schema.Table
	selectList SL
	distinct   bool
	distinctOn []expr.Expr
	joins      []joinEntry
	where      expr.TypedExpr[sqltype.Bool]
	groupBy    []expr.Expr
	groupByCol []string
	having     expr.TypedExpr[sqltype.Bool]
	order      []OrderExpr
	limit      *int64
	offset     *int64
	locking    LockClause

	err error
}

// From starts a SELECT over table, projecting selectList.
func From[SL expr.Expr](table *schema.Table, selectList SL) *SelectStatement[SL] {
	return &SelectStatement[SL]{from: table, selectList: selectList}
}

func (s *SelectStatement[SL]) fail(err error) *SelectStatement[SL] {
	if s.err == nil {
		s.err = err
	}
	return s
}

// Err returns the first validation error recorded by a builder method, if
// any.
func (s *SelectStatement[SL]) Err() error { return s.err }

// Distinct adds SELECT DISTINCT.
func (s *SelectStatement[SL]) Distinct() *SelectStatement[SL] {
	s.distinct = true
	s.distinctOn = nil
	return s
}

// DistinctOn adds SELECT DISTINCT ON (exprs) — PostgreSQL only; the caller
// must pair it with a compatible dialect at execution time.
func (s *SelectStatement[SL]) DistinctOn(exprs ...expr.Expr) *SelectStatement[SL] {
	s.distinct = false
	s.distinctOn = exprs
	return s
}

// InnerJoin adds an INNER JOIN against target with the given ON predicate.
// The predicate must not be aggregate (NonAggregate).
func (s *SelectStatement[SL]) InnerJoin(target *schema.Table, on expr.TypedExpr[sqltype.Bool]) *SelectStatement[SL] {
	return s.join(JoinInner, target, on)
}

// LeftJoin adds a LEFT OUTER JOIN. Columns drawn from target through this
// join must be rewritten nullable by the caller (expr.ColumnRef.AsNullable)
// before being placed in the select list, per the outer-join nullability
// rule; this statement does not perform that rewrite automatically since Go
// cannot walk an arbitrary SL and replace its column references in place.
func (s *SelectStatement[SL]) LeftJoin(target *schema.Table, on expr.TypedExpr[sqltype.Bool]) *SelectStatement[SL] {
	return s.join(JoinLeft, target, on)
}

// RightJoin adds a RIGHT OUTER JOIN (PostgreSQL/MySQL; SQLite ≥3.39).
func (s *SelectStatement[SL]) RightJoin(target *schema.Table, on expr.TypedExpr[sqltype.Bool]) *SelectStatement[SL] {
	return s.join(JoinRight, target, on)
}

// FullJoin adds a FULL OUTER JOIN (PostgreSQL only).
func (s *SelectStatement[SL]) FullJoin(target *schema.Table, on expr.TypedExpr[sqltype.Bool]) *SelectStatement[SL] {
	return s.join(JoinFull, target, on)
}

func (s *SelectStatement[SL]) join(kind JoinKind, target *schema.Table, on expr.TypedExpr[sqltype.Bool]) *SelectStatement[SL] {
	if err := expr.RequireNonAggregate(on); err != nil {
		return s.fail(fmt.Errorf("query: JOIN ON clause: %w", err))
	}

	reachable := schema.CanAppearTogether(s.from, target)
	for _, j := range s.joins {
		if reachable {
			break
		}
		reachable = schema.CanAppearTogether(j.target, target)
	}
	if !reachable {
		return s.fail(fmt.Errorf("query: table %q has no declared join path to %q (did you call schema.Joinable or schema.AllowTablesToAppearInSameQuery?)", target.Name(), s.from.Name()))
	}

	s.joins = append(s.joins, joinEntry{kind: kind, target: target, on: on})
	return s
}

// Filter adds pred to the WHERE clause, AND-combined with any existing
// predicate: repeated calls narrow the result set. pred must not be
// aggregate.
func (s *SelectStatement[SL]) Filter(pred expr.TypedExpr[sqltype.Bool]) *SelectStatement[SL] {
	if err := expr.RequireNonAggregate(pred); err != nil {
		return s.fail(fmt.Errorf("query: WHERE clause: %w", err))
	}
	if s.where == nil {
		s.where = pred
	} else {
		s.where = expr.And(s.where, pred)
	}
	return s
}

// OrFilter OR-combines pred with the existing WHERE predicate instead of
// AND-combining it.
func (s *SelectStatement[SL]) OrFilter(pred expr.TypedExpr[sqltype.Bool]) *SelectStatement[SL] {
	if err := expr.RequireNonAggregate(pred); err != nil {
		return s.fail(fmt.Errorf("query: WHERE clause: %w", err))
	}
	if s.where == nil {
		s.where = pred
	} else {
		s.where = expr.Or(s.where, pred)
	}
	return s
}

// GroupBy sets the GROUP BY key list. columnNames names each key
// expression's SQL column name, used by the SELECT-list functional-
// dependency check (expr.ValidUnderGroupBy): every select-list column must
// either appear in columnNames, belong to a table whose full primary key is
// in columnNames, or sit inside an aggregate — anything else fails the
// statement at build time instead of rendering an invalid GROUP BY.
func (s *SelectStatement[SL]) GroupBy(columnNames []string, exprs ...expr.Expr) *SelectStatement[SL] {
	for _, e := range exprs {
		if err := expr.RequireNonAggregate(e); err != nil {
			return s.fail(fmt.Errorf("query: GROUP BY key: %w", err))
		}
	}
	s.groupBy = exprs
	s.groupByCol = columnNames
	if err := s.checkGroupByDependency(); err != nil {
		return s.fail(err)
	}
	return s
}

// namedColumn is the subset of ColumnRef's methods ValidUnderGroupBy needs:
// which table the column belongs to, and its bare SQL name.
type namedColumn interface {
	Table() *schema.Table
	Name() string
}

// checkGroupByDependency enforces the functional-dependency rule on every
// leaf of the select list against the GROUP BY key list just set: a bare
// literal/bind (no owning column) and any member already inside an
// aggregate are exempt, since ValidGrouping propagates those without a
// column-level check.
func (s *SelectStatement[SL]) checkGroupByDependency() error {
	groupByTables := map[*schema.Table]bool{}
	for _, g := range s.groupBy {
		for _, t := range g.Tables() {
			groupByTables[t] = true
		}
	}

	for _, leaf := range expr.FlattenSelectList(s.selectList) {
		if leaf.AggKind() == expr.AggYes {
			continue
		}
		col, ok := leaf.(namedColumn)
		if !ok {
			continue
		}
		if !expr.ValidUnderGroupBy(col, col.Name(), s.groupByCol, groupByTables) {
			return fmt.Errorf("query: GROUP BY: select-list column %q.%q is neither in GROUP BY nor functionally dependent on a grouped primary key", col.Table().Name(), col.Name())
		}
	}
	return nil
}

// Having adds a HAVING predicate, evaluated after GROUP BY collapses rows.
// Unlike Filter, an aggregate predicate is expected and legal here.
func (s *SelectStatement[SL]) Having(pred expr.TypedExpr[sqltype.Bool]) *SelectStatement[SL] {
	if s.having == nil {
		s.having = pred
	} else {
		s.having = expr.And(s.having, pred)
	}
	return s
}

// Order replaces the ORDER BY list.
func (s *SelectStatement[SL]) Order(keys ...OrderExpr) *SelectStatement[SL] {
	s.order = keys
	return s
}

// ThenOrderBy appends additional ORDER BY keys after any already set.
func (s *SelectStatement[SL]) ThenOrderBy(keys ...OrderExpr) *SelectStatement[SL] {
	s.order = append(s.order, keys...)
	return s
}

// Limit sets LIMIT n.
func (s *SelectStatement[SL]) Limit(n int64) *SelectStatement[SL] {
	s.limit = &n
	return s
}

// Offset sets OFFSET n.
func (s *SelectStatement[SL]) Offset(n int64) *SelectStatement[SL] {
	s.offset = &n
	return s
}

// Lock sets a trailing row-locking clause.
func (s *SelectStatement[SL]) Lock(c LockClause) *SelectStatement[SL] {
	s.locking = c
	return s
}

// ForUpdate is shorthand for Lock(ForUpdate).
func (s *SelectStatement[SL]) ForUpdate() *SelectStatement[SL] { return s.Lock(ForUpdate) }

// IntoBoxed erases SL, producing a BoxedSelectStatement that can be
// returned from a function or stored in a slice regardless of its original
// select-list type — the escape hatch for dynamic query construction
// (choosing between differently shaped statements at run time). The boxed
// statement only renders; filters and joins are added before boxing.
func (s *SelectStatement[SL]) IntoBoxed() *BoxedSelectStatement {
	return &BoxedSelectStatement{inner: &selectAdapter[SL]{s}}
}

// WalkAST renders SELECT..FROM..JOIN..WHERE..GROUP BY..HAVING..ORDER BY.
// It deliberately stops short of LIMIT/OFFSET and the locking clause: both
// need a dialect's LimitOffset rendering (MySQL's OFFSET-only sentinel,
// SQLite's "LIMIT -1 OFFSET n"), which an AstPass has no dialect handle to
// reach — only ToSQL, which holds the dialect.Dialect directly, appends
// them. That makes this method safe to call when embedding the statement
// as a scalar/EXISTS subquery fragment, where those clauses would be
// reattached incorrectly anyway.
func (s *SelectStatement[SL]) WalkAST(pass *serialize.AstPass) error {
	if s.err != nil {
		return s.err
	}
	pass.PushSQL("SELECT ")
	if s.distinct {
		pass.PushSQL("DISTINCT ")
	} else if len(s.distinctOn) > 0 {
		pass.PushSQL("DISTINCT ON (")
		for i, e := range s.distinctOn {
			if i > 0 {
				pass.PushSQL(", ")
			}
			if err := e.WalkAST(pass.Reborrow()); err != nil {
				return err
			}
		}
		pass.PushSQL(") ")
	}
	if err := s.selectList.WalkAST(pass.Reborrow()); err != nil {
		return err
	}

	pass.PushSQL(" FROM ")
	if sn := s.from.SchemaName(); sn != "" {
		if err := pass.PushIdentifier(sn); err != nil {
			return err
		}
		pass.PushSQL(".")
	}
	if err := pass.PushIdentifier(s.from.Name()); err != nil {
		return err
	}

	for _, j := range s.joins {
		pass.PushSQL(" " + j.kind.sql() + " ")
		if sn := j.target.SchemaName(); sn != "" {
			if err := pass.PushIdentifier(sn); err != nil {
				return err
			}
			pass.PushSQL(".")
		}
		if err := pass.PushIdentifier(j.target.Name()); err != nil {
			return err
		}
		pass.PushSQL(" ON ")
		if err := j.on.WalkAST(pass.Reborrow()); err != nil {
			return err
		}
	}

	if s.where != nil {
		pass.PushSQL(" WHERE ")
		if err := s.where.WalkAST(pass.Reborrow()); err != nil {
			return err
		}
	}

	if len(s.groupBy) > 0 {
		pass.PushSQL(" GROUP BY ")
		for i, e := range s.groupBy {
			if i > 0 {
				pass.PushSQL(", ")
			}
			if err := e.WalkAST(pass.Reborrow()); err != nil {
				return err
			}
		}
	}

	if s.having != nil {
		pass.PushSQL(" HAVING ")
		if err := s.having.WalkAST(pass.Reborrow()); err != nil {
			return err
		}
	}

	if len(s.order) > 0 {
		pass.PushSQL(" ORDER BY ")
		for i, o := range s.order {
			if i > 0 {
				pass.PushSQL(", ")
			}
			if err := o.expr.WalkAST(pass.Reborrow()); err != nil {
				return err
			}
			if o.desc {
				pass.PushSQL(" DESC")
			}
		}
	}

	return nil
}

// ToSQL renders the statement through d, returning the finished SQL text,
// bound parameters, and whether the result is safe to cache as a prepared
// statement.
func (s *SelectStatement[SL]) ToSQL(d dialect.Dialect) (string, []serialize.BindParam, bool, error) {
	if s.err != nil {
		return "", nil, false, s.err
	}
	pass := d.NewPass()
	if err := s.WalkAST(pass); err != nil {
		return "", nil, false, err
	}
	pass.PushSQL(d.LimitOffset(derefOr(s.limit, 0), derefOr(s.offset, 0), s.limit != nil, s.offset != nil))
	if s.locking != NoLock {
		pass.PushSQL(" " + string(s.locking))
	}
	return pass.SQL(), pass.Binds(), pass.Cacheable(), nil
}

func derefOr(p *int64, def int64) int64 {
	if p == nil {
		return def
	}
	return *p
}
