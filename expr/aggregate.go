package expr

import (
	"fmt"

	"github.com/Serajian/go-query-builder/schema"
	"github.com/Serajian/go-query-builder/serialize"
	"github.com/Serajian/go-query-builder/sqltype"
)

// FrameUnit is ROWS|RANGE|GROUPS for a window frame specification.
type FrameUnit string

const (
	FrameRows   FrameUnit = "ROWS"
	FrameRange  FrameUnit = "RANGE"
	FrameGroups FrameUnit = "GROUPS"
)

// FrameBound is one endpoint of a window frame
// (UNBOUNDED PRECEDING..CURRENT ROW..UNBOUNDED FOLLOWING).
type FrameBound struct {
	render string
}

func UnboundedPreceding() FrameBound { return FrameBound{"UNBOUNDED PRECEDING"} }
func CurrentRow() FrameBound         { return FrameBound{"CURRENT ROW"} }
func UnboundedFollowing() FrameBound { return FrameBound{"UNBOUNDED FOLLOWING"} }
func Preceding(n int) FrameBound     { return FrameBound{fmt.Sprintf("%d PRECEDING", n)} }
func Following(n int) FrameBound     { return FrameBound{fmt.Sprintf("%d FOLLOWING", n)} }

// Frame is a full frame specification: unit, bounds, and an optional
// exclusion clause.
type Frame struct {
	Unit      FrameUnit
	Start     FrameBound
	End       *FrameBound // nil = single-bound form ("ROWS <start>")
	Exclusion string      // "", "CURRENT ROW", "GROUP", "TIES", "NO OTHERS"
}

func (f Frame) render() string {
	s := string(f.Unit) + " "
	if f.End != nil {
		s += "BETWEEN " + f.Start.render + " AND " + f.End.render
	} else {
		s += f.Start.render
	}
	if f.Exclusion != "" {
		s += " EXCLUDE " + f.Exclusion
	}
	return s
}

// AggregateExpression composes an aggregate/window function call with its
// optional clauses: DISTINCT/ALL, aggregate ORDER BY, FILTER, and the full
// OVER(...) window clause (PARTITION BY, window ORDER BY, frame).
//
// Each builder method returns a new AggregateExpression with one more slot
// populated, moving the expression between states without mutating the
// receiver.
type AggregateExpression[ST sqltype.SQLType] struct {
	fn       string
	args     []Expr
	distinct bool
	allKw    bool
	order    []Expr
	filter   TypedExpr[sqltype.Bool]
	isWindow bool
	partBy   []Expr
	winOrder []Expr
	frame    *Frame
}

// NewAggregate starts an aggregate function call (count, sum, avg, ...)
// over the given arguments.
func NewAggregate[ST sqltype.SQLType](fn string, args ...Expr) *AggregateExpression[ST] {
	return &AggregateExpression[ST]{fn: fn, args: args}
}

// Distinct adds DISTINCT to the argument list.
func (a *AggregateExpression[ST]) Distinct() *AggregateExpression[ST] {
	c := *a
	c.distinct = true
	c.allKw = false
	return &c
}

// All adds the explicit ALL keyword to the argument list.
func (a *AggregateExpression[ST]) All() *AggregateExpression[ST] {
	c := *a
	c.allKw = true
	c.distinct = false
	return &c
}

// AggregateOrder attaches an ORDER BY clause inside the aggregate call
// (e.g. `string_agg(name, ',' ORDER BY name)`).
func (a *AggregateExpression[ST]) AggregateOrder(exprs ...Expr) *AggregateExpression[ST] {
	c := *a
	c.order = exprs
	return &c
}

// AggregateFilter attaches a FILTER (WHERE pred) clause. Only legal on
// PostgreSQL ≥ 9.4 and SQLite ≥ 3.30; the dialect layer, not this
// constructor, rejects it for MySQL.
func (a *AggregateExpression[ST]) AggregateFilter(pred TypedExpr[sqltype.Bool]) *AggregateExpression[ST] {
	c := *a
	c.filter = pred
	return &c
}

// Over turns this aggregate into a window function with an empty OVER().
func (a *AggregateExpression[ST]) Over() *AggregateExpression[ST] {
	c := *a
	c.isWindow = true
	return &c
}

// PartitionBy sets the window's PARTITION BY list; implies Over().
func (a *AggregateExpression[ST]) PartitionBy(exprs ...Expr) *AggregateExpression[ST] {
	c := *a
	c.isWindow = true
	c.partBy = exprs
	return &c
}

// WindowOrder sets the window's ORDER BY list; implies Over(). Neither this
// method nor the query package checks that the referenced columns belong
// to the query's from-clause.
func (a *AggregateExpression[ST]) WindowOrder(exprs ...Expr) *AggregateExpression[ST] {
	c := *a
	c.isWindow = true
	c.winOrder = exprs
	return &c
}

// FrameBy sets the window's frame clause; implies Over().
func (a *AggregateExpression[ST]) FrameBy(f Frame) *AggregateExpression[ST] {
	c := *a
	c.isWindow = true
	c.frame = &f
	return &c
}

// WindowFilter is FILTER applied to a window function. NewAggregate builds
// aggregates and ranking functions (row_number, rank) alike, so this method
// accepts either; only the dialect's FILTER support is checked, at render
// time.
func (a *AggregateExpression[ST]) WindowFilter(pred TypedExpr[sqltype.Bool]) *AggregateExpression[ST] {
	return a.AggregateFilter(pred)
}

func (a *AggregateExpression[ST]) SqlType() ST         { var z ST; return z }
func (a *AggregateExpression[ST]) SQLTypeName() string { return a.SqlType().TypeName() }

// AggKind is always AggYes for a bare (non-windowed) aggregate call, and
// AggNo for a windowed one — window functions do not collapse rows the way
// aggregates do, so they do not force GROUP BY membership.
func (a *AggregateExpression[ST]) AggKind() AggKind {
	if a.isWindow {
		return AggNo
	}
	return AggYes
}

func (a *AggregateExpression[ST]) Tables() []*schema.Table {
	var out []*schema.Table
	for _, e := range a.args {
		out = mergeTables(out, e.Tables())
	}
	for _, e := range a.partBy {
		out = mergeTables(out, e.Tables())
	}
	for _, e := range a.winOrder {
		out = mergeTables(out, e.Tables())
	}
	return out
}

func (a *AggregateExpression[ST]) WalkAST(pass *serialize.AstPass) error {
	if a.filter != nil && !pass.Capabilities().AggregateFilter {
		return fmt.Errorf("expr: FILTER (WHERE ...) is not supported by this dialect")
	}
	pass.PushSQL(a.fn + "(")
	if a.distinct {
		pass.PushSQL("DISTINCT ")
	} else if a.allKw {
		pass.PushSQL("ALL ")
	}
	if len(a.args) == 0 {
		pass.PushSQL("*")
	}
	for i, arg := range a.args {
		if i > 0 {
			pass.PushSQL(", ")
		}
		if err := arg.WalkAST(pass.Reborrow()); err != nil {
			return err
		}
	}
	if len(a.order) > 0 {
		pass.PushSQL(" ORDER BY ")
		for i, o := range a.order {
			if i > 0 {
				pass.PushSQL(", ")
			}
			if err := o.WalkAST(pass.Reborrow()); err != nil {
				return err
			}
		}
	}
	pass.PushSQL(")")

	if a.filter != nil {
		pass.PushSQL(" FILTER (WHERE ")
		if err := a.filter.(Expr).WalkAST(pass.Reborrow()); err != nil {
			return err
		}
		pass.PushSQL(")")
	}

	if a.isWindow {
		pass.PushSQL(" OVER (")
		wrote := false
		if len(a.partBy) > 0 {
			pass.PushSQL("PARTITION BY ")
			for i, p := range a.partBy {
				if i > 0 {
					pass.PushSQL(", ")
				}
				if err := p.WalkAST(pass.Reborrow()); err != nil {
					return err
				}
			}
			wrote = true
		}
		if len(a.winOrder) > 0 {
			if wrote {
				pass.PushSQL(" ")
			}
			pass.PushSQL("ORDER BY ")
			for i, o := range a.winOrder {
				if i > 0 {
					pass.PushSQL(", ")
				}
				if err := o.WalkAST(pass.Reborrow()); err != nil {
					return err
				}
			}
			wrote = true
		}
		if a.frame != nil {
			if wrote {
				pass.PushSQL(" ")
			}
			pass.PushSQL(a.frame.render())
		}
		pass.PushSQL(")")
	}

	return nil
}
