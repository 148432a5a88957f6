package expr

import (
	"github.com/Serajian/go-query-builder/schema"
	"github.com/Serajian/go-query-builder/serialize"
)

// Tuples use three concrete arities rather than macro-generating every
// arity from 1 to 16, enough to express most real select lists/changesets,
// plus ExprList below as an escape hatch for wider or dynamically-sized
// projections (e.g. `all_columns` on a many-column table, or a boxed
// query's select list).

// Tuple2 composes two expressions into one selectable, groupable unit:
// ValidGrouping and SelectableExpression both propagate structurally
// through tuples, combining member-wise.
type Tuple2[A, B Expr] struct {
	First  A
	Second B
}

func NewTuple2[A, B Expr](a A, b B) Tuple2[A, B] { return Tuple2[A, B]{First: a, Second: b} }

func (t Tuple2[A, B]) SQLTypeName() string { return "record" }

func (t Tuple2[A, B]) Tables() []*schema.Table {
	return mergeTables(t.First.Tables(), t.Second.Tables())
}

func (t Tuple2[A, B]) AggKind() AggKind {
	combined, ok := CombineAgg(t.First.AggKind(), t.Second.AggKind())
	if !ok {
		panic("expr: cannot mix aggregate and non-aggregate members in a tuple select list")
	}
	return combined
}

// ExprMembers implements compositeExpr, exposing each slot for functional-
// dependency checking (e.g. query.SelectStatement.GroupBy).
func (t Tuple2[A, B]) ExprMembers() []Expr { return []Expr{t.First, t.Second} }

func (t Tuple2[A, B]) WalkAST(pass *serialize.AstPass) error {
	if err := t.First.WalkAST(pass.Reborrow()); err != nil {
		return err
	}
	pass.PushSQL(", ")
	return t.Second.WalkAST(pass.Reborrow())
}

// Tuple3 composes three expressions.
type Tuple3[A, B, C Expr] struct {
	First  A
	Second B
	Third  C
}

func NewTuple3[A, B, C Expr](a A, b B, c C) Tuple3[A, B, C] {
	return Tuple3[A, B, C]{First: a, Second: b, Third: c}
}

func (t Tuple3[A, B, C]) SQLTypeName() string { return "record" }

func (t Tuple3[A, B, C]) Tables() []*schema.Table {
	return mergeTables(mergeTables(t.First.Tables(), t.Second.Tables()), t.Third.Tables())
}

func (t Tuple3[A, B, C]) AggKind() AggKind {
	k1, ok := CombineAgg(t.First.AggKind(), t.Second.AggKind())
	if !ok {
		panic("expr: cannot mix aggregate and non-aggregate members in a tuple select list")
	}
	k2, ok := CombineAgg(k1, t.Third.AggKind())
	if !ok {
		panic("expr: cannot mix aggregate and non-aggregate members in a tuple select list")
	}
	return k2
}

// ExprMembers implements compositeExpr.
func (t Tuple3[A, B, C]) ExprMembers() []Expr { return []Expr{t.First, t.Second, t.Third} }

func (t Tuple3[A, B, C]) WalkAST(pass *serialize.AstPass) error {
	if err := t.First.WalkAST(pass.Reborrow()); err != nil {
		return err
	}
	pass.PushSQL(", ")
	if err := t.Second.WalkAST(pass.Reborrow()); err != nil {
		return err
	}
	pass.PushSQL(", ")
	return t.Third.WalkAST(pass.Reborrow())
}

// Tuple4 composes four expressions.
type Tuple4[A, B, C, D Expr] struct {
	First  A
	Second B
	Third  C
	Fourth D
}

func NewTuple4[A, B, C, D Expr](a A, b B, c C, d D) Tuple4[A, B, C, D] {
	return Tuple4[A, B, C, D]{First: a, Second: b, Third: c, Fourth: d}
}

func (t Tuple4[A, B, C, D]) SQLTypeName() string { return "record" }

func (t Tuple4[A, B, C, D]) Tables() []*schema.Table {
	return mergeTables(mergeTables(mergeTables(t.First.Tables(), t.Second.Tables()), t.Third.Tables()), t.Fourth.Tables())
}

func (t Tuple4[A, B, C, D]) AggKind() AggKind {
	k1, ok := CombineAgg(t.First.AggKind(), t.Second.AggKind())
	if !ok {
		panic("expr: cannot mix aggregate and non-aggregate members in a tuple select list")
	}
	k2, ok := CombineAgg(k1, t.Third.AggKind())
	if !ok {
		panic("expr: cannot mix aggregate and non-aggregate members in a tuple select list")
	}
	k3, ok := CombineAgg(k2, t.Fourth.AggKind())
	if !ok {
		panic("expr: cannot mix aggregate and non-aggregate members in a tuple select list")
	}
	return k3
}

// ExprMembers implements compositeExpr.
func (t Tuple4[A, B, C, D]) ExprMembers() []Expr {
	return []Expr{t.First, t.Second, t.Third, t.Fourth}
}

func (t Tuple4[A, B, C, D]) WalkAST(pass *serialize.AstPass) error {
	if err := t.First.WalkAST(pass.Reborrow()); err != nil {
		return err
	}
	pass.PushSQL(", ")
	if err := t.Second.WalkAST(pass.Reborrow()); err != nil {
		return err
	}
	pass.PushSQL(", ")
	if err := t.Third.WalkAST(pass.Reborrow()); err != nil {
		return err
	}
	pass.PushSQL(", ")
	return t.Fourth.WalkAST(pass.Reborrow())
}

// ExprList is the escape hatch for arity beyond 4 or a dynamically sized
// projection (e.g. a wide `all_columns`, or a boxed query's select list
// assembled at runtime). It sacrifices per-slot static typing in exchange
// for arbitrary width — the same tradeoff a boxed query makes deliberately.
type ExprList struct {
	Members []Expr
}

// NewExprList builds an ExprList from any number of expressions.
func NewExprList(members ...Expr) ExprList { return ExprList{Members: members} }

func (l ExprList) SQLTypeName() string { return "record" }

func (l ExprList) Tables() []*schema.Table {
	var out []*schema.Table
	for _, m := range l.Members {
		out = mergeTables(out, m.Tables())
	}
	return out
}

func (l ExprList) AggKind() AggKind {
	kind := AggNever
	for _, m := range l.Members {
		combined, ok := CombineAgg(kind, m.AggKind())
		if !ok {
			panic("expr: cannot mix aggregate and non-aggregate members in an expression list")
		}
		kind = combined
	}
	return kind
}

func (l ExprList) WalkAST(pass *serialize.AstPass) error {
	for i, m := range l.Members {
		if i > 0 {
			pass.PushSQL(", ")
		}
		if err := m.WalkAST(pass.Reborrow()); err != nil {
			return err
		}
	}
	return nil
}

// compositeExpr is implemented by every select-list node built from other
// expressions (the tuple arities and ExprList) so FlattenSelectList can
// walk down to the leaf columns/literals a composite is built from without
// a type switch per arity.
type compositeExpr interface {
	ExprMembers() []Expr
}

var _ compositeExpr = Tuple2[Expr, Expr]{}
var _ compositeExpr = Tuple3[Expr, Expr, Expr]{}
var _ compositeExpr = Tuple4[Expr, Expr, Expr, Expr]{}
var _ compositeExpr = ExprList{}

// ExprMembers implements compositeExpr.
func (l ExprList) ExprMembers() []Expr { return l.Members }

// FlattenSelectList walks e down to its leaf expressions, recursing through
// any tuple arity or ExprList. A single non-composite expression (a bare
// ColumnRef, a bound literal, an aggregate call) flattens to itself.
func FlattenSelectList(e Expr) []Expr {
	c, ok := e.(compositeExpr)
	if !ok {
		return []Expr{e}
	}
	var out []Expr
	for _, m := range c.ExprMembers() {
		out = append(out, FlattenSelectList(m)...)
	}
	return out
}
