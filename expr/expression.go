// Package expr is the expression algebra: the capability hierarchy and
// combinator set — Expression, SelectableExpression, AppearsOnTable,
// ValidGrouping, and the operator/aggregate/window library built on top of
// them.
//
// Go has no trait bounds and no macro-generated tuple impls, so the
// capability traits below are split into two layers:
//
//   - TypedExpr[ST] is a genuine compile-time check: Go's generics reject,
//     at the call site, an attempt to compare a Text column against an
//     Integer bound parameter, because the inferred ST type parameter
//     cannot unify.
//   - Selectable/Grouped track the per-expression facts (which tables it
//     touches, whether it is aggregate) that a type-level
//     SelectableExpression<QS>/AppearsOnTable<QS>/ValidGrouping<GB> would
//     encode at the type level. Without a distinct Go type per declared
//     table (this core deliberately does not generate one — see schema
//     package doc), the query package checks some of them at build time:
//     no aggregate in WHERE, JOIN ON or GROUP BY keys, GROUP BY functional
//     dependency, and a declared relation for each joined table. It does
//     not check that every table in an expression's Tables() belongs to
//     the query's from-clause.
package expr

import (
	"github.com/Serajian/go-query-builder/schema"
	"github.com/Serajian/go-query-builder/serialize"
	"github.com/Serajian/go-query-builder/sqltype"
)

// AnyExpr is the untyped base every expression node satisfies: it can be
// walked to SQL text/binds and reports its SQL type name for diagnostics.
// Untyped containers (tuples, select lists, boxed expressions) hold AnyExpr
// rather than a fixed TypedExpr[ST], since Go cannot express "a
// heterogeneous list of TypedExpr[ST] for varying ST" directly.
type AnyExpr interface {
	serialize.QueryFragment
	SQLTypeName() string
}

// TypedExpr is any expression whose SQL type is known to be ST. Every
// operator combinator in this package is generic over TypedExpr[ST], which
// is what gives querykit its compile-time type agreement: Eq(col, bind)
// only compiles if col and bind both resolve the same ST.
type TypedExpr[ST sqltype.SQLType] interface {
	Expr
	SqlType() ST
}

// AggKind is the aggregation status of an expression: IsAggregate ∈
// {No, Yes, Never}.
type AggKind int

const (
	// AggNo is a plain, non-aggregate expression (most columns).
	AggNo AggKind = iota
	// AggYes is the result of an aggregate function call (count(*), sum(x)).
	AggYes
	// AggNever is the identity element: literals and bound parameters,
	// which combine with either No or Yes without forcing a clash.
	AggNever
)

// CombineAgg implements the aggregation monoid: No⊕No=No, Yes⊕Yes=Yes,
// Never⊕x=x, No⊕Yes=error.
func CombineAgg(a, b AggKind) (AggKind, bool) {
	switch {
	case a == AggNever:
		return b, true
	case b == AggNever:
		return a, true
	case a == b:
		return a, true
	default:
		return 0, false
	}
}

// Grouped is implemented by every expression node, reporting its
// aggregation status for ValidGrouping<GB> checking.
type Grouped interface {
	AnyExpr
	AggKind() AggKind
}

// Selectable is implemented by every expression node, reporting which
// tables it draws columns from. A query-tree node is SelectableExpression
// <QS> (or AppearsOnTable<QS>, which additionally tolerates the
// outer-join nullability rewrite) iff every table in Tables() belongs to
// the query's from-clause table set.
type Selectable interface {
	AnyExpr
	Tables() []*schema.Table
}

// Expr is the full capability set every concrete expression node in this
// package implements: walkable, typed, groupable, and selectable.
type Expr interface {
	Grouped
	Selectable
}
