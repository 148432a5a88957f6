package expr

import (
	"github.com/Serajian/go-query-builder/schema"
	"github.com/Serajian/go-query-builder/serialize"
	"github.com/Serajian/go-query-builder/sqltype"
)

// ColumnRef adapts a schema.Column[ST] unit value into a full expression
// node. schema.Column carries no behavior of its own — column types are
// unit values, and Col is what gives one its expression behavior.
type ColumnRef[ST sqltype.SQLType] struct {
	col      *schema.Column[ST]
	nullable bool // set true when referenced through an outer-joined source
}

// Col wraps a schema column as a queryable expression.
func Col[ST sqltype.SQLType](c *schema.Column[ST]) *ColumnRef[ST] {
	return &ColumnRef[ST]{col: c}
}

// AsNullable returns a copy of this column reference rewritten to nullable,
// used by the query package when a column is pulled through the right side
// of a LEFT JOIN.
func (c *ColumnRef[ST]) AsNullable() *ColumnRef[ST] {
	return &ColumnRef[ST]{col: c.col, nullable: true}
}

// SqlType returns the column's declared SQL type, also after an outer-join
// rewrite; IsNullableRef and SQLTypeName are what report that rewrite.
func (c *ColumnRef[ST]) SqlType() ST {
	return c.col.SqlType()
}

// IsNullableRef reports whether this reference has been rewritten nullable
// by an outer join (the underlying column may still be NOT NULL).
func (c *ColumnRef[ST]) IsNullableRef() bool { return c.nullable }

// SQLTypeName implements AnyExpr.
func (c *ColumnRef[ST]) SQLTypeName() string {
	if c.nullable {
		return sqltype.MakeNullable(c.col.SqlType()).TypeName()
	}
	return c.col.SqlType().TypeName()
}

// AggKind implements Grouped: a bare column reference is never itself an
// aggregate.
func (c *ColumnRef[ST]) AggKind() AggKind { return AggNo }

// Tables implements Selectable.
func (c *ColumnRef[ST]) Tables() []*schema.Table { return []*schema.Table{c.col.Table()} }

// Table returns the owning table, used by GROUP BY functional-dependency
// checking.
func (c *ColumnRef[ST]) Table() *schema.Table { return c.col.Table() }

// Name returns the column's SQL name.
func (c *ColumnRef[ST]) Name() string { return c.col.Name() }

// WalkAST implements serialize.QueryFragment, emitting "table"."column".
func (c *ColumnRef[ST]) WalkAST(pass *serialize.AstPass) error {
	if err := pass.PushIdentifier(c.col.Table().Name()); err != nil {
		return err
	}
	pass.PushSQL(".")
	return pass.PushIdentifier(c.col.Name())
}

// StarRef adapts a schema.Star marker into a full expression node, the
// same way ColumnRef adapts a schema.Column — a table's `*` selectable,
// usable as a SelectStatement's select list. It has no owning column name,
// so the GROUP BY functional-dependency check (query.SelectStatement.
// GroupBy) leaves it untouched rather than rejecting it outright.
type StarRef struct {
	star schema.Star
}

// AllColumns wraps t's `*` marker as a queryable expression, rendering
// "table".*.
func AllColumns(t *schema.Table) *StarRef {
	return &StarRef{star: schema.NewStar(t)}
}

// SQLTypeName implements AnyExpr.
func (s *StarRef) SQLTypeName() string { return "record" }

// AggKind implements Grouped: `*` is never itself an aggregate.
func (s *StarRef) AggKind() AggKind { return AggNo }

// Tables implements Selectable.
func (s *StarRef) Tables() []*schema.Table { return []*schema.Table{s.star.Table()} }

// WalkAST implements serialize.QueryFragment, emitting "table".*.
func (s *StarRef) WalkAST(pass *serialize.AstPass) error {
	if err := pass.PushIdentifier(s.star.Table().Name()); err != nil {
		return err
	}
	pass.PushSQL(".*")
	return nil
}
