// Package schema provides the type-level vocabulary produced by schema
// reification: one *Table value (not a distinct Go type) per declared table,
// one marker value per column,
// and the relation declarations (joinable / allow-tables-to-appear) that
// gate which tables may legally appear together in a query's from-clause.
//
// Where a macro-based schema DSL would expand a table declaration at
// compile time, this package exposes the same shape as ordinary Go values
// built with NewTable/NewColumn — Go has no macros, so the "generator" is
// just a constructor called once at package-init time by generated-looking,
// hand-written schema files. This module ships no such file; its tests
// declare their tables inline.
package schema

import "github.com/Serajian/go-query-builder/sqltype"

// QuerySource is a from-clause source. *Table is its only implementation;
// joins are recorded on a query.SelectStatement rather than as a
// QuerySource.
type QuerySource interface {
	// SourceName is the identifier used when this source appears bare in a
	// FROM clause (unqualified table/alias name).
	SourceName() string
}

// Table is a single declared table: a name, an optional schema/namespace,
// and an ordered primary-key column list.
type Table struct {
	name       string
	schemaName string
	primaryKey []string
}

// NewTable declares a table with the given SQL name and primary-key column
// names, in schema-declaration order.
func NewTable(name string, primaryKey ...string) *Table {
	return &Table{name: name, primaryKey: primaryKey}
}

// WithSchema sets the owning database schema/namespace (e.g. "public"),
// emitted as "schema"."name" in the FROM clause. Absent by default.
func (t *Table) WithSchema(schemaName string) *Table {
	t.schemaName = schemaName
	return t
}

// SourceName implements QuerySource.
func (t *Table) SourceName() string { return t.name }

// Name is the bare SQL table name.
func (t *Table) Name() string { return t.name }

// SchemaName is the owning schema/namespace, or "" if unqualified.
func (t *Table) SchemaName() string { return t.schemaName }

// PrimaryKey is the ordered primary-key column-name tuple.
func (t *Table) PrimaryKey() []string { return t.primaryKey }

// Column is a single declared column on Table t with SQL type ST. It is a
// unit value: all of its query-building behavior lives in the expr package,
// whose expr.Col wraps a *Column[ST] as a typed expression.
type Column[ST sqltype.SQLType] struct {
	table *Table
	name  string
	sqlFn string // #[sql_name] override for keyword-colliding column names
}

// NewColumn declares a column of SQL type ST on table t with SQL name name.
func NewColumn[ST sqltype.SQLType](t *Table, name string) *Column[ST] {
	return &Column[ST]{table: t, name: name}
}

// NewColumnWithSQLName declares a column whose Go-facing name differs from
// its SQL name (used for keyword collisions: e.g. a Go identifier `Type_`
// backed by the real column name "type").
func NewColumnWithSQLName[ST sqltype.SQLType](t *Table, goName, sqlName string) *Column[ST] {
	return &Column[ST]{table: t, name: goName, sqlFn: sqlName}
}

// Table returns the owning table.
func (c *Column[ST]) Table() *Table { return c.table }

// Name is the column's SQL name, honoring any #[sql_name]-style override.
func (c *Column[ST]) Name() string {
	if c.sqlFn != "" {
		return c.sqlFn
	}
	return c.name
}

// SqlType returns the zero value of this column's SQL type tag.
func (c *Column[ST]) SqlType() ST {
	var zero ST
	return zero
}

// Star is the `*` marker selectable from a table but never usable inside a
// typed tuple (it has no fixed arity/shape). Star carries no expression
// behavior of its own — the same split NewColumn draws between a bare
// schema.Column and expr.ColumnRef — so it is expr.AllColumns that adapts
// it into something query.From accepts as a select list.
type Star struct{ table *Table }

// NewStar declares the `*` selectable for table t.
func NewStar(t *Table) Star { return Star{table: t} }

// Table returns the table this marker selects all columns from.
func (s Star) Table() *Table { return s.table }
