package query

import (
	"github.com/Serajian/go-query-builder/expr"
	"github.com/Serajian/go-query-builder/schema"
	"github.com/Serajian/go-query-builder/serialize"
	"github.com/Serajian/go-query-builder/sqltype"
)

// Assignment is one `column = value` pair for INSERT/UPDATE/upsert DO
// UPDATE SET, the typed analogue of const.go's map[string]interface{}
// InsertData/UpdateData — generalized so value is any TypedExpr[ST] for
// the column's own ST, not just a bound literal, so an upsert can assign
// Excluded(col) or a plain arithmetic expression.
type Assignment struct {
	column string
	value  expr.AnyExpr
}

// Set builds an Assignment, requiring value's SQL type to match col's at
// compile time.
func Set[ST sqltype.SQLType](col *schema.Column[ST], value expr.TypedExpr[ST]) Assignment {
	return Assignment{column: col.Name(), value: value}
}

// Excluded references the to-be-inserted row's value for col inside an
// ON CONFLICT ... DO UPDATE SET clause (PostgreSQL/SQLite).
func Excluded[ST sqltype.SQLType](col *schema.Column[ST]) expr.TypedExpr[ST] {
	return &excludedRef[ST]{col: col}
}

type excludedRef[ST sqltype.SQLType] struct{ col *schema.Column[ST] }

func (e *excludedRef[ST]) SqlType() ST                { var z ST; return z }
func (e *excludedRef[ST]) SQLTypeName() string        { return e.col.SqlType().TypeName() }
func (e *excludedRef[ST]) AggKind() expr.AggKind       { return expr.AggNever }
func (e *excludedRef[ST]) Tables() []*schema.Table     { return nil }
func (e *excludedRef[ST]) WalkAST(pass *serialize.AstPass) error {
	pass.PushSQL("EXCLUDED.")
	return pass.PushIdentifier(e.col.Name())
}

// ValuesRef references the to-be-inserted row's value for col inside a
// MySQL ON DUPLICATE KEY UPDATE clause, rendered as `VALUES(col)`.
func ValuesRef[ST sqltype.SQLType](col *schema.Column[ST]) expr.TypedExpr[ST] {
	return &valuesRef[ST]{col: col}
}

type valuesRef[ST sqltype.SQLType] struct{ col *schema.Column[ST] }

func (v *valuesRef[ST]) SqlType() ST            { var z ST; return z }
func (v *valuesRef[ST]) SQLTypeName() string    { return v.col.SqlType().TypeName() }
func (v *valuesRef[ST]) AggKind() expr.AggKind  { return expr.AggNever }
func (v *valuesRef[ST]) Tables() []*schema.Table { return nil }
func (v *valuesRef[ST]) WalkAST(pass *serialize.AstPass) error {
	pass.PushSQL("VALUES(")
	if err := pass.PushIdentifier(v.col.Name()); err != nil {
		return err
	}
	pass.PushSQL(")")
	return nil
}
