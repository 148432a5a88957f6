package expr

import (
	"github.com/Serajian/go-query-builder/schema"
	"github.com/Serajian/go-query-builder/serialize"
	"github.com/Serajian/go-query-builder/sqltype"
)

// BoundParam is a host value lifted into the expression algebra as a bound
// parameter of SQL type ST. Literals and bound parameters are always
// AggNever and reference no table: they combine with whatever aggregation
// context they appear in without forcing a clash.
type BoundParam[ST sqltype.SQLType] struct {
	value    any
	sqlType  ST
	nullable bool
}

// Bind lifts a host value into a bound parameter of SQL type ST. Callers
// choose ST explicitly (Bind[sqltype.Integer](18)) rather than relying on a
// derived impl per primitive, since Go generics cannot dispatch on the
// argument's dynamic Go type.
func Bind[ST sqltype.SQLType](value any) *BoundParam[ST] {
	return &BoundParam[ST]{value: value}
}

// BindNullable lifts value (or nil for SQL NULL) into a Nullable<ST> bound
// parameter.
func BindNullable[ST sqltype.SQLType](value any) *BoundParam[ST] {
	return &BoundParam[ST]{value: value, nullable: true}
}

func (b *BoundParam[ST]) SqlType() ST { return b.sqlType }

func (b *BoundParam[ST]) SQLTypeName() string {
	if b.nullable {
		return sqltype.MakeNullable(b.sqlType).TypeName()
	}
	return b.sqlType.TypeName()
}

func (b *BoundParam[ST]) AggKind() AggKind { return AggNever }

func (b *BoundParam[ST]) Tables() []*schema.Table { return nil }

func (b *BoundParam[ST]) WalkAST(pass *serialize.AstPass) error {
	if b.nullable && b.value == nil {
		pass.PushSQL("NULL")
		return nil
	}
	pass.PushBindParam(b.sqlType.TypeName(), b.value)
	return nil
}
