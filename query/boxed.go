package query

import (
	"github.com/Serajian/go-query-builder/dialect"
	"github.com/Serajian/go-query-builder/serialize"
)

// boxedQuery is the type-erased interface a BoxedSelectStatement forwards
// to. It is satisfied by selectAdapter[SL] for every concrete SL.
type boxedQuery interface {
	serialize.QueryFragment
	toSQL(d dialect.Dialect) (string, []serialize.BindParam, bool, error)
	err() error
}

// selectAdapter closes over a *SelectStatement[SL]'s concrete SL so that
// BoxedSelectStatement can hold it behind boxedQuery, the same type-erasure
// trick expr.ExprList performs on the select-list side.
type selectAdapter[SL interface {
	WalkAST(pass *serialize.AstPass) error
}] struct {
	stmt interface {
		WalkAST(pass *serialize.AstPass) error
		ToSQL(d dialect.Dialect) (string, []serialize.BindParam, bool, error)
		Err() error
	}
}

func (a *selectAdapter[SL]) WalkAST(pass *serialize.AstPass) error { return a.stmt.WalkAST(pass) }
func (a *selectAdapter[SL]) toSQL(d dialect.Dialect) (string, []serialize.BindParam, bool, error) {
	return a.stmt.ToSQL(d)
}
func (a *selectAdapter[SL]) err() error { return a.stmt.Err() }

// BoxedSelectStatement erases a SelectStatement's select-list type
// parameter, so statements with different concrete SL can be returned from
// one function or stored in one slice. It exposes only WalkAST and ToSQL:
// filters, joins and ordering are added on the SelectStatement before
// IntoBoxed.
//
// Boxed queries always render UnsafeToCachePrepared, since their shape can
// vary at runtime in ways a static QueryId cannot capture — the tradeoff
// boxing makes is dynamic width in exchange for uncacheable plans.
type BoxedSelectStatement struct {
	inner boxedQuery
}

func (b *BoxedSelectStatement) WalkAST(pass *serialize.AstPass) error {
	pass.UnsafeToCachePrepared()
	return b.inner.WalkAST(pass)
}

// ToSQL renders the boxed statement through d.
func (b *BoxedSelectStatement) ToSQL(d dialect.Dialect) (string, []serialize.BindParam, bool, error) {
	if err := b.inner.err(); err != nil {
		return "", nil, false, err
	}
	sql, binds, _, err := b.inner.toSQL(d)
	return sql, binds, false, err
}
