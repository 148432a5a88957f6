package expr_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Serajian/go-query-builder/expr"
	"github.com/Serajian/go-query-builder/schema"
	"github.com/Serajian/go-query-builder/serialize"
	"github.com/Serajian/go-query-builder/sqltype"
)

var usersTable = schema.NewTable("users", "id")
var idCol = schema.NewColumn[sqltype.Integer](usersTable, "id")
var nameCol = schema.NewColumn[sqltype.Text](usersTable, "name")

func render(t *testing.T, e expr.AnyExpr) (string, []serialize.BindParam) {
	t.Helper()
	sql, binds, _, err := serialize.Walk(e, func(s string) (string, error) {
		return `"` + s + `"`, nil
	}, func(n int) string {
		return "$" + string(rune('0'+n))
	})
	require.NoError(t, err)
	return sql, binds
}

func TestEqRendersColumnAndBindParam(t *testing.T) {
	e := expr.Eq(expr.Col(idCol), expr.Bind[sqltype.Integer](7))
	sql, binds := render(t, e)
	assert.Equal(t, `("users"."id" = $1)`, sql)
	require.Len(t, binds, 1)
	assert.Equal(t, 7, binds[0].Value)
}

func TestAndOrComposeBooleanExpressions(t *testing.T) {
	left := expr.Eq(expr.Col(idCol), expr.Bind[sqltype.Integer](1))
	right := expr.Eq(expr.Col(nameCol), expr.Bind[sqltype.Text]("alice"))
	e := expr.And(left, right)
	sql, _ := render(t, e)
	assert.True(t, strings.Contains(sql, " AND "))
}

func TestBetweenRendersBothBounds(t *testing.T) {
	e := expr.Between(expr.Col(idCol), expr.Bind[sqltype.Integer](1), expr.Bind[sqltype.Integer](10))
	sql, binds := render(t, e)
	assert.Contains(t, sql, "BETWEEN")
	assert.Len(t, binds, 2)
}

func TestLikeEscapeAppendsEscapeClause(t *testing.T) {
	e := expr.Like(expr.Col(nameCol), expr.Bind[sqltype.Text]("a%")).Escape('\\')
	sql, _ := render(t, e)
	assert.Contains(t, sql, "LIKE")
	assert.Contains(t, sql, "ESCAPE")
}

// fixedAggBool is a synthetic TypedExpr[Bool] with a forced AggKind, used
// only to exercise the AggKind monoid's panic path without needing a real
// boolean-typed aggregate function.
type fixedAggBool struct {
	kind expr.AggKind
}

func (f fixedAggBool) SqlType() sqltype.Bool       { return sqltype.Bool{} }
func (f fixedAggBool) SQLTypeName() string         { return "bool" }
func (f fixedAggBool) AggKind() expr.AggKind       { return f.kind }
func (f fixedAggBool) Tables() []*schema.Table     { return nil }
func (f fixedAggBool) WalkAST(pass *serialize.AstPass) error {
	pass.PushSQL("TRUE")
	return nil
}

func TestAggKindMonoidPanicsOnMismatch(t *testing.T) {
	assert.Panics(t, func() {
		_ = expr.And(fixedAggBool{kind: expr.AggYes}, fixedAggBool{kind: expr.AggNo}).AggKind()
	})
}

func TestTablesUnionsAcrossOperands(t *testing.T) {
	posts := schema.NewTable("posts", "id")
	authorID := schema.NewColumn[sqltype.Integer](posts, "author_id")

	e := expr.Eq(expr.Col(idCol), expr.Col(authorID))
	tabs := e.Tables()
	assert.Len(t, tabs, 2)
}

func TestIsNullRendersUnaryPostfix(t *testing.T) {
	e := expr.IsNull(expr.Col(nameCol))
	sql, _ := render(t, e)
	assert.Contains(t, sql, "IS NULL")
}

func TestTuple2CombinesAggKindAndTables(t *testing.T) {
	tup := expr.NewTuple2(expr.Col(idCol), expr.Col(nameCol))
	assert.Equal(t, expr.AggNo, tup.AggKind())
	assert.Len(t, tup.Tables(), 1)
}

func TestWindowFunctionRendersOverClause(t *testing.T) {
	agg := expr.NewAggregate[sqltype.BigInt]("row_number").
		PartitionBy(expr.Col(idCol)).
		WindowOrder(expr.Col(nameCol))
	sql, _ := render(t, agg)
	assert.Contains(t, sql, "OVER (PARTITION BY")
	assert.Contains(t, sql, "ORDER BY")
	assert.Equal(t, expr.AggNo, agg.AggKind())
}

func TestBareAggregateIsAggYes(t *testing.T) {
	agg := expr.NewAggregate[sqltype.BigInt]("count", expr.Col(idCol))
	assert.Equal(t, expr.AggYes, agg.AggKind())
}

func TestILikeRejectedWithoutDialectCapability(t *testing.T) {
	e := expr.ILike(expr.Col(nameCol), expr.Bind[sqltype.Text]("a%"))
	_, _, _, err := serialize.Walk(e, func(s string) (string, error) {
		return `"` + s + `"`, nil
	}, func(n int) string { return "$1" })
	assert.Error(t, err)
}

func TestILikeRendersWhenDialectCapabilityIsSet(t *testing.T) {
	e := expr.ILike(expr.Col(nameCol), expr.Bind[sqltype.Text]("a%"))
	pass := serialize.NewAstPass(func(s string) (string, error) {
		return `"` + s + `"`, nil
	}, func(n int) string { return "$1" }).WithCapabilities(serialize.Capabilities{ILike: true})

	require.NoError(t, e.WalkAST(pass))
	assert.Contains(t, pass.SQL(), "ILIKE")
}

func TestAggregateFilterRejectedWithoutDialectCapability(t *testing.T) {
	agg := expr.NewAggregate[sqltype.BigInt]("count", expr.Col(idCol)).
		AggregateFilter(expr.Eq(expr.Col(idCol), expr.Bind[sqltype.Integer](1)))
	_, _, _, err := serialize.Walk(agg, func(s string) (string, error) {
		return `"` + s + `"`, nil
	}, func(n int) string { return "$1" })
	assert.Error(t, err)
}
