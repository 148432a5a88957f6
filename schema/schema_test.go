package schema_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Serajian/go-query-builder/schema"
	"github.com/Serajian/go-query-builder/sqltype"
)

func TestColumnCarriesTableAndSQLType(t *testing.T) {
	users := schema.NewTable("users", "id")
	id := schema.NewColumn[sqltype.Integer](users, "id")
	name := schema.NewColumn[sqltype.Text](users, "name")

	require.Equal(t, users, id.Table())
	require.Equal(t, "id", id.Name())
	require.Equal(t, "name", name.Name())
	require.IsType(t, sqltype.Integer{}, id.SqlType())
}

func TestSQLNameOverrideForKeywordCollision(t *testing.T) {
	orders := schema.NewTable("orders", "id")
	typeCol := schema.NewColumnWithSQLName[sqltype.Text](orders, "Type_", "type")

	require.Equal(t, "type", typeCol.Name())
}

func TestJoinableRegistersOnClause(t *testing.T) {
	users := schema.NewTable("users", "id")
	posts := schema.NewTable("posts", "id")
	schema.Joinable(posts, users, "user_id", "id")

	jt, ok := schema.JoinTargetFor(posts, users)
	require.True(t, ok)
	require.Equal(t, "user_id", jt.ChildColumn)
	require.Equal(t, "id", jt.ParentColumn)

	_, ok = schema.JoinTargetFor(users, posts)
	require.False(t, ok, "joinable is declared child->parent, not symmetric")
}

func TestAllowTablesToAppearInSameQuery(t *testing.T) {
	a := schema.NewTable("a_table", "id")
	b := schema.NewTable("b_table", "id")
	c := schema.NewTable("c_table", "id")

	require.False(t, schema.CanAppearTogether(a, b))
	schema.AllowTablesToAppearInSameQuery(a, b)
	require.True(t, schema.CanAppearTogether(a, b))
	require.False(t, schema.CanAppearTogether(a, c), "unrelated tables stay forbidden")
}

func TestJoinableImpliesCanAppearTogether(t *testing.T) {
	users := schema.NewTable("users2", "id")
	posts := schema.NewTable("posts2", "id")
	schema.Joinable(posts, users, "user_id", "id")

	require.True(t, schema.CanAppearTogether(posts, users))
}
