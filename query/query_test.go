package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Serajian/go-query-builder/dialect"
	"github.com/Serajian/go-query-builder/expr"
	"github.com/Serajian/go-query-builder/query"
	"github.com/Serajian/go-query-builder/schema"
	"github.com/Serajian/go-query-builder/serialize"
	"github.com/Serajian/go-query-builder/sqltype"
)

var (
	users   = schema.NewTable("users", "id")
	usersID = schema.NewColumn[sqltype.Integer](users, "id")
	usersNm = schema.NewColumn[sqltype.Text](users, "name")

	posts         = schema.NewTable("posts", "id")
	postsID       = schema.NewColumn[sqltype.Integer](posts, "id")
	postsAuthorID = schema.NewColumn[sqltype.Integer](posts, "author_id")
)

func init() {
	schema.Joinable(posts, users, "author_id", "id")
}

func TestSelectRendersCoreClauses(t *testing.T) {
	stmt := query.From(users, expr.Col(usersNm)).
		Filter(expr.Eq(expr.Col(usersID), expr.Bind[sqltype.Integer](1))).
		Order(query.Desc(expr.Col(usersNm))).
		Limit(10).
		Offset(5)

	sql, binds, cacheable, err := stmt.ToSQL(dialect.Postgres{})
	require.NoError(t, err)
	assert.Contains(t, sql, `SELECT "users"."name" FROM "users"`)
	assert.Contains(t, sql, "WHERE")
	assert.Contains(t, sql, "ORDER BY")
	assert.Contains(t, sql, "LIMIT 10 OFFSET 5")
	assert.True(t, cacheable)
	require.Len(t, binds, 1)
}

func TestSelectRejectsAggregateInWhere(t *testing.T) {
	// Filter calls expr.RequireNonAggregate, which rejects any predicate
	// reporting AggKind()==AggYes — exercised here with a stand-in since a
	// real boolean-typed aggregate call is rare in practice (count(*) etc.
	// are never themselves Bool-typed).
	stmt := query.From(users, expr.Col(usersNm)).Filter(forcedAgg{})
	require.Error(t, stmt.Err())
}

type forcedAgg struct{}

func (forcedAgg) SqlType() sqltype.Bool   { return sqltype.Bool{} }
func (forcedAgg) SQLTypeName() string     { return "bool" }
func (forcedAgg) AggKind() expr.AggKind   { return expr.AggYes }
func (forcedAgg) Tables() []*schema.Table { return nil }
func (forcedAgg) WalkAST(pass *serialize.AstPass) error {
	pass.PushSQL("TRUE")
	return nil
}

func TestJoinRequiresDeclaredPath(t *testing.T) {
	orphan := schema.NewTable("orphan", "id")
	stmt := query.From(users, expr.Col(usersNm)).
		InnerJoin(orphan, expr.Eq(expr.Col(usersID), expr.Col(usersID)))
	require.Error(t, stmt.Err())
}

func TestJoinAlongDeclaredPathSucceeds(t *testing.T) {
	stmt := query.From(posts, expr.Col(postsID)).
		InnerJoin(users, expr.Eq(expr.Col(postsAuthorID), expr.Col(usersID)))
	require.NoError(t, stmt.Err())
	sql, _, _, err := stmt.ToSQL(dialect.Postgres{})
	require.NoError(t, err)
	assert.Contains(t, sql, "INNER JOIN")
}

func TestGroupByRejectsUngroupedNonAggregateColumn(t *testing.T) {
	stmt := query.From(users, expr.Col(usersNm)).GroupBy(nil)
	require.Error(t, stmt.Err())
}

func TestGroupByAllowsColumnFunctionallyDependentOnGroupedPrimaryKey(t *testing.T) {
	stmt := query.From(users, expr.Col(usersNm)).
		GroupBy([]string{"id"}, expr.Col(usersID))
	require.NoError(t, stmt.Err())
}

func TestGroupByAllowsAggregatedColumn(t *testing.T) {
	agg := expr.NewAggregate[sqltype.BigInt]("count", expr.Col(usersID))
	stmt := query.From(users, agg).
		GroupBy(nil)
	require.NoError(t, stmt.Err())
}

func TestInsertBatchRequiresMatchingColumns(t *testing.T) {
	stmt := query.InsertInto(users).
		Values(query.AssignmentRow{query.Set(usersNm, expr.Bind[sqltype.Text]("a"))}).
		Values(query.AssignmentRow{
			query.Set(usersNm, expr.Bind[sqltype.Text]("b")),
			query.Set(usersID, expr.Bind[sqltype.Integer](2)),
		})
	require.Error(t, stmt.Err())
}

func TestInsertRendersMultiRowValues(t *testing.T) {
	stmt := query.InsertInto(users).
		Values(query.AssignmentRow{query.Set(usersNm, expr.Bind[sqltype.Text]("a"))}).
		Values(query.AssignmentRow{query.Set(usersNm, expr.Bind[sqltype.Text]("b"))}).
		Returning("id")

	sql, binds, _, err := stmt.ToSQL(dialect.Postgres{})
	require.NoError(t, err)
	assert.Contains(t, sql, `INSERT INTO "users" ("name") VALUES ($1), ($2)`)
	assert.Contains(t, sql, "RETURNING")
	assert.Len(t, binds, 2)
}

func TestInsertToSQLStatementsFansOutForLegacySQLite(t *testing.T) {
	stmt := query.InsertInto(users).
		Values(query.AssignmentRow{query.Set(usersNm, expr.Bind[sqltype.Text]("a"))}).
		Values(query.AssignmentRow{query.Set(usersNm, expr.Bind[sqltype.Text]("b"))}).
		Values(query.AssignmentRow{query.Set(usersNm, expr.Bind[sqltype.Text]("c"))})

	stmts, binds, _, err := stmt.ToSQLStatements(dialect.SQLite{Features: dialect.SQLiteFeatures{Legacy: true}})
	require.NoError(t, err)
	require.Len(t, stmts, 3)
	require.Len(t, binds, 3)
	for _, sql := range stmts {
		assert.Contains(t, sql, `INSERT INTO "users" ("name") VALUES (?)`)
		assert.NotContains(t, sql, "), (")
	}
}

func TestInsertToSQLStatementsIsSingleStatementWhenMultiRowValuesIsSupported(t *testing.T) {
	stmt := query.InsertInto(users).
		Values(query.AssignmentRow{query.Set(usersNm, expr.Bind[sqltype.Text]("a"))}).
		Values(query.AssignmentRow{query.Set(usersNm, expr.Bind[sqltype.Text]("b"))})

	for _, d := range []dialect.Dialect{dialect.Postgres{}, dialect.MySQL{}, dialect.SQLite{}} {
		stmts, binds, _, err := stmt.ToSQLStatements(d)
		require.NoError(t, err)
		require.Len(t, stmts, 1)
		require.Len(t, binds, 1)

		wantSQL, wantBinds, _, err := stmt.ToSQL(d)
		require.NoError(t, err)
		assert.Equal(t, wantSQL, stmts[0])
		assert.Equal(t, wantBinds, binds[0])
	}
}

func TestInsertOnConflictDoNothing(t *testing.T) {
	stmt := query.InsertInto(users).
		Values(query.AssignmentRow{query.Set(usersNm, expr.Bind[sqltype.Text]("a"))}).
		OnConflictColumns("name").
		DoNothing()

	sql, _, _, err := stmt.ToSQL(dialect.Postgres{})
	require.NoError(t, err)
	assert.Contains(t, sql, "ON CONFLICT (\"name\") DO NOTHING")
}

func TestInsertOnConflictDoUpdateUsesExcluded(t *testing.T) {
	stmt := query.InsertInto(users).
		Values(query.AssignmentRow{query.Set(usersNm, expr.Bind[sqltype.Text]("a"))}).
		OnConflictColumns("name").
		DoUpdate(query.Set(usersNm, query.Excluded(usersNm)))

	sql, _, _, err := stmt.ToSQL(dialect.Postgres{})
	require.NoError(t, err)
	assert.Contains(t, sql, "DO UPDATE SET")
	assert.Contains(t, sql, "EXCLUDED")
}

func TestInsertOnDuplicateKeyUpdateForMySQL(t *testing.T) {
	stmt := query.InsertInto(users).
		Values(query.AssignmentRow{query.Set(usersNm, expr.Bind[sqltype.Text]("a"))}).
		OnConflictColumns("name").
		DoUpdate(query.Set(usersNm, query.ValuesRef(usersNm)))

	sql, _, _, err := stmt.ToSQL(dialect.MySQL{})
	require.NoError(t, err)
	assert.Contains(t, sql, "ON DUPLICATE KEY UPDATE")
	assert.Contains(t, sql, "VALUES(`name`)")
	assert.NotContains(t, sql, "ON CONFLICT")
}

func TestUpdateRequiresSetAssignments(t *testing.T) {
	stmt := query.Update(users)
	_, _, _, err := stmt.ToSQL(dialect.Postgres{})
	assert.Error(t, err)
}

func TestUpdateRendersSetAndWhere(t *testing.T) {
	stmt := query.Update(users).
		Set(query.AssignmentRow{query.Set(usersNm, expr.Bind[sqltype.Text]("x"))}).
		Filter(expr.Eq(expr.Col(usersID), expr.Bind[sqltype.Integer](1)))

	sql, binds, _, err := stmt.ToSQL(dialect.Postgres{})
	require.NoError(t, err)
	assert.Contains(t, sql, `UPDATE "users" SET "name" = $1 WHERE`)
	assert.Len(t, binds, 2)
}

func TestDeleteRendersWhere(t *testing.T) {
	stmt := query.DeleteFrom(users).
		Filter(expr.Eq(expr.Col(usersID), expr.Bind[sqltype.Integer](9)))

	sql, binds, _, err := stmt.ToSQL(dialect.Postgres{})
	require.NoError(t, err)
	assert.Equal(t, `DELETE FROM "users" WHERE ("users"."id" = $1)`, sql)
	assert.Len(t, binds, 1)
}

func TestBoxedSelectIsNeverCacheable(t *testing.T) {
	boxed := query.From(users, expr.Col(usersNm)).
		Filter(expr.Eq(expr.Col(usersID), expr.Bind[sqltype.Integer](1))).
		IntoBoxed()

	_, _, cacheable, err := boxed.ToSQL(dialect.Postgres{})
	require.NoError(t, err)
	assert.False(t, cacheable)
}
