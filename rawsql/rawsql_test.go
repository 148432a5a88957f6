package rawsql

import (
	"reflect"
	"strings"
	"testing"

	"github.com/Serajian/go-query-builder/dialect"
)

func TestSelectBasic(t *testing.T) {
	sql, args, err := New().
		Select("id", "name").
		From("users").
		Where("age", GTE, 18).
		OrderBy("created_at").
		Limit(10).
		Build(dialect.Postgres{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `SELECT id, name FROM users WHERE age >= $1 ORDER BY created_at ASC LIMIT 10`
	if sql != want {
		t.Fatalf("sql mismatch:\n got: %s\nwant: %s", sql, want)
	}
	wantArgs := []interface{}{18}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Fatalf("args mismatch:\n got: %#v\nwant: %#v", args, wantArgs)
	}
}

func TestSelectWhereInEmptyIsAlwaysFalse(t *testing.T) {
	sql, _, err := New().
		Select("id").
		From("users").
		WhereIn("status", []string{}).
		Build(dialect.MySQL{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(sql, "(1=0)") {
		t.Fatalf("expected (1=0) for empty IN, got: %s", sql)
	}
}

func TestSelectPlaceholderStyleFollowsDialect(t *testing.T) {
	sqlPg, _, _ := New().Select("id").From("users").Where("id", EQ, 1).Build(dialect.Postgres{})
	sqlMy, _, _ := New().Select("id").From("users").Where("id", EQ, 1).Build(dialect.MySQL{})

	if !strings.Contains(sqlPg, "$1") {
		t.Fatalf("postgres should use $1 placeholder, got: %s", sqlPg)
	}
	if !strings.Contains(sqlMy, "?") {
		t.Fatalf("mysql should use ? placeholder, got: %s", sqlMy)
	}
}

func TestUpdateWithoutWhereGuardsByDefault(t *testing.T) {
	sql, _, err := New().Update("users").Set("name", "bob").Build(dialect.Postgres{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(sql, "WHERE 1=0") {
		t.Fatalf("expected WHERE 1=0 guard, got: %s", sql)
	}
}

func TestUpdateUnsafeDisablesGuard(t *testing.T) {
	sql, _, err := New().Unsafe().Update("users").Set("name", "bob").Build(dialect.Postgres{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(sql, "1=0") {
		t.Fatalf("Unsafe() should suppress the guard, got: %s", sql)
	}
}

func TestInsertRequiresMatchingRowColumns(t *testing.T) {
	_, _, err := New().
		InsertInto("users").
		Row(map[string]interface{}{"id": 1, "name": "a"}).
		Row(map[string]interface{}{"id": 2}).
		Build(dialect.Postgres{})
	if err == nil {
		t.Fatalf("expected error for mismatched row columns")
	}
}

func TestInsertOnConflictDoUpdateUsesExcluded(t *testing.T) {
	sql, _, err := New().
		InsertInto("users").
		Row(map[string]interface{}{"id": 1, "name": "a"}).
		OnConflict("id").
		OnConflictSet("name", Excluded("name")).
		Build(dialect.Postgres{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `INSERT INTO users (id, name) VALUES ($1, $2) ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`
	if sql != want {
		t.Fatalf("sql mismatch:\n got: %s\nwant: %s", sql, want)
	}
}

func TestInsertOnDuplicateKeyUpdateForMySQL(t *testing.T) {
	sql, _, err := New().
		InsertInto("users").
		Row(map[string]interface{}{"id": 1, "name": "a"}).
		OnConflict("id").
		OnConflictSet("name", Values("name")).
		Build(dialect.MySQL{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "INSERT INTO users (id, name) VALUES (?, ?) ON DUPLICATE KEY UPDATE name = VALUES(name)"
	if sql != want {
		t.Fatalf("sql mismatch:\n got: %s\nwant: %s", sql, want)
	}
}

func TestDeleteRendersReturningOnlyWhenSupported(t *testing.T) {
	sqlPg, _, _ := New().Unsafe().DeleteFrom("users").Returning("id").Build(dialect.Postgres{})
	if !strings.Contains(sqlPg, "RETURNING id") {
		t.Fatalf("postgres should render RETURNING, got: %s", sqlPg)
	}

	sqlMy, _, _ := New().Unsafe().DeleteFrom("users").Returning("id").Build(dialect.MySQL{})
	if strings.Contains(sqlMy, "RETURNING") {
		t.Fatalf("mysql does not support RETURNING, got: %s", sqlMy)
	}
}

func TestJoinRendersClause(t *testing.T) {
	sql, _, _ := New().
		Select("users.id", "posts.title").
		From("users").
		LeftJoin("posts", "posts.author_id = users.id").
		Build(dialect.Postgres{})
	if !strings.Contains(sql, "LEFT JOIN posts ON posts.author_id = users.id") {
		t.Fatalf("expected LEFT JOIN clause, got: %s", sql)
	}
}
