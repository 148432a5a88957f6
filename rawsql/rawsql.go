// Package rawsql is the escape hatch for queries the typed query package
// cannot express: a tiny, chainable string builder in the same spirit as
// the core's SelectStatement/InsertStatement/UpdateStatement/
// DeleteStatement, but operating on bare column/table name strings instead
// of schema.Column[ST] values. Its output is meant to be run through
// conn.Statement and decoded with scan.LoadByName for ad hoc, dynamically
// shaped result sets.
//
// Unlike a hardcoded placeholder style, Builder renders against a
// dialect.Dialect passed to Build, so the same chain produces "$1"-style or
// "?"-style SQL depending on the target backend.
package rawsql

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/Serajian/go-query-builder/dialect"
)

// QueryType is the kind of statement a Builder renders.
type QueryType int

const (
	SELECT QueryType = iota
	INSERT
	UPDATE
	DELETE
)

// Operator enumerates supported WHERE/HAVING comparison operators.
type Operator string

const (
	EQ      Operator = "="
	NEQ     Operator = "!="
	GT      Operator = ">"
	GTE     Operator = ">="
	LT      Operator = "<"
	LTE     Operator = "<="
	IN      Operator = "IN"
	NIN     Operator = "NOT IN"
	NULL    Operator = "IS NULL"
	NOTNULL Operator = "IS NOT NULL"
	LIKE    Operator = "LIKE"
	NOTLIKE Operator = "NOT LIKE"
)

// JoinType declares supported SQL JOIN types.
type JoinType string

const (
	InnerJoin JoinType = "INNER JOIN"
	LeftJoin  JoinType = "LEFT JOIN"
	RightJoin JoinType = "RIGHT JOIN"
	FullJoin  JoinType = "FULL OUTER JOIN"
)

// Condition is a single boolean predicate; Logic says how it combines with
// the previous condition ("AND"/"OR").
type Condition struct {
	Column string
	Op     Operator
	Value  interface{}
	Logic  string
}

// Join is a JOIN clause: "Type Table ON Condition".
type Join struct {
	Type      JoinType
	Table     string
	Condition string
}

// OrderTerm configures one ORDER BY column and direction.
type OrderTerm struct {
	Column string
	Desc   bool
}

// RawExpr is inlined verbatim instead of bound as a placeholder — used for
// upsert assignments like Excluded("name") or Values("name").
type RawExpr string

// Excluded renders EXCLUDED.col, the PostgreSQL/SQLite upsert reference to
// the row that would have been inserted.
func Excluded(col string) RawExpr { return RawExpr("EXCLUDED." + col) }

// Values renders VALUES(col), the MySQL ON DUPLICATE KEY UPDATE upsert
// reference to the row that would have been inserted.
func Values(col string) RawExpr { return RawExpr("VALUES(" + col + ")") }

// Builder is a tiny, chainable SQL string builder rendering against a
// dialect.Dialect. It supports SELECT/INSERT/UPDATE/DELETE, WHERE/IN,
// JOINs, GROUP BY/HAVING, ORDER BY, LIMIT/OFFSET, RETURNING, and upserts.
type Builder struct {
	queryType        QueryType
	table            string
	columns          []string
	conditions       []Condition
	joins            []Join
	groupBy          []string
	having           []Condition
	orderBy          []OrderTerm
	limit            int
	offset           int
	insertRows       []map[string]interface{}
	updateData       map[string]interface{}
	returning        []string
	guardWrites      bool
	conflictColumns  []string
	conflictConstr   string
	conflictNothing  bool
	conflictUpdate   map[string]interface{}
}

// New starts a fresh Builder with write-guarding enabled: an UPDATE/DELETE
// with no WHERE renders "WHERE 1=0" instead of touching every row. Call
// Unsafe() to disable this for one query.
func New() *Builder {
	return &Builder{guardWrites: true}
}

// Unsafe disables the WHERE 1=0 write guard for this statement.
func (b *Builder) Unsafe() *Builder {
	b.guardWrites = false
	return b
}

func (b *Builder) Select(columns ...string) *Builder {
	b.queryType = SELECT
	if len(columns) == 0 {
		b.columns = []string{"*"}
	} else {
		b.columns = columns
	}
	return b
}

func (b *Builder) From(table string) *Builder {
	b.table = table
	return b
}

func (b *Builder) InsertInto(table string) *Builder {
	b.queryType = INSERT
	b.table = table
	return b
}

// Row adds one row of column->value assignments to an INSERT. Every row
// added to the same Builder must assign the same column set.
func (b *Builder) Row(data map[string]interface{}) *Builder {
	b.insertRows = append(b.insertRows, data)
	return b
}

func (b *Builder) Update(table string) *Builder {
	b.queryType = UPDATE
	b.table = table
	return b
}

func (b *Builder) Set(column string, value interface{}) *Builder {
	if b.updateData == nil {
		b.updateData = make(map[string]interface{})
	}
	b.updateData[column] = value
	return b
}

func (b *Builder) DeleteFrom(table string) *Builder {
	b.queryType = DELETE
	b.table = table
	return b
}

func (b *Builder) Returning(columns ...string) *Builder {
	b.returning = columns
	return b
}

func (b *Builder) Where(column string, op Operator, value interface{}) *Builder {
	b.conditions = append(b.conditions, Condition{Column: column, Op: op, Value: value, Logic: "AND"})
	return b
}

func (b *Builder) OrWhere(column string, op Operator, value interface{}) *Builder {
	b.conditions = append(b.conditions, Condition{Column: column, Op: op, Value: value, Logic: "OR"})
	return b
}

func (b *Builder) WhereIn(column string, value interface{}) *Builder    { return b.Where(column, IN, value) }
func (b *Builder) WhereNotIn(column string, value interface{}) *Builder { return b.Where(column, NIN, value) }
func (b *Builder) WhereLike(column, pattern string) *Builder            { return b.Where(column, LIKE, pattern) }
func (b *Builder) WhereNotLike(column, pattern string) *Builder         { return b.Where(column, NOTLIKE, pattern) }
func (b *Builder) WhereNull(column string) *Builder                     { return b.Where(column, NULL, nil) }
func (b *Builder) WhereNotNull(column string) *Builder                  { return b.Where(column, NOTNULL, nil) }

func (b *Builder) Join(table, condition string) *Builder {
	b.joins = append(b.joins, Join{Type: InnerJoin, Table: table, Condition: condition})
	return b
}

func (b *Builder) LeftJoin(table, condition string) *Builder {
	b.joins = append(b.joins, Join{Type: LeftJoin, Table: table, Condition: condition})
	return b
}

func (b *Builder) RightJoin(table, condition string) *Builder {
	b.joins = append(b.joins, Join{Type: RightJoin, Table: table, Condition: condition})
	return b
}

func (b *Builder) GroupBy(columns ...string) *Builder {
	b.groupBy = append(b.groupBy, columns...)
	return b
}

func (b *Builder) Having(column string, op Operator, value interface{}) *Builder {
	b.having = append(b.having, Condition{Column: column, Op: op, Value: value, Logic: "AND"})
	return b
}

func (b *Builder) OrderBy(column string) *Builder {
	b.orderBy = append(b.orderBy, OrderTerm{Column: column})
	return b
}

func (b *Builder) OrderByDesc(column string) *Builder {
	b.orderBy = append(b.orderBy, OrderTerm{Column: column, Desc: true})
	return b
}

func (b *Builder) Limit(n int) *Builder  { b.limit = n; return b }
func (b *Builder) Offset(n int) *Builder { b.offset = n; return b }

func (b *Builder) Paginate(page, perPage int) *Builder {
	return b.Limit(perPage).Offset((page - 1) * perPage)
}

func (b *Builder) OnConflict(columns ...string) *Builder {
	b.conflictColumns = columns
	b.conflictConstr = ""
	return b
}

func (b *Builder) OnConflictConstraint(name string) *Builder {
	b.conflictConstr = name
	b.conflictColumns = nil
	return b
}

func (b *Builder) OnConflictDoNothing() *Builder {
	b.conflictNothing = true
	return b
}

func (b *Builder) OnConflictSet(column string, value interface{}) *Builder {
	if b.conflictUpdate == nil {
		b.conflictUpdate = make(map[string]interface{})
	}
	b.conflictNothing = false
	b.conflictUpdate[column] = value
	return b
}

// Build renders the statement for d, returning its SQL text and bound
// parameters in placeholder order.
func (b *Builder) Build(d dialect.Dialect) (string, []interface{}, error) {
	switch b.queryType {
	case SELECT:
		return b.buildSelect(d)
	case INSERT:
		return b.buildInsert(d)
	case UPDATE:
		return b.buildUpdate(d)
	case DELETE:
		return b.buildDelete(d)
	default:
		return "", nil, fmt.Errorf("rawsql: unknown query type %d", b.queryType)
	}
}

func sliceToInterfaces(v interface{}) ([]interface{}, bool) {
	val := reflect.ValueOf(v)
	k := val.Kind()
	if k != reflect.Slice && k != reflect.Array {
		return nil, false
	}
	if val.Type().Elem().Kind() == reflect.Uint8 {
		return []interface{}{v}, true
	}
	out := make([]interface{}, val.Len())
	for i := 0; i < val.Len(); i++ {
		out[i] = val.Index(i).Interface()
	}
	return out, true
}

type paramCounter struct {
	d      dialect.Dialect
	n      int
	params []interface{}
}

func (p *paramCounter) bind(v interface{}) string {
	p.n++
	p.params = append(p.params, v)
	return p.d.Placeholder(p.n)
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
