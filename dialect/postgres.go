package dialect

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Serajian/go-query-builder/serialize"
)

// Postgres is the PostgreSQL dialect: double-quoted identifiers, $N
// placeholders, native BOOLEAN, full RETURNING/ILIKE/FILTER support, and
// ON CONFLICT upserts.
type Postgres struct{}

func (Postgres) Name() string { return "postgres" }

func (Postgres) QuoteIdentifier(name string) (string, error) {
	if strings.ContainsRune(name, '"') {
		return "", fmt.Errorf("dialect: identifier %q contains a double quote", name)
	}
	return `"` + name + `"`, nil
}

func (Postgres) Placeholder(n int) string { return "$" + strconv.Itoa(n) }

func (Postgres) BoolLiteral(v bool) string {
	if v {
		return "TRUE"
	}
	return "FALSE"
}

func (Postgres) LimitOffset(limit, offset int64, hasLimit, hasOffset bool) string {
	var b strings.Builder
	if hasLimit {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.FormatInt(limit, 10))
	}
	if hasOffset {
		b.WriteString(" OFFSET ")
		b.WriteString(strconv.FormatInt(offset, 10))
	}
	return b.String()
}

func (Postgres) SupportsReturning() bool       { return true }
func (Postgres) SupportsILike() bool           { return true }
func (Postgres) SupportsAggregateFilter() bool { return true }
func (Postgres) UpsertForm() UpsertForm        { return UpsertOnConflict }
func (Postgres) DefaultValueKeyword() string   { return "DEFAULT" }
func (Postgres) SupportsMultiRowValues() bool  { return true }

func (d Postgres) NewPass() *serialize.AstPass {
	return serialize.NewAstPass(d.QuoteIdentifier, d.Placeholder).WithCapabilities(serialize.Capabilities{
		ILike:           d.SupportsILike(),
		AggregateFilter: d.SupportsAggregateFilter(),
	})
}
