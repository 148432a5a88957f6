package dialect

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Serajian/go-query-builder/serialize"
)

// mysqlNoLimitSentinel is the ceiling MySQL requires in LIMIT position when
// only OFFSET was requested (`LIMIT offset, 18446744073709551615`), since
// MySQL has no OFFSET-without-LIMIT syntax.
const mysqlNoLimitSentinel = "18446744073709551615"

// MySQL is the MySQL/MariaDB dialect: backtick-quoted identifiers, bare `?`
// placeholders, tinyint(1) booleans, no RETURNING, no ILIKE, no aggregate
// FILTER, and ON DUPLICATE KEY UPDATE upserts.
type MySQL struct{}

func (MySQL) Name() string { return "mysql" }

func (MySQL) QuoteIdentifier(name string) (string, error) {
	if strings.ContainsRune(name, '`') {
		return "", fmt.Errorf("dialect: identifier %q contains a backtick", name)
	}
	return "`" + name + "`", nil
}

func (MySQL) Placeholder(int) string { return "?" }

func (MySQL) BoolLiteral(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func (MySQL) LimitOffset(limit, offset int64, hasLimit, hasOffset bool) string {
	var b strings.Builder
	switch {
	case hasLimit && hasOffset:
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.FormatInt(offset, 10))
		b.WriteString(", ")
		b.WriteString(strconv.FormatInt(limit, 10))
	case hasLimit:
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.FormatInt(limit, 10))
	case hasOffset:
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.FormatInt(offset, 10))
		b.WriteString(", ")
		b.WriteString(mysqlNoLimitSentinel)
	}
	return b.String()
}

func (MySQL) SupportsReturning() bool       { return false }
func (MySQL) SupportsILike() bool           { return false }
func (MySQL) SupportsAggregateFilter() bool { return false }
func (MySQL) UpsertForm() UpsertForm        { return UpsertOnDuplicateKey }
func (MySQL) DefaultValueKeyword() string   { return "DEFAULT" }
func (MySQL) SupportsMultiRowValues() bool  { return true }

func (d MySQL) NewPass() *serialize.AstPass {
	return serialize.NewAstPass(d.QuoteIdentifier, d.Placeholder).WithCapabilities(serialize.Capabilities{
		ILike:           d.SupportsILike(),
		AggregateFilter: d.SupportsAggregateFilter(),
	})
}
