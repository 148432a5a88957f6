package dialect

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Serajian/go-query-builder/serialize"
)

// SQLiteFeatures gates SQLite behavior that varies by server version. The
// zero value matches every SQLite ≥3.7.11 (released 2012), the common case:
// legacy only needs setting for a server old enough to predate multi-row
// VALUES.
type SQLiteFeatures struct {
	// Legacy marks a SQLite ≤3.7.10 connection, which has no multi-row
	// INSERT ... VALUES (...), (...) syntax. query.InsertStatement's
	// batch-insert path fans a multi-row Values() call out into one
	// INSERT statement per row instead of one multi-row VALUES when this
	// is set.
	Legacy bool
}

// SQLite is the SQLite dialect: double-quoted identifiers (accepting
// backtick/bracket forms on read but always emitting double quotes), `?`
// placeholders, integer 0/1 booleans, RETURNING (≥3.35), no ILIKE (LIKE is
// already case-insensitive for ASCII), and ON CONFLICT upserts shared with
// PostgreSQL's syntax family.
type SQLite struct {
	Features SQLiteFeatures
}

func (SQLite) Name() string { return "sqlite" }

func (SQLite) QuoteIdentifier(name string) (string, error) {
	if strings.ContainsRune(name, '"') {
		return "", fmt.Errorf("dialect: identifier %q contains a double quote", name)
	}
	return `"` + name + `"`, nil
}

func (SQLite) Placeholder(int) string { return "?" }

func (SQLite) BoolLiteral(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func (SQLite) LimitOffset(limit, offset int64, hasLimit, hasOffset bool) string {
	var b strings.Builder
	switch {
	case hasLimit:
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.FormatInt(limit, 10))
		if hasOffset {
			b.WriteString(" OFFSET ")
			b.WriteString(strconv.FormatInt(offset, 10))
		}
	case hasOffset:
		// SQLite requires a LIMIT clause before OFFSET; -1 means unbounded.
		b.WriteString(" LIMIT -1 OFFSET ")
		b.WriteString(strconv.FormatInt(offset, 10))
	}
	return b.String()
}

func (SQLite) SupportsReturning() bool       { return true }
func (SQLite) SupportsILike() bool           { return false }
func (SQLite) SupportsAggregateFilter() bool { return true }
func (SQLite) UpsertForm() UpsertForm        { return UpsertOnConflict }
func (SQLite) DefaultValueKeyword() string   { return "DEFAULT" }

// SupportsMultiRowValues reports whether this SQLite accepts a single
// INSERT ... VALUES (...), (...), ... for a batch insert. False only for a
// Features.Legacy-marked pre-3.7.11 server, which query.InsertStatement
// handles by fanning the batch out into one statement per row.
func (d SQLite) SupportsMultiRowValues() bool { return !d.Features.Legacy }

func (d SQLite) NewPass() *serialize.AstPass {
	return serialize.NewAstPass(d.QuoteIdentifier, d.Placeholder).WithCapabilities(serialize.Capabilities{
		ILike:           d.SupportsILike(),
		AggregateFilter: d.SupportsAggregateFilter(),
	})
}
