// Package dialect isolates the SQL-text differences between backends
// (identifier quoting, placeholder style, LIMIT/OFFSET idiom, upsert form,
// boolean literal, RETURNING/FILTER support) behind one interface, so the
// query and serialize packages stay backend-agnostic. This generalizes the
// const.go PlaceholderStyle enum's job across a much larger surface: every
// textual fork a backend needs is a Dialect method instead of a one-off
// flag.
package dialect

import "github.com/Serajian/go-query-builder/serialize"

// UpsertForm names which ON CONFLICT/ON DUPLICATE KEY syntax a backend uses.
type UpsertForm int

const (
	// UpsertOnConflict is PostgreSQL/SQLite's
	// INSERT ... ON CONFLICT (cols) DO UPDATE/DO NOTHING.
	UpsertOnConflict UpsertForm = iota
	// UpsertOnDuplicateKey is MySQL's
	// INSERT ... ON DUPLICATE KEY UPDATE, keyed by unique index, not by
	// an explicit conflict target column list.
	UpsertOnDuplicateKey
)

// Dialect is implemented once per backend. Every method is a pure function
// of the backend's SQL dialect, never of a live connection.
type Dialect interface {
	// Name identifies the dialect for diagnostics and QueryId composition.
	Name() string

	// QuoteIdentifier renders name as a backend-quoted identifier, and is
	// installed as the serialize.IdentifierQuoter for every AstPass this
	// dialect starts.
	QuoteIdentifier(name string) (string, error)

	// Placeholder renders the nth (1-based) bind placeholder.
	Placeholder(n int) string

	// BoolLiteral renders a boolean literal (some backends have no native
	// BOOLEAN type and use 0/1 or 'TRUE'/'FALSE').
	BoolLiteral(v bool) string

	// LimitOffset renders the LIMIT/OFFSET tail. hasLimit/hasOffset let a
	// backend render just one, both, or (as MySQL requires when offset is
	// set without a limit) synthesize LIMIT using a sentinel ceiling.
	LimitOffset(limit, offset int64, hasLimit, hasOffset bool) string

	// SupportsReturning reports whether RETURNING is usable on INSERT/
	// UPDATE/DELETE.
	SupportsReturning() bool

	// SupportsILike reports whether ILIKE/SIMILAR TO are legal (PostgreSQL
	// only); NewPass copies it into the AstPass capabilities that
	// expr.LikeOp.WalkAST checks, instead of hard-coding a per-backend list.
	SupportsILike() bool

	// SupportsAggregateFilter reports whether FILTER (WHERE ...) is legal
	// on an aggregate/window call.
	SupportsAggregateFilter() bool

	// UpsertForm reports which ON CONFLICT syntax family this backend uses.
	UpsertForm() UpsertForm

	// SupportsMultiRowValues reports whether a batch insert can render as
	// one INSERT ... VALUES (...), (...), .... False only for a legacy
	// SQLite predating 3.7.11, which query.InsertStatement.ToSQLStatements
	// fans out into one INSERT per row instead.
	SupportsMultiRowValues() bool

	// DefaultValueKeyword renders the keyword used in an INSERT value
	// position to mean "use the column's default" (DEFAULT everywhere the
	// core targets).
	DefaultValueKeyword() string

	// NewPass starts a fresh AstPass wired to this dialect's quoting and
	// placeholder rules.
	NewPass() *serialize.AstPass
}
