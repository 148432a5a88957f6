// Package serialize implements the QueryFragment walk: every query-tree and
// expression node in querykit emits SQL text and collects bound parameters
// through an AstPass.
package serialize

import "strings"

// QueryFragment is any value that can be walked to emit SQL text and
// collect binds for a backend. It is the single interface every query-tree
// node, expression node, and clause fragment in querykit implements.
type QueryFragment interface {
	WalkAST(pass *AstPass) error
}

// BindParam is one collected bound parameter: its SQL type name (used by
// the backend to pick wire encoding) and its Go value.
type BindParam struct {
	SQLType string
	Value   any
}

// IdentifierQuoter renders name as a backend-quoted identifier, rejecting
// names that contain the quote character.
type IdentifierQuoter func(name string) (string, error)

// PlaceholderFunc renders the nth (1-based) bind placeholder for a backend
// ("$1".."$N" for PostgreSQL, "?" for MySQL/SQLite).
type PlaceholderFunc func(n int) string

// Capabilities are the backend-specific syntax gates a dialect sets on the
// AstPass it starts, so expr nodes that render dialect-restricted syntax
// (ILIKE/SIMILAR TO, FILTER (WHERE ...)) check one flag at WalkAST time
// instead of every caller guessing what the target backend accepts. The
// zero value rejects every such feature, matching a plain NewAstPass call
// that was never told which dialect it serializes for.
type Capabilities struct {
	ILike           bool
	AggregateFilter bool
}

// AstPass is the walk interface passed to every QueryFragment.WalkAST call.
// Its five operations are push_sql, push_identifier, push_bind_param,
// unsafe_to_cache_prepared, and reborrow.
type AstPass struct {
	sql         *strings.Builder
	binds       *[]BindParam
	quote       IdentifierQuoter
	placeholder PlaceholderFunc
	nextParam   *int
	cacheable   *bool
	caps        Capabilities
}

// NewAstPass starts a fresh walk for one backend, identified by its
// identifier-quoting and placeholder-rendering rules. Capabilities start at
// the zero value (every dialect-restricted feature rejected); a dialect's
// NewPass wires in the real flags via WithCapabilities.
func NewAstPass(quote IdentifierQuoter, placeholder PlaceholderFunc) *AstPass {
	sql := &strings.Builder{}
	binds := &[]BindParam{}
	n := 0
	cacheable := true
	return &AstPass{sql: sql, binds: binds, quote: quote, placeholder: placeholder, nextParam: &n, cacheable: &cacheable}
}

// WithCapabilities sets the dialect capability flags this pass (and every
// pass reborrowed from it) reports, and returns the receiver for chaining
// onto NewAstPass.
func (p *AstPass) WithCapabilities(c Capabilities) *AstPass {
	p.caps = c
	return p
}

// Capabilities reports the dialect capability flags this pass was started
// with.
func (p *AstPass) Capabilities() Capabilities { return p.caps }

// PushSQL appends raw SQL text.
func (p *AstPass) PushSQL(s string) { p.sql.WriteString(s) }

// PushIdentifier appends a backend-quoted identifier.
func (p *AstPass) PushIdentifier(name string) error {
	q, err := p.quote(name)
	if err != nil {
		return err
	}
	p.sql.WriteString(q)
	return nil
}

// PushBindParam appends a placeholder and enqueues value, recording its SQL
// type name. Ordering invariant: the Nth call to PushBindParam must
// correspond to the Nth placeholder emitted so far, left to right — callers
// must interleave PushSQL/PushBindParam calls in textual order, never batch
// binds after the fact.
func (p *AstPass) PushBindParam(sqlType string, value any) {
	*p.nextParam++
	p.sql.WriteString(p.placeholder(*p.nextParam))
	*p.binds = append(*p.binds, BindParam{SQLType: sqlType, Value: value})
}

// UnsafeToCachePrepared flags that the emitted SQL text depends on run-time
// data (variable-length IN lists, boxed queries, raw SQL) and must not be
// cached as a prepared statement by QueryId.
func (p *AstPass) UnsafeToCachePrepared() { *p.cacheable = false }

// Reborrow produces a pass for a recursive WalkAST call. Go has no borrow
// checker, so unlike the original this does not shorten a lifetime — it
// shares the same underlying SQL/bind accumulators, which is exactly the
// behavior recursive composition needs (a child node's output must land in
// the same buffer as its parent's).
func (p *AstPass) Reborrow() *AstPass {
	return &AstPass{sql: p.sql, binds: p.binds, quote: p.quote, placeholder: p.placeholder, nextParam: p.nextParam, cacheable: p.cacheable, caps: p.caps}
}

// SQL returns the accumulated SQL text.
func (p *AstPass) SQL() string { return p.sql.String() }

// Binds returns the accumulated bind parameters in textual placeholder
// order.
func (p *AstPass) Binds() []BindParam { return *p.binds }

// Cacheable reports whether the walked fragment may be cached as a prepared
// statement.
func (p *AstPass) Cacheable() bool { return *p.cacheable }

// Walk is a convenience that runs f.WalkAST against a fresh AstPass for the
// given quoting/placeholder rules and returns the finished SQL and binds.
func Walk(f QueryFragment, quote IdentifierQuoter, placeholder PlaceholderFunc) (string, []BindParam, bool, error) {
	pass := NewAstPass(quote, placeholder)
	if err := f.WalkAST(pass); err != nil {
		return "", nil, false, err
	}
	return pass.SQL(), pass.Binds(), pass.Cacheable(), nil
}
