package dialect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Serajian/go-query-builder/dialect"
)

func TestPostgresQuotingRejectsEmbeddedQuote(t *testing.T) {
	_, err := dialect.Postgres{}.QuoteIdentifier(`bad"name`)
	assert.Error(t, err)
}

func TestPostgresLimitOffset(t *testing.T) {
	pg := dialect.Postgres{}
	assert.Equal(t, " LIMIT 10 OFFSET 5", pg.LimitOffset(10, 5, true, true))
	assert.Equal(t, " LIMIT 10", pg.LimitOffset(10, 0, true, false))
	assert.Equal(t, "", pg.LimitOffset(0, 0, false, false))
}

func TestMySQLLimitOffsetUsesSentinelForOffsetOnly(t *testing.T) {
	my := dialect.MySQL{}
	assert.Equal(t, " LIMIT 5, 18446744073709551615", my.LimitOffset(0, 5, false, true))
	assert.Equal(t, " LIMIT 3, 10", my.LimitOffset(10, 3, true, true))
}

func TestSQLiteOffsetOnlyNeedsExplicitUnboundedLimit(t *testing.T) {
	lite := dialect.SQLite{}
	assert.Equal(t, " LIMIT -1 OFFSET 5", lite.LimitOffset(0, 5, false, true))
}

func TestCapabilityFlagsDifferAcrossBackends(t *testing.T) {
	assert.True(t, dialect.Postgres{}.SupportsILike())
	assert.False(t, dialect.MySQL{}.SupportsILike())
	assert.False(t, dialect.SQLite{}.SupportsILike())

	assert.False(t, dialect.MySQL{}.SupportsReturning())
	assert.True(t, dialect.Postgres{}.SupportsReturning())
	assert.True(t, dialect.SQLite{}.SupportsReturning())

	assert.Equal(t, dialect.UpsertOnDuplicateKey, dialect.MySQL{}.UpsertForm())
	assert.Equal(t, dialect.UpsertOnConflict, dialect.Postgres{}.UpsertForm())
}

func TestNewPassWiresCapabilitiesFromTheDialect(t *testing.T) {
	pgCaps := dialect.Postgres{}.NewPass().Capabilities()
	assert.True(t, pgCaps.ILike)
	assert.True(t, pgCaps.AggregateFilter)

	myCaps := dialect.MySQL{}.NewPass().Capabilities()
	assert.False(t, myCaps.ILike)
	assert.False(t, myCaps.AggregateFilter)

	liteCaps := dialect.SQLite{}.NewPass().Capabilities()
	assert.False(t, liteCaps.ILike)
	assert.True(t, liteCaps.AggregateFilter)
}

func TestBoolLiteralsPerBackend(t *testing.T) {
	assert.Equal(t, "TRUE", dialect.Postgres{}.BoolLiteral(true))
	assert.Equal(t, "1", dialect.MySQL{}.BoolLiteral(true))
	assert.Equal(t, "0", dialect.SQLite{}.BoolLiteral(false))
}
