// Package sqltype declares the closed-extensible set of SQL type tags used
// throughout querykit. Each tag is a zero-sized marker type; its only job is
// to appear as a type parameter on Expression, Column and the rest of the
// expression algebra so the compiler can check that operands agree.
package sqltype

// SQLType is implemented by every marker type in this package. It carries no
// behavior beyond a name used for diagnostics and dialect-specific casts
// (e.g. `$1::integer`).
type SQLType interface {
	// TypeName is the canonical, dialect-neutral SQL type name.
	TypeName() string
}

// IsNull records whether a SQL type tag is nullable. Bare tags (Integer,
// Text, ...) are IsNullNo; wrapping a tag in Nullable[T] makes it IsNullYes.
type IsNull int

const (
	IsNullNo IsNull = iota
	IsNullYes
)

// Bool is SQL BOOLEAN.
type Bool struct{}

func (Bool) TypeName() string { return "bool" }

// SmallInt is SQL SMALLINT (16-bit).
type SmallInt struct{}

func (SmallInt) TypeName() string { return "smallint" }

// Integer is SQL INTEGER (32-bit).
type Integer struct{}

func (Integer) TypeName() string { return "integer" }

// BigInt is SQL BIGINT (64-bit).
type BigInt struct{}

func (BigInt) TypeName() string { return "bigint" }

// Float is SQL REAL (32-bit floating point).
type Float struct{}

func (Float) TypeName() string { return "real" }

// Double is SQL DOUBLE PRECISION (64-bit floating point).
type Double struct{}

func (Double) TypeName() string { return "double precision" }

// Numeric is an arbitrary-precision decimal.
type Numeric struct{}

func (Numeric) TypeName() string { return "numeric" }

// Text is a variable-length string.
type Text struct{}

func (Text) TypeName() string { return "text" }

// Binary is a variable-length byte string.
type Binary struct{}

func (Binary) TypeName() string { return "bytea" }

// Date is a calendar date with no time-of-day component.
type Date struct{}

func (Date) TypeName() string { return "date" }

// Time is a time-of-day with no date component.
type Time struct{}

func (Time) TypeName() string { return "time" }

// Timestamp is a date and time-of-day, without time zone.
type Timestamp struct{}

func (Timestamp) TypeName() string { return "timestamp" }

// Interval is a span of time (PostgreSQL-native; emulated elsewhere).
type Interval struct{}

func (Interval) TypeName() string { return "interval" }

// Json is untyped JSON text.
type Json struct{}

func (Json) TypeName() string { return "json" }

// Jsonb is PostgreSQL's binary JSON representation.
type Jsonb struct{}

func (Jsonb) TypeName() string { return "jsonb" }

// Uuid is a 128-bit universally unique identifier, round-tripped through
// github.com/google/uuid: a native PostgreSQL uuid column, emulated as
// CHAR(36) text on MySQL/SQLite.
type Uuid struct{}

func (Uuid) TypeName() string { return "uuid" }

// Unsigned wraps an integral SQL type to mark it as unsigned (MySQL only).
type Unsigned[T SQLType] struct{ inner T }

func (u Unsigned[T]) TypeName() string { return "unsigned " + u.inner.TypeName() }
