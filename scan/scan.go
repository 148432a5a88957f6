// Package scan deserializes result rows into Go values: the FromSQL side
// of querykit's (de)serialization boundary, mirroring serialize's
// WalkAST/PushBindParam on the way out.
package scan

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/Serajian/go-query-builder/qkerr"
)

// Row is a single result row, positioned at a specific column index by the
// caller (Load hands a row's values to RowScanner.Scan in select-list
// order).
type Row interface {
	// Get returns the raw driver value for the column at index i.
	Get(i int) (any, error)
}

// FromSQL converts a raw driver value into T. This package provides one
// FromSQL function per Go target type (StdString, StdInt64, StdBool,
// StdUUID), each accepting that type's driver value shapes; the
// generic parameter here is the deserialization target, not the SQL type
// tag (sqltype.SQLType) — a single sqltype.Integer column might scan into
// int32, int64, or a custom newtype depending on what the caller asked for.
type FromSQL[T any] func(raw any) (T, error)

// Scan converts raw using fn, wrapping a conversion failure in
// qkerr.Deserialization so callers can branch on the kind without
// inspecting driver-specific error types.
func Scan[T any](column string, raw any, fn FromSQL[T]) (T, error) {
	v, err := fn(raw)
	if err != nil {
		var zero T
		return zero, qkerr.Deserialization.New(column, err.Error())
	}
	return v, nil
}

// FromNullableSQL wraps fn so a driver NULL (raw == nil) decodes to a nil
// *T, instead of calling fn with a nil value it isn't prepared for; any
// other value, including a sql.NullX, is passed to fn. This is
// also the rule applied when an outer-joined row is entirely NULL: every
// column scanned through a LEFT JOIN's nullable side must go through
// FromNullableSQL, never bare FromSQL.
func FromNullableSQL[T any](fn FromSQL[T]) FromSQL[*T] {
	return func(raw any) (*T, error) {
		if raw == nil {
			return nil, nil
		}
		v, err := fn(raw)
		if err != nil {
			return nil, err
		}
		return &v, nil
	}
}

// StdString converts a database/sql-compatible value into a string,
// accepting the driver's own []byte/string/sql.NullString shapes.
func StdString(raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case sql.NullString:
		if !v.Valid {
			return "", nil
		}
		return v.String, nil
	default:
		return "", qkerr.Deserialization.New("string", "unsupported driver value type")
	}
}

// StdInt64 converts a database/sql-compatible value into an int64.
func StdInt64(raw any) (int64, error) {
	switch v := raw.(type) {
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int:
		return int64(v), nil
	case sql.NullInt64:
		if !v.Valid {
			return 0, nil
		}
		return v.Int64, nil
	default:
		return 0, qkerr.Deserialization.New("int64", "unsupported driver value type")
	}
}

// StdUUID converts a sqltype.Uuid column into a uuid.UUID, accepting both
// PostgreSQL's native 16-byte wire form and the CHAR(36) string form used to
// emulate the type on MySQL/SQLite.
func StdUUID(raw any) (uuid.UUID, error) {
	switch v := raw.(type) {
	case [16]byte:
		return uuid.UUID(v), nil
	case []byte:
		if len(v) == 16 {
			var u uuid.UUID
			copy(u[:], v)
			return u, nil
		}
		return uuid.ParseBytes(v)
	case string:
		return uuid.Parse(v)
	case sql.NullString:
		if !v.Valid {
			return uuid.UUID{}, nil
		}
		return uuid.Parse(v.String)
	default:
		return uuid.UUID{}, qkerr.Deserialization.New("uuid", "unsupported driver value type")
	}
}

// StdBool converts a database/sql-compatible value into a bool.
func StdBool(raw any) (bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case int64:
		return v != 0, nil
	case sql.NullBool:
		if !v.Valid {
			return false, nil
		}
		return v.Bool, nil
	default:
		return false, qkerr.Deserialization.New("bool", "unsupported driver value type")
	}
}
