package sqlite

import (
	"strings"

	"github.com/Serajian/go-query-builder/qkerr"
)

// SqliteType is one of SQLite's four storage classes (plus NULL), the
// thing every declared column type ultimately gets coerced to — SQLite's
// "type affinity" system has no wire-level type beyond these. Binding a Go
// value whose runtime type doesn't match the column's affinity is usually
// silently accepted and stored in whatever class the value already has;
// this backend instead enforces the match at bind time so a schema/value
// mismatch fails fast as a qkerr rather than round-tripping as the wrong
// SQLite storage class.
type SqliteType int

const (
	SqliteInteger SqliteType = iota
	SqliteReal
	SqliteText
	SqliteBlob
)

// sqliteTypeForSQLType maps sqlType (a sqltype.SQLType.TypeName value, as
// recorded on serialize.BindParam.SQLType) to the SQLite storage class its
// column affinity resolves to.
func sqliteTypeForSQLType(sqlType string) SqliteType {
	name := strings.TrimPrefix(sqlType, "nullable ")
	switch name {
	case "bool", "smallint", "integer", "bigint":
		return SqliteInteger
	case "real", "double precision":
		return SqliteReal
	case "bytea":
		return SqliteBlob
	default:
		return SqliteText
	}
}

// coerceArg checks v against the SqliteType sqlType resolves to, converting
// where the conversion is lossless and unambiguous (bool -> 0/1 for
// SqliteInteger) and rejecting anything else that doesn't already match.
func coerceArg(sqlType string, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch sqliteTypeForSQLType(sqlType) {
	case SqliteInteger:
		switch t := v.(type) {
		case bool:
			if t {
				return int64(1), nil
			}
			return int64(0), nil
		case int64, int, int32, int16, int8:
			return v, nil
		default:
			return nil, qkerr.Serialization.New(sqlType, "value is not representable as SQLite INTEGER")
		}
	case SqliteReal:
		switch v.(type) {
		case float64, float32:
			return v, nil
		default:
			return nil, qkerr.Serialization.New(sqlType, "value is not representable as SQLite REAL")
		}
	case SqliteBlob:
		if _, ok := v.([]byte); !ok {
			return nil, qkerr.Serialization.New(sqlType, "value is not representable as SQLite BLOB")
		}
		return v, nil
	default: // SqliteText
		return v, nil
	}
}
