package mysql

import (
	"fmt"
	"strings"
)

// NumericRepresentation selects which Go type a bound value is converted
// to before go-sql-driver/mysql hands it to driver.Value, bridging MySQL's
// loose numeric typing: TINYINT(1) booleans, UNSIGNED BIGINT values that
// overflow int64, and arbitrary-precision DECIMAL columns that lose digits
// if ever routed through float64.
type NumericRepresentation int

const (
	// RepresentAsIs passes the bound value through unchanged.
	RepresentAsIs NumericRepresentation = iota
	// RepresentAsInt64 converts to int64 (MySQL has no native boolean
	// type; TINYINT(1) is bound as 0/1).
	RepresentAsInt64
	// RepresentAsString converts via fmt.Sprintf("%v", ...), preserving
	// full digit precision for DECIMAL and magnitude for UNSIGNED BIGINT
	// rather than risking float64's 53-bit mantissa.
	RepresentAsString
)

// representationForSQLType picks the wire representation for sqlType (a
// sqltype.SQLType.TypeName value, as recorded on serialize.BindParam.SQLType).
func representationForSQLType(sqlType string) NumericRepresentation {
	name := strings.TrimPrefix(sqlType, "nullable ")
	switch {
	case name == "bool":
		return RepresentAsInt64
	case name == "numeric":
		return RepresentAsString
	case strings.HasPrefix(name, "unsigned "):
		return RepresentAsString
	default:
		return RepresentAsIs
	}
}

// normalizeArg converts v into the representation representationForSQLType
// picks for sqlType. A nil value (SQL NULL) always passes through
// unchanged regardless of declared type.
func normalizeArg(sqlType string, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch representationForSQLType(sqlType) {
	case RepresentAsInt64:
		b, ok := v.(bool)
		if !ok {
			return v, nil
		}
		if b {
			return int64(1), nil
		}
		return int64(0), nil
	case RepresentAsString:
		if s, ok := v.(string); ok {
			return s, nil
		}
		return fmt.Sprintf("%v", v), nil
	default:
		return v, nil
	}
}
