package postgres

import (
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
)

func TestBaseTypeNameStripsWrapperPrefixes(t *testing.T) {
	assert.Equal(t, "integer", baseTypeName("integer"))
	assert.Equal(t, "integer", baseTypeName("nullable integer"))
	assert.Equal(t, "bigint", baseTypeName("unsigned bigint"))
	assert.Equal(t, "bigint", baseTypeName("nullable unsigned bigint"))
}

func TestBuiltinOIDCoversEveryCoreSQLType(t *testing.T) {
	want := map[string]uint32{
		"bool":      pgtype.BoolOID,
		"integer":   pgtype.Int4OID,
		"bigint":    pgtype.Int8OID,
		"text":      pgtype.TextOID,
		"uuid":      pgtype.UUIDOID,
		"jsonb":     pgtype.JSONBOID,
		"timestamp": pgtype.TimestampOID,
	}
	for name, oid := range want {
		got, ok := builtinOID[name]
		assert.True(t, ok, name)
		assert.Equal(t, oid, got, name)
	}
}
