package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Serajian/go-query-builder/qkerr"
)

func TestSqliteTypeForSQLType(t *testing.T) {
	assert.Equal(t, SqliteInteger, sqliteTypeForSQLType("integer"))
	assert.Equal(t, SqliteInteger, sqliteTypeForSQLType("bigint"))
	assert.Equal(t, SqliteInteger, sqliteTypeForSQLType("bool"))
	assert.Equal(t, SqliteInteger, sqliteTypeForSQLType("nullable integer"))
	assert.Equal(t, SqliteReal, sqliteTypeForSQLType("double precision"))
	assert.Equal(t, SqliteBlob, sqliteTypeForSQLType("bytea"))
	assert.Equal(t, SqliteText, sqliteTypeForSQLType("text"))
	assert.Equal(t, SqliteText, sqliteTypeForSQLType("uuid"))
}

func TestCoerceArgConvertsBoolToInteger(t *testing.T) {
	v, err := coerceArg("bool", true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	v, err = coerceArg("bool", false)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)
}

func TestCoerceArgPassesNilThrough(t *testing.T) {
	v, err := coerceArg("integer", nil)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestCoerceArgRejectsTypeMismatch(t *testing.T) {
	_, err := coerceArg("integer", "not a number")
	require.Error(t, err)
	assert.True(t, qkerr.Is(qkerr.Serialization, err))

	_, err = coerceArg("real", "not a float")
	require.Error(t, err)

	_, err = coerceArg("bytea", "not bytes")
	require.Error(t, err)
}

func TestCoerceArgAcceptsMatchingTypes(t *testing.T) {
	v, err := coerceArg("integer", int64(42))
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)

	v, err = coerceArg("real", float64(1.5))
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)

	v, err = coerceArg("bytea", []byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), v)

	v, err = coerceArg("text", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", v)
}
