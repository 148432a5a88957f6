package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepresentationForSQLType(t *testing.T) {
	assert.Equal(t, RepresentAsInt64, representationForSQLType("bool"))
	assert.Equal(t, RepresentAsString, representationForSQLType("numeric"))
	assert.Equal(t, RepresentAsString, representationForSQLType("unsigned bigint"))
	assert.Equal(t, RepresentAsIs, representationForSQLType("integer"))
	assert.Equal(t, RepresentAsInt64, representationForSQLType("nullable bool"))
}

func TestNormalizeArgConvertsBoolToInt64(t *testing.T) {
	v, err := normalizeArg("bool", true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	v, err = normalizeArg("bool", false)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)
}

func TestNormalizeArgStringifiesNumericAndUnsigned(t *testing.T) {
	v, err := normalizeArg("numeric", 12.5)
	require.NoError(t, err)
	assert.Equal(t, "12.5", v)

	v, err = normalizeArg("unsigned bigint", uint64(18446744073709551615))
	require.NoError(t, err)
	assert.Equal(t, "18446744073709551615", v)
}

func TestNormalizeArgPassesNilAndOrdinaryValuesThrough(t *testing.T) {
	v, err := normalizeArg("integer", nil)
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = normalizeArg("integer", int64(7))
	require.NoError(t, err)
	assert.Equal(t, int64(7), v)
}
