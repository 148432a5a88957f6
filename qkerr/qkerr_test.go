package qkerr_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Serajian/go-query-builder/qkerr"
)

func TestNotFoundIsMatchableAfterWrap(t *testing.T) {
	err := fmt.Errorf("lookup users#7: %w", qkerr.NotFound.New())
	assert.True(t, qkerr.Is(qkerr.NotFound, err))
	assert.False(t, qkerr.Is(qkerr.AlreadyInTransaction, err))
}

func TestQueryBuilderKindFormatsMessage(t *testing.T) {
	err := qkerr.QueryBuilder.New("aggregate not allowed in WHERE")
	assert.Contains(t, err.Error(), "aggregate not allowed in WHERE")
}

func TestDatabaseErrorKindsAreDistinct(t *testing.T) {
	unique := qkerr.UniqueViolation.New("users_email_key")
	assert.True(t, qkerr.Is(qkerr.UniqueViolation, unique))
	assert.False(t, qkerr.Is(qkerr.ForeignKeyViolation, unique))
}
