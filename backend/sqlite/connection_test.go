package sqlite_test

import (
	"fmt"
	"testing"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"

	"github.com/Serajian/go-query-builder/backend/sqlite"
	"github.com/Serajian/go-query-builder/qkerr"
)

func TestTranslateMapsExtendedCodeToKind(t *testing.T) {
	tests := []struct {
		name string
		err  sqlite3.Error
		is   func(error) bool
	}{
		{"unique", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, func(e error) bool { return qkerr.Is(qkerr.UniqueViolation, e) }},
		{"pk", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey}, func(e error) bool { return qkerr.Is(qkerr.UniqueViolation, e) }},
		{"fk", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}, func(e error) bool { return qkerr.Is(qkerr.ForeignKeyViolation, e) }},
		{"notnull", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull}, func(e error) bool { return qkerr.Is(qkerr.NotNullViolation, e) }},
		{"check", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintCheck}, func(e error) bool { return qkerr.Is(qkerr.CheckViolation, e) }},
		{"busy", sqlite3.Error{Code: sqlite3.ErrBusy}, func(e error) bool { return qkerr.Is(qkerr.SerializationFailure, e) }},
		{"locked", sqlite3.Error{Code: sqlite3.ErrLocked}, func(e error) bool { return qkerr.Is(qkerr.SerializationFailure, e) }},
		{"readonly", sqlite3.Error{Code: sqlite3.ErrReadonly}, func(e error) bool { return qkerr.Is(qkerr.ReadOnlyTransaction, e) }},
		{"ioerr", sqlite3.Error{Code: sqlite3.ErrIoErr}, func(e error) bool { return qkerr.Is(qkerr.UnableToSendCommand, e) }},
		{"unmapped", sqlite3.Error{Code: sqlite3.ErrInternal}, func(e error) bool { return qkerr.Is(qkerr.UnknownDatabaseError, e) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := sqlite.Translate(tc.err)
			assert.True(t, tc.is(err))
		})
	}
}

func TestTranslatePassesNilThrough(t *testing.T) {
	assert.NoError(t, sqlite.Translate(nil))
}

func TestTranslateWrapsNonSqliteError(t *testing.T) {
	err := sqlite.Translate(fmt.Errorf("boom"))
	assert.True(t, qkerr.Is(qkerr.UnknownDatabaseError, err))
}
