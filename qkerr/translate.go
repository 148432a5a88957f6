package qkerr

import (
	stderrors "errors"

	errors "gopkg.in/src-d/go-errors.v1"
)

// Translator maps a driver-native error into one of the DatabaseErrorKind
// values above. Each backend package (backend/postgres, backend/mysql,
// backend/sqlite) provides one, since the native error shapes (pgconn.
// PgError codes, mysql.MySQLError numbers, sqlite3.Error codes) are
// entirely driver-specific.
type Translator func(err error) error

// Is reports whether err (or anything it wraps) belongs to kind — a
// thin wrapper over errors.Kind.Is kept here so callers only need to
// import qkerr, not go-errors.v1 directly.
func Is(kind *errors.Kind, err error) bool {
	for ; err != nil; err = stderrors.Unwrap(err) {
		if kind.Is(err) {
			return true
		}
	}
	return false
}
