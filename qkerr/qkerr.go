// Package qkerr declares querykit's error taxonomy using
// gopkg.in/src-d/go-errors.v1's *errors.Kind sentinel values, the same
// pattern dolthub/go-mysql-server's auth package uses for its own error
// kinds (ErrNotAuthorized, ErrUnknownPermission, ...): each Kind is a typed,
// matchable error family (errors.Is-compatible via Kind.Is) that can carry
// a formatted message and wrap a cause.
package qkerr

import errors "gopkg.in/src-d/go-errors.v1"

var (
	// NotFound is returned when a query expected exactly one row (e.g.
	// find-by-primary-key helpers) and the result set was empty.
	NotFound = errors.NewKind("record not found")

	// QueryBuilder names an ill-formed query detected at build time: an
	// aggregate in WHERE/JOIN ON, a SELECT-list column not covered by GROUP
	// BY's functional dependency, a join with no declared path, a batch
	// insert with mismatched rows. The query package's builder methods
	// report these as plain errors, not as this Kind.
	QueryBuilder = errors.NewKind("query builder: %s")

	// Deserialization is returned when a row's column could not be
	// converted into its Go-side FromSQL target type.
	Deserialization = errors.NewKind("deserialization failed for column %q: %s")

	// Serialization is returned when a bound parameter could not be
	// converted into its wire representation for a backend.
	Serialization = errors.NewKind("serialization failed for SQL type %q: %s")

	// RollbackTransaction is a sentinel a transaction callback can return
	// to request a clean rollback without treating it as a failure; the
	// transaction manager returns nil to the caller of TransactionManager.
	// Transaction when it receives this Kind.
	RollbackTransaction = errors.NewKind("transaction callback requested rollback")

	// AlreadyInTransaction names a transaction opened on a connection that
	// is already inside one. TransactionManager.Transaction nests such a
	// call in a savepoint instead, so nothing in this module returns it.
	AlreadyInTransaction = errors.NewKind("connection already has an open transaction")

	// NotInTransaction names an operation that requires an open
	// transaction (e.g. releasing a savepoint) attempted when none exists.
	// Nothing in this module returns it.
	NotInTransaction = errors.NewKind("no open transaction")

	// BrokenTransactionManager is returned by TransactionManager.Transaction
	// once the manager's internal state became inconsistent (a BEGIN,
	// SAVEPOINT, COMMIT, RELEASE or ROLLBACK failed and the depth counter
	// can no longer be trusted); every later call on that manager fails.
	BrokenTransactionManager = errors.NewKind("transaction manager is in a broken state and must not be reused")
)

// DatabaseErrorKind is returned by a backend adapter's error-translation
// layer, mapping a driver-specific error into one of a fixed taxonomy so
// callers can branch on the kind without importing the driver.
var (
	UniqueViolation      = errors.NewKind("unique constraint violation: %s")
	ForeignKeyViolation  = errors.NewKind("foreign key constraint violation: %s")
	NotNullViolation     = errors.NewKind("not-null constraint violation: %s")
	CheckViolation       = errors.NewKind("check constraint violation: %s")
	SerializationFailure = errors.NewKind("serialization failure, retry the transaction: %s")
	ReadOnlyTransaction  = errors.NewKind("cannot write in a read-only transaction: %s")
	UnableToSendCommand  = errors.NewKind("unable to send command to the server: %s")
	ClosedConnection     = errors.NewKind("operation attempted on a closed connection")
	UnknownDatabaseError = errors.NewKind("unrecognized database error: %s")
)
