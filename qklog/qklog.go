// Package qklog wraps logrus for querykit's two log sites: executed
// queries (SQL text, duration, bind count, error) and transaction
// lifecycle events (begin/commit/rollback/savepoint), in the field-bag
// style auth.AuditLog uses for logrus.Entry.WithFields calls.
package qklog

import (
	"time"

	"github.com/sirupsen/logrus"
)

const (
	queryLogMessage = "query executed"
	txnLogMessage   = "transaction event"
)

// Logger logs query execution and transaction lifecycle events.
type Logger struct {
	entry *logrus.Entry
}

// New wraps l, tagging every entry with system=querykit.
func New(l *logrus.Logger) *Logger {
	return &Logger{entry: l.WithField("system", "querykit")}
}

// Query logs one executed statement: its rendered SQL, bind count,
// duration, and error (if any).
func (q *Logger) Query(sql string, bindCount int, d time.Duration, err error) {
	fields := logrus.Fields{
		"sql":        sql,
		"bind_count": bindCount,
		"duration":   d,
		"success":    true,
	}
	if err != nil {
		fields["success"] = false
		fields["err"] = err
	}
	q.entry.WithFields(fields).Info(queryLogMessage)
}

// Transaction logs a transaction lifecycle event (begin/commit/rollback/
// savepoint release) at the given nesting depth.
func (q *Logger) Transaction(action string, depth int, err error) {
	fields := logrus.Fields{
		"action":  action,
		"depth":   depth,
		"success": true,
	}
	if err != nil {
		fields["success"] = false
		fields["err"] = err
	}
	q.entry.WithFields(fields).Info(txnLogMessage)
}
