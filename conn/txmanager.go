package conn

import (
	"context"
	"fmt"
	"sync"

	"github.com/Serajian/go-query-builder/qkerr"
	"github.com/Serajian/go-query-builder/qklog"
)

// TransactionManager tracks nesting depth over one Connection, using
// SAVEPOINTs for every transaction after the first: .Transaction calls nest
// by pushing a savepoint named "querykit_savepoint_<depth>" rather than a
// true nested BEGIN, since SQL has no such thing.
type TransactionManager struct {
	mu     sync.Mutex
	conn   Connection
	log    *qklog.Logger
	depth  int
	broken bool
}

// NewTransactionManager wraps conn with depth tracking. log may be nil to
// disable transaction logging.
func NewTransactionManager(c Connection, log *qklog.Logger) *TransactionManager {
	return &TransactionManager{conn: c, log: log}
}

func (tm *TransactionManager) savepointName(depth int) string {
	return fmt.Sprintf("querykit_savepoint_%d", depth)
}

// Depth reports the current nesting depth (0 = no open transaction).
func (tm *TransactionManager) Depth() int {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return tm.depth
}

// Transaction runs fn inside a transaction (or a savepoint, if already
// inside one), committing on success and rolling back on error or panic.
// fn returning an error wrapping qkerr.RollbackTransaction rolls back and
// returns nil — the caller explicitly requested a clean rollback, not a
// failure.
func (tm *TransactionManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tm.mu.Lock()
	if tm.broken {
		tm.mu.Unlock()
		return qkerr.BrokenTransactionManager.New()
	}
	depth := tm.depth + 1
	tm.mu.Unlock()

	if err := tm.begin(ctx, depth); err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tm.rollback(ctx, depth)
			panic(p)
		}
	}()

	if err = fn(ctx); err != nil {
		if qkerr.Is(qkerr.RollbackTransaction, err) {
			return tm.rollback(ctx, depth)
		}
		rbErr := tm.rollback(ctx, depth)
		if rbErr != nil {
			return rbErr
		}
		return err
	}

	return tm.commit(ctx, depth)
}

func (tm *TransactionManager) begin(ctx context.Context, depth int) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	var err error
	if depth == 1 {
		err = tm.conn.Begin(ctx)
	} else {
		err = tm.conn.Savepoint(ctx, tm.savepointName(depth))
	}
	if err != nil {
		tm.broken = true
		return err
	}
	tm.depth = depth
	tm.logf("begin", depth, nil)
	return nil
}

func (tm *TransactionManager) commit(ctx context.Context, depth int) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	var err error
	if depth == 1 {
		err = tm.conn.Commit(ctx)
	} else {
		err = tm.conn.ReleaseSavepoint(ctx, tm.savepointName(depth))
	}
	if err != nil {
		tm.broken = true
		tm.logf("commit", depth, err)
		return err
	}
	tm.depth = depth - 1
	tm.logf("commit", depth, nil)
	return nil
}

func (tm *TransactionManager) rollback(ctx context.Context, depth int) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	var err error
	if depth == 1 {
		err = tm.conn.Rollback(ctx)
	} else {
		err = tm.conn.RollbackToSavepoint(ctx, tm.savepointName(depth))
	}
	if err != nil {
		tm.broken = true
		tm.logf("rollback", depth, err)
		return err
	}
	tm.depth = depth - 1
	tm.logf("rollback", depth, nil)
	return nil
}

func (tm *TransactionManager) logf(action string, depth int, err error) {
	if tm.log != nil {
		tm.log.Transaction(action, depth, err)
	}
}
