package conn_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Serajian/go-query-builder/conn"
	"github.com/Serajian/go-query-builder/dialect"
	"github.com/Serajian/go-query-builder/qkerr"
	"github.com/Serajian/go-query-builder/serialize"
)

// fakeConn is an in-memory Connection recording the sequence of
// transaction control calls it receives, used to test TransactionManager's
// depth/savepoint bookkeeping without a real database.
type fakeConn struct {
	calls       []string
	failOn      string
	savepointOn map[string]bool
}

func newFakeConn() *fakeConn { return &fakeConn{savepointOn: map[string]bool{}} }

func (f *fakeConn) Dialect() dialect.Dialect { return dialect.Postgres{} }

func (f *fakeConn) Prepare(ctx context.Context, sql string) (conn.Statement, error) {
	return nil, errors.New("not implemented in fakeConn")
}

func (f *fakeConn) record(action string) error {
	f.calls = append(f.calls, action)
	if f.failOn == action {
		return errors.New("simulated failure on " + action)
	}
	return nil
}

func (f *fakeConn) Begin(ctx context.Context) error    { return f.record("begin") }
func (f *fakeConn) Commit(ctx context.Context) error   { return f.record("commit") }
func (f *fakeConn) Rollback(ctx context.Context) error  { return f.record("rollback") }
func (f *fakeConn) Close() error                        { return nil }

func (f *fakeConn) Savepoint(ctx context.Context, name string) error {
	return f.record("savepoint:" + name)
}
func (f *fakeConn) ReleaseSavepoint(ctx context.Context, name string) error {
	return f.record("release:" + name)
}
func (f *fakeConn) RollbackToSavepoint(ctx context.Context, name string) error {
	return f.record("rollback_to:" + name)
}

func TestTransactionCommitsOnSuccess(t *testing.T) {
	fc := newFakeConn()
	tm := conn.NewTransactionManager(fc, nil)

	err := tm.Transaction(context.Background(), func(ctx context.Context) error {
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"begin", "commit"}, fc.calls)
	assert.Equal(t, 0, tm.Depth())
}

func TestTransactionRollsBackOnError(t *testing.T) {
	fc := newFakeConn()
	tm := conn.NewTransactionManager(fc, nil)
	boom := errors.New("boom")

	err := tm.Transaction(context.Background(), func(ctx context.Context) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"begin", "rollback"}, fc.calls)
}

func TestNestedTransactionUsesSavepoint(t *testing.T) {
	fc := newFakeConn()
	tm := conn.NewTransactionManager(fc, nil)

	err := tm.Transaction(context.Background(), func(ctx context.Context) error {
		return tm.Transaction(ctx, func(ctx context.Context) error {
			return nil
		})
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"begin", "savepoint:querykit_savepoint_2", "release:querykit_savepoint_2", "commit"}, fc.calls)
}

func TestRollbackTransactionSentinelReturnsNilToCaller(t *testing.T) {
	fc := newFakeConn()
	tm := conn.NewTransactionManager(fc, nil)

	err := tm.Transaction(context.Background(), func(ctx context.Context) error {
		return qkerr.RollbackTransaction.New()
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"begin", "rollback"}, fc.calls)
}

func TestBrokenTransactionManagerRejectsFurtherUse(t *testing.T) {
	fc := newFakeConn()
	fc.failOn = "commit"
	tm := conn.NewTransactionManager(fc, nil)

	err := tm.Transaction(context.Background(), func(ctx context.Context) error { return nil })
	require.Error(t, err)

	err2 := tm.Transaction(context.Background(), func(ctx context.Context) error { return nil })
	assert.True(t, qkerr.Is(qkerr.BrokenTransactionManager, err2))
}

func TestStatementCacheEvictsLeastRecentlyUsed(t *testing.T) {
	cache := conn.NewStatementCache(2)
	s1, s2, s3 := &fakeStatement{}, &fakeStatement{}, &fakeStatement{}
	id1 := serialize.StaticQueryId("q1")
	id2 := serialize.StaticQueryId("q2")
	id3 := serialize.StaticQueryId("q3")

	cache.Put(id1, s1)
	cache.Put(id2, s2)
	cache.Put(id3, s3) // evicts id1

	_, ok := cache.Get(id1)
	assert.False(t, ok)
	_, ok = cache.Get(id2)
	assert.True(t, ok)
	assert.True(t, s1.closed)
}

func TestStatementCacheNeverCachesDynamicQueryId(t *testing.T) {
	cache := conn.NewStatementCache(4)
	cache.Put(serialize.DynamicQueryId(), &fakeStatement{})
	assert.Equal(t, 0, cache.Len())
}

type fakeStatement struct{ closed bool }

func (s *fakeStatement) Execute(ctx context.Context, binds []serialize.BindParam) (int64, error) {
	return 0, nil
}
func (s *fakeStatement) Fetch(ctx context.Context, binds []serialize.BindParam) (conn.Rows, error) {
	return nil, nil
}
func (s *fakeStatement) Close() error { s.closed = true; return nil }
