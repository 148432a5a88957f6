package conn

import (
	"container/list"
	"sync"

	"github.com/Serajian/go-query-builder/serialize"
)

// StatementCache is an LRU cache of prepared Statements keyed by
// serialize.QueryId. A dynamic or boxed query's QueryId is never static
// (IsStatic() == false), so Put silently declines to cache it — every
// boxed/raw query is prepared and discarded fresh, matching the
// UnsafeToCachePrepared flag AstPass tracks during rendering.
type StatementCache struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List
	items    map[string]*list.Element
}

type cacheEntry struct {
	key  string
	stmt Statement
}

// NewStatementCache creates a cache holding at most capacity statements.
// capacity <= 0 disables caching entirely.
func NewStatementCache(capacity int) *StatementCache {
	return &StatementCache{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[string]*list.Element),
	}
}

// Get looks up the statement cached for id, if any. A dynamic QueryId
// never hits.
func (c *StatementCache) Get(id serialize.QueryId) (Statement, bool) {
	if !id.IsStatic() || c.capacity <= 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[id.Key()]
	if !ok {
		return nil, false
	}
	c.ll.MoveToFront(el)
	return el.Value.(*cacheEntry).stmt, true
}

// Put caches stmt under id, evicting the least-recently-used entry if the
// cache is full. A dynamic id or a non-positive capacity is a no-op, and
// the caller remains responsible for closing stmt itself in that case.
func (c *StatementCache) Put(id serialize.QueryId, stmt Statement) {
	if !id.IsStatic() || c.capacity <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[id.Key()]; ok {
		el.Value.(*cacheEntry).stmt = stmt
		c.ll.MoveToFront(el)
		return
	}

	el := c.ll.PushFront(&cacheEntry{key: id.Key(), stmt: stmt})
	c.items[id.Key()] = el

	for c.ll.Len() > c.capacity {
		oldest := c.ll.Back()
		if oldest == nil {
			break
		}
		entry := oldest.Value.(*cacheEntry)
		entry.stmt.Close()
		delete(c.items, entry.key)
		c.ll.Remove(oldest)
	}
}

// Len reports the number of cached statements.
func (c *StatementCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
