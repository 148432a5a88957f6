package serialize

// QueryId is the type-level identity used to key the prepared-statement
// cache. A tree has a cache key iff every node contributes a static key;
// any node built from run-time shape (raw SQL, a variable-length IN list,
// a boxed query) is dynamic and poisons the whole tree's QueryId.
type QueryId struct {
	key    string
	static bool
}

// StaticQueryId builds a query id from a stable key describing this node's
// shape (its Go type name plus any static parameters — never a bound
// value).
func StaticQueryId(key string) QueryId { return QueryId{key: key, static: true} }

// DynamicQueryId marks a node (and therefore its ancestors) as uncacheable.
func DynamicQueryId() QueryId { return QueryId{static: false} }

// IsStatic reports whether this id can be used as a prepared-statement
// cache key.
func (q QueryId) IsStatic() bool { return q.static }

// Key returns the string cache key. Only meaningful when IsStatic is true.
func (q QueryId) Key() string { return q.key }

// Compose builds a parent QueryId from a label naming the parent node's
// shape and its children's QueryIds, tuple-wise. The result is dynamic if
// any child is dynamic.
func Compose(label string, children ...QueryId) QueryId {
	key := label
	for _, c := range children {
		if !c.static {
			return DynamicQueryId()
		}
		key += "/" + c.key
	}
	return StaticQueryId(key)
}
