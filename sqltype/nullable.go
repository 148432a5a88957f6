package sqltype

// Nullable wraps a SQL type tag to mark it as nullable. Per spec invariant,
// Nullable[Nullable[T]] must collapse to Nullable[T]: Go's type system has no
// way to forbid instantiating the doubly-wrapped form at compile time (there
// is no negative/exclusion constraint), so the collapse is enforced at the
// one place nullable tags are constructed — MakeNullable — rather than by
// the compiler. MakeNullable is this package's only constructor, so the
// doubly-wrapped shape never actually appears in a query tree built through
// this package's API.
type Nullable[T SQLType] struct{ inner T }

func (n Nullable[T]) TypeName() string { return n.inner.TypeName() }

// Base returns the non-nullable tag this Nullable wraps.
func (n Nullable[T]) Base() T { return n.inner }

// nullableTag is implemented only by Nullable[T], used by MakeNullable to
// detect (via a type assertion) that T is itself already a Nullable and
// avoid double-wrapping.
type nullableTag interface {
	isNullable()
}

func (Nullable[T]) isNullable() {}

// MakeNullable constructs Nullable[T], collapsing Nullable[Nullable[U]] to
// Nullable[U] so callers never observe doubly-wrapped tags.
func MakeNullable[T SQLType](inner T) SQLType {
	if already, ok := any(inner).(nullableTag); ok {
		_ = already
		return inner
	}
	return Nullable[T]{inner: inner}
}

// IsNullableType reports whether st is (or wraps, transitively) Nullable.
func IsNullableType(st SQLType) bool {
	_, ok := st.(nullableTag)
	return ok
}
