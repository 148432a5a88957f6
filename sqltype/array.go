package sqltype

// Array is a PostgreSQL-native array of T. Go generics have no way to
// exclude a type parameter per backend, and no dialect or backend check
// rejects an Array[T]-typed expression on MySQL or SQLite either.
type Array[T SQLType] struct{ elem T }

func (a Array[T]) TypeName() string { return a.elem.TypeName() + "[]" }

// Elem returns the element type tag.
func (a Array[T]) Elem() T { return a.elem }

// NewArray constructs an Array[T] tag for element type elem.
func NewArray[T SQLType](elem T) Array[T] { return Array[T]{elem: elem} }

// Range is a PostgreSQL-native range type over an orderable element type
// (int4range, numrange, tsrange, ...). PG-only, like Array.
type Range[T SQLType] struct{ elem T }

func (r Range[T]) TypeName() string { return r.elem.TypeName() + "range" }

// NewRange constructs a Range[T] tag for boundary type elem.
func NewRange[T SQLType](elem T) Range[T] { return Range[T]{elem: elem} }
