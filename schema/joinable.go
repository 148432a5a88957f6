package schema

import "fmt"

// JoinTarget is the reconstructed ON-clause data for a declared foreign key:
// the child-side column name and the parent-side column name it must equal.
type JoinTarget struct {
	ChildColumn  string
	ParentColumn string
}

type joinKey struct {
	child  *Table
	parent *Table
}

var joinRegistry = map[joinKey]JoinTarget{}

// Joinable registers that child may join parent on child.fk = parent.pk.
// Go has no macro expansion to generate a JoinTo<parent> impl at compile
// time, so this is an explicit registration call made once, typically from
// an init() function alongside the schema declaration. query.InnerJoin/
// LeftJoin consult it (through CanAppearTogether) only to check that the
// two tables are related; the ON predicate is always the one the caller
// passes, never one built from the registered columns.
func Joinable(child, parent *Table, childFK, parentPK string) {
	joinRegistry[joinKey{child: child, parent: parent}] = JoinTarget{
		ChildColumn:  childFK,
		ParentColumn: parentPK,
	}
}

// JoinTargetFor looks up the registered join target for child -> parent,
// returning false if no joinable! declaration registered the pair.
func JoinTargetFor(child, parent *Table) (JoinTarget, bool) {
	jt, ok := joinRegistry[joinKey{child: child, parent: parent}]
	return jt, ok
}

// MustJoinTargetFor is JoinTargetFor but panics with a descriptive message
// if the pair was never declared joinable, for callers that treat an
// undeclared join as a programmer error. The query package does not call
// it; its join check records an error instead.
func MustJoinTargetFor(child, parent *Table) JoinTarget {
	jt, ok := JoinTargetFor(child, parent)
	if !ok {
		panic(fmt.Sprintf("schema: %q is not joinable to %q (missing Joinable(%s, %s, ...) registration)",
			child.Name(), parent.Name(), child.Name(), parent.Name()))
	}
	return jt
}
