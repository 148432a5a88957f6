package schema

// allowPair is an unordered pair of tables certified to co-occur in a
// single from-clause.
type allowPair struct{ a, b *Table }

var coOccurRegistry = map[allowPair]struct{}{}

func normalize(a, b *Table) allowPair {
	if a.Name() > b.Name() {
		a, b = b, a
	}
	return allowPair{a: a, b: b}
}

// AllowTablesToAppearInSameQuery certifies every
// unordered pair among the given tables as legal to combine in one
// from-clause. A table always co-occurs with itself and with any table it
// is Joinable to or from, so only unrelated tables need certification.
func AllowTablesToAppearInSameQuery(tables ...*Table) {
	for i := range tables {
		for j := i + 1; j < len(tables); j++ {
			coOccurRegistry[normalize(tables[i], tables[j])] = struct{}{}
		}
	}
}

// CanAppearTogether reports whether a and b may legally appear together in
// one from-clause: they are the same table, one is declared Joinable to the
// other, or they were named together in AllowTablesToAppearInSameQuery.
func CanAppearTogether(a, b *Table) bool {
	if a == b {
		return true
	}
	if _, ok := JoinTargetFor(a, b); ok {
		return true
	}
	if _, ok := JoinTargetFor(b, a); ok {
		return true
	}
	_, ok := coOccurRegistry[normalize(a, b)]
	return ok
}
