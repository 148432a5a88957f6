package expr

import (
	"fmt"

	"github.com/Serajian/go-query-builder/schema"
)

// ErrAggregateNotAllowed is returned by RequireNonAggregate when an
// aggregate expression appears somewhere it is never legal (WHERE,
// JOIN...ON, GROUP BY key expressions) — the NonAggregate predicate.
var ErrAggregateNotAllowed = fmt.Errorf("expr: aggregate expression is not allowed here")

// RequireNonAggregate enforces the NonAggregate predicate: e must not be
// AggYes. Used by the query package's Filter/OrFilter, join ON predicates
// and GroupBy keys, and by UpdateStatement/DeleteStatement.Filter.
func RequireNonAggregate(e Grouped) error {
	if e.AggKind() == AggYes {
		return ErrAggregateNotAllowed
	}
	return nil
}

// ValidUnderGroupBy reports whether a column c is valid in a SELECT list
// under GROUP BY gb: iff c appears in gb, or c's table's
// primary key appears in gb (functional dependency), or c is inside an
// aggregate (AggKind == AggYes, checked by the caller before reaching
// here — a bare aggregate expression has no single owning column).
func ValidUnderGroupBy(c interface{ Table() *schema.Table }, columnName string, groupByColumns []string, groupByTables map[*schema.Table]bool) bool {
	for _, g := range groupByColumns {
		if g == columnName {
			return true
		}
	}
	// Functional dependency: the owning table's full primary key is in gb.
	if groupByTables[c.Table()] {
		for _, pk := range c.Table().PrimaryKey() {
			found := false
			for _, g := range groupByColumns {
				if g == pk {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return len(c.Table().PrimaryKey()) > 0
	}
	return false
}
