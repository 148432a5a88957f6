package serialize

import (
	"fmt"
	"strings"
)

// DebugQuery renders f's SQL with bound parameters substituted inline, for
// logging/diagnostics only — never for execution, since inline substitution
// is not injection-safe. A small, widely reached-for diagnostic helper for
// printing a query while debugging.
func DebugQuery(f QueryFragment, quote IdentifierQuoter, placeholder PlaceholderFunc) (string, error) {
	sql, binds, _, err := Walk(f, quote, placeholder)
	if err != nil {
		return "", err
	}
	out := sql
	for i, b := range binds {
		ph := placeholder(i + 1)
		out = strings.Replace(out, ph, fmt.Sprintf("%v", b.Value), 1)
	}
	return out, nil
}
