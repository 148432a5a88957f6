package scan

import (
	"context"

	"github.com/Serajian/go-query-builder/conn"
)

// QueryableByName decodes a row by column name rather than position — the
// counterpart the rawsql escape hatch needs, since a hand-written SQL
// string's column order is not statically known the way a SelectStatement's
// select list is.
type QueryableByName[T any] interface {
	// ScanByName builds T from a row, looking up each field by the column
	// names the row actually returned.
	ScanByName(row NamedRow) (T, error)
}

// NamedRow is a fetched row addressed by column name.
type NamedRow interface {
	// Value returns the raw driver value for column, or an error if no
	// such column was returned.
	Value(column string) (any, error)
}

type mapRow map[string]any

func (m mapRow) Value(column string) (any, error) {
	v, ok := m[column]
	if !ok {
		return nil, errColumnNotFound(column)
	}
	return v, nil
}

func errColumnNotFound(column string) error {
	return columnNotFoundError{column: column}
}

type columnNotFoundError struct{ column string }

func (e columnNotFoundError) Error() string {
	return "scan: column " + e.column + " not present in result set"
}

// LoadByName runs stmt and decodes each row by column name via fn: the
// path for raw SQL queries whose projection shape is not known until the
// query runs. stmt is fetched with no bind parameters.
func LoadByName[T any](ctx context.Context, stmt conn.Statement, fn func(NamedRow) (T, error)) ([]T, error) {
	rows, err := stmt.Fetch(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []T
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(mapRow, len(cols))
		for i, c := range cols {
			row[c] = vals[i]
		}
		v, err := fn(row)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
