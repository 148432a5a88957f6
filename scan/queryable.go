package scan

import (
	"context"

	"github.com/Serajian/go-query-builder/conn"
	"github.com/Serajian/go-query-builder/qkerr"
	"github.com/Serajian/go-query-builder/serialize"
)

func notFound() error { return qkerr.NotFound.New() }

// Queryable loads result rows into a slice of T, one row at a time, via
// RowScanner — the core's analogue of Queryable<DB, SqlType>.
type Queryable[T any] interface {
	// RowScanner builds a fresh scan target for one row; its Scan method
	// is called with the row's raw column values in select-list order.
	RowScanner() RowScanner[T]
}

// RowScanner decodes one row into a T.
type RowScanner[T any] interface {
	// Scan consumes vals (already fetched via Rows.Scan) and returns the
	// decoded value.
	Scan(vals []any) (T, error)
}

// QueryableFunc adapts a plain function into a RowScanner, the common case
// where no extra per-row state is needed.
type QueryableFunc[T any] func(vals []any) (T, error)

func (f QueryableFunc[T]) Scan(vals []any) (T, error) { return f(vals) }

// Load runs stmt with binds and decodes every row with scanner.
// columnCount must equal the number of
// values scanner.Scan expects per row.
func Load[T any](ctx context.Context, stmt conn.Statement, binds []serialize.BindParam, columnCount int, scanner RowScanner[T]) ([]T, error) {
	rows, err := stmt.Fetch(ctx, binds)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	vals := make([]any, columnCount)
	ptrs := make([]any, columnCount)
	for i := range vals {
		ptrs[i] = &vals[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		v, err := scanner.Scan(vals)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// LoadOne runs Load and returns its first row, or qkerr.NotFound if the
// result set was empty. Any further rows are ignored.
func LoadOne[T any](ctx context.Context, stmt conn.Statement, binds []serialize.BindParam, columnCount int, scanner RowScanner[T]) (T, error) {
	rows, err := Load(ctx, stmt, binds, columnCount, scanner)
	var zero T
	if err != nil {
		return zero, err
	}
	if len(rows) == 0 {
		return zero, notFound()
	}
	return rows[0], nil
}
