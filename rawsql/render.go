package rawsql

import (
	"fmt"
	"strings"

	"github.com/Serajian/go-query-builder/dialect"
)

func (b *Builder) buildSelect(d dialect.Dialect) (string, []interface{}, error) {
	p := &paramCounter{d: d}
	var q strings.Builder

	q.WriteString("SELECT ")
	q.WriteString(strings.Join(b.columns, ", "))

	if b.table != "" {
		q.WriteString(" FROM ")
		q.WriteString(b.table)
	}

	for _, j := range b.joins {
		fmt.Fprintf(&q, " %s %s ON %s", j.Type, j.Table, j.Condition)
	}

	if len(b.conditions) > 0 {
		q.WriteString(" WHERE ")
		b.renderConditions(&q, p, b.conditions)
	}

	if len(b.groupBy) > 0 {
		q.WriteString(" GROUP BY ")
		q.WriteString(strings.Join(b.groupBy, ", "))
	}

	if len(b.having) > 0 {
		q.WriteString(" HAVING ")
		b.renderConditions(&q, p, b.having)
	}

	if len(b.orderBy) > 0 {
		parts := make([]string, len(b.orderBy))
		for i, o := range b.orderBy {
			if o.Desc {
				parts[i] = o.Column + " DESC"
			} else {
				parts[i] = o.Column + " ASC"
			}
		}
		q.WriteString(" ORDER BY ")
		q.WriteString(strings.Join(parts, ", "))
	}

	q.WriteString(d.LimitOffset(int64(b.limit), int64(b.offset), b.limit > 0, b.offset > 0))

	return q.String(), p.params, nil
}

func (b *Builder) buildInsert(d dialect.Dialect) (string, []interface{}, error) {
	p := &paramCounter{d: d}
	var q strings.Builder

	q.WriteString("INSERT INTO ")
	q.WriteString(b.table)

	if len(b.insertRows) == 0 {
		q.WriteString(" DEFAULT VALUES")
		return q.String(), p.params, nil
	}

	columns := sortedKeys(b.insertRows[0])
	q.WriteString(" (")
	q.WriteString(strings.Join(columns, ", "))
	q.WriteString(") VALUES ")

	rowStrs := make([]string, len(b.insertRows))
	for i, row := range b.insertRows {
		if len(sortedKeys(row)) != len(columns) {
			return "", nil, fmt.Errorf("rawsql: row %d has a different column set than row 0", i)
		}
		phs := make([]string, len(columns))
		for j, col := range columns {
			v, ok := row[col]
			if !ok {
				return "", nil, fmt.Errorf("rawsql: row %d is missing column %q", i, col)
			}
			phs[j] = p.bind(v)
		}
		rowStrs[i] = "(" + strings.Join(phs, ", ") + ")"
	}
	q.WriteString(strings.Join(rowStrs, ", "))

	if err := b.renderConflict(d, p, &q); err != nil {
		return "", nil, err
	}
	b.renderReturning(d, &q)

	return q.String(), p.params, nil
}

func (b *Builder) buildUpdate(d dialect.Dialect) (string, []interface{}, error) {
	if len(b.updateData) == 0 {
		return "", nil, fmt.Errorf("rawsql: UPDATE has no Set assignments")
	}
	p := &paramCounter{d: d}
	var q strings.Builder

	q.WriteString("UPDATE ")
	q.WriteString(b.table)
	q.WriteString(" SET ")

	keys := sortedKeys(b.updateData)
	parts := make([]string, len(keys))
	for i, col := range keys {
		parts[i] = col + " = " + p.bind(b.updateData[col])
	}
	q.WriteString(strings.Join(parts, ", "))

	b.renderWhereOrGuard(&q, p)
	b.renderReturning(d, &q)

	return q.String(), p.params, nil
}

func (b *Builder) buildDelete(d dialect.Dialect) (string, []interface{}, error) {
	p := &paramCounter{d: d}
	var q strings.Builder

	q.WriteString("DELETE FROM ")
	q.WriteString(b.table)

	b.renderWhereOrGuard(&q, p)
	b.renderReturning(d, &q)

	return q.String(), p.params, nil
}

func (b *Builder) renderWhereOrGuard(q *strings.Builder, p *paramCounter) {
	switch {
	case len(b.conditions) > 0:
		q.WriteString(" WHERE ")
		b.renderConditions(q, p, b.conditions)
	case b.guardWrites:
		q.WriteString(" WHERE 1=0")
	}
}

func (b *Builder) renderReturning(d dialect.Dialect, q *strings.Builder) {
	if len(b.returning) == 0 || !d.SupportsReturning() {
		return
	}
	q.WriteString(" RETURNING ")
	q.WriteString(strings.Join(b.returning, ", "))
}

func (b *Builder) renderConflict(d dialect.Dialect, p *paramCounter, q *strings.Builder) error {
	if len(b.conflictColumns) == 0 && b.conflictConstr == "" && !b.conflictNothing && len(b.conflictUpdate) == 0 {
		return nil
	}

	if d.UpsertForm() == dialect.UpsertOnDuplicateKey {
		q.WriteString(" ON DUPLICATE KEY UPDATE ")
		if b.conflictNothing && len(b.conflictUpdate) == 0 {
			cols := sortedKeys(b.insertRows[0])
			fmt.Fprintf(q, "%s = %s", cols[0], cols[0])
			return nil
		}
		parts := make([]string, 0, len(b.conflictUpdate))
		for _, col := range sortedKeys(b.conflictUpdate) {
			parts = append(parts, col+" = "+b.renderAssignValue(p, b.conflictUpdate[col]))
		}
		q.WriteString(strings.Join(parts, ", "))
		return nil
	}

	q.WriteString(" ON CONFLICT")
	switch {
	case b.conflictConstr != "":
		fmt.Fprintf(q, " ON CONSTRAINT %s", b.conflictConstr)
	case len(b.conflictColumns) > 0:
		fmt.Fprintf(q, " (%s)", strings.Join(b.conflictColumns, ", "))
	}

	if b.conflictNothing {
		q.WriteString(" DO NOTHING")
		return nil
	}
	if len(b.conflictUpdate) > 0 {
		q.WriteString(" DO UPDATE SET ")
		parts := make([]string, 0, len(b.conflictUpdate))
		for _, col := range sortedKeys(b.conflictUpdate) {
			parts = append(parts, col+" = "+b.renderAssignValue(p, b.conflictUpdate[col]))
		}
		q.WriteString(strings.Join(parts, ", "))
	}
	return nil
}

func (b *Builder) renderAssignValue(p *paramCounter, v interface{}) string {
	if raw, ok := v.(RawExpr); ok {
		return string(raw)
	}
	return p.bind(v)
}

func (b *Builder) renderConditions(q *strings.Builder, p *paramCounter, conditions []Condition) {
	for i, c := range conditions {
		if i > 0 {
			fmt.Fprintf(q, " %s ", c.Logic)
		}

		switch c.Op {
		case NULL, NOTNULL:
			fmt.Fprintf(q, "%s %s", c.Column, c.Op)

		case IN, NIN:
			values, ok := sliceToInterfaces(c.Value)
			if !ok || len(values) == 0 {
				if c.Op == IN {
					q.WriteString("(1=0)")
				} else {
					q.WriteString("(1=1)")
				}
				continue
			}
			phs := make([]string, len(values))
			for j, v := range values {
				phs[j] = p.bind(v)
			}
			fmt.Fprintf(q, "%s %s (%s)", c.Column, c.Op, strings.Join(phs, ", "))

		default:
			fmt.Fprintf(q, "%s %s %s", c.Column, c.Op, p.bind(c.Value))
		}
	}
}
