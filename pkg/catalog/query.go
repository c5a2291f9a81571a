package catalog

import (
	"strconv"
	"strings"

	"github.com/edgeflare/tastebud/pkg/store"
	"github.com/jackc/pgx/v5"
)

type predicate struct {
	column string
	value  any
}

type orderParam struct {
	column string
	desc   bool
}

// selectQuery builds a single parameterized SELECT. Identifiers are quoted and
// values only ever appear as bind arguments.
type selectQuery struct {
	table   string
	columns []string
	where   []predicate
	order   []orderParam
}

func newSelect(table string, columns ...string) *selectQuery {
	return &selectQuery{table: table, columns: columns}
}

// whereEq adds an equality predicate. Predicates are combined with AND.
func (q *selectQuery) whereEq(column string, value any) *selectQuery {
	q.where = append(q.where, predicate{column: column, value: value})
	return q
}

func (q *selectQuery) orderBy(column string, desc bool) *selectQuery {
	q.order = append(q.order, orderParam{column: column, desc: desc})
	return q
}

func (q *selectQuery) build(d store.Dialect) (string, []any) {
	var sb strings.Builder
	args := make([]any, 0, len(q.where))

	sb.WriteString("SELECT ")
	if len(q.columns) == 0 {
		sb.WriteString("*")
	}
	for i, col := range q.columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(pgx.Identifier{col}.Sanitize())
	}

	sb.WriteString(" FROM ")
	sb.WriteString(pgx.Identifier{q.table}.Sanitize())

	for i, p := range q.where {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		sb.WriteString(pgx.Identifier{p.column}.Sanitize())

		// SQLite has no boolean type; files not written by our migrations may
		// hold the flags as 'true'/'false' text instead of 1/0.
		if b, ok := p.value.(bool); ok && d == store.SQLite {
			args = append(args, b, strconv.FormatBool(b))
			sb.WriteString(" IN (")
			sb.WriteString(d.Placeholder(len(args) - 1))
			sb.WriteString(", ")
			sb.WriteString(d.Placeholder(len(args)))
			sb.WriteString(")")
			continue
		}

		args = append(args, p.value)
		sb.WriteString(" = ")
		sb.WriteString(d.Placeholder(len(args)))
	}

	for i, o := range q.order {
		if i == 0 {
			sb.WriteString(" ORDER BY ")
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(pgx.Identifier{o.column}.Sanitize())
		if o.desc {
			sb.WriteString(" DESC")
		} else {
			sb.WriteString(" ASC")
		}
	}

	return sb.String(), args
}
