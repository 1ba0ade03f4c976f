// Package querybuilder renders the handful of postgres statements the repositories need:
// filtered selects over matches, batched lookups by id array and model-driven upserts.
// Values are always bound as $n placeholders.
package querybuilder

import (
	"strconv"
	"strings"
)

type Condition interface {
	render(b *binder)
}

// binder accumulates SQL text and the positional arguments it references.
type binder struct {
	sql  strings.Builder
	args []any
}

func (b *binder) write(parts ...string) {
	for _, p := range parts {
		b.sql.WriteString(p)
	}
}

func (b *binder) bind(value any) string {
	b.args = append(b.args, value)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *binder) where(conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			b.write(" WHERE ")
		} else {
			b.write(" AND ")
		}
		c.render(b)
	}
}

type comparison struct {
	column string
	op     string
	value  any
}

func (c comparison) render(b *binder) {
	b.write(c.column, " ", c.op, " ", b.bind(c.value))
}

func Eq(column string, value any) Condition  { return comparison{column, "=", value} }
func Gte(column string, value any) Condition { return comparison{column, ">=", value} }
func Lte(column string, value any) Condition { return comparison{column, "<=", value} }

type anyOf struct {
	column string
	array  any
}

// Any matches column against a postgres array bound as one argument, e.g. pq.Array(ids).
// A single placeholder keeps the statement text stable whatever the batch size.
func Any(column string, array any) Condition {
	return anyOf{column: column, array: array}
}

func (a anyOf) render(b *binder) {
	b.write(a.column, " = ANY(", b.bind(a.array), ")")
}

type disjunction []Condition

// Or groups conditions in parentheses. An empty Or matches nothing.
func Or(conditions ...Condition) Condition {
	return disjunction(conditions)
}

func (d disjunction) render(b *binder) {
	if len(d) == 0 {
		b.write("FALSE")
		return
	}
	b.write("(")
	for i, c := range d {
		if i > 0 {
			b.write(" OR ")
		}
		c.render(b)
	}
	b.write(")")
}
