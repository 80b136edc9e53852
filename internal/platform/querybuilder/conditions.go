// Package querybuilder renders the small subset of PostgreSQL the scoring
// repositories need. Placeholders are numbered ($1, $2, ...) in the order
// values are bound.
package querybuilder

import (
	"strconv"
	"strings"
)

// binder accumulates bound values and hands out their placeholders.
type binder struct {
	args []any
}

func (b *binder) bind(value any) string {
	b.args = append(b.args, value)
	return "$" + strconv.Itoa(len(b.args))
}

// expand replaces each '?' in expr with the next bound value. Surplus '?'
// characters are left as they are.
func (b *binder) expand(expr string, values []any) string {
	if len(values) == 0 {
		return expr
	}

	var out strings.Builder
	next := 0
	for i := 0; i < len(expr); i++ {
		if expr[i] == '?' && next < len(values) {
			out.WriteString(b.bind(values[next]))
			next++
			continue
		}
		out.WriteByte(expr[i])
	}
	return out.String()
}

type Condition interface {
	render(buf *strings.Builder, b *binder)
}

type conditionFunc func(buf *strings.Builder, b *binder)

func (f conditionFunc) render(buf *strings.Builder, b *binder) { f(buf, b) }

func Eq(column string, value any) Condition {
	return conditionFunc(func(buf *strings.Builder, b *binder) {
		buf.WriteString(column)
		buf.WriteString(" = ")
		buf.WriteString(b.bind(value))
	})
}

func IsNull(column string) Condition {
	return conditionFunc(func(buf *strings.Builder, _ *binder) {
		buf.WriteString(column)
		buf.WriteString(" IS NULL")
	})
}

func IsNotNull(column string) Condition {
	return conditionFunc(func(buf *strings.Builder, _ *binder) {
		buf.WriteString(column)
		buf.WriteString(" IS NOT NULL")
	})
}

// Any matches column against every element of an array parameter such as a
// pq.Array, so a selector of any length binds a single value.
func Any(column string, array any) Condition {
	return conditionFunc(func(buf *strings.Builder, b *binder) {
		buf.WriteString(column)
		buf.WriteString(" = ANY(")
		buf.WriteString(b.bind(array))
		buf.WriteString(")")
	})
}

// Expr is raw SQL with '?' markers for values.
func Expr(expr string, values ...any) Condition {
	return conditionFunc(func(buf *strings.Builder, b *binder) {
		buf.WriteString(b.expand(expr, values))
	})
}

func renderWhere(buf *strings.Builder, b *binder, conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			buf.WriteString(" WHERE ")
		} else {
			buf.WriteString(" AND ")
		}
		c.render(buf, b)
	}
}

func renderList(buf *strings.Builder, keyword string, items []string) {
	if len(items) == 0 {
		return
	}
	buf.WriteString(keyword)
	buf.WriteString(strings.Join(items, ", "))
}
