package querybuilder

import (
	"errors"
	"strings"
)

type assignment struct {
	column string
	expr   string
	values []any
}

type UpdateBuilder struct {
	table     string
	sets      []assignment
	where     []Condition
	returning []string
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (u *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	u.sets = append(u.sets, assignment{column: column, expr: "?", values: []any{value}})
	return u
}

// SetExpr assigns raw SQL with '?' markers for values.
func (u *UpdateBuilder) SetExpr(column, expr string, values ...any) *UpdateBuilder {
	u.sets = append(u.sets, assignment{column: column, expr: expr, values: values})
	return u
}

func (u *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	u.where = append(u.where, conditions...)
	return u
}

func (u *UpdateBuilder) Returning(columns ...string) *UpdateBuilder {
	u.returning = append([]string(nil), columns...)
	return u
}

func (u *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(u.table) == "" {
		return "", nil, errors.New("update: no table")
	}
	if len(u.sets) == 0 {
		return "", nil, errors.New("update: no assignments")
	}

	var (
		buf strings.Builder
		b   binder
	)
	buf.WriteString("UPDATE ")
	buf.WriteString(u.table)
	buf.WriteString(" SET ")
	for n, set := range u.sets {
		if n > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(set.column)
		buf.WriteString(" = ")
		buf.WriteString(b.expand(set.expr, set.values))
	}
	renderWhere(&buf, &b, u.where)
	renderList(&buf, " RETURNING ", u.returning)

	return buf.String(), b.args, nil
}
