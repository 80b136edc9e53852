package querybuilder

import (
	"errors"
	"fmt"
	"strings"
)

type InsertBuilder struct {
	table      string
	columns    []string
	rows       [][]any
	conflict   []string
	updates    []string
	updateExpr map[string]string
	returning  []string
	err        error
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (i *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	i.columns = append([]string(nil), columns...)
	return i
}

func (i *InsertBuilder) Values(values ...any) *InsertBuilder {
	i.rows = append(i.rows, append([]any(nil), values...))
	return i
}

// OnConflict turns the insert into an upsert keyed on columns. Every inserted
// column other than the key is overwritten from EXCLUDED unless listed in
// keep. Use SetOnConflict for columns that need an expression.
func (i *InsertBuilder) OnConflict(key []string, keep ...string) *InsertBuilder {
	i.conflict = append([]string(nil), key...)
	skip := make(map[string]struct{}, len(key)+len(keep))
	for _, col := range key {
		skip[col] = struct{}{}
	}
	for _, col := range keep {
		skip[col] = struct{}{}
	}
	i.updates = i.updates[:0]
	for _, col := range i.columns {
		if _, ok := skip[col]; !ok {
			i.updates = append(i.updates, col)
		}
	}
	return i
}

// SetOnConflict overrides the conflict update for one column with raw SQL.
func (i *InsertBuilder) SetOnConflict(column, expr string) *InsertBuilder {
	if i.updateExpr == nil {
		i.updateExpr = make(map[string]string)
	}
	if _, ok := i.updateExpr[column]; !ok {
		found := false
		for _, col := range i.updates {
			if col == column {
				found = true
				break
			}
		}
		if !found {
			i.updates = append(i.updates, column)
		}
	}
	i.updateExpr[column] = expr
	return i
}

func (i *InsertBuilder) Returning(columns ...string) *InsertBuilder {
	i.returning = append([]string(nil), columns...)
	return i
}

func (i *InsertBuilder) ToSQL() (string, []any, error) {
	if i.err != nil {
		return "", nil, i.err
	}
	if strings.TrimSpace(i.table) == "" {
		return "", nil, errors.New("insert: no table")
	}
	if len(i.columns) == 0 {
		return "", nil, errors.New("insert: no columns")
	}
	if len(i.rows) == 0 {
		return "", nil, errors.New("insert: no rows")
	}

	var (
		buf strings.Builder
		b   binder
	)
	buf.WriteString("INSERT INTO ")
	buf.WriteString(i.table)
	buf.WriteString(" (")
	buf.WriteString(strings.Join(i.columns, ", "))
	buf.WriteString(") VALUES ")

	for n, row := range i.rows {
		if len(row) != len(i.columns) {
			return "", nil, fmt.Errorf("insert: row %d has %d values for %d columns", n, len(row), len(i.columns))
		}
		if n > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString("(")
		for c, value := range row {
			if c > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(b.bind(value))
		}
		buf.WriteString(")")
	}

	if len(i.conflict) > 0 {
		buf.WriteString(" ON CONFLICT (")
		buf.WriteString(strings.Join(i.conflict, ", "))
		buf.WriteString(")")
		if len(i.updates) == 0 {
			buf.WriteString(" DO NOTHING")
		} else {
			buf.WriteString(" DO UPDATE SET ")
			for n, col := range i.updates {
				if n > 0 {
					buf.WriteString(", ")
				}
				buf.WriteString(col)
				buf.WriteString(" = ")
				if expr, ok := i.updateExpr[col]; ok {
					buf.WriteString(expr)
				} else {
					buf.WriteString("EXCLUDED.")
					buf.WriteString(col)
				}
			}
		}
	}
	renderList(&buf, " RETURNING ", i.returning)

	return buf.String(), b.args, nil
}
