package querybuilder

import (
	"errors"
	"strconv"
	"strings"
)

type join struct {
	table string
	on    string
}

type SelectBuilder struct {
	columns []string
	table   string
	joins   []join
	where   []Condition
	groupBy []string
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (s *SelectBuilder) From(table string) *SelectBuilder {
	s.table = table
	return s
}

// Join adds an inner join. on is copied verbatim and must not bind values.
func (s *SelectBuilder) Join(table, on string) *SelectBuilder {
	s.joins = append(s.joins, join{table: table, on: on})
	return s
}

func (s *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	s.where = append(s.where, conditions...)
	return s
}

func (s *SelectBuilder) GroupBy(columns ...string) *SelectBuilder {
	s.groupBy = append(s.groupBy, columns...)
	return s
}

func (s *SelectBuilder) OrderBy(columns ...string) *SelectBuilder {
	s.orderBy = append(s.orderBy, columns...)
	return s
}

func (s *SelectBuilder) Limit(limit int) *SelectBuilder {
	s.limit = limit
	return s
}

func (s *SelectBuilder) ToSQL() (string, []any, error) {
	if len(s.columns) == 0 {
		return "", nil, errors.New("select: no columns")
	}
	if strings.TrimSpace(s.table) == "" {
		return "", nil, errors.New("select: no table")
	}

	var (
		buf strings.Builder
		b   binder
	)
	renderList(&buf, "SELECT ", s.columns)
	buf.WriteString(" FROM ")
	buf.WriteString(s.table)
	for _, j := range s.joins {
		buf.WriteString(" JOIN ")
		buf.WriteString(j.table)
		buf.WriteString(" ON ")
		buf.WriteString(j.on)
	}
	renderWhere(&buf, &b, s.where)
	renderList(&buf, " GROUP BY ", s.groupBy)
	renderList(&buf, " ORDER BY ", s.orderBy)
	if s.limit > 0 {
		buf.WriteString(" LIMIT ")
		buf.WriteString(strconv.Itoa(s.limit))
	}

	return buf.String(), b.args, nil
}
