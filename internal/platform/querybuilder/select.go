package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

type SelectBuilder struct {
	columns  []string
	distinct bool
	table    string
	where    []Condition
	orderBy  []string
	limit    int
	offset   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: columns}
}

func (s *SelectBuilder) Distinct() *SelectBuilder {
	s.distinct = true
	return s
}

func (s *SelectBuilder) From(table string) *SelectBuilder {
	s.table = table
	return s
}

func (s *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	s.where = append(s.where, conditions...)
	return s
}

func (s *SelectBuilder) OrderBy(terms ...string) *SelectBuilder {
	s.orderBy = append(s.orderBy, terms...)
	return s
}

// Page sets LIMIT and OFFSET. Zero leaves the clause out, so a zero limit means no limit.
func (s *SelectBuilder) Page(limit, offset int) *SelectBuilder {
	s.limit, s.offset = limit, offset
	return s
}

func (s *SelectBuilder) ToSQL() (string, []any, error) {
	switch {
	case len(s.columns) == 0:
		return "", nil, fmt.Errorf("select: no columns")
	case strings.TrimSpace(s.table) == "":
		return "", nil, fmt.Errorf("select: no table")
	case s.limit < 0 || s.offset < 0:
		return "", nil, fmt.Errorf("select: negative page (limit=%d offset=%d)", s.limit, s.offset)
	}

	var b binder
	b.write("SELECT ")
	if s.distinct {
		b.write("DISTINCT ")
	}
	b.write(strings.Join(s.columns, ", "), " FROM ", s.table)
	b.where(s.where)
	if len(s.orderBy) > 0 {
		b.write(" ORDER BY ", strings.Join(s.orderBy, ", "))
	}
	if s.limit > 0 {
		b.write(" LIMIT ", strconv.Itoa(s.limit))
	}
	if s.offset > 0 {
		b.write(" OFFSET ", strconv.Itoa(s.offset))
	}
	return b.sql.String(), b.args, nil
}
