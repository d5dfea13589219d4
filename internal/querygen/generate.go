// Package querygen builds PostgreSQL statements from the query form.
package querygen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

var (
	ErrTableRequired   = errors.New("Table name is required")
	ErrColumnsRequired = errors.New("Column names are required for INSERT statement")
	ErrSetRequired     = errors.New("SET clause is required for UPDATE statement")
)

// DeleteGuard replaces a missing WHERE clause on DELETE so the generated
// statement removes nothing until the user adds real conditions.
const DeleteGuard = "-- WARNING: Add a WHERE clause to prevent deleting all rows"

// Generate builds the statement described by req. An empty query type
// means select.
func Generate(req Request) (string, error) {
	table := strings.TrimSpace(req.TableName)
	if table == "" {
		return "", ErrTableRequired
	}

	qt := req.QueryType
	if qt == "" {
		qt = TypeSelect
	}

	switch qt {
	case TypeSelect:
		return generateSelect(table, req)
	case TypeInsert:
		return generateInsert(table, req)
	case TypeUpdate:
		return generateUpdate(table, req)
	case TypeDelete:
		return generateDelete(table, req)
	case TypeCreateTable:
		return generateCreateTable(table, req), nil
	default:
		return "", fmt.Errorf("Unsupported query type: %s", qt)
	}
}

func finish(b sq.Sqlizer) (string, error) {
	sql, _, err := b.ToSql()
	if err != nil {
		return "", fmt.Errorf("building statement: %w", err)
	}
	return sql + ";", nil
}

func generateSelect(table string, req Request) (string, error) {
	columns := strings.TrimSpace(req.Columns)
	if columns == "" {
		columns = "*"
	}

	b := sq.Select(columns).From(table)
	if jt, jc := strings.TrimSpace(req.JoinTable), strings.TrimSpace(req.JoinCondition); jt != "" && jc != "" {
		b = b.Join(jt + " ON " + jc)
	}
	if c := strings.TrimSpace(req.Conditions); c != "" {
		b = b.Where(c)
	}
	if g := strings.TrimSpace(req.GroupBy); g != "" {
		b = b.GroupBy(g)
	}
	if o := strings.TrimSpace(req.OrderBy); o != "" {
		b = b.OrderBy(o)
	}
	if l := strings.TrimSpace(req.Limit); l != "" {
		n, err := strconv.ParseUint(l, 10, 64)
		if err != nil {
			return "", fmt.Errorf("LIMIT must be a non-negative integer, got %q", l)
		}
		b = b.Limit(n)
	}
	return finish(b)
}

// placeholders returns $1..$n as raw expressions.
func placeholders(n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = sq.Expr(fmt.Sprintf("$%d", i+1))
	}
	return out
}

func generateInsert(table string, req Request) (string, error) {
	cols := splitList(req.Columns)
	if len(cols) == 0 {
		return "", ErrColumnsRequired
	}

	b := sq.Insert(table).Columns(cols...).Values(placeholders(len(cols))...)
	if contains(cols, "id") {
		b = b.Suffix("RETURNING id")
	}
	return finish(b)
}

func generateUpdate(table string, req Request) (string, error) {
	set := strings.TrimSpace(req.Columns)
	if set == "" {
		return "", ErrSetRequired
	}

	b := sq.Update(table)
	if strings.Contains(set, "=") {
		for _, part := range splitTopLevel(set) {
			col, val, ok := strings.Cut(part, "=")
			col, val = strings.TrimSpace(col), strings.TrimSpace(val)
			if !ok || col == "" || val == "" {
				return "", fmt.Errorf("invalid SET assignment %q", strings.TrimSpace(part))
			}
			b = b.Set(col, sq.Expr(val))
		}
	} else {
		for i, col := range splitList(set) {
			b = b.Set(col, sq.Expr(fmt.Sprintf("$%d", i+1)))
		}
	}

	if c := strings.TrimSpace(req.Conditions); c != "" {
		b = b.Where(c).Suffix("RETURNING id")
	}
	return finish(b)
}

func generateDelete(table string, req Request) (string, error) {
	c := strings.TrimSpace(req.Conditions)
	if c == "" {
		sql, err := finish(sq.Delete(table).Where("1=0"))
		if err != nil {
			return "", err
		}
		return sql + " " + DeleteGuard, nil
	}
	return finish(sq.Delete(table).Where(c).Suffix("RETURNING id"))
}

func generateCreateTable(table string, req Request) string {
	columns := strings.TrimSpace(req.Columns)
	if columns == "" {
		columns = "column_name data_type"
	}
	return fmt.Sprintf("CREATE TABLE %s (\n    id SERIAL PRIMARY KEY,\n    %s\n);", table, columns)
}

// splitList splits a comma-separated list and drops empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitTopLevel splits on commas outside parentheses and quotes, so
// "a = coalesce(b, 0), c = 'x,y'" yields two assignments.
func splitTopLevel(s string) []string {
	var (
		parts []string
		depth int
		quote rune
		start int
	)
	for i, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '(':
			depth++
		case r == ')':
			if depth > 0 {
				depth--
			}
		case r == ',' && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	parts = append(parts, s[start:])

	out := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
