// Package sqlcommon holds the SQL plumbing shared by the database sinks:
// identifier quoting per dialect, CREATE TABLE and INSERT text generation,
// table flattening into positional parameters, and batch slicing.
//
// Cleaned cells are written as text (the pipeline normalizes everything to
// strings), so generated DDL uses one text type per dialect plus an integer
// row-label column when the sink is configured to keep labels.
package sqlcommon

import (
	"fmt"
	"strings"

	"listwash/internal/table"
)

// Dialect selects identifier quoting, placeholder style, and type names.
type Dialect int

const (
	// ANSI is double-quoted identifiers with ? placeholders (sqlite).
	ANSI Dialect = iota
	// Postgres is double-quoted identifiers with $n placeholders.
	Postgres
	// MySQL is backtick identifiers with ? placeholders.
	MySQL
	// SQLServer is bracket identifiers with @pn placeholders.
	SQLServer
)

// Ident quotes a single identifier segment, escaping embedded quote
// characters by doubling them.
func (d Dialect) Ident(name string) string {
	switch d {
	case MySQL:
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	case SQLServer:
		return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
	default:
		return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	}
}

// FQN quotes a possibly schema-qualified name like "public.contacts" segment
// by segment; empty segments from stray dots are dropped.
func (d Dialect) FQN(name string) string {
	parts := strings.Split(name, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, d.Ident(p))
	}
	return strings.Join(out, ".")
}

// Placeholder returns the 1-based n-th bind parameter for the dialect.
func (d Dialect) Placeholder(n int) string {
	switch d {
	case Postgres:
		return fmt.Sprintf("$%d", n)
	case SQLServer:
		return fmt.Sprintf("@p%d", n)
	default:
		return "?"
	}
}

func (d Dialect) textType() string {
	if d == SQLServer {
		return "NVARCHAR(MAX)"
	}
	return "TEXT"
}

func (d Dialect) intType() string {
	if d == SQLServer {
		return "INT"
	}
	return "INTEGER"
}

// CreateTable returns an idempotent CREATE TABLE statement for the cleaned
// table's schema: the optional integer label column first, then one text
// column per data column. SQL Server has no CREATE TABLE IF NOT EXISTS, so
// its statement wraps in an IF OBJECT_ID guard instead.
func CreateTable(d Dialect, tbl string, columns []string, indexColumn string) (string, error) {
	if strings.TrimSpace(tbl) == "" {
		return "", fmt.Errorf("table name must not be empty")
	}
	if len(columns) == 0 {
		return "", fmt.Errorf("at least one column is required")
	}
	defs := make([]string, 0, len(columns)+1)
	if indexColumn != "" {
		defs = append(defs, d.Ident(indexColumn)+" "+d.intType())
	}
	for _, c := range columns {
		defs = append(defs, d.Ident(c)+" "+d.textType())
	}
	body := strings.Join(defs, ", ")
	fqn := d.FQN(tbl)
	if d == SQLServer {
		return fmt.Sprintf(
			"IF OBJECT_ID(N'%s', N'U') IS NULL CREATE TABLE %s (%s)",
			fqn, fqn, body,
		), nil
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", fqn, body), nil
}

// Insert returns a multi-row INSERT statement with nRows value tuples.
// Placeholders number consecutively across tuples for the dialects that
// index them ($1..$n, @p1..@pn).
func Insert(d Dialect, tbl string, columns []string, nRows int) (string, error) {
	if len(columns) == 0 {
		return "", fmt.Errorf("at least one column is required")
	}
	if nRows < 1 {
		return "", fmt.Errorf("at least one row is required")
	}
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = d.Ident(c)
	}
	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(d.FQN(tbl))
	sb.WriteString(" (")
	sb.WriteString(strings.Join(quoted, ", "))
	sb.WriteString(") VALUES ")
	n := 1
	for r := 0; r < nRows; r++ {
		if r > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		for c := range columns {
			if c > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(d.Placeholder(n))
			n++
		}
		sb.WriteByte(')')
	}
	return sb.String(), nil
}

// Flatten converts a table into a column list plus positional row values for
// bulk insertion, in schema order. A non-empty indexColumn is prepended and
// each row then leads with its label. nil cells stay nil (SQL NULL).
func Flatten(t *table.Table, indexColumn string) ([]string, [][]any) {
	withIndex := indexColumn != ""
	cols := make([]string, 0, len(t.Columns)+1)
	if withIndex {
		cols = append(cols, indexColumn)
	}
	cols = append(cols, t.Columns...)

	rows := make([][]any, t.Len())
	for i, r := range t.Rows {
		vals := make([]any, 0, len(cols))
		if withIndex {
			vals = append(vals, t.Index[i])
		}
		for _, c := range t.Columns {
			vals = append(vals, r[c])
		}
		rows[i] = vals
	}
	return cols, rows
}

// Batch slices rows into consecutive chunks of at most size rows. A size of
// zero or less yields a single batch with everything; an empty input yields
// no batches. Chunks alias the input slice.
func Batch(rows [][]any, size int) [][][]any {
	if len(rows) == 0 {
		return nil
	}
	if size <= 0 || size >= len(rows) {
		return [][][]any{rows}
	}
	out := make([][][]any, 0, (len(rows)+size-1)/size)
	for start := 0; start < len(rows); start += size {
		end := start + size
		if end > len(rows) {
			end = len(rows)
		}
		out = append(out, rows[start:end])
	}
	return out
}

// Args flattens one batch of rows into the positional argument list matching
// the statement Insert builds for it.
func Args(batch [][]any) []any {
	if len(batch) == 0 {
		return nil
	}
	out := make([]any, 0, len(batch)*len(batch[0]))
	for _, row := range batch {
		out = append(out, row...)
	}
	return out
}
