// Package table defines the in-memory tabular model shared by sources,
// cleaning steps, and sinks. A Table is a small, ordered rectangle of cells:
// Columns fixes the schema and its order, Rows holds one map per record, and
// Index carries a stable per-row label so that callers can tell which input
// rows survived filtering before the final reindex.
//
// Cell values are `string` or `nil` for everything read from a source; steps
// that do not understand a value leave it untouched, so non-string values can
// flow through a pipeline unharmed.
package table

import (
	"errors"
	"fmt"
)

// ErrUnknownColumn is returned (wrapped) by any operation that names a column
// the table does not have.
var ErrUnknownColumn = errors.New("unknown column")

// Row is a single record keyed by column name.
type Row map[string]any

// Table is an ordered set of rows sharing one schema.
//
// Invariant: len(Index) == len(Rows) at all times.
type Table struct {
	Columns []string
	Rows    []Row
	Index   []int
}

// New returns an empty table with the given column order.
func New(columns ...string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Append adds a row with the next free label (max existing label + 1, or 0).
func (t *Table) Append(r Row) {
	next := 0
	for _, i := range t.Index {
		if i >= next {
			next = i + 1
		}
	}
	t.AppendLabeled(r, next)
}

// AppendLabeled adds a row with an explicit label. Sources use this to pin
// labels to input file order.
func (t *Table) AppendLabeled(r Row, label int) {
	t.Rows = append(t.Rows, r)
	t.Index = append(t.Index, label)
}

// ColumnIndex returns the position of name in the schema, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether name is part of the schema.
func (t *Table) HasColumn(name string) bool { return t.ColumnIndex(name) >= 0 }

// Require returns a wrapped ErrUnknownColumn naming the first absent column,
// or nil when every name is present. Steps use it for uniform errors.
func (t *Table) Require(names ...string) error {
	for _, n := range names {
		if !t.HasColumn(n) {
			return fmt.Errorf("%w: %q", ErrUnknownColumn, n)
		}
	}
	return nil
}

// Cell returns the value at row i, column col (nil when absent).
func (t *Table) Cell(i int, col string) any { return t.Rows[i][col] }

// SetCell stores v at row i, column col. The column must already exist in the
// schema; use AddColumn first for new columns.
func (t *Table) SetCell(i int, col string, v any) { t.Rows[i][col] = v }

// AddColumn appends a new column to the schema and fills existing rows with
// nil. Adding an existing column is an error so steps cannot silently clobber
// data.
func (t *Table) AddColumn(name string) error {
	if t.HasColumn(name) {
		return fmt.Errorf("duplicate column %q", name)
	}
	t.Columns = append(t.Columns, name)
	for _, r := range t.Rows {
		r[name] = nil
	}
	return nil
}

// DropColumn removes name from the schema and from every row. Dropping an
// absent column returns ErrUnknownColumn (wrapped).
func (t *Table) DropColumn(name string) error {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	t.Columns = append(t.Columns[:idx], t.Columns[idx+1:]...)
	for _, r := range t.Rows {
		delete(r, name)
	}
	return nil
}

// Equal reports whether two tables have the same schema, labels, and cell
// values (compared with ==, which covers the string/nil cells sources
// produce). Mostly a test aid.
func (t *Table) Equal(o *Table) bool {
	if len(t.Columns) != len(o.Columns) || len(t.Rows) != len(o.Rows) {
		return false
	}
	for i, c := range t.Columns {
		if o.Columns[i] != c {
			return false
		}
	}
	for i := range t.Index {
		if t.Index[i] != o.Index[i] {
			return false
		}
	}
	for i, r := range t.Rows {
		for _, c := range t.Columns {
			if r[c] != o.Rows[i][c] {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy (fresh row maps, fresh slices). Cell values are
// copied by assignment; they are strings or nil in practice.
func (t *Table) Clone() *Table {
	out := &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]Row, len(t.Rows)),
		Index:   append([]int(nil), t.Index...),
	}
	for i, r := range t.Rows {
		nr := make(Row, len(r))
		for k, v := range r {
			nr[k] = v
		}
		out.Rows[i] = nr
	}
	return out
}
