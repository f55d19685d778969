package cleaner

import "listwash/internal/table"

// DropWhere removes rows whose column equals Equals, by exact string match
// only; no pattern matching. The retained set is computed in one pass over
// the rows before anything mutates, so removal can never skip or mis-index
// trailing rows.
type DropWhere struct {
	Column string
	Equals string
}

func (DropWhere) Name() string { return "drop_where" }

func (d DropWhere) Apply(t *table.Table) (*table.Table, error) {
	if err := t.Require(d.Column); err != nil {
		return nil, err
	}
	retain(t, func(r table.Row) bool {
		s, ok := r[d.Column].(string)
		return !ok || s != d.Equals
	})
	return t, nil
}

// DropEmpty removes rows whose column is "" or nil.
type DropEmpty struct {
	Column string
}

func (DropEmpty) Name() string { return "drop_empty" }

func (d DropEmpty) Apply(t *table.Table) (*table.Table, error) {
	if err := t.Require(d.Column); err != nil {
		return nil, err
	}
	retain(t, func(r table.Row) bool {
		switch v := r[d.Column].(type) {
		case nil:
			return false
		case string:
			return v != ""
		default:
			return true
		}
	})
	return t, nil
}

// retain materializes the rows keep reports true for, in order, with their
// labels.
func retain(t *table.Table, keep func(table.Row) bool) {
	rows := make([]table.Row, 0, len(t.Rows))
	index := make([]int, 0, len(t.Rows))
	for i, r := range t.Rows {
		if keep(r) {
			rows = append(rows, r)
			index = append(index, t.Index[i])
		}
	}
	t.Rows, t.Index = rows, index
}
