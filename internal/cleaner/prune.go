package cleaner

import (
	"fmt"

	"listwash/internal/table"
)

// DropColumns removes the named columns from the schema and from every row.
//
// Policy: naming an absent column is an error unless IgnoreMissing is set, in
// which case it is a no-op for that name. The strict default catches config
// typos before they silently ship a column that was meant to be gone.
type DropColumns struct {
	Columns       []string
	IgnoreMissing bool
}

func (DropColumns) Name() string { return "drop_columns" }

func (d DropColumns) Apply(t *table.Table) (*table.Table, error) {
	for _, c := range d.Columns {
		if !t.HasColumn(c) {
			if d.IgnoreMissing {
				continue
			}
			return nil, fmt.Errorf("%w: %q", table.ErrUnknownColumn, c)
		}
		if err := t.DropColumn(c); err != nil {
			return nil, err
		}
	}
	return t, nil
}
