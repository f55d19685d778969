package cleaner

import "listwash/internal/table"

// MapValues rewrites one column's cells by exact-match lookup: raw values
// found in Mapping become their canonical form ("Y" -> "Yes"), everything
// else passes through unchanged, nil and non-strings included. Configure one
// MapValues step per column.
type MapValues struct {
	Column  string
	Mapping map[string]string
}

func (MapValues) Name() string { return "map_values" }

func (m MapValues) Apply(t *table.Table) (*table.Table, error) {
	if err := t.Require(m.Column); err != nil {
		return nil, err
	}
	for _, r := range t.Rows {
		if s, ok := r[m.Column].(string); ok {
			if mapped, ok := m.Mapping[s]; ok {
				r[m.Column] = mapped
			}
		}
	}
	return t, nil
}
