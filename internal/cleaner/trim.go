package cleaner

import (
	"strings"

	"listwash/internal/table"
)

// DefaultCutset is the edge junk seen in hand-entered name fields.
const DefaultCutset = "/._"

// TrimEdges strips any rune in Cutset from both ends of the configured
// columns' cells until neither end has one left. Interior runes are never
// touched ("O.Brien/" -> "O.Brien" keeps its inner period). Non-string cells
// pass through.
type TrimEdges struct {
	Columns []string
	Cutset  string // empty means DefaultCutset
}

func (TrimEdges) Name() string { return "trim_edges" }

func (tr TrimEdges) Apply(t *table.Table) (*table.Table, error) {
	if err := t.Require(tr.Columns...); err != nil {
		return nil, err
	}
	cutset := tr.Cutset
	if cutset == "" {
		cutset = DefaultCutset
	}
	for _, r := range t.Rows {
		for _, c := range tr.Columns {
			if s, ok := r[c].(string); ok {
				r[c] = strings.Trim(s, cutset)
			}
		}
	}
	return t, nil
}
