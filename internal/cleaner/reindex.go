package cleaner

import "listwash/internal/table"

// Reindex renumbers rows 0..N-1 in their current order, discarding prior
// labels for good. Terminal step of the standard pipeline; a zero-row table
// is fine.
type Reindex struct{}

func (Reindex) Name() string { return "reindex" }

func (Reindex) Apply(t *table.Table) (*table.Table, error) {
	for i := range t.Index {
		t.Index[i] = i
	}
	return t, nil
}
