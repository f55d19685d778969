package cleaner

import (
	"fmt"
	"strings"

	"listwash/internal/table"
)

// SplitColumn splits one column on a delimiter into len(Into) new columns,
// consuming only the first len(Into)-1 delimiters; everything after them
// stays in the final part verbatim, extra delimiters included. Missing
// trailing parts are null. nil and non-string cells leave all parts null.
//
// The source column stays in place; drop it with DropColumns once the parts
// are out.
type SplitColumn struct {
	Column    string
	Delimiter string // empty means ", "
	Into      []string
}

func (SplitColumn) Name() string { return "split_column" }

func (sp SplitColumn) Apply(t *table.Table) (*table.Table, error) {
	if len(sp.Into) == 0 {
		return nil, fmt.Errorf("no destination columns")
	}
	if err := t.Require(sp.Column); err != nil {
		return nil, err
	}
	delim := sp.Delimiter
	if delim == "" {
		delim = ", "
	}
	for _, c := range sp.Into {
		if err := t.AddColumn(c); err != nil {
			return nil, err
		}
	}
	for _, r := range t.Rows {
		s, ok := r[sp.Column].(string)
		if !ok {
			continue
		}
		parts := strings.SplitN(s, delim, len(sp.Into))
		for i, c := range sp.Into {
			if i < len(parts) {
				r[c] = parts[i]
			}
		}
	}
	return t, nil
}
