package cleaner

import "listwash/internal/table"

// DefaultNullTokens are placeholder literals that mean "no data" when they
// show up as cell text. Matching is whole-cell and case-sensitive; variants
// belong in this list (or in config), not in ad hoc comparisons elsewhere.
var DefaultNullTokens = []string{"N/a", "NaN"}

// FillNull runs two table-wide passes: first every nil cell becomes "", then
// every cell exactly equal to a placeholder token becomes "".
type FillNull struct {
	Tokens []string // nil means DefaultNullTokens
}

func (FillNull) Name() string { return "fill_null" }

func (f FillNull) Apply(t *table.Table) (*table.Table, error) {
	tokens := f.Tokens
	if tokens == nil {
		tokens = DefaultNullTokens
	}
	for _, r := range t.Rows {
		for _, c := range t.Columns {
			if r[c] == nil {
				r[c] = ""
			}
		}
	}
	for _, r := range t.Rows {
		for _, c := range t.Columns {
			s, ok := r[c].(string)
			if !ok {
				continue
			}
			for _, tok := range tokens {
				if s == tok {
					r[c] = ""
					break
				}
			}
		}
	}
	return t, nil
}
