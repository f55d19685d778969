package cleaner

import (
	"fmt"
	"strings"

	"listwash/internal/table"
)

// DefaultPhoneSeparators are the characters stripped from phone values
// wherever they appear, not just at the ends. Spaces count as separators so
// "706 695 0392" cleans like "706-695-0392".
const DefaultPhoneSeparators = "-/|_. "

// DefaultPhonePlaceholders are formatted junk values equivalent to "no
// number". The set is an explicit denylist so new placeholder artifacts get
// added here (or in config) instead of as one-off string comparisons.
var DefaultPhonePlaceholders = []string{"--", "nan--", "Na--"}

// CleanPhone canonicalizes one phone column to AAA-BBB-CCCC:
//
//  1. nil becomes "" before anything else.
//  2. Every separator character is removed anywhere in the value.
//  3. Exactly 10 characters left: reformat as AAA-BBB-CCCC. Anything else,
//     including numbers with a leading country code, becomes "". Short
//     numbers are discarded, never zero-padded.
//  4. A result that is only separator characters, or a known placeholder
//     token, becomes "".
//
// The step is idempotent: a canonical value strips back to its 10 digits and
// reformats identically.
type CleanPhone struct {
	Column       string
	Separators   string   // empty means DefaultPhoneSeparators
	Placeholders []string // nil means DefaultPhonePlaceholders
}

func (CleanPhone) Name() string { return "clean_phone" }

func (p CleanPhone) Apply(t *table.Table) (*table.Table, error) {
	if err := t.Require(p.Column); err != nil {
		return nil, err
	}
	seps := p.Separators
	if seps == "" {
		seps = DefaultPhoneSeparators
	}
	junk := p.Placeholders
	if junk == nil {
		junk = DefaultPhonePlaceholders
	}
	for _, r := range t.Rows {
		r[p.Column] = cleanPhone(r[p.Column], seps, junk)
	}
	return t, nil
}

func cleanPhone(v any, seps string, junk []string) string {
	var s string
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		s = x
	default:
		s = fmt.Sprint(x)
	}
	rs := []rune(stripRunes(s, seps))
	if len(rs) != 10 {
		return ""
	}
	out := string(rs[0:3]) + "-" + string(rs[3:6]) + "-" + string(rs[6:10])
	if stripRunes(out, seps) == "" {
		return ""
	}
	for _, j := range junk {
		if out == j {
			return ""
		}
	}
	return out
}

// stripRunes removes every occurrence of any rune in cutset.
func stripRunes(s, cutset string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !strings.ContainsRune(cutset, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
