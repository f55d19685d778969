package source

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\uFEFF"

// foldTransform decomposes, removes nonspacing marks (accents), recomposes.
var foldTransform = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// canonicalHeaders produces canonical column names for a header row. A
// HeaderMap entry (matched against the trimmed raw cell) wins outright;
// everything else goes through foldHeader. Unnamable cells become col_N.
// Duplicate canonical names are ErrFormat: two columns that collapse to one
// key would silently shadow each other in every row map.
func canonicalHeaders(h []string, headerMap map[string]string) ([]string, error) {
	res := make([]string, len(h))
	seen := make(map[string]int, len(h))
	for i, col := range h {
		c := strings.TrimSpace(col)
		if i == 0 {
			c = strings.TrimPrefix(c, utf8BOM)
		}
		name := ""
		if headerMap != nil {
			if m, ok := headerMap[c]; ok {
				name = m
			}
		}
		if name == "" {
			name = foldHeader(c)
		}
		if name == "" {
			name = fmt.Sprintf("col_%d", i)
		}
		if j, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: columns %d and %d both canonicalize to %q", ErrFormat, j, i, name)
		}
		seen[name] = i
		res[i] = name
	}
	return res, nil
}

// foldHeader lowercases, folds accents to their base letters, and collapses
// separator runs to single underscores: "Paying Customer" ->
// "paying_customer", "Kód zákazníka" -> "kod_zakaznika".
func foldHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if ascii, _, err := transform.String(foldTransform, s); err == nil {
		s = ascii
	}
	var b strings.Builder
	prevUnderscore := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevUnderscore = false
		case r == '_' || r == ' ' || r == '-' || r == '.':
			if !prevUnderscore && b.Len() > 0 {
				b.WriteRune('_')
				prevUnderscore = true
			}
		default:
			// drop anything else
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
