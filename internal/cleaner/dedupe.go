package cleaner

import (
	"fmt"

	"github.com/zeebo/xxh3"

	"listwash/internal/table"
)

// Dedupe drops rows that are field-wise identical to an earlier row, keeping
// the first occurrence and its label. Order of survivors is input order.
//
// Rows are bucketed by an xxh3 hash of their cells in column order; a hash
// hit is confirmed field-wise before the row is dropped, so a collision can
// never discard real data.
type Dedupe struct{}

func (Dedupe) Name() string { return "dedupe" }

func (Dedupe) Apply(t *table.Table) (*table.Table, error) {
	if t.Len() < 2 {
		return t, nil
	}
	seen := make(map[uint64][]int, t.Len())
	rows := make([]table.Row, 0, t.Len())
	index := make([]int, 0, t.Len())
	buf := make([]byte, 0, 128)
	for i, r := range t.Rows {
		buf = encodeRow(buf[:0], t.Columns, r)
		h := xxh3.Hash(buf)
		dup := false
		for _, j := range seen[h] {
			if sameRow(t.Columns, r, t.Rows[j]) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		seen[h] = append(seen[h], i)
		rows = append(rows, r)
		index = append(index, t.Index[i])
	}
	t.Rows, t.Index = rows, index
	return t, nil
}

// encodeRow writes a canonical byte encoding of the row's cells in column
// order: nil, string, and other values get distinct type tags so that nil and
// "" never hash alike, with 0x1f between cells.
func encodeRow(buf []byte, cols []string, r table.Row) []byte {
	for _, c := range cols {
		switch v := r[c].(type) {
		case nil:
			buf = append(buf, 0x00)
		case string:
			buf = append(buf, 0x01)
			buf = append(buf, v...)
		default:
			buf = append(buf, 0x02)
			buf = fmt.Appendf(buf, "%v", v)
		}
		buf = append(buf, 0x1f)
	}
	return buf
}

func sameRow(cols []string, a, b table.Row) bool {
	for _, c := range cols {
		if !sameCell(a[c], b[c]) {
			return false
		}
	}
	return true
}

func sameCell(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return as == bs
	}
	if aok != bok {
		return false
	}
	// Mirror the hash encoding's fmt fallback for non-string values.
	return fmt.Sprint(a) == fmt.Sprint(b)
}
