package source

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"listwash/internal/table"
)

// XLSXOptions configures the workbook reader.
type XLSXOptions struct {
	// Sheet names the worksheet to read. Empty means the workbook's first
	// sheet.
	Sheet string

	// TrimSpace trims leading/trailing spaces from each cell value.
	TrimSpace bool

	// HeaderMap maps raw header cells to canonical keys, overriding the
	// default folding.
	HeaderMap map[string]string
}

// XLSX reads one worksheet of an Excel workbook into a table. The first row
// is always the header.
type XLSX struct {
	path string
	opt  XLSXOptions
}

// NewXLSX returns an XLSX source bound to path.
func NewXLSX(path string, opt XLSXOptions) *XLSX { return &XLSX{path: path, opt: opt} }

func (s *XLSX) Read(ctx context.Context) (*table.Table, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	// Stat separately so an absent file classifies as unavailable rather
	// than as a workbook parse failure.
	if _, err := os.Stat(s.path); err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", s.path, ErrUnavailable, err)
	}
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", s.path, ErrFormat, err)
	}
	defer f.Close()

	sheet := s.opt.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, fmt.Errorf("%s: %w: workbook has no sheets", s.path, ErrFormat)
		}
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: sheet %q: %w: %v", s.path, sheet, ErrFormat, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w: sheet %q is empty", s.path, ErrFormat, sheet)
	}

	headers, err := canonicalHeaders(rows[0], s.opt.HeaderMap)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	t := table.New(headers...)
	for i, row := range rows[1:] {
		if len(row) > len(headers) {
			return nil, fmt.Errorf("%s: %w: row %d has %d cells, header has %d", s.path, ErrFormat, i+2, len(row), len(headers))
		}
		// GetRows omits trailing empty cells; pad to header width so every
		// row carries the full schema.
		rec := make(table.Row, len(headers))
		for j, name := range headers {
			val := ""
			if j < len(row) {
				val = row[j]
			}
			if s.opt.TrimSpace {
				val = strings.TrimSpace(val)
			}
			rec[name] = emptyToNil(val)
		}
		t.AppendLabeled(rec, i)
	}
	return t, nil
}
