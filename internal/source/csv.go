package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"listwash/internal/table"
)

// CSVOptions configures the CSV reader. All fields are optional; zero values
// get sensible defaults.
type CSVOptions struct {
	// HasHeader indicates whether the first row contains column headers.
	// Without one, columns are named col_0..col_N-1 from the first row's
	// width.
	HasHeader bool

	// Comma specifies the field delimiter. When zero, ',' is used.
	Comma rune

	// TrimSpace trims leading/trailing spaces from each field value.
	TrimSpace bool

	// HeaderMap maps raw header cells to canonical keys, overriding the
	// default folding. Only applies when HasHeader is true.
	HeaderMap map[string]string
}

// CSV reads a delimiter-separated file into a table.
type CSV struct {
	path string
	opt  CSVOptions
}

// NewCSV returns a CSV source bound to path.
func NewCSV(path string, opt CSVOptions) *CSV { return &CSV{path: path, opt: opt} }

func (s *CSV) Read(ctx context.Context) (*table.Table, error) {
	f, err := open(ctx, s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := parseCSV(f, s.opt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return t, nil
}

// parseCSV reads every record from r. The csv.Reader runs lenient
// (LazyQuotes, free field count) and width is enforced here against the
// header instead, so the error message can say which row is off and by how
// much. Any malformed row fails the read.
func parseCSV(r io.Reader, opt CSVOptions) (*table.Table, error) {
	cr := csv.NewReader(r)
	if opt.Comma != 0 {
		cr.Comma = opt.Comma
	}
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	first, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty input", ErrFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrFormat, err)
	}

	var headers []string
	if opt.HasHeader {
		if headers, err = canonicalHeaders(first, opt.HeaderMap); err != nil {
			return nil, err
		}
	} else {
		headers = make([]string, len(first))
		for i := range headers {
			headers[i] = fmt.Sprintf("col_%d", i)
		}
	}

	t := table.New(headers...)
	label := 0
	if !opt.HasHeader {
		appendCells(t, headers, first, opt.TrimSpace, label)
		label++
	}
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrFormat, line, err)
		}
		if len(row) != len(headers) {
			return nil, fmt.Errorf("%w: row %d has %d fields, header has %d", ErrFormat, line, len(row), len(headers))
		}
		appendCells(t, headers, row, opt.TrimSpace, label)
		label++
	}
	return t, nil
}

func appendCells(t *table.Table, headers, row []string, trim bool, label int) {
	rec := make(table.Row, len(headers))
	for i, name := range headers {
		val := ""
		if i < len(row) {
			val = row[i]
		}
		if trim {
			val = strings.TrimSpace(val)
		}
		rec[name] = emptyToNil(val)
	}
	t.AppendLabeled(rec, label)
}
