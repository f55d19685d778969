// Package xlsx writes a cleaned table to an Excel workbook with one sheet:
// a bold header row from the schema, then one row per record.
package xlsx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"listwash/internal/sink"
	"listwash/internal/table"
)

const defaultSheet = "Sheet1"

// Config holds the xlsx sink configuration derived from sink.Config.
type Config struct {
	// Path is the output workbook; parent directories are created as needed.
	Path string

	// Sheet names the worksheet; empty means "Sheet1".
	Sheet string

	// IndexColumn, when non-empty, emits row labels as a leading column with
	// this header.
	IndexColumn string
}

// Writer is an xlsx-backed sink.
type Writer struct {
	cfg Config
}

// NewWriter returns a Writer bound to cfg.Path.
func NewWriter(cfg Config) (*Writer, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("xlsx sink: path must not be empty")
	}
	return &Writer{cfg: cfg}, nil
}

// Write builds the workbook in memory and saves it to cfg.Path. nil cells
// become empty cells; every other value is written as-is and excelize picks
// the cell type.
func (w *Writer) Write(ctx context.Context, t *table.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := filepath.Dir(w.cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("xlsx sink: %w", err)
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := w.cfg.Sheet
	if sheet == "" {
		sheet = defaultSheet
	}
	if sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return fmt.Errorf("xlsx sink: rename sheet: %w", err)
		}
	}

	withIndex := w.cfg.IndexColumn != ""
	header := make([]any, 0, len(t.Columns)+1)
	if withIndex {
		header = append(header, w.cfg.IndexColumn)
	}
	for _, c := range t.Columns {
		header = append(header, c)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("xlsx sink: header: %w", err)
	}
	if err := w.boldHeader(f, sheet, len(header)); err != nil {
		return err
	}

	for i, r := range t.Rows {
		vals := make([]any, 0, len(header))
		if withIndex {
			vals = append(vals, t.Index[i])
		}
		for _, c := range t.Columns {
			vals = append(vals, r[c])
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsx sink: row %d: %w", i, err)
		}
		if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
			return fmt.Errorf("xlsx sink: row %d: %w", i, err)
		}
	}

	if err := f.SaveAs(w.cfg.Path); err != nil {
		return fmt.Errorf("xlsx sink: save %s: %w", w.cfg.Path, err)
	}
	return nil
}

// boldHeader applies a bold font to the header row.
func (w *Writer) boldHeader(f *excelize.File, sheet string, width int) error {
	if width == 0 {
		return nil
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx sink: header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(width, 1)
	if err != nil {
		return fmt.Errorf("xlsx sink: header style: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("xlsx sink: header style: %w", err)
	}
	return nil
}

// Close is a no-op; Write owns the workbook for its whole lifetime.
func (w *Writer) Close() error { return nil }

var _ sink.Sink = (*Writer)(nil)

func init() {
	sink.Register("xlsx", func(ctx context.Context, cfg sink.Config) (sink.Sink, error) {
		return NewWriter(Config{
			Path:        cfg.Path,
			Sheet:       cfg.Sheet,
			IndexColumn: cfg.IndexName(),
		})
	})
}
