// Package csv writes a cleaned table to a delimiter-separated file. Column
// order follows the table schema, so output is byte-for-byte deterministic
// for a given input.
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"listwash/internal/sink"
	"listwash/internal/table"
)

// Config holds the csv sink configuration derived from sink.Config.
type Config struct {
	// Path is the output file; parent directories are created as needed.
	Path string

	// Comma is the field delimiter; zero means ','.
	Comma rune

	// IndexColumn, when non-empty, emits row labels as a leading column with
	// this header.
	IndexColumn string
}

// Writer is a csv-backed sink.
type Writer struct {
	cfg Config
}

// NewWriter returns a Writer bound to cfg.Path.
func NewWriter(cfg Config) (*Writer, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("csv sink: path must not be empty")
	}
	return &Writer{cfg: cfg}, nil
}

// Write creates (or truncates) the output file and writes a header row plus
// one record per table row. nil cells become empty fields.
func (w *Writer) Write(ctx context.Context, t *table.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := filepath.Dir(w.cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("csv sink: %w", err)
		}
	}
	f, err := os.Create(w.cfg.Path)
	if err != nil {
		return fmt.Errorf("csv sink: %w", err)
	}

	cw := csv.NewWriter(f)
	if w.cfg.Comma != 0 {
		cw.Comma = w.cfg.Comma
	}

	withIndex := w.cfg.IndexColumn != ""
	header := make([]string, 0, len(t.Columns)+1)
	if withIndex {
		header = append(header, w.cfg.IndexColumn)
	}
	header = append(header, t.Columns...)
	if err := cw.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("csv sink: header: %w", err)
	}

	rec := make([]string, len(header))
	for i, r := range t.Rows {
		rec = rec[:0]
		if withIndex {
			rec = append(rec, fmt.Sprintf("%d", t.Index[i]))
		}
		for _, c := range t.Columns {
			rec = append(rec, cellString(r[c]))
		}
		if err := cw.Write(rec); err != nil {
			f.Close()
			return fmt.Errorf("csv sink: row %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return fmt.Errorf("csv sink: flush: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("csv sink: close %s: %w", w.cfg.Path, err)
	}
	return nil
}

// Close is a no-op; Write owns the file handle for its whole lifetime.
func (w *Writer) Close() error { return nil }

func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

var _ sink.Sink = (*Writer)(nil)

func init() {
	sink.Register("csv", func(ctx context.Context, cfg sink.Config) (sink.Sink, error) {
		return NewWriter(Config{
			Path:        cfg.Path,
			Comma:       cfg.Comma,
			IndexColumn: cfg.IndexName(),
		})
	})
}
