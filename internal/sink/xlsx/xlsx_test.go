package xlsx

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"listwash/internal/sink"
	"listwash/internal/source"
	"listwash/internal/table"
)

/*
TestWriteRoundtrip writes a table and reads it back through the xlsx source:
schema, labels, and cells must survive, nil cells included (an empty
workbook cell reads back as nil).
*/
func TestWriteRoundtrip(t *testing.T) {
	t.Parallel()

	tb := table.New("last_name", "phone_number", "state")
	tb.AppendLabeled(table.Row{"last_name": "Brock", "phone_number": "123-545-5421", "state": "IL"}, 0)
	tb.AppendLabeled(table.Row{"last_name": "White", "phone_number": nil, "state": "NM"}, 1)

	path := filepath.Join(t.TempDir(), "out.xlsx")
	w, err := NewWriter(Config{Path: path})
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.Write(context.Background(), tb); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got, err := source.NewXLSX(path, source.XLSXOptions{}).Read(context.Background())
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !got.Equal(tb) {
		t.Fatalf("roundtrip mismatch:\n got %#v %#v\nwant %#v %#v", got.Columns, got.Rows, tb.Columns, tb.Rows)
	}
}

/*
TestWriteNamedSheetAndIndex verifies the sheet rename and the leading label
column.
*/
func TestWriteNamedSheetAndIndex(t *testing.T) {
	t.Parallel()

	tb := table.New("last_name")
	tb.AppendLabeled(table.Row{"last_name": "Brock"}, 7)

	path := filepath.Join(t.TempDir(), "out.xlsx")
	w, err := NewWriter(Config{Path: path, Sheet: "contacts", IndexColumn: "row_label"})
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.Write(context.Background(), tb); err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetName(0); got != "contacts" {
		t.Fatalf("sheet name = %q, want %q", got, "contacts")
	}
	rows, err := f.GetRows("contacts")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0][0] != "row_label" || rows[0][1] != "last_name" {
		t.Fatalf("header = %v", rows[0])
	}
	if rows[1][0] != "7" || rows[1][1] != "Brock" {
		t.Fatalf("record = %v", rows[1])
	}
}

func TestNewWriterRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := NewWriter(Config{}); err == nil {
		t.Fatalf("empty path accepted")
	}
}

// TestFactoryRegistration verifies sink.New routes "xlsx" here.
func TestFactoryRegistration(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.xlsx")
	s, err := sink.New(context.Background(), sink.Config{Kind: "xlsx", Path: path})
	if err != nil {
		t.Fatalf("sink.New: %v", err)
	}
	defer s.Close()

	tb := table.New("a")
	tb.Append(table.Row{"a": "x"})
	if err := s.Write(context.Background(), tb); err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Sheet1")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 || rows[0][0] != "a" || rows[1][0] != "x" {
		t.Fatalf("workbook content = %v", rows)
	}
}
