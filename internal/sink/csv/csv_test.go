package csv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"listwash/internal/sink"
	"listwash/internal/table"
)

func contacts() *table.Table {
	tb := table.New("last_name", "phone_number")
	tb.AppendLabeled(table.Row{"last_name": "Brock", "phone_number": "123-545-5421"}, 0)
	tb.AppendLabeled(table.Row{"last_name": "O'Sullivan, Jr", "phone_number": nil}, 3)
	return tb
}

/*
TestWriteFile verifies the emitted bytes: header from the schema, one record
per row, nil cells as empty fields, quoting left to encoding/csv.
*/
func TestWriteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.csv")
	w, err := NewWriter(Config{Path: path})
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.Write(context.Background(), contacts()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := "last_name,phone_number\n" +
		"Brock,123-545-5421\n" +
		"\"O'Sullivan, Jr\",\n"
	if string(got) != want {
		t.Fatalf("output:\n got %q\nwant %q", got, want)
	}
}

/*
TestWriteIndexColumn verifies the label column leads each record and keeps the
labels the table carries, not positions.
*/
func TestWriteIndexColumn(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.csv")
	w, err := NewWriter(Config{Path: path, IndexColumn: "row_label"})
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.Write(context.Background(), contacts()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := "row_label,last_name,phone_number\n" +
		"0,Brock,123-545-5421\n" +
		"3,\"O'Sullivan, Jr\",\n"
	if string(got) != want {
		t.Fatalf("output:\n got %q\nwant %q", got, want)
	}
}

func TestWriteCustomComma(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.csv")
	w, err := NewWriter(Config{Path: path, Comma: ';'})
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	tb := table.New("a", "b")
	tb.Append(table.Row{"a": "1", "b": "2"})
	if err := w.Write(context.Background(), tb); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, _ := os.ReadFile(path)
	if want := "a;b\n1;2\n"; string(got) != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestWriteCreatesParentDirs(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out", "nested", "contacts.csv")
	w, err := NewWriter(Config{Path: path})
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.Write(context.Background(), contacts()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("output missing: %v", err)
	}
}

func TestWriteEmptyTable(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.csv")
	w, err := NewWriter(Config{Path: path})
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.Write(context.Background(), table.New("a", "b")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, _ := os.ReadFile(path)
	if want := "a,b\n"; string(got) != want {
		t.Fatalf("output = %q, want header only %q", got, want)
	}
}

func TestNewWriterRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := NewWriter(Config{}); err == nil {
		t.Fatalf("empty path accepted")
	}
}

// TestFactoryRegistration verifies sink.New routes "csv" here and maps the
// index settings through IndexName.
func TestFactoryRegistration(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.csv")
	s, err := sink.New(context.Background(), sink.Config{
		Kind:         "csv",
		Path:         path,
		IncludeIndex: true,
	})
	if err != nil {
		t.Fatalf("sink.New: %v", err)
	}
	defer s.Close()

	if err := s.Write(context.Background(), contacts()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, _ := os.ReadFile(path)
	want := "row_label,last_name,phone_number\n" +
		"0,Brock,123-545-5421\n" +
		"3,\"O'Sullivan, Jr\",\n"
	if string(got) != want {
		t.Fatalf("output:\n got %q\nwant %q", got, want)
	}
}
