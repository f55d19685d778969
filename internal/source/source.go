// Package source reads tabular input files into tables.
//
// Readers exist for CSV and XLSX. Both canonicalize header names the same
// way (see canonicalHeaders), convert empty cells to nil, and label rows
// 0..N-1 in file order.
//
// Two sentinels classify every failure: ErrUnavailable when the input path
// cannot be opened, ErrFormat when its content does not parse as a table.
// Callers test with errors.Is; messages carry the path. Unlike a lenient
// ingest loop there is no row skipping here: a malformed row fails the whole
// read, because a cleaning run must never silently drop input.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"listwash/internal/table"
)

// ErrUnavailable means the input path does not exist or cannot be read.
var ErrUnavailable = errors.New("source unavailable")

// ErrFormat means the input opened but its content is not a parseable table.
var ErrFormat = errors.New("bad source format")

// Source reads one table.
type Source interface {
	Read(ctx context.Context) (*table.Table, error)
}

// open opens path for reading. A canceled context returns immediately
// without touching the filesystem; filesystem errors carry both
// ErrUnavailable and the underlying error, so errors.Is works against
// either (e.g., os.ErrNotExist).
func open(ctx context.Context, path string) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", path, ErrUnavailable, err)
	}
	return f, nil
}

// emptyToNil converts an empty string to nil; all other values return as-is.
func emptyToNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}
