// Package sink contains the sink-agnostic contract for writing a cleaned
// table, plus the factory registry concrete backends hook into.
//
// Backends live in subpackages (csv, xlsx, sqlite, postgres, mysql, mssql)
// and register themselves at init time; importing listwash/internal/sink/all
// enables every built-in kind. The rest of the application depends only on
// the Sink interface and never imports a database driver directly.
package sink

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"listwash/internal/table"
)

// DefaultIndexColumn names the row-label column emitted when a sink is
// configured with include_index and no explicit index_column.
const DefaultIndexColumn = "row_label"

// Sink writes one cleaned table to a destination.
type Sink interface {
	// Write stores the table. It is called at most once per run per sink.
	Write(ctx context.Context, t *table.Table) error

	// Close releases the sink's resources (file handles, connection pools).
	Close() error
}

// Config is the union of settings the built-in backends understand. Each
// factory picks the fields for its kind and validates the ones it cannot run
// without.
type Config struct {
	// Kind selects the backend: "csv", "xlsx", "sqlite", "postgres",
	// "mysql", or "mssql".
	Kind string

	// Path is the output file for the file backends.
	Path string

	// Comma is the csv field delimiter; zero means ','.
	Comma rune

	// Sheet names the worksheet for the xlsx backend; empty means "Sheet1".
	Sheet string

	// DSN is the connection string for the database backends.
	DSN string

	// Table is the destination table for the database backends, optionally
	// schema-qualified ("public.contacts", "dbo.contacts").
	Table string

	// BatchSize caps rows per INSERT batch; zero means the backend default.
	BatchSize int

	// AutoCreate makes a database backend issue CREATE TABLE before writing.
	AutoCreate bool

	// IncludeIndex emits the row labels as a leading column.
	IncludeIndex bool

	// IndexColumn names that column; empty means DefaultIndexColumn.
	IndexColumn string
}

// IndexName resolves the row-label column name, or "" when labels are not
// written.
func (c Config) IndexName() string {
	if !c.IncludeIndex {
		return ""
	}
	if c.IndexColumn != "" {
		return c.IndexColumn
	}
	return DefaultIndexColumn
}

// Factory constructs a Sink from its configuration.
type Factory func(ctx context.Context, cfg Config) (Sink, error)

var (
	regMu     sync.RWMutex
	factories = map[string]Factory{}
)

// Register registers (or replaces) the factory for a kind. It is typically
// called from backend packages' init functions; replacement is allowed so
// tests can install fakes.
func Register(kind string, fn Factory) {
	regMu.Lock()
	defer regMu.Unlock()
	factories[kind] = fn
}

// New constructs the sink for cfg.Kind. Kinds with no registered factory are
// an error; make sure the backend package is linked in (see sink/all).
func New(ctx context.Context, cfg Config) (Sink, error) {
	regMu.RLock()
	fn, ok := factories[cfg.Kind]
	regMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported sink.kind=%s", cfg.Kind)
	}
	return fn(ctx, cfg)
}

// ListKinds returns the registered kinds, sorted, as a snapshot copy.
func ListKinds() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	kinds := make([]string, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
