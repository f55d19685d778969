// Package sqlite writes cleaned tables into a SQLite database via
// database/sql. SQLite has no dedicated bulk-load API, so rows go through a
// prepared INSERT inside a single transaction, which keeps performance
// acceptable for contact-list volumes.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	// Pure-Go SQLite driver, no cgo.
	_ "modernc.org/sqlite"

	"listwash/internal/sink/sqlcommon"
	"listwash/internal/table"
)

// Config holds the sqlite sink configuration derived from sink.Config.
type Config struct {
	// DSN is a SQLite connection string or file path, e.g.:
	//   "file:contacts.db?cache=shared"
	//   "contacts.db"
	DSN string

	// Table is the destination table name.
	Table string

	// IndexColumn, when non-empty, stores row labels in an INTEGER column of
	// this name.
	IndexColumn string

	// AutoCreate issues CREATE TABLE IF NOT EXISTS before inserting. On by
	// default for sqlite, where the destination file usually starts empty.
	AutoCreate bool
}

// Writer is a SQLite-backed sink.
type Writer struct {
	db  *sql.DB
	cfg Config
}

// NewWriter opens the database and pings it with a short timeout to fail
// fast on invalid DSNs.
func NewWriter(ctx context.Context, cfg Config) (*Writer, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, fmt.Errorf("sqlite sink: DSN must not be empty")
	}
	if strings.TrimSpace(cfg.Table) == "" {
		return nil, fmt.Errorf("sqlite sink: table must not be empty")
	}
	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("sqlite sink: open: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite sink: ping: %w", err)
	}
	return &Writer{db: db, cfg: cfg}, nil
}

// Write inserts every row in one transaction through a prepared statement.
// Either every row lands or none do.
func (w *Writer) Write(ctx context.Context, t *table.Table) error {
	if len(t.Columns) == 0 {
		return fmt.Errorf("sqlite sink: table has no columns")
	}
	cols, rows := sqlcommon.Flatten(t, w.cfg.IndexColumn)

	if w.cfg.AutoCreate {
		ddl, err := sqlcommon.CreateTable(sqlcommon.ANSI, w.cfg.Table, t.Columns, w.cfg.IndexColumn)
		if err != nil {
			return fmt.Errorf("sqlite sink: %w", err)
		}
		if _, err := w.db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("sqlite sink: create table: %w", err)
		}
	}
	if len(rows) == 0 {
		return nil
	}

	insert, err := sqlcommon.Insert(sqlcommon.ANSI, w.cfg.Table, cols, 1)
	if err != nil {
		return fmt.Errorf("sqlite sink: %w", err)
	}
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite sink: begin tx: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("sqlite sink: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("sqlite sink: insert row %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite sink: commit: %w", err)
	}
	return nil
}

// Close closes the underlying database handle.
func (w *Writer) Close() error { return w.db.Close() }
