// Package mysql writes cleaned tables into MySQL/MariaDB. The driver has no
// COPY-style bulk API, so rows go out as multi-row INSERT statements batched
// inside a single transaction.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"listwash/internal/sink/sqlcommon"
	"listwash/internal/table"
)

// defaultBatch is the number of rows per INSERT when the config does not set
// one. 500 tuples keeps statements well under MySQL's placeholder and packet
// limits for contact-list column counts.
const defaultBatch = 500

// Config holds the mysql sink configuration derived from sink.Config.
type Config struct {
	// DSN is a go-sql-driver DSN, e.g.:
	//   "user:pass@tcp(localhost:3306)/crm?parseTime=true"
	DSN string

	// Table is the destination table name.
	Table string

	// IndexColumn, when non-empty, stores row labels in an INTEGER column of
	// this name.
	IndexColumn string

	// AutoCreate issues CREATE TABLE IF NOT EXISTS before inserting.
	AutoCreate bool

	// BatchSize caps rows per INSERT statement; zero means defaultBatch.
	BatchSize int
}

// Writer is a MySQL-backed sink.
type Writer struct {
	db  *sql.DB
	cfg Config
}

// NewWriter opens the pool and pings it with a short timeout. sql.Open
// already parses the DSN, so malformed DSNs fail without any network I/O.
func NewWriter(ctx context.Context, cfg Config) (*Writer, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, fmt.Errorf("mysql sink: DSN must not be empty")
	}
	if strings.TrimSpace(cfg.Table) == "" {
		return nil, fmt.Errorf("mysql sink: table must not be empty")
	}
	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("mysql sink: open: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("mysql sink: ping: %w", err)
	}
	return &Writer{db: db, cfg: cfg}, nil
}

// Write inserts every row in one transaction, batch by batch. Either every
// row lands or none do.
func (w *Writer) Write(ctx context.Context, t *table.Table) error {
	if len(t.Columns) == 0 {
		return fmt.Errorf("mysql sink: table has no columns")
	}
	cols, rows := sqlcommon.Flatten(t, w.cfg.IndexColumn)

	if w.cfg.AutoCreate {
		ddl, err := sqlcommon.CreateTable(sqlcommon.MySQL, w.cfg.Table, t.Columns, w.cfg.IndexColumn)
		if err != nil {
			return fmt.Errorf("mysql sink: %w", err)
		}
		if _, err := w.db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("mysql sink: create table: %w", err)
		}
	}
	if len(rows) == 0 {
		return nil
	}

	size := w.cfg.BatchSize
	if size <= 0 {
		size = defaultBatch
	}

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("mysql sink: begin tx: %w", err)
	}
	for i, batch := range sqlcommon.Batch(rows, size) {
		insert, err := sqlcommon.Insert(sqlcommon.MySQL, w.cfg.Table, cols, len(batch))
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("mysql sink: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insert, sqlcommon.Args(batch)...); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("mysql sink: insert batch %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("mysql sink: commit: %w", err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (w *Writer) Close() error { return w.db.Close() }
