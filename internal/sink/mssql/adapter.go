// This file wires the mssql backend into the sink factory; registration
// happens in init so callers only need a blank import (see sink/all).
package mssql

import (
	"context"

	"listwash/internal/sink"
)

// newWriter is a test hook that points to NewWriter by default. Tests may
// replace this variable to avoid real DB connections.
var newWriter = NewWriter

var _ sink.Sink = (*Writer)(nil)

func init() {
	sink.Register("mssql", func(ctx context.Context, cfg sink.Config) (sink.Sink, error) {
		w, err := newWriter(ctx, Config{
			DSN:         cfg.DSN,
			Table:       cfg.Table,
			IndexColumn: cfg.IndexName(),
			AutoCreate:  cfg.AutoCreate,
			BatchSize:   cfg.BatchSize,
		})
		if err != nil {
			return nil, err
		}
		return w, nil
	})
}
