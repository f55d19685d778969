// This file wires the mysql backend into the sink factory; registration
// happens in init so callers only need a blank import (see sink/all).
package mysql

import (
	"context"

	"listwash/internal/sink"
)

// newWriter is a test hook that points to NewWriter by default. Tests may
// replace it to avoid real DB connections.
var newWriter = NewWriter

var _ sink.Sink = (*Writer)(nil)

func init() {
	sink.Register("mysql", func(ctx context.Context, cfg sink.Config) (sink.Sink, error) {
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
