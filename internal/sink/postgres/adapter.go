// This file wires the postgres backend into the sink factory; registration
// happens in init so callers only need a blank import (see sink/all).
package postgres

import (
	"context"

	"listwash/internal/sink"
)

// newWriter is a test hook that points to NewWriter by default. Tests may
// replace it to avoid real database connections.
var newWriter = NewWriter

var _ sink.Sink = (*Writer)(nil)

func init() {
	sink.Register("postgres", func(ctx context.Context, cfg sink.Config) (sink.Sink, error) {
		w, err := newWriter(ctx, Config{
			DSN:         cfg.DSN,
			Table:       cfg.Table,
			IndexColumn: cfg.IndexName(),
			AutoCreate:  cfg.AutoCreate,
		})
		if err != nil {
			return nil, err
		}
		return w, nil
	})
}
