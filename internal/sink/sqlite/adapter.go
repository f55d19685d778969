// This file wires the sqlite backend into the sink factory; registration
// happens in init so callers only need a blank import (see sink/all).
package sqlite

import (
	"context"

	"listwash/internal/sink"
)

// newWriter is a test hook that points to NewWriter by default. Tests may
// replace it to avoid touching a real database file.
var newWriter = NewWriter

var _ sink.Sink = (*Writer)(nil)

func init() {
	sink.Register("sqlite", func(ctx context.Context, cfg sink.Config) (sink.Sink, error) {
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
