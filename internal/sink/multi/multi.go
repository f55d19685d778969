// Package multi fans one cleaned table out to several sinks concurrently.
// Children only read the table, so they can all run at once; the first write
// error cancels the writes still in flight.
package multi

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"listwash/internal/sink"
	"listwash/internal/table"
)

// Fanout writes to every child sink in parallel.
type Fanout struct {
	children []sink.Sink
}

var _ sink.Sink = (*Fanout)(nil)

// New builds a fan-out over the given sinks. At least one child is required.
func New(children ...sink.Sink) (*Fanout, error) {
	if len(children) == 0 {
		return nil, fmt.Errorf("multi sink: at least one child is required")
	}
	return &Fanout{children: append([]sink.Sink(nil), children...)}, nil
}

// Write sends the table to every child concurrently and returns the first
// error; the group context cancels the remaining children when one fails.
func (f *Fanout) Write(ctx context.Context, t *table.Table) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, c := range f.children {
		g.Go(func() error { return c.Write(gctx, t) })
	}
	return g.Wait()
}

// Close closes every child, even when earlier ones fail, and joins the
// errors.
func (f *Fanout) Close() error {
	var errs []error
	for _, c := range f.children {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
