// Package cleaner contains the table-level cleaning steps and the Chain that
// runs them in order.
//
// Every step is a pure function of its input table and its static
// configuration; steps may mutate the table in place for speed, but callers
// only ever use the returned value. The chain is strictly sequential and
// stops at the first error.
package cleaner

import (
	"fmt"

	"listwash/internal/table"
)

// Cleaner is one cleaning step.
type Cleaner interface {
	// Name identifies the step in logs, metrics, and error messages. It
	// matches the "kind" used in pipeline config files.
	Name() string

	// Apply transforms the table. Implementations may mutate t and return it,
	// or build a fresh table; either way the result is the returned value.
	Apply(t *table.Table) (*table.Table, error)
}

// Chain is an ordered list of cleaners.
type Chain []Cleaner

// Apply runs each step in sequence. The first error aborts the run, wrapped
// with the failing step's name.
func (c Chain) Apply(t *table.Table) (*table.Table, error) {
	out := t
	var err error
	for _, step := range c {
		if out, err = step.Apply(out); err != nil {
			return nil, fmt.Errorf("clean %q: %w", step.Name(), err)
		}
	}
	return out, nil
}
