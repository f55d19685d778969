// Package main wires the cleaning pipeline end-to-end. This file keeps the
// CLI layer thin: it depends only on the source, cleaner, and sink contracts
// and never imports database drivers or backend-specific packages directly.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"listwash/internal/cleaner"
	"listwash/internal/config"
	"listwash/internal/metrics"
	"listwash/internal/sink"
	"listwash/internal/sink/multi"
	"listwash/internal/source"
	"listwash/internal/table"
)

// Function variables used to introduce test seams.
// In production these point to real implementations; tests can override them.
var (
	newSourceFn = buildSource

	newSinkFn = sink.New
)

// runPipeline executes one cleaning run: read the source into a table, apply
// the cleaning chain in order, then write the result to every configured
// sink.
//
// The table is processed whole, in memory. Contact lists are small (tens of
// thousands of rows) and several steps need the full table anyway (dedupe,
// reindex), so there is no streaming here; the upper bound on memory is the
// input itself.
//
// Per-stage row counts and durations are logged and recorded as metrics.
// Multiple sinks write concurrently; the first sink error cancels the rest.
func runPipeline(ctx context.Context, p config.Pipeline, verbose bool) error {
	src, err := newSourceFn(p.Source)
	if err != nil {
		return err
	}

	start := time.Now()
	t, err := src.Read(ctx)
	metrics.RecordStage(p.Job, "load", err, time.Since(start))
	if err != nil {
		return fmt.Errorf("load source: %w", err)
	}
	metrics.RecordRows(p.Job, "loaded", t.Len())
	loaded := t.Len()
	log.Printf("loaded rows=%d columns=%d source=%s", t.Len(), len(t.Columns), p.Source.Path)

	chain, err := buildChain(p, verbose)
	if err != nil {
		return err
	}
	if t, err = chain.Apply(t); err != nil {
		return err
	}

	out, err := buildSinks(ctx, p)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil {
			log.Printf("sink close: %v", cerr)
		}
	}()
	if err := out.Write(ctx, t); err != nil {
		return err
	}

	log.Printf("summary: loaded=%d written=%d dropped=%d sinks=%d",
		loaded, t.Len(), loaded-t.Len(), len(p.Sinks))
	return nil
}

// buildSource maps source configuration into a concrete reader implementation.
func buildSource(s config.Source) (source.Source, error) {
	switch s.Kind {
	case "csv":
		return source.NewCSV(s.Path, source.CSVOptions{
			HasHeader: s.Options.Bool("has_header", true),
			Comma:     s.Options.Rune("comma", ','),
			TrimSpace: s.Options.Bool("trim_space", true),
			HeaderMap: s.Options.StringMap("header_map"),
		}), nil
	case "xlsx":
		return source.NewXLSX(s.Path, source.XLSXOptions{
			Sheet:     s.Options.String("sheet", ""),
			TrimSpace: s.Options.Bool("trim_space", true),
			HeaderMap: s.Options.StringMap("header_map"),
		}), nil
	default:
		return nil, fmt.Errorf("unsupported source.kind=%s", s.Kind)
	}
}

// buildChain constructs the cleaning chain from configuration, each step
// wrapped with per-stage instrumentation.
func buildChain(p config.Pipeline, verbose bool) (cleaner.Chain, error) {
	c := make(cleaner.Chain, 0, len(p.Clean))
	for i, st := range p.Clean {
		step, err := buildStep(st)
		if err != nil {
			return nil, fmt.Errorf("clean[%d]: %w", i, err)
		}
		c = append(c, timedStep{Cleaner: step, job: p.Job, verbose: verbose})
	}
	return c, nil
}

// buildStep maps one configured step onto its implementation.
func buildStep(st config.Step) (cleaner.Cleaner, error) {
	switch st.Kind {
	case "dedupe":
		return cleaner.Dedupe{}, nil
	case "drop_columns":
		return cleaner.DropColumns{
			Columns:       st.Options.StringSlice("columns"),
			IgnoreMissing: st.Options.Bool("ignore_missing", false),
		}, nil
	case "trim_edges":
		return cleaner.TrimEdges{
			Columns: st.Options.StringSlice("columns"),
			Cutset:  st.Options.String("cutset", ""),
		}, nil
	case "clean_phone":
		return cleaner.CleanPhone{
			Column:       st.Options.String("column", ""),
			Separators:   st.Options.String("separators", ""),
			Placeholders: st.Options.StringSlice("placeholders"),
		}, nil
	case "split_column":
		return cleaner.SplitColumn{
			Column:    st.Options.String("column", ""),
			Delimiter: st.Options.String("delimiter", ""),
			Into:      st.Options.StringSlice("into"),
		}, nil
	case "map_values":
		return cleaner.MapValues{
			Column:  st.Options.String("column", ""),
			Mapping: st.Options.StringMap("mapping"),
		}, nil
	case "fill_null":
		return cleaner.FillNull{
			Tokens: st.Options.StringSlice("tokens"),
		}, nil
	case "drop_where":
		return cleaner.DropWhere{
			Column: st.Options.String("column", ""),
			Equals: st.Options.String("equals", ""),
		}, nil
	case "drop_empty":
		return cleaner.DropEmpty{
			Column: st.Options.String("column", ""),
		}, nil
	case "reindex":
		return cleaner.Reindex{}, nil
	default:
		return nil, fmt.Errorf("unsupported clean.kind=%s", st.Kind)
	}
}

// buildSinks constructs every configured sink, each wrapped with write
// instrumentation, and fans out when there is more than one.
func buildSinks(ctx context.Context, p config.Pipeline) (sink.Sink, error) {
	if len(p.Sinks) == 0 {
		return nil, fmt.Errorf("no sinks configured")
	}
	children := make([]sink.Sink, 0, len(p.Sinks))
	for i, sc := range p.Sinks {
		s, err := newSinkFn(ctx, sinkConfig(sc))
		if err != nil {
			// half-built fan-out: close what was already opened.
			for _, c := range children {
				c.Close()
			}
			return nil, fmt.Errorf("sinks[%d]: %w", i, err)
		}
		tgt := sc.Options.String("path", "")
		if tgt == "" {
			tgt = sc.Options.String("table", "")
		}
		children = append(children, timedSink{Sink: s, job: p.Job, name: sc.Kind, target: tgt})
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return multi.New(children...)
}

// sinkConfig maps a configured sink onto the factory config. auto_create
// defaults on for sqlite, where the destination file usually starts empty;
// server databases default to pre-provisioned tables.
func sinkConfig(s config.Sink) sink.Config {
	return sink.Config{
		Kind:         s.Kind,
		Path:         s.Options.String("path", ""),
		Comma:        s.Options.Rune("comma", 0),
		Sheet:        s.Options.String("sheet", ""),
		DSN:          s.Options.String("dsn", ""),
		Table:        s.Options.String("table", ""),
		BatchSize:    s.Options.Int("batch_size", 0),
		AutoCreate:   s.Options.Bool("auto_create", s.Kind == "sqlite"),
		IncludeIndex: s.Options.Bool("include_index", false),
		IndexColumn:  s.Options.String("index_column", ""),
	}
}

// timedStep decorates one cleaning step with per-stage logs and metrics. The
// wrapped step stays the chain's source of truth for naming and errors.
type timedStep struct {
	cleaner.Cleaner
	job     string
	verbose bool
}

func (s timedStep) Apply(t *table.Table) (*table.Table, error) {
	in := t.Len()
	start := time.Now()
	out, err := s.Cleaner.Apply(t)
	metrics.RecordStage(s.job, s.Name(), err, time.Since(start))
	if err != nil {
		return nil, err
	}
	dropped := in - out.Len()
	metrics.RecordRows(s.job, dropKind(s.Cleaner), dropped)
	if s.verbose || dropped > 0 {
		log.Printf("stage=%s rows_in=%d rows_out=%d dropped=%d", s.Name(), in, out.Len(), dropped)
	}
	return out, nil
}

// timedSink decorates one sink with write logs and metrics, labeled by kind.
type timedSink struct {
	sink.Sink
	job    string
	name   string
	target string // path for file sinks, table for database sinks
}

func (s timedSink) Write(ctx context.Context, t *table.Table) error {
	start := time.Now()
	err := s.Sink.Write(ctx, t)
	metrics.RecordSink(s.job, s.name, err, time.Since(start))
	if err != nil {
		return fmt.Errorf("sink %s: %w", s.name, err)
	}
	metrics.RecordRows(s.job, "written", t.Len())
	log.Printf("sink=%s rows=%d target=%s", s.name, t.Len(), s.target)
	return nil
}

// dropKind labels removed rows for the row counter. The filters of the
// standard contact-list chain get their own kinds so dashboards can tell
// opt-outs from unusable phones; everything else counts as plain "dropped".
func dropKind(c cleaner.Cleaner) string {
	switch s := c.(type) {
	case cleaner.Dedupe:
		return "dropped_duplicate"
	case cleaner.DropWhere:
		if s.Column == "do_not_contact" {
			return "dropped_optout"
		}
	case cleaner.DropEmpty:
		if s.Column == "phone_number" {
			return "dropped_nophone"
		}
	}
	return "dropped"
}
