package main

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"listwash/internal/cleaner"
	"listwash/internal/config"
	"listwash/internal/sink"
	"listwash/internal/source"
)

func TestBuildStepMapsEveryKind(t *testing.T) {
	kinds := []string{
		"dedupe", "drop_columns", "trim_edges", "clean_phone", "split_column",
		"map_values", "fill_null", "drop_where", "drop_empty", "reindex",
	}
	for _, k := range kinds {
		got, err := buildStep(config.Step{Kind: k})
		if err != nil {
			t.Fatalf("buildStep(%s): %v", k, err)
		}
		if got.Name() != k {
			t.Fatalf("buildStep(%s) built %q", k, got.Name())
		}
	}
}

/*
TestBuildStepOptions spot-checks that step options flow from the config maps
(in their JSON-decoded shapes) into the concrete step fields.
*/
func TestBuildStepOptions(t *testing.T) {
	got, err := buildStep(config.Step{Kind: "clean_phone", Options: config.Options{
		"column":       "phone_number",
		"separators":   "-. ",
		"placeholders": []any{"--"},
	}})
	if err != nil {
		t.Fatalf("buildStep: %v", err)
	}
	cp, ok := got.(cleaner.CleanPhone)
	if !ok {
		t.Fatalf("wrong type %T", got)
	}
	if cp.Column != "phone_number" || cp.Separators != "-. " || !reflect.DeepEqual(cp.Placeholders, []string{"--"}) {
		t.Fatalf("options not mapped: %+v", cp)
	}

	got, err = buildStep(config.Step{Kind: "split_column", Options: config.Options{
		"column":    "address",
		"delimiter": "; ",
		"into":      []any{"street_address", "state"},
	}})
	if err != nil {
		t.Fatalf("buildStep: %v", err)
	}
	sp := got.(cleaner.SplitColumn)
	if sp.Column != "address" || sp.Delimiter != "; " || !reflect.DeepEqual(sp.Into, []string{"street_address", "state"}) {
		t.Fatalf("options not mapped: %+v", sp)
	}

	got, err = buildStep(config.Step{Kind: "drop_columns", Options: config.Options{
		"columns":        []any{"a", "b"},
		"ignore_missing": true,
	}})
	if err != nil {
		t.Fatalf("buildStep: %v", err)
	}
	dc := got.(cleaner.DropColumns)
	if !reflect.DeepEqual(dc.Columns, []string{"a", "b"}) || !dc.IgnoreMissing {
		t.Fatalf("options not mapped: %+v", dc)
	}

	got, err = buildStep(config.Step{Kind: "map_values", Options: config.Options{
		"column":  "paying_customer",
		"mapping": map[string]any{"Y": "Yes", "N": "No"},
	}})
	if err != nil {
		t.Fatalf("buildStep: %v", err)
	}
	mv := got.(cleaner.MapValues)
	if mv.Column != "paying_customer" || mv.Mapping["Y"] != "Yes" || mv.Mapping["N"] != "No" {
		t.Fatalf("options not mapped: %+v", mv)
	}
}

func TestBuildStepUnsupported(t *testing.T) {
	_, err := buildStep(config.Step{Kind: "rot13"})
	if err == nil || !strings.Contains(err.Error(), "unsupported clean.kind=rot13") {
		t.Fatalf("want unsupported kind error, got %v", err)
	}
}

func TestBuildChainWrapsSteps(t *testing.T) {
	p := config.Pipeline{Job: "j", Clean: []config.Step{{Kind: "dedupe"}, {Kind: "reindex"}}}
	chain, err := buildChain(p, false)
	if err != nil {
		t.Fatalf("buildChain: %v", err)
	}
	if len(chain) != 2 {
		t.Fatalf("chain length = %d, want 2", len(chain))
	}
	ts, ok := chain[0].(timedStep)
	if !ok {
		t.Fatalf("step not instrumented: %T", chain[0])
	}
	if _, ok := ts.Cleaner.(cleaner.Dedupe); !ok {
		t.Fatalf("wrong inner step: %T", ts.Cleaner)
	}
	if chain[0].Name() != "dedupe" {
		t.Fatalf("wrapper must keep the step name, got %q", chain[0].Name())
	}

	_, err = buildChain(config.Pipeline{Clean: []config.Step{{Kind: "dedupe"}, {Kind: "rot13"}}}, false)
	if err == nil || !strings.Contains(err.Error(), "clean[1]") {
		t.Fatalf("error should name the step index, got %v", err)
	}
}

func TestBuildSourceKinds(t *testing.T) {
	s, err := buildSource(config.Source{Kind: "csv", Path: "in.csv"})
	if err != nil {
		t.Fatalf("csv: %v", err)
	}
	if _, ok := s.(*source.CSV); !ok {
		t.Fatalf("csv built %T", s)
	}

	s, err = buildSource(config.Source{Kind: "xlsx", Path: "in.xlsx"})
	if err != nil {
		t.Fatalf("xlsx: %v", err)
	}
	if _, ok := s.(*source.XLSX); !ok {
		t.Fatalf("xlsx built %T", s)
	}

	if _, err := buildSource(config.Source{Kind: "feather"}); err == nil || !strings.Contains(err.Error(), "unsupported source.kind=feather") {
		t.Fatalf("want unsupported kind error, got %v", err)
	}
}

func TestSinkConfigMapping(t *testing.T) {
	cfg := sinkConfig(config.Sink{Kind: "mssql", Options: config.Options{
		"dsn":           "sqlserver://sa@localhost",
		"table":         "dbo.contacts",
		"batch_size":    float64(250),
		"include_index": true,
		"index_column":  "source_row",
	}})
	want := sink.Config{
		Kind:         "mssql",
		DSN:          "sqlserver://sa@localhost",
		Table:        "dbo.contacts",
		BatchSize:    250,
		IncludeIndex: true,
		IndexColumn:  "source_row",
	}
	if cfg != want {
		t.Fatalf("sinkConfig = %+v, want %+v", cfg, want)
	}
}

/*
TestSinkConfigAutoCreateDefault: sqlite usually targets a fresh file, so
auto_create defaults on there and off for server databases; an explicit
setting always wins.
*/
func TestSinkConfigAutoCreateDefault(t *testing.T) {
	if !sinkConfig(config.Sink{Kind: "sqlite"}).AutoCreate {
		t.Fatal("sqlite should auto-create by default")
	}
	if sinkConfig(config.Sink{Kind: "postgres"}).AutoCreate {
		t.Fatal("postgres should not auto-create by default")
	}
	if sinkConfig(config.Sink{Kind: "sqlite", Options: config.Options{"auto_create": false}}).AutoCreate {
		t.Fatal("explicit auto_create=false must win")
	}
	if !sinkConfig(config.Sink{Kind: "mysql", Options: config.Options{"auto_create": true}}).AutoCreate {
		t.Fatal("explicit auto_create=true must win")
	}
}

func TestDropKind(t *testing.T) {
	cases := []struct {
		step cleaner.Cleaner
		want string
	}{
		{cleaner.Dedupe{}, "dropped_duplicate"},
		{cleaner.DropWhere{Column: "do_not_contact", Equals: "Yes"}, "dropped_optout"},
		{cleaner.DropWhere{Column: "state", Equals: "TX"}, "dropped"},
		{cleaner.DropEmpty{Column: "phone_number"}, "dropped_nophone"},
		{cleaner.DropEmpty{Column: "email"}, "dropped"},
		{cleaner.Reindex{}, "dropped"},
	}
	for _, c := range cases {
		if got := dropKind(c.step); got != c.want {
			t.Fatalf("dropKind(%+v) = %q, want %q", c.step, got, c.want)
		}
	}
}

/*
TestRunPipeline_SinkBuildError overrides the sink factory seam to fail and
verifies the error names the offending sink index and that the run aborts
before any write.
*/
func TestRunPipeline_SinkBuildError(t *testing.T) {
	old := newSinkFn
	defer func() { newSinkFn = old }()
	boom := errors.New("boom")
	newSinkFn = func(ctx context.Context, cfg sink.Config) (sink.Sink, error) {
		return nil, boom
	}

	in := makeTempCSV(t, "a,b\n1,2\n")
	p := config.Pipeline{
		Job:    "t",
		Source: config.Source{Kind: "csv", Path: in},
		Sinks:  []config.Sink{{Kind: "csv", Options: config.Options{"path": "x.csv"}}},
	}
	err := runPipeline(context.Background(), p, false)
	if !errors.Is(err, boom) {
		t.Fatalf("want the factory error, got %v", err)
	}
	if !strings.Contains(err.Error(), "sinks[0]") {
		t.Fatalf("error should name the sink index: %v", err)
	}
}

/*
TestRunPipeline_SourceMissing: a nonexistent input fails the run with the
source sentinel so callers can tell a bad path from bad data.
*/
func TestRunPipeline_SourceMissing(t *testing.T) {
	p := config.Pipeline{
		Job:    "t",
		Source: config.Source{Kind: "csv", Path: filepath.Join(t.TempDir(), "nope.csv")},
		Sinks:  []config.Sink{{Kind: "csv", Options: config.Options{"path": "x.csv"}}},
	}
	err := runPipeline(context.Background(), p, false)
	if !errors.Is(err, source.ErrUnavailable) {
		t.Fatalf("want ErrUnavailable, got %v", err)
	}
}
