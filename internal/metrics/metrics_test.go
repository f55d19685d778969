package metrics

import (
	"errors"
	"testing"
	"time"
)

// recorder captures every call for assertions.
type recorder struct {
	counters   []string
	histograms []string
	labels     []Labels
	flushed    int
}

func (r *recorder) IncCounter(name string, delta float64, labels Labels) {
	r.counters = append(r.counters, name)
	r.labels = append(r.labels, labels)
}

func (r *recorder) ObserveHistogram(name string, value float64, labels Labels) {
	r.histograms = append(r.histograms, name)
	r.labels = append(r.labels, labels)
}

func (r *recorder) Flush() error { r.flushed++; return nil }

func install(t *testing.T) *recorder {
	t.Helper()
	r := &recorder{}
	SetBackend(r)
	t.Cleanup(func() { SetBackend(nopBackend{}) })
	return r
}

/*
TestRecordStage verifies the stage recorder emits one counter and one
duration observation with job/stage/status labels, and that a stage error
flips status to failure.
*/
func TestRecordStage(t *testing.T) {
	r := install(t)
	RecordStage("contact_list", "dedupe", nil, 5*time.Millisecond)
	RecordStage("contact_list", "clean_phone", errors.New("boom"), time.Millisecond)

	if len(r.counters) != 2 || r.counters[0] != "listwash_stage_total" {
		t.Fatalf("counters=%v", r.counters)
	}
	if len(r.histograms) != 2 || r.histograms[0] != "listwash_stage_duration_seconds" {
		t.Fatalf("histograms=%v", r.histograms)
	}
	if got := r.labels[0]["status"]; got != "success" {
		t.Fatalf("status=%q want success", got)
	}
	if got := r.labels[2]["status"]; got != "failure" {
		t.Fatalf("status=%q want failure", got)
	}
	if got := r.labels[0]["stage"]; got != "dedupe" {
		t.Fatalf("stage=%q", got)
	}
}

/*
TestRecordRows verifies row counts carry job and kind, and non-positive
deltas are dropped.
*/
func TestRecordRows(t *testing.T) {
	r := install(t)
	RecordRows("contact_list", "loaded", 20)
	RecordRows("contact_list", "dropped_optout", 0)
	RecordRows("contact_list", "written", -3)

	if len(r.counters) != 1 {
		t.Fatalf("counters=%v; zero and negative deltas must not record", r.counters)
	}
	if got := r.labels[0]["kind"]; got != "loaded" {
		t.Fatalf("kind=%q", got)
	}
}

func TestSetBackendNilKeepsExisting(t *testing.T) {
	r := install(t)
	SetBackend(nil)
	RecordRows("j", "loaded", 1)
	if len(r.counters) != 1 {
		t.Fatalf("nil SetBackend replaced the backend")
	}
}

func TestFlushDelegates(t *testing.T) {
	r := install(t)
	if err := Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if r.flushed != 1 {
		t.Fatalf("flushed=%d want 1", r.flushed)
	}
}
