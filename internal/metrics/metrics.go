// Package metrics provides a small, backend-agnostic abstraction for
// recording operational metrics from cleaning runs.
//
// The package is intentionally minimal:
//
//   - A narrow Backend interface covering counters and duration data.
//   - A global, pluggable backend defaulting to a no-op implementation, so
//     recording is always safe to call even when nothing is configured.
//   - The same registry-style decoupling used by the sink package: the rest
//     of the codebase depends only on this interface while concrete metric
//     systems live in subpackages (see prompush).
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a latency/duration style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics if the backend needs it (e.g. Pushgateway).
	Flush() error
}

// nopBackend is used by default so metrics are optional.
type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)       {}
func (nopBackend) ObserveHistogram(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                               { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing one.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordStage measures latency and success/failure of one cleaning stage.
func RecordStage(job, stage string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	lbls := Labels{
		"job":    job,
		"stage":  stage,
		"status": status,
	}
	backend.IncCounter("listwash_stage_total", 1, lbls)
	backend.ObserveHistogram("listwash_stage_duration_seconds", d.Seconds(), lbls)
}

// RecordRows increments a row-level counter for the given job and kind.
//
// Typical kinds mirror the run summary fields:
//   - "loaded"
//   - "dropped_duplicate"
//   - "dropped_optout"
//   - "dropped_nophone"
//   - "written"
func RecordRows(job, kind string, delta int) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("listwash_rows_total", float64(delta), Labels{
		"job":  job,
		"kind": kind,
	})
}

// RecordSink measures latency and success/failure of one sink write.
func RecordSink(job, sink string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	lbls := Labels{
		"job":    job,
		"sink":   sink,
		"status": status,
	}
	backend.IncCounter("listwash_sink_total", 1, lbls)
	backend.ObserveHistogram("listwash_sink_duration_seconds", d.Seconds(), lbls)
}
