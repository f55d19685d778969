// Package prompush implements a Prometheus Pushgateway backend for the
// metrics package.
//
// It adapts the generic metrics.Backend interface to Prometheus by:
//
//   - Using client_golang CounterVec and SummaryVec collectors on a private
//     registry.
//   - Mapping the run labels (stage, sink, status, kind) onto Prometheus
//     labels; the pipeline job becomes the Pushgateway "job" grouping and an
//     optional run ID becomes a "run_id" grouping label.
//   - Pushing on Flush instead of exposing a scrape endpoint, which fits a
//     short-lived batch process that is gone before any scraper would come.
//
// All Prometheus-specific dependencies stay in this package so the rest of
// the project can swap metric systems without touching the pipeline.
package prompush

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"listwash/internal/metrics"
)

// Backend is a Prometheus Pushgateway metrics backend.
type Backend struct {
	gatewayURL string // e.g. http://pushgateway:9091
	jobName    string // Pushgateway "job" group
	runID      string // optional "run_id" grouping label
	reg        *prometheus.Registry

	stageCounter  *prometheus.CounterVec // listwash_stage_total
	stageDuration *prometheus.SummaryVec // listwash_stage_duration_seconds
	sinkCounter   *prometheus.CounterVec // listwash_sink_total
	sinkDuration  *prometheus.SummaryVec // listwash_sink_duration_seconds
	rowCounter    *prometheus.CounterVec // listwash_rows_total
}

// NewBackend constructs a Pushgateway backend. jobName is the Pushgateway
// "job" group (usually the pipeline job); runID, when non-empty, is added as
// a "run_id" grouping label so successive runs do not overwrite each other.
func NewBackend(jobName, gatewayURL, runID string) (*Backend, error) {
	if gatewayURL == "" {
		return nil, fmt.Errorf("prompush: gateway URL is required")
	}
	if jobName == "" {
		jobName = "listwash"
	}

	reg := prometheus.NewRegistry()

	stageCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listwash_stage_total",
			Help: "Total cleaning stage executions, partitioned by stage and status.",
		},
		[]string{"stage", "status"},
	)
	stageDuration := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "listwash_stage_duration_seconds",
			Help:       "Duration of cleaning stages in seconds, partitioned by stage and status.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"stage", "status"},
	)
	sinkCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listwash_sink_total",
			Help: "Total sink writes, partitioned by sink and status.",
		},
		[]string{"sink", "status"},
	)
	sinkDuration := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "listwash_sink_duration_seconds",
			Help:       "Duration of sink writes in seconds, partitioned by sink and status.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"sink", "status"},
	)
	rowCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listwash_rows_total",
			Help: "Row-level counts per kind (loaded, dropped_optout, written, etc.).",
		},
		[]string{"kind"},
	)

	for _, c := range []prometheus.Collector{stageCounter, stageDuration, sinkCounter, sinkDuration, rowCounter} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("prompush: register collector: %w", err)
		}
	}

	return &Backend{
		gatewayURL:    gatewayURL,
		jobName:       jobName,
		runID:         runID,
		reg:           reg,
		stageCounter:  stageCounter,
		stageDuration: stageDuration,
		sinkCounter:   sinkCounter,
		sinkDuration:  sinkDuration,
		rowCounter:    rowCounter,
	}, nil
}

func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	switch name {
	case "listwash_stage_total":
		b.stageCounter.WithLabelValues(labels["stage"], labels["status"]).Add(delta)
	case "listwash_sink_total":
		b.sinkCounter.WithLabelValues(labels["sink"], labels["status"]).Add(delta)
	case "listwash_rows_total":
		b.rowCounter.WithLabelValues(labels["kind"]).Add(delta)
	default:
		// unknown metric name: ignore
	}
}

func (b *Backend) ObserveHistogram(name string, value float64, labels metrics.Labels) {
	switch name {
	case "listwash_stage_duration_seconds":
		b.stageDuration.WithLabelValues(labels["stage"], labels["status"]).Observe(value)
	case "listwash_sink_duration_seconds":
		b.sinkDuration.WithLabelValues(labels["sink"], labels["status"]).Observe(value)
	}
}

// Flush pushes the current registry to the Pushgateway.
func (b *Backend) Flush() error {
	p := push.New(b.gatewayURL, b.jobName).Gatherer(b.reg)
	if b.runID != "" {
		p = p.Grouping("run_id", b.runID)
	}
	return p.Push()
}
