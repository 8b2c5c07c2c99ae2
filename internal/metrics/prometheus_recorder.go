package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics. There is
// no network exporter here; callers export via WriteTextfile after the run
// (the engine is a one-shot, no-network tool).
type PrometheusRecorder struct {
	once          sync.Once
	reg           *prom.Registry
	renderSeconds prom.Histogram
	outcomes      *prom.CounterVec
	documentBytes prom.Histogram
	diffBytes     prom.Histogram
	diffTruncated prom.Counter
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{reg: reg}
	pr.once.Do(func() {
		pr.renderSeconds = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "commitmail",
			Name:      "render_duration_seconds",
			Help:      "Duration of one render invocation",
			Buckets:   prom.DefBuckets,
		})
		pr.outcomes = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "commitmail",
			Name:      "render_outcomes_total",
			Help:      "Render outcomes by final status",
		}, []string{"outcome"})
		pr.documentBytes = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "commitmail",
			Name:      "document_bytes",
			Help:      "Bytes written to the output sink per render",
			Buckets:   prom.ExponentialBuckets(256, 4, 10),
		})
		pr.diffBytes = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "commitmail",
			Name:      "diff_bytes_read",
			Help:      "Bytes consumed from the diff source per render",
			Buckets:   prom.ExponentialBuckets(256, 4, 10),
		})
		pr.diffTruncated = prom.NewCounter(prom.CounterOpts{
			Namespace: "commitmail",
			Name:      "diff_truncations_total",
			Help:      "Diffs stopped at the configured max length",
		})
		reg.MustRegister(pr.renderSeconds, pr.outcomes, pr.documentBytes, pr.diffBytes, pr.diffTruncated)
	})
	return pr
}

func (pr *PrometheusRecorder) ObserveRenderDuration(d time.Duration) {
	pr.renderSeconds.Observe(d.Seconds())
}

func (pr *PrometheusRecorder) IncRenderOutcome(outcome OutcomeLabel) {
	pr.outcomes.WithLabelValues(string(outcome)).Inc()
}

func (pr *PrometheusRecorder) ObserveDocumentBytes(n int64) {
	pr.documentBytes.Observe(float64(n))
}

func (pr *PrometheusRecorder) ObserveDiffBytes(n int64) {
	pr.diffBytes.Observe(float64(n))
}

func (pr *PrometheusRecorder) IncDiffTruncated() {
	pr.diffTruncated.Inc()
}

// WriteTextfile exports the registry in text exposition format, for the
// node-exporter textfile collector or ad-hoc inspection.
func (pr *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, pr.reg)
}
