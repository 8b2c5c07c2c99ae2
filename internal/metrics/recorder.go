package metrics

import "time"

// OutcomeLabel enumerates render outcome categories for counters.
type OutcomeLabel string

const (
	OutcomeSuccess OutcomeLabel = "success"
	OutcomeFailed  OutcomeLabel = "failed"
)

// Recorder defines observability hooks for render invocations.
// Implementations may forward to Prometheus or anything else; the engine
// itself never depends on a recorder, only the embedding application does.
type Recorder interface {
	ObserveRenderDuration(d time.Duration)
	IncRenderOutcome(outcome OutcomeLabel)
	ObserveDocumentBytes(n int64)
	ObserveDiffBytes(n int64)
	IncDiffTruncated()
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not
// configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveRenderDuration(time.Duration) {}
func (NoopRecorder) IncRenderOutcome(OutcomeLabel)       {}
func (NoopRecorder) ObserveDocumentBytes(int64)          {}
func (NoopRecorder) ObserveDiffBytes(int64)              {}
func (NoopRecorder) IncDiffTruncated()                   {}
