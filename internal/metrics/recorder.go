// Package metrics records hydration pass outcomes.
package metrics

import "time"

// ResultLabel enumerates per-section result categories.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFault   ResultLabel = "fault"
	ResultSkipped ResultLabel = "skipped"
)

// Recorder defines observability hooks for hydration passes.
// Implementations may forward to Prometheus or drop everything.
type Recorder interface {
	ObservePassDuration(state string, d time.Duration)
	IncPassOutcome(state string)
	IncSectionResult(section string, result ResultLabel)
	IncFailure(kind string)
	IncPageView(theme string)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObservePassDuration(string, time.Duration) {}
func (NoopRecorder) IncPassOutcome(string)                     {}
func (NoopRecorder) IncSectionResult(string, ResultLabel)      {}
func (NoopRecorder) IncFailure(string)                         {}
func (NoopRecorder) IncPageView(string)                        {}
