// Package metrics provides build metrics collection behind a Recorder
// interface. Components receive a Recorder through dependency injection and
// default to NoopRecorder, so metrics cost nothing unless a real
// implementation is swapped in (the preview server wires the Prometheus one).
package metrics

// Recorder defines the metrics operations emitted by a site build.
type Recorder interface {
	// ObserveBuildDuration records the total duration of one build in seconds.
	ObserveBuildDuration(seconds float64)
	// IncBuildOutcome counts a finished build by outcome ("success"/"failure").
	IncBuildOutcome(outcome string)
	// IncPagesRendered counts one rendered page.
	IncPagesRendered()
	// SetIndexEntries records how many links the last index build emitted.
	SetIndexEntries(n int)
}

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

func (NoopRecorder) ObserveBuildDuration(float64) {}
func (NoopRecorder) IncBuildOutcome(string)       {}
func (NoopRecorder) IncPagesRendered()            {}
func (NoopRecorder) SetIndexEntries(int)          {}
