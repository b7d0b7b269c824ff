package site

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/osushizm/memo/internal/config"
	"github.com/osushizm/memo/internal/logfields"
	"github.com/osushizm/memo/internal/metrics"
	"github.com/osushizm/memo/internal/notes"
)

// BuildReport summarizes one pipeline run.
type BuildReport struct {
	RunID         string
	StartedAt     time.Time
	Duration      time.Duration
	PagesRendered int
	IndexEntries  int
}

// Pipeline runs the two build phases in sequence: render all pages, then
// build the index from the title map those pages produced. Both phases share
// one enumerator so the index can never link to a page the renderer did not
// write.
type Pipeline struct {
	cfg      *config.Config
	recorder metrics.Recorder
}

// NewPipeline creates a build pipeline for the given configuration.
func NewPipeline(cfg *config.Config) *Pipeline {
	return &Pipeline{cfg: cfg, recorder: metrics.NoopRecorder{}}
}

// SetRecorder injects a metrics recorder. Returns the pipeline for chaining.
func (p *Pipeline) SetRecorder(rec metrics.Recorder) *Pipeline {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	p.recorder = rec
	return p
}

// Run executes a full build and returns its report.
func (p *Pipeline) Run(ctx context.Context) (*BuildReport, error) {
	report := &BuildReport{RunID: uuid.NewString(), StartedAt: time.Now()}
	slog.Info("Starting site build",
		logfields.RunID(report.RunID),
		logfields.Path(p.cfg.Content.Root))

	enum := notes.NewEnumerator(p.cfg.Content.Root, p.cfg.Content.Exclude)

	titles, err := NewRenderer(p.cfg, enum).SetRecorder(p.recorder).RenderAll(ctx)
	if err != nil {
		p.recorder.IncBuildOutcome("failure")
		return nil, err
	}
	report.PagesRendered = len(titles)

	entries, err := NewIndexBuilder(p.cfg, enum).SetRecorder(p.recorder).Build(titles)
	if err != nil {
		p.recorder.IncBuildOutcome("failure")
		return nil, err
	}
	report.IndexEntries = entries

	report.Duration = time.Since(report.StartedAt)
	p.recorder.ObserveBuildDuration(report.Duration.Seconds())
	p.recorder.IncBuildOutcome("success")

	slog.Info("Site build complete",
		logfields.RunID(report.RunID),
		slog.Int("pages", report.PagesRendered),
		slog.Int("index_entries", report.IndexEntries),
		logfields.DurationMS(float64(report.Duration.Milliseconds())))
	return report, nil
}
