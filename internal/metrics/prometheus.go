package metrics

import (
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	buildDuration prom.Histogram
	buildOutcome  *prom.CounterVec
	pagesRendered prom.Counter
	indexEntries  prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on the
// provided registry (a fresh registry is created when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "memosite",
			Name:      "build_duration_seconds",
			Help:      "Total site build duration",
			Buckets:   prom.DefBuckets,
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "memosite",
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
		pagesRendered: prom.NewCounter(prom.CounterOpts{
			Namespace: "memosite",
			Name:      "pages_rendered_total",
			Help:      "Markdown pages rendered to HTML",
		}),
		indexEntries: prom.NewGauge(prom.GaugeOpts{
			Namespace: "memosite",
			Name:      "index_entries",
			Help:      "Links emitted by the last index build",
		}),
	}
	reg.MustRegister(pr.buildDuration, pr.buildOutcome, pr.pagesRendered, pr.indexEntries)
	return pr
}

func (pr *PrometheusRecorder) ObserveBuildDuration(seconds float64) {
	pr.buildDuration.Observe(seconds)
}

func (pr *PrometheusRecorder) IncBuildOutcome(outcome string) {
	pr.buildOutcome.WithLabelValues(outcome).Inc()
}

func (pr *PrometheusRecorder) IncPagesRendered() {
	pr.pagesRendered.Inc()
}

func (pr *PrometheusRecorder) SetIndexEntries(n int) {
	pr.indexEntries.Set(float64(n))
}

// HTTPHandler returns an http.Handler serving Prometheus metrics for the
// provided registry.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
