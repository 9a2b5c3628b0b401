package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "portfolio"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry       *prom.Registry
	passDuration   *prom.HistogramVec
	passOutcomes   *prom.CounterVec
	sectionResults *prom.CounterVec
	failures       *prom.CounterVec
	pageViews      *prom.CounterVec
}

// NewPrometheusRecorder constructs the collectors and registers them on reg.
// A nil registry gets a fresh one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		registry: reg,
		passDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "hydration_duration_seconds",
			Help:      "Duration of hydration passes by final state",
			Buckets:   prom.DefBuckets,
		}, []string{"state"}),
		passOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "hydration_passes_total",
			Help:      "Hydration passes by final state",
		}, []string{"state"}),
		sectionResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "section_results_total",
			Help:      "Section render results by outcome",
		}, []string{"section", "result"}),
		failures: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "hydration_failures_total",
			Help:      "Hydration failures by error kind",
		}, []string{"kind"}),
		pageViews: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "page_views_total",
			Help:      "Rendered page views by theme",
		}, []string{"theme"}),
	}
	reg.MustRegister(pr.passDuration, pr.passOutcomes, pr.sectionResults, pr.failures, pr.pageViews)
	return pr
}

func (p *PrometheusRecorder) ObservePassDuration(state string, d time.Duration) {
	p.passDuration.WithLabelValues(state).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncPassOutcome(state string) {
	p.passOutcomes.WithLabelValues(state).Inc()
}

func (p *PrometheusRecorder) IncSectionResult(section string, result ResultLabel) {
	p.sectionResults.WithLabelValues(section, string(result)).Inc()
}

func (p *PrometheusRecorder) IncFailure(kind string) {
	p.failures.WithLabelValues(kind).Inc()
}

func (p *PrometheusRecorder) IncPageView(theme string) {
	p.pageViews.WithLabelValues(theme).Inc()
}

// Handler serves the recorder's registry.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
