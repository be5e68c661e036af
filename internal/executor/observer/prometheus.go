package observer

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements MetricsRecorder on its own registry.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	compileDuration    *prometheus.HistogramVec
	runDuration        *prometheus.HistogramVec
	executions         *prometheus.CounterVec
	testCases          *prometheus.CounterVec
	blacklistRejected  *prometheus.CounterVec
	isolationFallbacks *prometheus.CounterVec
	rateLimited        prometheus.Counter
	inFlight           prometheus.Gauge
}

// NewPrometheusRecorder registers the executor metrics plus the Go and
// process collectors under namespace.
func NewPrometheusRecorder(namespace string) *PrometheusRecorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)
	buckets := []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20}

	return &PrometheusRecorder{
		registry: reg,
		compileDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "compile_duration_seconds",
			Help:      "Duration of the compile step",
			Buckets:   buckets,
		}, []string{"language", "ok"}),
		runDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of the run step",
			Buckets:   buckets,
		}, []string{"language", "ok"}),
		executions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "executions_total",
			Help:      "Execute requests by language and outcome",
		}, []string{"language", "outcome"}),
		testCases: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "test_cases_total",
			Help:      "Test cases submitted by language",
		}, []string{"language"}),
		blacklistRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blacklist_rejections_total",
			Help:      "Fragments rejected by the blacklist",
		}, []string{"language"}),
		isolationFallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "isolation_fallbacks_total",
			Help:      "Runs that fell back to direct execution",
		}, []string{"language", "provisioner"}),
		rateLimited: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter",
		}),
		inFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "executions_in_flight",
			Help:      "Executions currently running",
		}),
	}
}

// Registry exposes the underlying registry.
func (p *PrometheusRecorder) Registry() *prometheus.Registry {
	return p.registry
}

// Handler serves the registry in the Prometheus text format.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

func (p *PrometheusRecorder) ObserveCompile(ctx context.Context, languageID string, ok bool, elapsed time.Duration) {
	p.compileDuration.WithLabelValues(languageID, strconv.FormatBool(ok)).Observe(elapsed.Seconds())
}

func (p *PrometheusRecorder) ObserveRun(ctx context.Context, languageID string, ok bool, elapsed time.Duration) {
	p.runDuration.WithLabelValues(languageID, strconv.FormatBool(ok)).Observe(elapsed.Seconds())
}

func (p *PrometheusRecorder) ObserveExecution(ctx context.Context, languageID string, outcome string, testCases int) {
	p.executions.WithLabelValues(languageID, outcome).Inc()
	p.testCases.WithLabelValues(languageID).Add(float64(testCases))
}

func (p *PrometheusRecorder) ObserveBlacklistRejection(ctx context.Context, languageID string) {
	p.blacklistRejected.WithLabelValues(languageID).Inc()
}

func (p *PrometheusRecorder) ObserveIsolationFallback(ctx context.Context, languageID string, provisioner string) {
	p.isolationFallbacks.WithLabelValues(languageID, provisioner).Inc()
}

func (p *PrometheusRecorder) ObserveRateLimited() {
	p.rateLimited.Inc()
}

func (p *PrometheusRecorder) AddInFlight(delta int) {
	p.inFlight.Add(float64(delta))
}
