package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const divisor = 100

// Metrics holds Prometheus metric vectors for the weather display.
type Metrics struct {
	reg *prometheus.Registry

	// HTTP server metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Domain metrics
	AcquisitionsTotal    *prometheus.CounterVec
	AcquisitionDuration  *prometheus.HistogramVec
	UpstreamCallsTotal   *prometheus.CounterVec
	StaleDiscardedTotal  prometheus.Counter
	PublishFailuresTotal *prometheus.CounterVec
	RefreshRunsTotal     *prometheus.CounterVec
	ConsumedTotal        *prometheus.CounterVec
}

// NewMetrics constructs and registers all metrics on a private registry.
func NewMetrics(serviceName string) *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		reg: reg,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: serviceName,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests received",
			},
			[]string{"method", "endpoint", "status_class"},
		),

		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: serviceName,
				Name:      "http_request_duration_seconds",
				Help:      "Histogram of HTTP request latencies",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		AcquisitionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: serviceName,
				Name:      "acquisitions_total",
				Help:      "Settled acquisition cycles by result",
			},
			[]string{"result"},
		),

		AcquisitionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: serviceName,
				Name:      "acquisition_duration_seconds",
				Help:      "Time from trigger to settled join",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"result"},
		),

		UpstreamCallsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: serviceName,
				Name:      "upstream_calls_total",
				Help:      "Weather API calls by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),

		StaleDiscardedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: serviceName,
				Name:      "stale_results_discarded_total",
				Help:      "Acquisition results dropped because a newer cycle had started",
			},
		),

		PublishFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: serviceName,
				Name:      "publish_failures_total",
				Help:      "State events that a sink failed to deliver",
			},
			[]string{"sink"},
		),

		RefreshRunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: serviceName,
				Name:      "refresh_runs_total",
				Help:      "Scheduled refresh runs by resulting status",
			},
			[]string{"result"},
		),

		ConsumedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: serviceName,
				Name:      "consumed_events_total",
				Help:      "State events consumed from the broker by result",
			},
			[]string{"result"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.AcquisitionsTotal,
		m.AcquisitionDuration,
		m.UpstreamCallsTotal,
		m.StaleDiscardedTotal,
		m.PublishFailuresTotal,
		m.RefreshRunsTotal,
		m.ConsumedTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Handler exposes the private registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

// HTTPMiddleware returns a Gin middleware to instrument HTTP endpoints.
func (m *Metrics) HTTPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		d := time.Since(start)

		m.HTTPRequestsTotal.With(prometheus.Labels{
			"method":       c.Request.Method,
			"endpoint":     c.FullPath(),
			"status_class": getStatusClass(c.Writer.Status()),
		}).Inc()
		m.HTTPRequestDuration.With(prometheus.Labels{
			"method":   c.Request.Method,
			"endpoint": c.FullPath(),
		}).Observe(d.Seconds())
	}
}

func (m *Metrics) ObserveCycle(result string, d time.Duration) {
	m.AcquisitionsTotal.WithLabelValues(result).Inc()
	m.AcquisitionDuration.WithLabelValues(result).Observe(d.Seconds())
}

func (m *Metrics) ObserveEndpoint(endpoint, outcome string) {
	m.UpstreamCallsTotal.WithLabelValues(endpoint, outcome).Inc()
}

func (m *Metrics) IncStale() {
	m.StaleDiscardedTotal.Inc()
}

func (m *Metrics) IncPublishFailure(sink string) {
	m.PublishFailuresTotal.WithLabelValues(sink).Inc()
}

func (m *Metrics) IncRefresh(result string) {
	m.RefreshRunsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) IncConsumed(result string) {
	m.ConsumedTotal.WithLabelValues(result).Inc()
}

func getStatusClass(code int) string {
	return fmt.Sprintf("%dxx", code/divisor)
}
