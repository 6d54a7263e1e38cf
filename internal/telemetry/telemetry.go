// Package telemetry exposes Prometheus metrics for the content-hub
// service.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all content-hub Prometheus metrics. A nil *Metrics is a
// valid no-op receiver so instrumentation stays optional in tests.
type Metrics struct {
	registry prometheus.Registerer

	ResolutionsTotal       *prometheus.CounterVec
	GatewayFailuresTotal   *prometheus.CounterVec
	GatewayRequestDuration prometheus.Histogram
	CacheEventsTotal       *prometheus.CounterVec
}

// NewMetrics registers content-hub metrics on reg. Pass
// prometheus.DefaultRegisterer in production; tests use a fresh
// prometheus.NewRegistry to avoid duplicate registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ResolutionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "contenthub_resolutions_total",
			Help: "Content resolutions by satisfying source (remote, fallback)",
		}, []string{"source"}),
		GatewayFailuresTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "contenthub_gateway_failures_total",
			Help: "Remote content gateway failures by reason",
		}, []string{"reason"}),
		GatewayRequestDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "contenthub_gateway_request_duration_seconds",
			Help:    "Wall-clock duration of remote content API calls",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		}),
		CacheEventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "contenthub_cache_events_total",
			Help: "Edge cache lookups by outcome (hit, miss)",
		}, []string{"outcome"}),
	}
}

// Handler returns the Prometheus scrape handler for the /metrics route.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordResolution counts a resolution satisfied by source.
func (m *Metrics) RecordResolution(source string) {
	if m == nil {
		return
	}
	m.ResolutionsTotal.WithLabelValues(source).Inc()
}

// RecordGatewayFailure counts a gateway failure by classified reason.
func (m *Metrics) RecordGatewayFailure(reason string) {
	if m == nil {
		return
	}
	m.GatewayFailuresTotal.WithLabelValues(reason).Inc()
}

// ObserveGatewayDuration records the latency of one remote call.
func (m *Metrics) ObserveGatewayDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.GatewayRequestDuration.Observe(d.Seconds())
}

// RecordCacheEvent counts a cache lookup outcome.
func (m *Metrics) RecordCacheEvent(outcome string) {
	if m == nil {
		return
	}
	m.CacheEventsTotal.WithLabelValues(outcome).Inc()
}
