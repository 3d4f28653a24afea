// File: internal/platform/metrics/prometheus.go
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for outbound calls.
const (
	OutcomeOK          = "ok"
	OutcomeClientError = "client_error"
	OutcomeServerError = "server_error"
	OutcomeTransport   = "transport_error"
)

// Registry owns the process collectors. A nil *Registry is valid and records nothing,
// which keeps instrumented components usable in tests without wiring metrics.
type Registry struct {
	reg *prometheus.Registry

	httpRequests    *prometheus.CounterVec
	httpLatency     *prometheus.HistogramVec
	outboundCalls   *prometheus.CounterVec
	outboundLatency *prometheus.HistogramVec
}

// NewRegistry creates a registry with the Go/process collectors and the service instruments.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Registry{
		reg: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "toski",
			Name:      "http_requests_total",
			Help:      "HTTP requests handled, by route and status.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "toski",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		outboundCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "toski",
			Name:      "outbound_calls_total",
			Help:      "Calls to external providers by provider, operation and outcome.",
		}, []string{"provider", "operation", "outcome"}),
		outboundLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "toski",
			Name:      "outbound_call_duration_seconds",
			Help:      "Latency of calls to external providers.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"provider", "operation"}),
	}
	reg.MustRegister(r.httpRequests, r.httpLatency, r.outboundCalls, r.outboundLatency)
	return r
}

// Handler exposes the registry in the prometheus text format.
func (r *Registry) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

// ObserveHTTP records one handled request.
func (r *Registry) ObserveHTTP(method, route, status string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(method, route, status).Inc()
	r.httpLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveOutbound records one call to an external provider.
func (r *Registry) ObserveOutbound(provider, operation, outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.outboundCalls.WithLabelValues(provider, operation, outcome).Inc()
	r.outboundLatency.WithLabelValues(provider, operation).Observe(elapsed.Seconds())
}

// OutcomeForStatus classifies an HTTP status from a provider.
func OutcomeForStatus(status int) string {
	switch {
	case status >= 500:
		return OutcomeServerError
	case status >= 400:
		return OutcomeClientError
	default:
		return OutcomeOK
	}
}

// Gatherer returns the underlying gatherer, mainly for tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}
