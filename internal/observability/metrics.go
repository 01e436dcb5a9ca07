// Package observability owns the process-wide Prometheus registry. The
// registry is constructed once at startup and handed into the HTTP layer;
// it lives for the life of the process and is never reset.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	httpDuration *prometheus.HistogramVec
	httpRequests *prometheus.CounterVec
	httpInflight prometheus.Gauge
	downloads    *prometheus.CounterVec
	rateLimited  *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method, route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests served by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "HTTP requests currently being handled.",
		}),
		downloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contract_downloads_total",
			Help: "Contract files served by category and file name.",
		}, []string{"category", "file"}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rate_limit_rejections_total",
			Help: "Requests rejected by admission control, by route.",
		}, []string{"route"}),
	}
	registry.MustRegister(m.httpDuration, m.httpRequests, m.httpInflight, m.downloads, m.rateLimited)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the Prometheus text exposition handler for the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveRequest(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.httpDuration.WithLabelValues(method, route, status).Observe(d.Seconds())
	m.httpRequests.WithLabelValues(method, route, status).Inc()
}

func (m *Metrics) InflightInc() {
	if m == nil {
		return
	}
	m.httpInflight.Inc()
}

func (m *Metrics) InflightDec() {
	if m == nil {
		return
	}
	m.httpInflight.Dec()
}

func (m *Metrics) ContractDownloaded(category, file string) {
	if m == nil {
		return
	}
	m.downloads.WithLabelValues(category, file).Inc()
}

func (m *Metrics) RateLimited(route string) {
	if m == nil {
		return
	}
	m.rateLimited.WithLabelValues(route).Inc()
}
