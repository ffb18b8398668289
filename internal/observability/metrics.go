package observability

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kjstillabower/skysense/internal/traffic"
)

var (
	registry *prometheus.Registry

	// HTTP request rate. Watch for: sudden drops (service down) or spikes (traffic surge).
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTP request latency per request. Dominated by upstream latency on /api/weather.
	HTTPRequestDuration *prometheus.HistogramVec

	// Concurrent requests in flight.
	HTTPRequestsInFlight prometheus.Gauge

	// Upstream weather API calls by route and status class.
	WeatherAPICallsTotal *prometheus.CounterVec

	// Upstream latency. Nothing is cached, so this is paid on every proxied request.
	WeatherAPIDuration *prometheus.HistogramVec

	// Upstream failures by category (timeout, network, upstream_4xx, ...).
	WeatherAPIErrorsTotal *prometheus.CounterVec

	// Proxied weather lookups per route.
	WeatherQueriesTotal *prometheus.CounterVec

	// Identity tokens by outcome (issued, not_configured, error).
	TokensIssuedTotal *prometheus.CounterVec

	// Dashboard sessions by trigger (load, recenter, click) and final state.
	DashboardSessionsTotal *prometheus.CounterVec

	// Late results dropped because a newer session had started.
	DashboardStaleResultsTotal *prometheus.CounterVec

	upstreamGaugesOnce sync.Once
)

func init() {
	registry = prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "httpRequestsTotal",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "statusCode"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "httpRequestDurationSeconds",
			Help:    "HTTP request latency in seconds (per request)",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	HTTPRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "httpRequestsInFlight",
			Help: "Number of HTTP requests currently being served",
		},
	)
	WeatherAPICallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherApiCallsTotal",
			Help: "Total number of upstream weather API calls",
		},
		[]string{"route", "status"},
	)
	WeatherAPIDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "weatherApiDurationSeconds",
			Help:    "Upstream weather API latency in seconds (per request)",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"route", "status"},
	)
	WeatherAPIErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherApiErrorsTotal",
			Help: "Upstream weather API failures by category",
		},
		[]string{"category"},
	)
	WeatherQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherQueriesTotal",
			Help: "Total number of proxied weather lookups",
		},
		[]string{"route"},
	)
	TokensIssuedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "identityTokensTotal",
			Help: "Identity token requests by outcome",
		},
		[]string{"outcome"},
	)
	DashboardSessionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboardSessionsTotal",
			Help: "Dashboard location sessions by trigger and final state",
		},
		[]string{"trigger", "state"},
	)
	DashboardStaleResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboardStaleResultsTotal",
			Help: "Fetch results discarded because a newer session superseded them",
		},
		[]string{"panel"},
	)

	registry.MustRegister(
		HTTPRequestsTotal, HTTPRequestDuration, HTTPRequestsInFlight,
		WeatherAPICallsTotal, WeatherAPIDuration, WeatherAPIErrorsTotal,
		WeatherQueriesTotal, TokensIssuedTotal,
		DashboardSessionsTotal, DashboardStaleResultsTotal,
	)
}

// RegisterUpstreamGauges registers sliding-window gauges for proxied upstream
// outcomes. Call from main after config load.
func RegisterUpstreamGauges(window time.Duration) {
	upstreamGaugesOnce.Do(func() {
		registry.MustRegister(
			prometheus.NewGaugeFunc(
				prometheus.GaugeOpts{
					Name: "upstreamRequestsInWindow",
					Help: "Proxied upstream requests in sliding window",
				},
				func() float64 { return float64(traffic.RequestCount(window)) },
			),
			prometheus.NewGaugeFunc(
				prometheus.GaugeOpts{
					Name: "upstreamErrorsInWindow",
					Help: "Proxied upstream failures in sliding window",
				},
				func() float64 {
					errs, _ := traffic.ErrorRate(window)
					return float64(errs)
				},
			),
		)
	})
}

// MetricsHandler returns an http.Handler that serves application and runtime metrics.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
