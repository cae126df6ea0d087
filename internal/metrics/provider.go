// Package metrics exposes prometheus instrumentation for the dashboard and
// the outbound JIRA client.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricsNamespace = "ticketboard"
	httpSubsystem    = "http"
	jiraSubsystem    = "jira"
	boardSubsystem   = "board"

	defaultPrometheusTimeoutSeconds = 60
)

// Provider records application metrics.
type Provider interface {
	ObserveHTTPRequestDuration(handler, method, statusCode string, elapsed float64)
	ObserveJiraRequestDuration(method, path, statusCode string, elapsed float64)
	IncreaseJiraRequestErrors(method, path string)
	IncreaseTicketLoads(outcome string)
	SetTicketCount(source string, count int)
}

// PrometheusProvider implements Provider on its own registry.
type PrometheusProvider struct {
	Registry *prometheus.Registry

	httpRequestsDuration *prometheus.HistogramVec
	jiraRequestsDuration *prometheus.HistogramVec
	jiraRequestErrors    *prometheus.CounterVec
	ticketLoads          *prometheus.CounterVec
	ticketCount          *prometheus.GaugeVec
}

// NewPrometheusProvider registers all collectors on a fresh registry.
func NewPrometheusProvider() *PrometheusProvider {
	provider := &PrometheusProvider{}
	provider.Registry = prometheus.NewRegistry()
	provider.Registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{
		Namespace: metricsNamespace,
	}))
	provider.Registry.MustRegister(prometheus.NewGoCollector())

	provider.httpRequestsDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: httpSubsystem,
			Name:      "requests",
			Help:      "Duration of received http requests.",
		},
		[]string{"method", "handler", "status_code"},
	)
	provider.Registry.MustRegister(provider.httpRequestsDuration)

	provider.jiraRequestsDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: jiraSubsystem,
			Name:      "requests",
			Help:      "Duration of the performed jira http requests.",
		},
		[]string{"method", "path", "status_code"},
	)
	provider.Registry.MustRegister(provider.jiraRequestsDuration)

	provider.jiraRequestErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: jiraSubsystem,
			Name:      "transport_errors",
			Help:      "Number of jira requests that failed before a response was received.",
		},
		[]string{"method", "path"},
	)
	provider.Registry.MustRegister(provider.jiraRequestErrors)

	provider.ticketLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: boardSubsystem,
			Name:      "loads",
			Help:      "Number of ticket loads by outcome.",
		},
		[]string{"outcome"},
	)
	provider.Registry.MustRegister(provider.ticketLoads)

	provider.ticketCount = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: boardSubsystem,
			Name:      "tickets",
			Help:      "Number of tickets on the board by source.",
		},
		[]string{"source"},
	)
	provider.Registry.MustRegister(provider.ticketCount)

	return provider
}

func (p *PrometheusProvider) ObserveHTTPRequestDuration(handler, method, statusCode string, elapsed float64) {
	p.httpRequestsDuration.With(
		prometheus.Labels{"method": method, "handler": handler, "status_code": statusCode},
	).Observe(elapsed)
}

func (p *PrometheusProvider) ObserveJiraRequestDuration(method, path, statusCode string, elapsed float64) {
	p.jiraRequestsDuration.With(
		prometheus.Labels{"method": method, "path": path, "status_code": statusCode},
	).Observe(elapsed)
}

func (p *PrometheusProvider) IncreaseJiraRequestErrors(method, path string) {
	p.jiraRequestErrors.WithLabelValues(method, path).Inc()
}

func (p *PrometheusProvider) IncreaseTicketLoads(outcome string) {
	p.ticketLoads.WithLabelValues(outcome).Inc()
}

// SetTicketCount records count for source and zeroes the other sources.
func (p *PrometheusProvider) SetTicketCount(source string, count int) {
	p.ticketCount.Reset()
	p.ticketCount.WithLabelValues(source).Set(float64(count))
}

// Handler returns the /metrics handler for the provider's registry.
func (p *PrometheusProvider) Handler() http.Handler {
	return promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{
		Timeout:           time.Duration(defaultPrometheusTimeoutSeconds) * time.Second,
		EnableOpenMetrics: true,
	})
}

// NoopProvider discards all metrics.
type NoopProvider struct{}

func (NoopProvider) ObserveHTTPRequestDuration(string, string, string, float64) {}
func (NoopProvider) ObserveJiraRequestDuration(string, string, string, float64) {}
func (NoopProvider) IncreaseJiraRequestErrors(string, string)                   {}
func (NoopProvider) IncreaseTicketLoads(string)                                 {}
func (NoopProvider) SetTicketCount(string, int)                                 {}
