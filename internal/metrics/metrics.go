// Package metrics exposes Prometheus metrics for tool invocations.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	registry *prometheus.Registry

	InvocationsTotal      *prometheus.CounterVec
	InvocationDuration    *prometheus.HistogramVec
	InvocationErrorsTotal *prometheus.CounterVec
}

// NewMetrics creates and registers all metrics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,

		InvocationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tool_invocations_total",
				Help: "Total number of tool invocations",
			},
			[]string{"tool", "status"},
		),
		InvocationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tool_invocation_duration_seconds",
				Help:    "Duration of tool invocations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"tool"},
		),
		InvocationErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tool_invocation_errors_total",
				Help: "Total number of failed tool invocations",
			},
			[]string{"tool", "kind"},
		),
	}

	registry.MustRegister(m.InvocationsTotal)
	registry.MustRegister(m.InvocationDuration)
	registry.MustRegister(m.InvocationErrorsTotal)

	return m
}

// Handler returns an HTTP handler for the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Registry returns the Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
