// Package metrics exposes this broker's Prometheus instrumentation: a
// connection counter and per-API-key request counters and latency
// histograms, wired around broker.Handler's dispatch loop the way the
// pack's client-side kprom plugin wires itself around franz-go's kgo.Client,
// generalized here to the server side since this repo is a broker.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds this broker's Prometheus collectors, registered against a
// private Registry so embedding this broker never collides with an
// application's default registry.
type Metrics struct {
	Registry *prometheus.Registry

	ConnectionsTotal prometheus.Counter
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
}

// New builds a Metrics instance with all collectors registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,
		ConnectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kaf_broker",
			Name:      "connections_total",
			Help:      "Total TCP connections accepted.",
		}),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kaf_broker",
			Name:      "requests_total",
			Help:      "Total requests handled, by API key.",
		}, []string{"api_key"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "kaf_broker",
			Name:      "request_duration_seconds",
			Help:      "Request handling latency, by API key.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"api_key"}),
	}

	reg.MustRegister(m.ConnectionsTotal, m.RequestsTotal, m.RequestDuration)
	return m
}
