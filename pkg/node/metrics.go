package node

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	sweeps   prometheus.Histogram
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pagerank_requests_total",
			Help: "Rank requests by transport and outcome.",
		}, []string{"transport", "outcome"}),
		sweeps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pagerank_solver_sweeps",
			Help:    "Sweeps needed by the iterative solver to converge.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}
	m.registry.MustRegister(m.requests, m.sweeps)
	return m
}

// Observe counts a request served by transport
func (m *Metrics) Observe(transport string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
		if IsInvalidRequest(err) {
			outcome = "invalid"
		}
	}
	m.requests.WithLabelValues(transport, outcome).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
