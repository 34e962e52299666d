package checkout

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeCompleted = "completed"
	outcomeFailed    = "failed"
	outcomeError     = "error"
)

type Metrics struct {
	Orders         *prometheus.CounterVec
	GatewayLatency prometheus.Histogram
}

// NewMetrics registers the order collectors on reg. Use a fresh
// prometheus.NewRegistry() per app so tests can build several apps.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	orders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "payment_api",
		Name:      "orders_total",
		Help:      "Order authorization attempts by outcome.",
	}, []string{"outcome"})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "payment_api",
		Name:      "gateway_duration_ms",
		Help:      "Gateway authorize call latency in milliseconds.",
		Buckets:   []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000},
	})

	reg.MustRegister(orders, latency)
	return &Metrics{Orders: orders, GatewayLatency: latency}
}

func (m *Metrics) observe(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Orders.WithLabelValues(outcome).Inc()
	m.GatewayLatency.Observe(float64(elapsed.Milliseconds()))
}
