// Package prom implements the OrderMetrics port with Prometheus collectors.
package prom

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// OrderMetrics counts completed order operations. Counters are bumped by the
// command handlers after a successful commit, so rolled back operations never
// show up here.
type OrderMetrics struct {
	created      prometheus.Counter
	cancelled    prometheus.Counter
	statusCounts *prometheus.GaugeVec
}

// NewOrderMetrics creates and registers the order operation collectors on the
// default registry. Call once per process.
func NewOrderMetrics() *OrderMetrics {
	created := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ordermanagement",
		Name:      "orders_created_total",
		Help:      "Total number of orders created.",
	})
	cancelled := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ordermanagement",
		Name:      "orders_cancelled_total",
		Help:      "Total number of orders cancelled.",
	})
	statusCounts := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "ordermanagement",
		Name:      "orders_by_status",
		Help:      "Current number of orders per status, sampled periodically.",
	}, []string{"status"})

	prometheus.MustRegister(created, cancelled, statusCounts)
	return &OrderMetrics{
		created:      created,
		cancelled:    cancelled,
		statusCounts: statusCounts,
	}
}

// OrderCreated increments the created orders counter.
func (m *OrderMetrics) OrderCreated() {
	m.created.Inc()
}

// OrderCancelled increments the cancelled orders counter.
func (m *OrderMetrics) OrderCancelled() {
	m.cancelled.Inc()
}

// SetOrdersByStatus records the sampled number of orders in the given status.
func (m *OrderMetrics) SetOrdersByStatus(status string, count float64) {
	m.statusCounts.WithLabelValues(status).Set(count)
}

// Handler exposes the default registry for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}
