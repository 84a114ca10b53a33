package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "webapp"

// Metrics holds the Prometheus collectors for orders and HTTP traffic on a
// private registry.
//
// Thread Safety: Safe for concurrent use by multiple goroutines.
type Metrics struct {
	registry *prometheus.Registry

	ordersPlaced     *prometheus.CounterVec
	ordersCancelled  prometheus.Counter
	ordersRejected   *prometheus.CounterVec
	portionsReserved prometheus.Counter
	portionsRestored prometheus.Counter
	orderTotal       prometheus.Histogram

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers all collectors. Go runtime and process
// collectors are registered too.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ordersPlaced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "orders",
			Name:      "placed_total",
			Help:      "Orders committed, by size",
		}, []string{"size"}),
		ordersCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "orders",
			Name:      "cancelled_total",
			Help:      "Orders cancelled",
		}),
		ordersRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "orders",
			Name:      "rejected_total",
			Help:      "Order submissions refused; stock_raced is true when the stock ran out between validation and commit",
		}, []string{"stock_raced"}),
		portionsReserved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "stock",
			Name:      "portions_reserved_total",
			Help:      "Ingredient portions taken by placed orders",
		}),
		portionsRestored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "stock",
			Name:      "portions_restored_total",
			Help:      "Ingredient portions returned by cancellations",
		}),
		orderTotal: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "orders",
			Name:      "total_price_euros",
			Help:      "Total price of placed orders",
			Buckets:   []float64{5, 7.5, 10, 12.5, 15, 20, 25, 30},
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and method",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.ordersPlaced,
		m.ordersCancelled,
		m.ordersRejected,
		m.portionsReserved,
		m.portionsRestored,
		m.orderTotal,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// ObservePlaced records a committed order.
func (m *Metrics) ObservePlaced(size string, portions int, total float64) {
	m.ordersPlaced.WithLabelValues(size).Inc()
	m.portionsReserved.Add(float64(portions))
	m.orderTotal.Observe(total)
}

// ObserveCancelled records a cancellation and the portions it returned.
func (m *Metrics) ObserveCancelled(portions int) {
	m.ordersCancelled.Inc()
	m.portionsRestored.Add(float64(portions))
}

// ObserveRejected records a refused submission.
func (m *Metrics) ObserveRejected(stockRaced bool) {
	m.ordersRejected.WithLabelValues(strconv.FormatBool(stockRaced)).Inc()
}

// ObserveHTTP records one served request. route is the matched route
// template, not the raw path.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
