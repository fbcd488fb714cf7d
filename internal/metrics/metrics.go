// Package metrics owns the Prometheus collectors of the gateway.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	CartMutations   *prometheus.CounterVec
	LikesToggles    *prometheus.CounterVec
	BusPublishes    prometheus.Counter
	BusSubscribers  prometheus.Gauge
	BackendDuration *prometheus.HistogramVec
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
}

// New builds the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CartMutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowear_cart_mutations_total",
				Help: "Cart mutations by operation and result",
			},
			[]string{"op", "result"},
		),
		LikesToggles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowear_likes_toggles_total",
				Help: "Likes toggles by result (liked, unliked)",
			},
			[]string{"result"},
		),
		BusPublishes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "gowear_bus_publishes_total",
				Help: "Collections-changed signals published on this instance",
			},
		),
		BusSubscribers: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "gowear_bus_subscribers",
				Help: "Subscribers currently attached to the notification hub",
			},
		),
		BackendDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gowear_backend_request_duration_seconds",
				Help:    "Duration of REST backend calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op"},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowear_http_requests_total",
				Help: "HTTP requests served by route and status",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gowear_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
	reg.MustRegister(
		m.CartMutations,
		m.LikesToggles,
		m.BusPublishes,
		m.BusSubscribers,
		m.BackendDuration,
		m.HTTPRequests,
		m.HTTPDuration,
	)
	return m
}

// ObserveBackend matches backend.Observer.
func (m *Metrics) ObserveBackend(op string, _ int, elapsed time.Duration) {
	m.BackendDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

// ObservePublish matches bus.Hub.OnPublish.
func (m *Metrics) ObservePublish(string, int) {
	m.BusPublishes.Inc()
}

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
