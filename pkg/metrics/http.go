package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records request-level metadata for the API.
type HTTPMetrics struct {
	duration *prometheus.HistogramVec
	requests *prometheus.CounterVec
}

// NewHTTPMetrics registers the request metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})
	reg.MustRegister(duration, requests)
	return &HTTPMetrics{
		duration: duration,
		requests: requests,
	}
}

// Observe records one completed request.
func (m *HTTPMetrics) Observe(method, route string, status int, duration time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	m.duration.WithLabelValues(method, normalizeLabel(route)).Observe(duration.Seconds())
	m.requests.WithLabelValues(method, normalizeLabel(route), strconv.Itoa(status)).Inc()
}

// StorefrontMetrics counts domain operations on the in-memory stores.
type StorefrontMetrics struct {
	pagesServed   prometheus.Counter
	cartMutations *prometheus.CounterVec
}

// NewStorefrontMetrics registers the storefront counters.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	pages := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_pages_served_total",
		Help: "Catalog page windows served via load-more.",
	})
	cart := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart mutations by operation.",
	}, []string{"op"})
	reg.MustRegister(pages, cart)
	return &StorefrontMetrics{
		pagesServed:   pages,
		cartMutations: cart,
	}
}

// IncPageServed counts one committed load-more extension.
func (m *StorefrontMetrics) IncPageServed() {
	if m == nil || m.pagesServed == nil {
		return
	}
	m.pagesServed.Inc()
}

// IncCartMutation counts one cart reducer dispatch.
func (m *StorefrontMetrics) IncCartMutation(op string) {
	if m == nil || m.cartMutations == nil {
		return
	}
	m.cartMutations.WithLabelValues(normalizeLabel(op)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
