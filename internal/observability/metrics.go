package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects the Prometheus metrics of the booking API. A nil *Metrics
// is valid and records nothing, which keeps tests free of registries.
type Metrics struct {
	registry             *prometheus.Registry
	handler              http.Handler
	requestsTotal        *prometheus.CounterVec
	requestDuration      *prometheus.HistogramVec
	quotationsCreated    *prometheus.CounterVec
	quotationTransitions *prometheus.CounterVec
	paymentsRecorded     *prometheus.CounterVec
}

// NewMetrics initialises the registry and every metric
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_http_requests_total",
		Help: "HTTP requests by route, method and status code.",
	}, []string{"route", "method", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "booking_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	created := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_quotations_created_total",
		Help: "Quotations created by service type.",
	}, []string{"service_type"})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_quotation_transitions_total",
		Help: "Stored quotation status changes by target status.",
	}, []string{"status"})
	payments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_invoice_payments_total",
		Help: "Payment recording attempts by payment type and outcome.",
	}, []string{"payment_type", "outcome"})
	registry.MustRegister(requests, duration, created, transitions, payments)

	return &Metrics{
		registry:             registry,
		handler:              promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:        requests,
		requestDuration:      duration,
		quotationsCreated:    created,
		quotationTransitions: transitions,
		paymentsRecorded:     payments,
	}
}

// Handler returns the http.Handler for the /metrics endpoint
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware records request count and latency per matched route
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		m.requestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// QuotationCreated counts a persisted quotation
func (m *Metrics) QuotationCreated(serviceType string) {
	if m == nil {
		return
	}
	m.quotationsCreated.WithLabelValues(serviceType).Inc()
}

// QuotationTransitioned counts a stored status change
func (m *Metrics) QuotationTransitioned(status string) {
	if m == nil {
		return
	}
	m.quotationTransitions.WithLabelValues(status).Inc()
}

// PaymentRecorded counts a payment attempt; outcome is "recorded" or "rejected"
func (m *Metrics) PaymentRecorded(paymentType, outcome string) {
	if m == nil {
		return
	}
	m.paymentsRecorded.WithLabelValues(paymentType, outcome).Inc()
}

// Registerer exposes the registry for additional collectors
func (m *Metrics) Registerer() prometheus.Registerer {
	if m == nil {
		return prometheus.DefaultRegisterer
	}
	return m.registry
}
