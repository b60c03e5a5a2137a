package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for one server instance
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Service metrics
	ServiceCalls    *prometheus.CounterVec
	ServiceDuration *prometheus.HistogramVec

	// Registry metrics
	RegistryEntries prometheus.Gauge
	RegistryMinted  prometheus.Counter
	RegistryEvicted *prometheus.CounterVec

	// Delivery metrics
	DeliveryResponses *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.GaugeFunc
	startTime time.Time
}

// NewMetrics creates a metrics collector bound to its own registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gallery_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gallery_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "route"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gallery_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 7),
			},
			[]string{"method", "route"},
		),

		// Service metrics
		ServiceCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gallery_service_calls_total",
				Help: "Total number of gallery operations",
			},
			[]string{"operation", "status"},
		),
		ServiceDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gallery_service_duration_seconds",
				Help:    "Gallery operation duration in seconds",
				Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"operation"},
		),

		// Registry metrics
		RegistryEntries: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "gallery_registry_entries",
				Help: "Number of live resource registry entries",
			},
		),
		RegistryMinted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "gallery_registry_minted_total",
				Help: "Total number of resource identifiers minted",
			},
		),
		RegistryEvicted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gallery_registry_evicted_total",
				Help: "Total number of registry entries evicted",
			},
			[]string{"reason"},
		),

		// Delivery metrics
		DeliveryResponses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gallery_delivery_responses_total",
				Help: "Image delivery responses by outcome",
			},
			[]string{"outcome"},
		),
	}

	m.Uptime = factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "gallery_uptime_seconds",
			Help: "Server uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Registry returns the Prometheus registry the metrics are registered with
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the exposition handler for this instance
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, route, status string, duration time.Duration, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, route, status).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
	m.ResponseSize.WithLabelValues(method, route).Observe(float64(respSize))
}

// RecordServiceCall records a gallery operation
func (m *Metrics) RecordServiceCall(operation, status string, duration time.Duration) {
	m.ServiceCalls.WithLabelValues(operation, status).Inc()
	m.ServiceDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordDelivery records the outcome of an image response
func (m *Metrics) RecordDelivery(outcome string) {
	m.DeliveryResponses.WithLabelValues(outcome).Inc()
}

// ObserveMint records a newly minted identifier
func (m *Metrics) ObserveMint(entries int) {
	m.RegistryMinted.Inc()
	m.RegistryEntries.Set(float64(entries))
}

// ObserveEvict records an evicted registry entry
func (m *Metrics) ObserveEvict(reason string, entries int) {
	m.RegistryEvicted.WithLabelValues(reason).Inc()
	m.RegistryEntries.Set(float64(entries))
}
