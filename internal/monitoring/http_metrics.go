package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics contains all metrics for HTTP request monitoring.
type HTTPMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec

	inFlightRequests *prometheus.GaugeVec

	flowOperations *prometheus.CounterVec
	flowDuration   *prometheus.HistogramVec
}

func NewHTTPMetrics() *HTTPMetrics {
	return &HTTPMetrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "transfer_gateway_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
			},
			[]string{"method", "path", "status"},
		),

		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transfer_gateway_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		inFlightRequests: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "transfer_gateway_http_requests_in_flight",
				Help: "Current number of HTTP requests being served",
			},
			[]string{"method", "path"},
		),

		flowOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transfer_gateway_flow_operations_total",
				Help: "Total number of transfer flow operations",
			},
			[]string{"operation", "status"},
		),

		flowDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "transfer_gateway_flow_operation_duration_seconds",
				Help:    "Duration of transfer flow operations in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
			},
			[]string{"operation", "status"},
		),
	}
}

// MustRegister registers all metrics with the provided registry.
func (m *HTTPMetrics) MustRegister(registry *prometheus.Registry) {
	registry.MustRegister(
		m.requestDuration,
		m.requestsTotal,
		m.inFlightRequests,
		m.flowOperations,
		m.flowDuration,
	)
}

// RecordFlowOperation records one flow operation outcome, e.g.
// ("initiate", "success") or ("verify_otp", "rejected").
func (m *HTTPMetrics) RecordFlowOperation(operation, status string, duration float64) {
	m.flowOperations.WithLabelValues(operation, status).Inc()
	if duration > 0 {
		m.flowDuration.WithLabelValues(operation, status).Observe(duration)
	}
}

// HTTPMetricsMiddleware creates a Gin middleware for HTTP metrics collection.
func HTTPMetricsMiddleware(metrics *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method

		metrics.inFlightRequests.WithLabelValues(method, path).Inc()
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		metrics.inFlightRequests.WithLabelValues(method, path).Dec()
		metrics.requestDuration.WithLabelValues(method, path, status).Observe(duration)
		metrics.requestsTotal.WithLabelValues(method, path, status).Inc()
	}
}
