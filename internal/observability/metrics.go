package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce       sync.Once
	httpRequestsTotal  *prometheus.CounterVec
	httpLatencySeconds *prometheus.HistogramVec
	uploadBytesTotal   prometheus.Counter
	uploadRejected     *prometheus.CounterVec
	loginAttempts      *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tutoring_http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tutoring_http_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		uploadBytesTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tutoring_upload_bytes_total",
			Help: "Bytes of resource files stored.",
		})

		uploadRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tutoring_upload_rejected_total",
			Help: "Resource uploads rejected, by reason.",
		}, []string{"reason"})

		loginAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tutoring_login_attempts_total",
			Help: "Login attempts by principal kind and outcome.",
		}, []string{"kind", "outcome"})

		prometheus.MustRegister(httpRequestsTotal, httpLatencySeconds, uploadBytesTotal, uploadRejected, loginAttempts)
	})
}

// HTTPRequests exposes the request counter.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the request latency histogram.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// UploadBytes exposes the stored upload byte counter.
func UploadBytes() prometheus.Counter {
	RegisterMetrics()
	return uploadBytesTotal
}

// UploadRejected exposes the rejected upload counter.
func UploadRejected() *prometheus.CounterVec {
	RegisterMetrics()
	return uploadRejected
}

// LoginAttempts exposes the login attempt counter.
func LoginAttempts() *prometheus.CounterVec {
	RegisterMetrics()
	return loginAttempts
}
