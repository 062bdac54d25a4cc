package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors for the application
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	GRPCRequestsTotal *prometheus.CounterVec

	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	FeedPageDuration *prometheus.HistogramVec

	AuditEventsTotal  *prometheus.CounterVec
	OTPIssuedTotal    *prometheus.CounterVec
	ReportTransitions *prometheus.CounterVec
}

var (
	instance *Metrics
	once     sync.Once
)

// Get returns the process-wide collectors, registering them on first use.
func Get() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			HTTPRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "socialhub_http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "route", "status"},
			),
			HTTPRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "socialhub_http_request_duration_seconds",
					Help:    "HTTP request latency in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"method", "route", "status"},
			),
			GRPCRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "socialhub_grpc_requests_total",
					Help: "Total number of gRPC requests",
				},
				[]string{"method", "code"},
			),
			CacheHitsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "socialhub_cache_hits_total",
					Help: "Total number of cache hits",
				},
				[]string{"cache"},
			),
			CacheMissesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "socialhub_cache_misses_total",
					Help: "Total number of cache misses",
				},
				[]string{"cache"},
			),
			FeedPageDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "socialhub_feed_page_duration_seconds",
					Help:    "Time to build and decorate one feed page",
					Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
				},
				[]string{"mode"},
			),
			AuditEventsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "socialhub_audit_events_total",
					Help: "Audit events published, by action",
				},
				[]string{"action"},
			),
			OTPIssuedTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "socialhub_otp_issued_total",
					Help: "One-time codes issued, by purpose",
				},
				[]string{"purpose"},
			),
			ReportTransitions: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "socialhub_report_transitions_total",
					Help: "Report status transitions, by resulting status",
				},
				[]string{"status"},
			),
		}
	})
	return instance
}

func RecordCacheHit(cache string) {
	Get().CacheHitsTotal.WithLabelValues(cache).Inc()
}

func RecordCacheMiss(cache string) {
	Get().CacheMissesTotal.WithLabelValues(cache).Inc()
}
