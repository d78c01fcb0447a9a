package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the API.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	otpIssued       prometheus.Counter
	otpVerified     prometheus.Counter
	applications    prometheus.Counter
	jobsFilled      prometheus.Counter
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "job_board_cache_hits_total",
		Help: "Open-job board reads served from cache",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "job_board_cache_misses_total",
		Help: "Open-job board reads that went to the database",
	})

	otpIssued := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "verification_codes_issued_total",
		Help: "Email verification codes issued",
	})

	otpVerified := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "verifications_completed_total",
		Help: "Accounts that completed email verification",
	})

	applications := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "applications_submitted_total",
		Help: "Job applications accepted by the API",
	})

	jobsFilled := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "jobs_filled_total",
		Help: "Jobs closed through hiring confirmation",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, cacheHits, cacheMisses, otpIssued, otpVerified, applications, jobsFilled, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		cacheHits:       cacheHits,
		cacheMisses:     cacheMisses,
		otpIssued:       otpIssued,
		otpVerified:     otpVerified,
		applications:    applications,
		jobsFilled:      jobsFilled,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records per-route request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordCacheLookup counts job-board cache hits and misses.
func (m *MetricsService) RecordCacheLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheHits.Inc()
	} else {
		m.cacheMisses.Inc()
	}
}

// RecordOTPIssued counts verification codes sent out.
func (m *MetricsService) RecordOTPIssued() {
	if m == nil {
		return
	}
	m.otpIssued.Inc()
}

// RecordVerificationCompleted counts accounts that finished verification.
func (m *MetricsService) RecordVerificationCompleted() {
	if m == nil {
		return
	}
	m.otpVerified.Inc()
}

// RecordApplicationSubmitted counts accepted applications.
func (m *MetricsService) RecordApplicationSubmitted() {
	if m == nil {
		return
	}
	m.applications.Inc()
}

// RecordJobFilled counts hiring confirmations.
func (m *MetricsService) RecordJobFilled() {
	if m == nil {
		return
	}
	m.jobsFilled.Inc()
}
