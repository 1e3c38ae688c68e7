package service

import (
	"fmt"
	"net/http"
	"runtime"
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
	saveDuration    prometheus.Observer
	boardSize       prometheus.Gauge
	reactionsTotal  prometheus.Counter
}

// NewMetricsService registers the core Prometheus collectors.
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

	saveDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "board_save_duration_seconds",
		Help:    "Latency of board persistence writes",
		Buckets: prometheus.DefBuckets,
	})

	boardSize := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "board_notices",
		Help: "Current number of notices on the board",
	})

	reactionsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "board_reactions_total",
		Help: "Total reactions recorded since process start",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, saveDuration, boardSize, reactionsTotal, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		saveDuration:    saveDuration,
		boardSize:       boardSize,
		reactionsTotal:  reactionsTotal,
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

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveBoardSave tracks the duration of board persistence writes.
func (m *MetricsService) ObserveBoardSave(duration time.Duration) {
	if m == nil {
		return
	}
	m.saveDuration.Observe(duration.Seconds())
}

// SetBoardSize updates the board size gauge.
func (m *MetricsService) SetBoardSize(size int) {
	if m == nil {
		return
	}
	m.boardSize.Set(float64(size))
}

// IncReaction counts a recorded reaction.
func (m *MetricsService) IncReaction() {
	if m == nil {
		return
	}
	m.reactionsTotal.Inc()
}
