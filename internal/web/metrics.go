package web

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"supportdesk/internal/ui"
)

var (
	// MetricResolutions counts route resolutions by auth state and outcome
	MetricResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "supportdesk_route_resolutions_total",
		Help: "Route resolutions by auth state and outcome",
	}, []string{"state", "outcome"})

	// MetricLoginAttempts counts login attempts by result
	MetricLoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "supportdesk_login_attempts_total",
		Help: "Login attempts by result",
	}, []string{"result"})

	// MetricRequestDuration tracks HTTP request latency
	MetricRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "supportdesk_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"method", "status"})

	// MetricErrorsTotal counts errors by type
	MetricErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "supportdesk_errors_total",
		Help: "Total errors by type",
	}, []string{"type"})
)

// MetricsServer wraps the HTTP server for prometheus metrics
type MetricsServer struct {
	server *http.Server
}

// NewMetricsServer creates a new metrics server
func NewMetricsServer(addr string) *MetricsServer {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &MetricsServer{
		server: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start begins serving metrics (non-blocking)
func (m *MetricsServer) Start() {
	go func() {
		if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			ui.LogStatus("error", "Metrics server error: "+err.Error())
		}
	}()
}

// Shutdown gracefully stops the metrics server
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return m.server.Shutdown(shutdownCtx)
}

// Stop shuts the metrics server down and logs a failed drain
func (m *MetricsServer) Stop(ctx context.Context) {
	if err := m.Shutdown(ctx); err != nil {
		MetricErrorsTotal.WithLabelValues("shutdown").Inc()
		ui.LogStatus("error", "Metrics shutdown: "+err.Error())
	}
}
