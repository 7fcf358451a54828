package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/turtacn/AlloyFrontier/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AlloyFrontier/internal/infrastructure/monitoring/prometheus"
)

// LoggingMiddleware logs each request and records the HTTP metrics.
type LoggingMiddleware struct {
	logger    logging.Logger
	metrics   *prometheus.Metrics
	skipPaths map[string]struct{}
}

// NewLoggingMiddleware builds the request logger.  skipPaths suppresses
// high-frequency probe paths (health, metrics).
func NewLoggingMiddleware(logger logging.Logger, metrics *prometheus.Metrics, skipPaths ...string) *LoggingMiddleware {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}
	return &LoggingMiddleware{
		logger:    logger.Named("http"),
		metrics:   metrics,
		skipPaths: skip,
	}
}

// Handler wraps next with request logging and metrics recording.
func (m *LoggingMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, skip := m.skipPaths[r.URL.Path]; skip {
			next.ServeHTTP(w, r)
			return
		}

		m.metrics.HTTPActiveRequests.Inc()
		defer m.metrics.HTTPActiveRequests.Dec()

		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		elapsed := time.Since(start)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.metrics.RecordHTTPRequest(r.Method, r.URL.Path, status, elapsed)

		fields := []logging.Field{
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Int("status", status),
			logging.Duration("duration", elapsed),
			logging.Int("bytes", ww.BytesWritten()),
			logging.String("remote_addr", r.RemoteAddr),
		}
		switch {
		case status >= 500:
			m.logger.Error("request failed", fields...)
		case status >= 400:
			m.logger.Warn("request rejected", fields...)
		default:
			m.logger.Info("request served", fields...)
		}
	})
}
