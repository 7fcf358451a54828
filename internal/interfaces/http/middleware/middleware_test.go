package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turtacn/AlloyFrontier/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AlloyFrontier/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/AlloyFrontier/internal/testutil"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	})
}

func TestGateRejectsMissingKey(t *testing.T) {
	gate := NewGateMiddleware(true, "X-Access-Key", "s3cret", logging.NewNopLogger())
	h := gate.Handler(okHandler())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/solutions", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid access key")
}

func TestGateRejectsWrongKey(t *testing.T) {
	gate := NewGateMiddleware(true, "X-Access-Key", "s3cret", logging.NewNopLogger())
	h := gate.Handler(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/solutions", nil)
	req.Header.Set("X-Access-Key", "wrong")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGateAcceptsMatchingKey(t *testing.T) {
	gate := NewGateMiddleware(true, "X-Access-Key", "s3cret", logging.NewNopLogger())
	h := gate.Handler(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/solutions", nil)
	req.Header.Set("X-Access-Key", "s3cret")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGateLogsRejection(t *testing.T) {
	ml := testutil.NewMockLogger()
	gate := NewGateMiddleware(true, "X-Access-Key", "s3cret", ml)
	h := gate.Handler(okHandler())

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/solutions", nil))
	assert.Equal(t, 1, ml.CountLevel("warn"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/solutions", nil)
	req.Header.Set("X-Access-Key", "s3cret")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, 1, ml.CountLevel("warn"), "accepted request must not log a rejection")
}

func TestGateDisabledPassesThrough(t *testing.T) {
	gate := NewGateMiddleware(false, "X-Access-Key", "", logging.NewNopLogger())
	h := gate.Handler(okHandler())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/solutions", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoggingRecordsMetrics(t *testing.T) {
	metrics := prometheus.NewMetrics()
	lm := NewLoggingMiddleware(logging.NewNopLogger(), metrics, "/healthz")
	h := lm.Handler(okHandler())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/constraints", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	mw := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(mw, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, mw.Body.String(),
		`alloyfrontier_http_requests_total{method="GET",path="/api/v1/constraints",status_code="200"} 1`)
}

func TestLoggingSkipsConfiguredPaths(t *testing.T) {
	metrics := prometheus.NewMetrics()
	lm := NewLoggingMiddleware(logging.NewNopLogger(), metrics, "/healthz")
	h := lm.Handler(okHandler())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	mw := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(mw, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.NotContains(t, mw.Body.String(), `path="/healthz"`)
}

func TestCORSPreflight(t *testing.T) {
	h := CORS(DefaultCORSConfig())(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/solutions", nil)
	req.Header.Set("Origin", "http://dashboard.local")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "X-Access-Key")
}

func TestCORSRestrictedOrigin(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowedOrigins = []string{"http://dashboard.local"}
	h := CORS(cfg)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/solutions", nil)
	req.Header.Set("Origin", "http://evil.local")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
