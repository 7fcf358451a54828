package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/turtacn/AlloyFrontier/internal/infrastructure/monitoring/logging"
)

// Pinger probes a downstream dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	optimizer Pinger // nil skips the optimizer probe
	logger    logging.Logger
}

// NewHealthHandler builds the health handler.
func NewHealthHandler(optimizer Pinger, logger logging.Logger) *HealthHandler {
	return &HealthHandler{optimizer: optimizer, logger: logger.Named("health")}
}

// Liveness reports process liveness.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness reports whether the optimizer dependency is reachable.  The
// service still serves its held state when the optimizer is down, so a
// failed probe is reported as degraded with a 503 rather than hiding it.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.optimizer == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.optimizer.Ping(ctx); err != nil {
		h.logger.Warn("optimizer probe failed", logging.Err(err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":    "degraded",
			"optimizer": "unreachable",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"optimizer": "ok",
	})
}
