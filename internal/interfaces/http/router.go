// Package http wires the handlers and middleware into the HTTP route tree
// and hosts the server.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/turtacn/AlloyFrontier/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/AlloyFrontier/internal/interfaces/http/handlers"
	"github.com/turtacn/AlloyFrontier/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handler and middleware dependencies for the
// route tree.
type RouterConfig struct {
	ExplorationHandler *handlers.ExplorationHandler
	ReportHandler      *handlers.ReportHandler
	HealthHandler      *handlers.HealthHandler

	GateMiddleware    *middleware.GateMiddleware
	LoggingMiddleware *middleware.LoggingMiddleware
	CORSConfig        middleware.CORSConfig

	Metrics *prometheus.Metrics
}

// NewRouter constructs the route tree.  Health and metrics endpoints are
// public; the exploration API sits behind the access gate.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(cfg.CORSConfig))
	if cfg.LoggingMiddleware != nil {
		r.Use(cfg.LoggingMiddleware.Handler)
	}

	if cfg.HealthHandler != nil {
		r.Get("/healthz", cfg.HealthHandler.Liveness)
		r.Get("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler())
	}

	r.Route("/api/v1", func(api chi.Router) {
		if cfg.GateMiddleware != nil {
			api.Use(cfg.GateMiddleware.Handler)
		}

		eh := cfg.ExplorationHandler
		api.Get("/elements", eh.GetElements)
		api.Get("/constraints", eh.GetConstraints)
		api.Put("/constraints", eh.UpdateConstraint)
		api.Post("/optimize", eh.Optimize)
		api.Get("/solutions", eh.ListSolutions)
		api.Post("/solutions/select", eh.Select)
		api.Get("/solutions/active", eh.GetActive)
		api.Get("/insight", eh.GetInsight)
		api.Get("/projections/scatter", eh.GetScatter)
		api.Get("/projections/radar", eh.GetRadar)
		api.Get("/history", eh.ListHistory)

		if cfg.ReportHandler != nil {
			api.Post("/report/export", cfg.ReportHandler.Export)
		}
	})

	return r
}
