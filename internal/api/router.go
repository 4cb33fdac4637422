package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/glassgovernment/legistar-sync/internal/config"
	"github.com/glassgovernment/legistar-sync/internal/debuglog"
	"github.com/glassgovernment/legistar-sync/internal/pipeline"
	calsync "github.com/glassgovernment/legistar-sync/internal/sync"
)

// NewRouter creates and configures the HTTP router for the admin surface.
// Authentication is handled outside this service.
func NewRouter(pipe *pipeline.Pipeline, engine *calsync.Engine, diag *debuglog.Log, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// Handlers
	syncHandler := NewSyncHandler(pipe)
	maintHandler := NewMaintenanceHandler(engine, cfg.MaxPastDays)
	statusHandler := NewStatusHandler(pipe, diag, cfg)
	debugHandler := NewDebugHandler(diag, pipe)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", HealthHandler())

		r.Post("/sync", syncHandler.Trigger)
		r.Post("/purge", maintHandler.Purge)
		r.Post("/dedupe", maintHandler.Dedupe)

		r.Get("/status", statusHandler.Status)

		r.Post("/debug", debugHandler.Toggle)
		r.Get("/debug/log", debugHandler.Log)
		r.Delete("/debug/log", debugHandler.ClearLog)

		r.Route("/sources", func(r chi.Router) {
			r.Get("/", debugHandler.Sources)
			r.Get("/{source}/raw", debugHandler.Raw)
		})
	})

	return r
}
