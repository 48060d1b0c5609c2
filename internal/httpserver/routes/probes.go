package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/golink/internal/httpserver/deps"
	"github.com/MrSnakeDoc/golink/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/golink/internal/httpserver/mw"
)

func init() { Register(registerProbes) }

// Probes skip host and rate checks so local health checkers always reach them.
func registerProbes(r chi.Router, d deps.Deps) {
	r = r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))
	r.Get("/healthz", handlers.Healthz(d))
	r.Get("/readyz", handlers.Readyz(d))
	r.Get("/api/status", handlers.Status(d))
}
