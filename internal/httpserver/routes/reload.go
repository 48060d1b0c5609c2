package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/golink/internal/httpserver/deps"
	"github.com/MrSnakeDoc/golink/internal/httpserver/handlers"
)

func init() { Register(registerReload) }

func registerReload(r chi.Router, d deps.Deps) {
	guarded(r, d).Post("/api/reload", handlers.Reload(d))
}
