package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/golink/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready bool   `json:"ready"`
	Links int    `json:"links"`
	Error string `json:"error,omitempty"`
}

// Readyz is 200 once a configuration is loaded and 503 while it is
// missing or broken.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := d.Index.Snapshot()
		switch {
		case err != nil:
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Error: err.Error()})
		case cfg == nil:
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Error: errNotLoaded.Message})
		default:
			writeJSON(w, http.StatusOK, readyzResponse{Ready: true, Links: d.Index.Count()})
		}
	}
}
