package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MrSnakeDoc/golink/internal/domain"
)

type errorResponse struct {
	Error   string `json:"error"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{
		Error:   domain.KindOf(err).String(),
		Title:   domain.TitleOf(err),
		Message: domain.MessageOf(err),
	})
}

// errNotLoaded is reported before the first reload completes.
var errNotLoaded = domain.Errorf(domain.KindUnknown, "Not Ready", "configuration not loaded yet")
