package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/golink/internal/httpserver/deps"
)

type componentStatus struct {
	OK          bool   `json:"ok"`
	LinksLoaded *int   `json:"links_loaded,omitempty"`
	LastReload  string `json:"last_reload,omitempty"`
	Path        string `json:"path,omitempty"`
	Mode        string `json:"mode,omitempty"`
	Error       string `json:"error,omitempty"`
}

type statusResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Status reports the configuration and usage store state.
func Status(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := map[string]componentStatus{
			"config": configStatus(d),
			"usage":  usageStatus(r.Context(), d),
		}

		writeJSON(w, http.StatusOK, statusResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func configStatus(d deps.Deps) componentStatus {
	count := d.Index.Count()
	st := componentStatus{
		LinksLoaded: &count,
		LastReload:  "never",
		Path:        d.ConfigPath,
	}
	if last := d.Index.GetLastReload(); !last.IsZero() {
		st.LastReload = last.Format(time.RFC3339)
	}

	cfg, err := d.Index.Snapshot()
	switch {
	case err != nil:
		st.Error = err.Error()
	case cfg == nil:
		st.Error = errNotLoaded.Message
	default:
		st.OK = true
	}
	return st
}

func usageStatus(ctx context.Context, d deps.Deps) componentStatus {
	if d.Store == nil {
		return componentStatus{OK: true, Mode: "disabled"}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.Store.Ping(ctx); err != nil {
		return componentStatus{OK: false, Mode: "redis", Error: err.Error()}
	}
	return componentStatus{OK: true, Mode: "redis"}
}

// determineMode is "broken" without a usable configuration, "degraded"
// when only the usage store is down, "ok" otherwise.
func determineMode(components map[string]componentStatus) string {
	if c, ok := components["config"]; ok && !c.OK {
		return "broken"
	}
	if u, ok := components["usage"]; ok && !u.OK {
		return "degraded"
	}
	return "ok"
}
