package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/golink/internal/httpserver/deps"
	"github.com/MrSnakeDoc/golink/internal/icons"
	"github.com/MrSnakeDoc/golink/internal/launcher"
)

type linkResponse struct {
	Title      string   `json:"title"`
	URL        string   `json:"url"`
	Group      string   `json:"group"`
	GroupTitle string   `json:"group_title"`
	Keywords   []string `json:"keywords,omitempty"`
	Icon       string   `json:"icon"`
	Browser    string   `json:"browser,omitempty"`
	Profile    string   `json:"profile,omitempty"`
	Opens      int64    `json:"opens"`
}

// Links lists the links matching ?q= (all links when empty), in file order.
func Links(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := d.Index.Snapshot()
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err)
			return
		}
		if cfg == nil {
			writeError(w, http.StatusServiceUnavailable, errNotLoaded)
			return
		}

		favicons := cfg.FaviconsEnabled()
		entries := d.Index.Search(r.URL.Query().Get("q"))

		out := make([]linkResponse, 0, len(entries))
		for _, e := range entries {
			target := launcher.ResolveTarget(e.Link, cfg)
			resp := linkResponse{
				Title:      e.Link.Title,
				URL:        e.Link.URL,
				Group:      e.GroupName,
				GroupTitle: e.GroupTitle,
				Keywords:   e.Link.Keywords,
				Icon:       icons.ForLink(e.Link, favicons).String(),
				Profile:    target.Profile,
			}
			if target.Application != "" {
				resp.Browser = launcher.ShortName(target.Application)
			}
			if d.Usage != nil {
				resp.Opens = d.Usage.ForLink(e.Link)
			}
			out = append(out, resp)
		}

		writeJSON(w, http.StatusOK, out)
	}
}
