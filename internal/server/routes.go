package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mateconpizza/neo/internal/scheme"
	"github.com/mateconpizza/neo/internal/server/mw"
)

func (s *Server) routes(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/"+scheme.PageHistory, http.StatusFound)
	})
	r.Get("/healthz", s.healthz)
	r.With(mw.SameOrigin(slog.Default())).Post("/action/{name}", s.action)
	r.Get("/{page}", s.page)
}

type healthzResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Version       string  `json:"version,omitempty"`
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	_ = json.NewEncoder(w).Encode(healthzResponse{
		Status:        "ok",
		Version:       s.version,
		UptimeSeconds: time.Since(s.started).Seconds(),
	})
}

func (s *Server) page(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "page")
	if !scheme.IsPage(name) {
		http.NotFound(w, r)
		return
	}

	var buf bytes.Buffer
	if err := s.shell.Page(r.Context(), name, &buf); err != nil {
		slog.Error("rendering page", "page", name, "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

// action runs a state-changing action. Parameters come from the form
// body only.
func (s *Server) action(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	a := scheme.Action{
		Name:   scheme.Name(chi.URLParam(r, "name")),
		Params: r.PostForm,
	}

	if err := s.shell.Perform(r.Context(), a); err != nil {
		slog.Warn("rejected action", "action", a.Name, "error", err)
		switch {
		case errors.Is(err, scheme.ErrUnknownAction):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			http.Error(w, err.Error(), http.StatusBadRequest)
		}

		return
	}

	http.Redirect(w, r, redirectTarget(r, a), http.StatusSeeOther)
}

// redirectTarget is the page of the action, else the same-host referer,
// else the history page.
func redirectTarget(r *http.Request, a scheme.Action) string {
	if p := scheme.Page(a); p != "" {
		return "/" + p
	}

	if ref, err := url.Parse(r.Referer()); err == nil && ref.Host == r.Host && ref.Path != "" {
		return ref.Path
	}

	return "/" + scheme.PageHistory
}
