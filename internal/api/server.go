package api

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/soochol/ralphflow/internal/chart"
	"github.com/soochol/ralphflow/internal/repository"
	"github.com/soochol/ralphflow/internal/services"
)

// HealthCheck reports whether a dependency is usable.
type HealthCheck func(ctx context.Context) error

type Server struct {
	viewer       *services.ViewerService
	defaultChart string
	page         *template.Template
	checks       map[string]HealthCheck
}

func NewServer(viewer *services.ViewerService, defaultChart string) *Server {
	return &Server{
		viewer:       viewer,
		defaultChart: defaultChart,
		page:         parsePage(),
		checks:       map[string]HealthCheck{},
	}
}

// AddHealthCheck registers a dependency reported by /healthz.
func (s *Server) AddHealthCheck(name string, check HealthCheck) {
	s.checks[name] = check
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE"},
		AllowedHeaders:   []string{"Content-Type", "Last-Event-ID"},
		AllowCredentials: true,
	}))

	r.Get("/healthz", s.healthz)

	r.Route("/api", func(r chi.Router) {
		r.Route("/charts", func(r chi.Router) {
			r.Get("/", s.listCharts)
			r.Post("/", s.createChart)
			r.Get("/{name}", s.getChart)
			r.Delete("/{name}", s.deleteChart)
		})
		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", s.listSessions)
			r.Post("/", s.createSession)
			r.Get("/{id}", s.getSession)
			r.Delete("/{id}", s.deleteSession)
			r.Get("/{id}/events", s.streamSession)
			r.Get("/{id}/diagram.{format}", s.sessionDiagram)
			r.Post("/{id}/{op}", s.applyOp)
		})
	})

	r.Get("/", s.index)
	r.Get("/charts/{name}", s.openChart)
	r.Get("/view/{id}", s.viewPage)
	r.Post("/view/{id}/{op}", s.viewOp)
	r.Handle("/static/*", http.StripPrefix("/static/", StaticHandlerFS(staticFS())))

	return r
}

// healthz answers "ok" when every registered check passes, else 503 with
// the failures by name.
func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	failed := map[string]string{}
	for name, check := range s.checks {
		if err := check(r.Context()); err != nil {
			failed[name] = err.Error()
		}
	}
	if len(failed) > 0 {
		slog.Warn("health check failed", "failed", failed)
		writeJSON(w, http.StatusServiceUnavailable, failed)
		return
	}
	w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrUnknownOp):
		status = http.StatusBadRequest
	case errors.Is(err, chart.ErrInvalid):
		status = http.StatusUnprocessableEntity
	default:
		slog.Error("request failed", "err", err)
	}
	http.Error(w, err.Error(), status)
}
