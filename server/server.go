// Package server exposes the hub as server-rendered pages and a JSON API.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"demographic_communication_hub/catalog"
	"demographic_communication_hub/generator"
	"demographic_communication_hub/hub"
	"demographic_communication_hub/store"
)

const defaultModelTimeout = 120 * time.Second

type Server struct {
	hub     *hub.Service
	catalog *catalog.Catalog
	log     *logrus.Entry
	timeout time.Duration
	pages   map[string]*template.Template
}

// Options tunes a Server; zero values fall back to defaults.
type Options struct {
	ModelTimeout time.Duration
	Log          *logrus.Entry
}

func New(svc *hub.Service, cat *catalog.Catalog, opts Options) (*Server, error) {
	if svc == nil {
		return nil, errors.New("hub service required")
	}
	if cat == nil {
		return nil, errors.New("catalog required")
	}
	if opts.ModelTimeout <= 0 {
		opts.ModelTimeout = defaultModelTimeout
	}
	if opts.Log == nil {
		opts.Log = logrus.NewEntry(logrus.StandardLogger())
	}
	pages, err := loadPages()
	if err != nil {
		return nil, err
	}
	return &Server{
		hub:     svc,
		catalog: cat,
		log:     opts.Log,
		timeout: opts.ModelTimeout,
		pages:   pages,
	}, nil
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(chiMiddleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(workspaceMiddleware)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/compose", http.StatusFound)
		})
		for _, p := range pageList {
			h := s.pageHandler(p.Path)
			r.Get(p.Path, h)
			r.Post(p.Path, h)
		}
		r.Get("/analytics/export", s.handleExport)

		r.Route("/api", func(r chi.Router) {
			r.Get("/status", s.handleStatus)
			r.Post("/compose", s.handleCompose)
			r.Get("/profiles", s.handleListProfiles)
			r.Post("/profiles", s.handleCreateProfile)
			r.Get("/profiles/{name}", s.handleGetProfile)
			r.Post("/optimize", s.handleOptimize)
			r.Post("/style", s.handleStyle)
			r.Post("/adapt", s.handleAdapt)
			r.Post("/analyze", s.handleAnalyze)
			r.Get("/analytics", s.handleAnalytics)
			r.Get("/history", s.handleHistory)
		})
	})
	return r
}

// modelContext bounds one request's model calls.
func (s *Server) modelContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), s.timeout)
}

// statusFor maps service errors onto HTTP codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, hub.ErrMissingInput):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrProfileNotFound):
		return http.StatusNotFound
	case errors.Is(err, generator.ErrModelUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"failed to encode response"}` + "\n"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.WithError(err).WithField("path", r.URL.Path).Warn("request failed")
	}
	Error(w, status, err.Error())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.hub.Ping(r.Context()); err != nil {
		Error(w, http.StatusServiceUnavailable, "store unavailable")
		return
	}
	JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
