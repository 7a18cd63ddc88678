// Package server provides the HTTP invocation surface: tool discovery,
// tool calls, health and metrics.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/harun/ghtools/internal/metrics"
	"github.com/harun/ghtools/pkg/toolkit"
)

// Config contains server configuration values.
type Config struct {
	Host      string
	Port      int
	AuthToken string
}

// Server routes invocation requests to the dispatcher.
type Server struct {
	cfg        Config
	router     *chi.Mux
	catalog    *toolkit.Catalog
	dispatcher *toolkit.Dispatcher
	metrics    *metrics.Metrics
}

// New constructs a Server with middleware and routes configured. The
// catalog must be frozen before the server starts serving.
func New(cfg Config, catalog *toolkit.Catalog, dispatcher *toolkit.Dispatcher, m *metrics.Metrics) *Server {
	s := &Server{
		cfg:        cfg,
		router:     chi.NewRouter(),
		catalog:    catalog,
		dispatcher: dispatcher,
		metrics:    m,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(120 * time.Second))

	s.router.Get("/health", s.handleHealth)
	if m != nil {
		s.router.Method(http.MethodGet, "/metrics", m.Handler())
	}

	s.router.Route("/mcp", func(r chi.Router) {
		r.Use(s.auth)
		r.Get("/tools", s.handleListTools)
		r.Post("/call", s.handleCall)
	})

	return s
}

// Router exposes the root HTTP handler for the server.
func (s *Server) Router() http.Handler { return s.router }

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.AuthToken == "" {
			next.ServeHTTP(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer "+s.cfg.AuthToken {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListTools(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"tools": s.catalog.Describe()})
}

func (s *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	var req toolkit.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	start := time.Now()
	result := s.dispatcher.Invoke(r.Context(), req)
	s.observe(req.Tool, result, time.Since(start))

	writeJSON(w, statusFor(result), result)
}

func (s *Server) observe(tool string, result toolkit.Result, duration time.Duration) {
	if s.metrics == nil {
		return
	}
	status := "success"
	if !result.Success {
		status = "failure"
		s.metrics.InvocationErrorsTotal.WithLabelValues(tool, string(result.Kind)).Inc()
	}
	s.metrics.InvocationsTotal.WithLabelValues(tool, status).Inc()
	s.metrics.InvocationDuration.WithLabelValues(tool).Observe(duration.Seconds())
}

func statusFor(result toolkit.Result) int {
	if result.Success {
		return http.StatusOK
	}
	switch result.Kind {
	case toolkit.KindToolNotFound:
		return http.StatusNotFound
	case toolkit.KindInvalidArguments:
		return http.StatusBadRequest
	case toolkit.KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}
