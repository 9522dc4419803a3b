// Package server exposes the planner over HTTP.
package server

import (
	"net/http"
	"sync"

	"github.com/rs/cors"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	pathplanning "path-planning"
)

// Server holds the asynchronous planning jobs started over HTTP.
type Server struct {
	logger *zap.SugaredLogger

	jobsMu sync.RWMutex
	jobs   map[string]*pathplanning.Future

	started  atomic.Int64
	finished atomic.Int64
}

// New creates a server with no jobs.
func New(logger *zap.SugaredLogger) *Server {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Server{
		logger: logger,
		jobs:   make(map[string]*pathplanning.Future),
	}
}

// Handler returns the routes with CORS enabled for all origins.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/plan", s.planHandler)
	mux.HandleFunc("/plan/async", s.planAsyncHandler)
	mux.HandleFunc("/plan/status", s.statusHandler)
	mux.HandleFunc("/circle", s.circleHandler)
	mux.HandleFunc("/simplify", s.simplifyHandler)
	mux.HandleFunc("/health", s.healthHandler)

	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(mux)
}

// ListenAndServe serves the routes on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Infof("Server starting on %s", addr)
	s.logger.Info("Endpoints:")
	s.logger.Info("  POST /plan          - Plan a path and wait for the result")
	s.logger.Info("  POST /plan/async    - Start planning, returns a job id")
	s.logger.Info("  GET  /plan/status   - Poll a job (?id=...)")
	s.logger.Info("  POST /circle        - Approximate a circle as a polygon")
	s.logger.Info("  POST /simplify      - Simplify a polyline")
	s.logger.Info("  GET  /health        - Check server status")

	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) addJob(id string, f *pathplanning.Future) {
	s.jobsMu.Lock()
	s.jobs[id] = f
	s.jobsMu.Unlock()
	s.started.Inc()
}

func (s *Server) job(id string) (*pathplanning.Future, bool) {
	s.jobsMu.RLock()
	defer s.jobsMu.RUnlock()
	f, ok := s.jobs[id]
	return f, ok
}

func (s *Server) removeJob(id string) {
	s.jobsMu.Lock()
	delete(s.jobs, id)
	s.jobsMu.Unlock()
	s.finished.Inc()
}

func (s *Server) pendingJobs() int {
	s.jobsMu.RLock()
	defer s.jobsMu.RUnlock()
	return len(s.jobs)
}
