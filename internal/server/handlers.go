package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/paulmach/orb"

	pathplanning "path-planning"
)

// PlanResponse is returned by /plan and by /plan/status once a job has finished.
type PlanResponse struct {
	Success    bool           `json:"success"`
	Status     string         `json:"status"`
	Path       orb.LineString `json:"path,omitempty"`
	Length     float64        `json:"length,omitempty"`
	Iterations int            `json:"iterations,omitempty"`
	Nodes      int            `json:"nodes,omitempty"`
	Message    string         `json:"message,omitempty"`
}

type circleRequest struct {
	Center orb.Point `json:"center"`
	Radius float64   `json:"radius"`
}

type simplifyRequest struct {
	Points    orb.LineString `json:"points"`
	Tolerance float64        `json:"tolerance"`
}

// job statuses reported by /plan/status
const (
	statusPending   = "pending"
	statusFound     = "found"
	statusExhausted = "exhausted"
	statusFailed    = "failed"
)

// POST /plan - plan synchronously
func (s *Server) planHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	planner, ok := s.decodePlanner(w, r)
	if !ok {
		return
	}

	res := planner.Run()
	writeJSON(w, http.StatusOK, resultResponse(&res))
}

// POST /plan/async - start planning and return a job id
func (s *Server) planAsyncHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	planner, ok := s.decodePlanner(w, r)
	if !ok {
		return
	}

	id := uuid.NewString()
	s.addJob(id, planner.PlanAsync())
	s.logger.Infow("planning job started", "id", id)

	writeJSON(w, http.StatusAccepted, map[string]string{"id": id, "status": statusPending})
}

// GET /plan/status?id=... - poll a job; a finished job is removed once reported
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.URL.Query().Get("id")
	future, ok := s.job(id)
	if !ok {
		http.Error(w, "Unknown job id", http.StatusNotFound)
		return
	}

	res, err := future.Poll()
	switch {
	case err != nil:
		s.removeJob(id)
		s.logger.Errorw("planning job failed", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, PlanResponse{Status: statusFailed, Message: err.Error()})
	case res == nil:
		writeJSON(w, http.StatusOK, PlanResponse{Status: statusPending})
	default:
		s.removeJob(id)
		s.logger.Infow("planning job finished", "id", id, "outcome", res.Outcome)
		writeJSON(w, http.StatusOK, resultResponse(res))
	}
}

// POST /circle - polygon approximation of a circle
func (s *Server) circleHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req circleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ring, err := pathplanning.CreateCircle(req.Center, req.Radius)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"points": ring})
}

// POST /simplify - Douglas-Peucker simplification of a polyline
func (s *Server) simplifyHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req simplifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Tolerance < 0 {
		http.Error(w, "Tolerance must not be negative", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"points": pathplanning.Simplify(req.Points, req.Tolerance),
	})
}

// GET /health - Health check endpoint
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "ready",
		"pendingJobs": s.pendingJobs(),
		"startedJobs": s.started.Load(),
		"closedJobs":  s.finished.Load(),
	})
}

// decodePlanner reads a Request body and validates it, writing the error response itself.
func (s *Server) decodePlanner(w http.ResponseWriter, r *http.Request) (*pathplanning.Planner, bool) {
	var req pathplanning.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warnw("invalid request body", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return nil, false
	}

	planner, err := pathplanning.NewPlanner(req, s.logger)
	if err != nil {
		s.logger.Warnw("rejected planning request", "error", err)
		status := http.StatusInternalServerError
		if errors.Is(err, pathplanning.ErrInvalidConfig) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, PlanResponse{Status: statusFailed, Message: err.Error()})
		return nil, false
	}
	return planner, true
}

func resultResponse(res *pathplanning.Result) PlanResponse {
	path, err := pathplanning.Finalize(res)
	if err != nil {
		return PlanResponse{
			Status:     statusExhausted,
			Iterations: res.Iterations,
			Nodes:      res.Nodes,
			Message:    err.Error(),
		}
	}
	return PlanResponse{
		Success:    true,
		Status:     statusFound,
		Path:       path,
		Length:     pathplanning.PathLength(path),
		Iterations: res.Iterations,
		Nodes:      res.Nodes,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errchkjson
	json.NewEncoder(w).Encode(v)
}
