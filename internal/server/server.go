// Package server exposes the planner over HTTP. The boundary mirrors
// the chat client's contract: one JSON message per request, a session
// identifier in the query string, and a structured planning payload (or
// an error object with a non-2xx status) back. Callers distinguish "no
// schedule found" (a 200 with an empty schedule) from a failed request
// by status code alone.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ameliedv/moodflow/internal/llm"
	"github.com/ameliedv/moodflow/internal/planner"
	"github.com/ameliedv/moodflow/internal/session"
)

// requestTimeout caps one turn end to end, matching the chat client's
// 30-second wait.
const requestTimeout = 30 * time.Second

// Server handles planning requests over HTTP.
type Server struct {
	planner *planner.Service
	oracle  llm.Client
	logger  *slog.Logger
}

// New creates a Server. The oracle client is only consulted for health
// reporting and may be nil.
func New(svc *planner.Service, oracle llm.Client, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{planner: svc, oracle: oracle, logger: logger}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/plan", s.handlePlan)
	mux.HandleFunc("GET /v1/schedules/{date}", s.handleGetSchedule)
	mux.HandleFunc("POST /v1/sessions/{id}/reset", s.handleResetSession)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

type planRequestBody struct {
	Message string `json:"message"`
	UserID  string `json:"user_id,omitempty"`
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var body planRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body: " + err.Error()})
		return
	}
	if body.Message == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "message is required"})
		return
	}

	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		sessionID = session.NewSessionID()
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	resp, err := s.planner.Plan(ctx, planner.PlanRequest{
		SessionID: sessionID,
		UserID:    body.UserID,
		Message:   body.Message,
	})
	if err != nil {
		s.logger.Error("plan turn failed", "session", sessionID, "error", err)
		writeJSON(w, statusFor(err), errorBody{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	rec, err := s.planner.Lookup(r.Context(), userID, r.PathValue("date"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
		return
	}
	if rec == nil {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "no schedule found for this date"})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleResetSession(w http.ResponseWriter, r *http.Request) {
	s.planner.ResetSession(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{"status": "ok"}
	if s.oracle != nil {
		status["oracle_available"] = s.oracle.Available(r.Context())
	}
	writeJSON(w, http.StatusOK, status)
}

// statusFor maps turn failures onto transport statuses: upstream oracle
// trouble is a bad gateway, anything else is internal.
func statusFor(err error) int {
	switch {
	case errors.Is(err, llm.ErrTimeout),
		errors.Is(err, llm.ErrUnavailable),
		errors.Is(err, llm.ErrRetryExhausted),
		errors.Is(err, llm.ErrInvalidOutput):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are gone; nothing left to do but note it.
		slog.Default().Error("encoding response failed", "error", err)
	}
}
