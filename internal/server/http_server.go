// Package server exposes the session and metrics API over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/docomm/analytics-core/internal/graph"
	"github.com/docomm/analytics-core/internal/session"
	"github.com/docomm/analytics-core/pkg/logger"
	"github.com/docomm/analytics-core/pkg/models"
)

type HTTPServer struct {
	mux   *http.ServeMux
	store *session.Store
}

func NewHTTPServer(store *session.Store) *HTTPServer {
	s := &HTTPServer{
		mux:   http.NewServeMux(),
		store: store,
	}

	s.mux.HandleFunc("/healthz", s.handleHealthz)
	s.mux.HandleFunc("/v1/sessions", s.handleSessions)
	s.mux.HandleFunc("/v1/sessions/", s.handleSessionByID)

	return s
}

func (s *HTTPServer) Handler() http.Handler {
	return s.mux
}

func (s *HTTPServer) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleSessions handles /v1/sessions
func (s *HTTPServer) handleSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateSession(w, r)
	case http.MethodGet:
		s.handleListSessions(w, r)
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleSessionByID handles /v1/sessions/{id} and related endpoints
func (s *HTTPServer) handleSessionByID(w http.ResponseWriter, r *http.Request) {
	// Parse path: /v1/sessions/{id}, /v1/sessions/{id}:end,
	// /v1/sessions/{id}/events or /v1/sessions/{id}/metrics
	path := strings.TrimPrefix(r.URL.Path, "/v1/sessions/")
	if path == "" {
		s.writeError(w, http.StatusBadRequest, "session ID is required")
		return
	}

	if strings.HasSuffix(path, ":end") {
		sessionID := strings.TrimSuffix(path, ":end")
		if r.Method == http.MethodPost {
			s.handleEndSession(w, r, sessionID)
		} else {
			s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
		return
	}

	if strings.HasSuffix(path, "/events") {
		sessionID := strings.TrimSuffix(path, "/events")
		if r.Method == http.MethodPost {
			s.handleAddEvents(w, r, sessionID)
		} else {
			s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
		return
	}

	if strings.HasSuffix(path, "/metrics") {
		sessionID := strings.TrimSuffix(path, "/metrics")
		if r.Method == http.MethodGet {
			s.handleGetMetrics(w, r, sessionID)
		} else {
			s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handleGetSession(w, r, path)
	case http.MethodDelete:
		s.handleDeleteSession(w, r, path)
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleCreateSession handles POST /v1/sessions
func (s *HTTPServer) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"session_id,omitempty"`
	}
	// The body is optional; an absent or empty body means a generated id.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	sess, err := s.store.Create(req.SessionID)
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			s.writeError(w, http.StatusConflict, err.Error())
		} else {
			s.writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	logger.Info("session created", "session_id", sess.ID)
	s.writeJSON(w, http.StatusCreated, map[string]any{
		"session": sess,
	})
}

// handleListSessions handles GET /v1/sessions
func (s *HTTPServer) handleListSessions(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
			if limit > 1000 {
				limit = 1000
			}
		}
	}

	summaries := s.store.List(limit)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"sessions": summaries,
		"count":    len(summaries),
	})
}

// handleGetSession handles GET /v1/sessions/{id}
func (s *HTTPServer) handleGetSession(w http.ResponseWriter, _ *http.Request, sessionID string) {
	sess, ok := s.store.Get(sessionID)
	if !ok {
		s.writeError(w, http.StatusNotFound, "session not found")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"session": sess,
	})
}

// handleDeleteSession handles DELETE /v1/sessions/{id}
func (s *HTTPServer) handleDeleteSession(w http.ResponseWriter, _ *http.Request, sessionID string) {
	if err := s.store.Delete(sessionID); err != nil {
		s.writeError(w, http.StatusNotFound, "session not found")
		return
	}

	logger.Info("session deleted", "session_id", sessionID)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"deleted": sessionID,
	})
}

// handleAddEvents handles POST /v1/sessions/{id}/events. The body is either a
// single event object or a batch of the form {"events": [...]}.
func (s *HTTPServer) handleAddEvents(w http.ResponseWriter, r *http.Request, sessionID string) {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	events, err := decodeEvents(raw)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(events) == 0 {
		s.writeError(w, http.StatusBadRequest, "at least one event is required")
		return
	}
	for i, e := range events {
		if e.From == "" || e.To == "" {
			s.writeError(w, http.StatusBadRequest, "event "+strconv.Itoa(i)+": from_node and to_node are required")
			return
		}
	}

	total, err := s.store.AddEvents(sessionID, events)
	if err != nil {
		s.writeError(w, http.StatusNotFound, "session not found")
		return
	}

	logger.Debug("events ingested", "session_id", sessionID, "added", len(events), "total", total)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"session_id":   sessionID,
		"added":        len(events),
		"total_events": total,
	})
}

// handleGetMetrics handles GET /v1/sessions/{id}/metrics
func (s *HTTPServer) handleGetMetrics(w http.ResponseWriter, _ *http.Request, sessionID string) {
	m, err := s.store.ComputeMetrics(sessionID)
	if err != nil {
		switch {
		case errors.Is(err, graph.ErrEmptyGraph):
			s.writeError(w, http.StatusPreconditionFailed, "no interactions recorded yet")
		case strings.Contains(err.Error(), "not found"):
			s.writeError(w, http.StatusNotFound, "session not found")
		default:
			s.writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	logger.Info("metrics computed", "session_id", sessionID, "nodes", m.NumNodes, "edges", m.NumEdges)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"session_id": sessionID,
		"metrics":    m,
	})
}

// handleEndSession handles POST /v1/sessions/{id}:end
func (s *HTTPServer) handleEndSession(w http.ResponseWriter, r *http.Request, sessionID string) {
	var req struct {
		SelectedMessage []string `json:"selected_message,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	sess, err := s.store.End(sessionID, req.SelectedMessage)
	if err != nil {
		s.writeError(w, http.StatusNotFound, "session not found")
		return
	}

	logger.Info("session ended", "session_id", sessionID, "events", len(sess.Events))
	s.writeJSON(w, http.StatusOK, map[string]any{
		"session": sess,
	})
}

// decodeEvents accepts either one event object or {"events": [...]}.
func decodeEvents(raw json.RawMessage) ([]models.InteractionEvent, error) {
	var batch struct {
		Events []models.InteractionEvent `json:"events"`
	}
	if err := json.Unmarshal(raw, &batch); err == nil && batch.Events != nil {
		return batch.Events, nil
	}

	var single models.InteractionEvent
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, errors.New("body must be an event or an {\"events\": [...]} batch")
	}
	return []models.InteractionEvent{single}, nil
}

// Helper functions

func (s *HTTPServer) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

func (s *HTTPServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]any{
		"error": message,
	})
}
