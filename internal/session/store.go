// Package session holds the in-memory session registry. Each session owns an
// analyzer that accumulates its interaction events; the store serializes all
// access, so analyzers never see concurrent mutation.
package session

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/docomm/analytics-core/internal/graph"
	"github.com/docomm/analytics-core/pkg/models"
)

type record struct {
	session  *models.Session
	analyzer *graph.Analyzer
}

// Store is an in-memory session registry guarded by a single RWMutex.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*record
	opts     graph.Options
}

// NewStore creates an empty store whose sessions share the given pipeline
// options.
func NewStore(opts graph.Options) *Store {
	return &Store{
		sessions: make(map[string]*record),
		opts:     opts,
	}
}

// Create registers a new session. An empty id gets a generated UUID; a
// duplicate id is rejected.
func (s *Store) Create(id string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		id = uuid.NewString()
	}
	if _, exists := s.sessions[id]; exists {
		return nil, fmt.Errorf("session already exists: %s", id)
	}

	sess := &models.Session{
		ID:        id,
		StartTime: time.Now().UTC(),
	}
	s.sessions[id] = &record{
		session:  sess,
		analyzer: graph.NewAnalyzer(s.opts),
	}
	return sess, nil
}

// Get returns the session by id.
func (s *Store) Get(id string) (*models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	return rec.session, true
}

// List returns up to limit session summaries, newest first.
func (s *Store) List(limit int) []models.SessionSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	out := make([]models.SessionSummary, 0, len(s.sessions))
	for _, rec := range s.sessions {
		out = append(out, rec.session.Summary())
	}
	sort.Slice(out, func(a, b int) bool {
		if !out[a].StartTime.Equal(out[b].StartTime) {
			return out[a].StartTime.After(out[b].StartTime)
		}
		return out[a].ID < out[b].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// AddEvents appends events to the session and feeds them to its analyzer.
// It returns the new event count.
func (s *Store) AddEvents(id string, events []models.InteractionEvent) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.sessions[id]
	if !ok {
		return 0, fmt.Errorf("session not found: %s", id)
	}
	for i := range events {
		events[i].SessionID = id
		rec.session.Events = append(rec.session.Events, events[i])
		rec.analyzer.AddEvent(events[i])
	}
	return len(rec.session.Events), nil
}

// ComputeMetrics runs the full metric pipeline over the session's current
// graph and caches the result on the session. It surfaces
// graph.ErrEmptyGraph when no events have been ingested yet.
func (s *Store) ComputeMetrics(id string) (*models.GraphMetrics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session not found: %s", id)
	}
	m, err := rec.analyzer.ComputeAll()
	if err != nil {
		return nil, err
	}
	rec.session.Metrics = m
	return m, nil
}

// End closes the session, recording the end time and the message the user
// settled on. Ending an already-ended session only updates the message.
func (s *Store) End(id string, selectedMessage []string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session not found: %s", id)
	}
	if rec.session.EndTime == nil {
		now := time.Now().UTC()
		rec.session.EndTime = &now
	}
	if len(selectedMessage) > 0 {
		rec.session.SelectedMessage = selectedMessage
	}
	return rec.session, nil
}

// Delete removes the session and its analyzer.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("session not found: %s", id)
	}
	delete(s.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
