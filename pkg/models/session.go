package models

import "time"

// Session represents one interaction session. A session owns its accumulated
// events and, after a metrics request, the latest computed GraphMetrics.
type Session struct {
	ID              string             `json:"session_id"`
	StartTime       time.Time          `json:"start_time"`
	EndTime         *time.Time         `json:"end_time,omitempty"`
	Events          []InteractionEvent `json:"interactions"`
	SelectedMessage []string           `json:"selected_message"`
	Metrics         *GraphMetrics      `json:"graph_metrics,omitempty"`
}

// DurationSeconds returns the session duration, or 0 while it is still open.
func (s *Session) DurationSeconds() float64 {
	if s.EndTime == nil {
		return 0
	}
	return s.EndTime.Sub(s.StartTime).Seconds()
}

// SessionSummary is the listing view of a session.
type SessionSummary struct {
	ID              string     `json:"session_id"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	NumEvents       int        `json:"num_interactions"`
	DurationSeconds float64    `json:"duration_seconds"`
}

// Summary builds the listing view of the session.
func (s *Session) Summary() SessionSummary {
	return SessionSummary{
		ID:              s.ID,
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		NumEvents:       len(s.Events),
		DurationSeconds: s.DurationSeconds(),
	}
}
