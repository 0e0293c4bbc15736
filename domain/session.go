package domain

import "time"

// Session is a timed study interval tied to one subject by name.
// The subject reference is weak: deleting a subject does not touch
// its sessions.
type Session struct {
	Subject         string     `json:"subject"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time"` // nil while active
	DurationMinutes float64    `json:"duration_minutes"`
	QuestionsSolved int        `json:"questions_solved"`
	Notes           string     `json:"notes"`
}

// Active reports whether the session has not been ended yet
func (s *Session) Active() bool {
	return s.EndTime == nil
}

// SessionDoc is the session document, keyed by timestamp-derived id
type SessionDoc map[string]*Session

// Normalize reports whether any back-fill happened. Sessions have no
// optional fields beyond their zero values, so nothing to heal.
func (d SessionDoc) Normalize() bool {
	return false
}
