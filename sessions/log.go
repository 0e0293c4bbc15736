// Package sessions owns the timed study session document and its
// day/week/subject rollups.
package sessions

import (
	"fmt"
	"math"
	"sort"
	"time"

	"crono/domain"
	"crono/storage"
)

// Log is the sole writer of the session document
type Log struct {
	store *storage.Store[domain.SessionDoc]
	doc   domain.SessionDoc
	now   func() time.Time
}

// Option configures a Log
type Option func(*Log)

// WithClock replaces the wall clock, for deterministic tests
func WithClock(now func() time.Time) Option {
	return func(l *Log) { l.now = now }
}

// NewLog loads (or seeds) the session document at path
func NewLog(path string, opts ...Option) *Log {
	l := &Log{
		store: storage.NewStore[domain.SessionDoc](path),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.doc = l.store.Load(domain.SessionDoc{})
	if l.doc == nil {
		l.doc = domain.SessionDoc{}
	}
	return l
}

// Start creates and persists a new active session, returning its id.
// The store does not prevent multiple active sessions per subject;
// serializing starts and ends is the caller's contract.
func (l *Log) Start(subject string) (string, error) {
	now := l.now()
	id := l.newID(now)
	l.doc[id] = &domain.Session{
		Subject:   subject,
		StartTime: now,
	}
	if err := l.store.Save(l.doc); err != nil {
		return id, err
	}
	return id, nil
}

// End finalizes a session: duration from wall-clock elapsed time
// (rounded to 2 decimals), questions solved and notes recorded.
// Unknown ids are ErrNotFound.
func (l *Log) End(id string, questionsSolved int, notes string) (*domain.Session, error) {
	session, ok := l.doc[id]
	if !ok {
		return nil, fmt.Errorf("end session %q: %w", id, domain.ErrNotFound)
	}
	end := l.now()
	session.EndTime = &end
	session.DurationMinutes = round2(end.Sub(session.StartTime).Minutes())
	session.QuestionsSolved = questionsSolved
	session.Notes = notes
	if err := l.store.Save(l.doc); err != nil {
		return session, err
	}
	return session, nil
}

// Totals is one aggregation bucket of session rollups
type Totals struct {
	TimeMinutes float64 `json:"time"`
	Questions   int     `json:"questions"`
	Sessions    int     `json:"sessions"`
}

func (t *Totals) add(s *domain.Session) {
	t.TimeMinutes += s.DurationMinutes
	t.Questions += s.QuestionsSolved
	t.Sessions++
}

// TodayStats summarizes sessions started today
type TodayStats struct {
	TotalTimeMinutes float64           `json:"total_time_minutes"`
	TotalQuestions   int               `json:"total_questions"`
	SessionCount     int               `json:"session_count"`
	Sessions         []*domain.Session `json:"sessions"`
}

// TodayStats filters sessions whose start time falls on today's date
func (l *Log) TodayStats() TodayStats {
	today := domain.Date(l.now())
	var stats TodayStats
	for _, s := range l.doc {
		if domain.Date(s.StartTime) != today {
			continue
		}
		stats.TotalTimeMinutes += s.DurationMinutes
		stats.TotalQuestions += s.QuestionsSolved
		stats.SessionCount++
		stats.Sessions = append(stats.Sessions, s)
	}
	sort.Slice(stats.Sessions, func(i, j int) bool {
		return stats.Sessions[i].StartTime.Before(stats.Sessions[j].StartTime)
	})
	return stats
}

// WeekStats summarizes the current week, Monday-aligned
type WeekStats struct {
	TotalTimeMinutes float64           `json:"total_time_minutes"`
	TotalQuestions   int               `json:"total_questions"`
	SessionCount     int               `json:"session_count"`
	BySubject        map[string]Totals `json:"by_subject"`
}

// WeekStats filters sessions started on or after the current week's
// Monday and also groups the totals by subject
func (l *Log) WeekStats() WeekStats {
	weekStart := domain.WeekStart(l.now())
	stats := WeekStats{BySubject: map[string]Totals{}}
	for _, s := range l.doc {
		if s.StartTime.Before(weekStart) {
			continue
		}
		stats.TotalTimeMinutes += s.DurationMinutes
		stats.TotalQuestions += s.QuestionsSolved
		stats.SessionCount++

		totals := stats.BySubject[s.Subject]
		totals.add(s)
		stats.BySubject[s.Subject] = totals
	}
	return stats
}

// SubjectStats summarizes one subject over a trailing window
type SubjectStats struct {
	TotalTimeMinutes      float64           `json:"total_time_minutes"`
	TotalQuestions        int               `json:"total_questions"`
	SessionCount          int               `json:"session_count"`
	DailyStats            map[string]Totals `json:"daily_stats"`
	AverageTimePerSession float64           `json:"average_time_per_session"`
}

// SubjectStats filters that subject's sessions within the trailing
// window of the given number of days, with a per-day breakdown
func (l *Log) SubjectStats(subject string, days int) SubjectStats {
	cutoff := domain.Date(l.now().AddDate(0, 0, -days))
	stats := SubjectStats{DailyStats: map[string]Totals{}}
	for _, s := range l.doc {
		if s.Subject != subject || domain.Date(s.StartTime) < cutoff {
			continue
		}
		stats.TotalTimeMinutes += s.DurationMinutes
		stats.TotalQuestions += s.QuestionsSolved
		stats.SessionCount++

		day := domain.Date(s.StartTime)
		totals := stats.DailyStats[day]
		totals.add(s)
		stats.DailyStats[day] = totals
	}
	if stats.SessionCount > 0 {
		stats.AverageTimePerSession = stats.TotalTimeMinutes / float64(stats.SessionCount)
	}
	return stats
}

// All exposes the full document snapshot for export and analytics
// consumers. Callers must treat it as read-only.
func (l *Log) All() domain.SessionDoc {
	return l.doc
}

// newID derives an id from the creation timestamp, suffixed when two
// sessions land in the same second
func (l *Log) newID(now time.Time) string {
	id := now.Format("20060102150405")
	if _, taken := l.doc[id]; !taken {
		return id
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", id, i)
		if _, taken := l.doc[candidate]; !taken {
			return candidate
		}
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
