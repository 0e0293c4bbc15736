// Package analytics derives metrics from the subject repository, the
// session log and the goal tracker. It is pure computation: the engine
// only reads the stores and never persists anything.
package analytics

import (
	"fmt"
	"math"
	"time"

	"crono/domain"
	"crono/goals"
	"crono/sessions"
	"crono/subjects"
)

// Thresholds and normalization constants of the derived metrics
const (
	weeklyMinutesFull  = 7 * 60 // time factor caps at 7 hours per week
	questionsFull      = 1000   // questions factor caps at 1000 solved
	lowActivityMinutes = 300    // below this, the weekly warning fires
	lowProgressPercent = 20     // below this, a per-subject suggestion fires
	upcomingGoalDays   = 7
	performanceWindow  = 30 // days of sessions feeding subject performance
	trendWeeks         = 4
)

// Engine reads the three data-bearing stores on demand
type Engine struct {
	subjects *subjects.Repository
	sessions *sessions.Log
	goals    *goals.Tracker
	now      func() time.Time
}

// NewEngine wires the engine to its read-only inputs
func NewEngine(subjectRepo *subjects.Repository, sessionLog *sessions.Log, goalTracker *goals.Tracker) *Engine {
	return &Engine{
		subjects: subjectRepo,
		sessions: sessionLog,
		goals:    goalTracker,
		now:      time.Now,
	}
}

// ProductivityScore blends four factors, each clamped to [0,1] and
// weighted equally: weekly study time, total questions solved, overall
// progress, and topic completion. Returned on a 0-100 scale, rounded
// to 1 decimal.
func (e *Engine) ProductivityScore() float64 {
	weekStats := e.sessions.WeekStats()
	stats := e.subjects.Statistics()

	timeFactor := clamp01(weekStats.TotalTimeMinutes / weeklyMinutesFull)
	questionsFactor := clamp01(float64(stats.TotalSolved) / questionsFull)
	progressFactor := clamp01(stats.Progress / 100)
	completionFactor := float64(stats.CompletedTopics) / math.Max(float64(stats.TotalTopics), 1)

	score := (timeFactor*0.25 + questionsFactor*0.25 + progressFactor*0.25 + completionFactor*0.25) * 100
	return round1(score)
}

// Streak counts consecutive calendar days with at least one session,
// ending today. A day without a session today means a streak of 0,
// regardless of earlier days.
func (e *Engine) Streak() int {
	days := map[string]bool{}
	for _, s := range e.sessions.All() {
		days[domain.Date(s.StartTime)] = true
	}

	streak := 0
	day := e.now()
	for days[domain.Date(day)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// WeekTrend is one week's totals in the trailing trend
type WeekTrend struct {
	Label          string  `json:"week"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	TotalTime      float64 `json:"total_time"`
	TotalQuestions int     `json:"total_questions"`
	Sessions       int     `json:"sessions"`
}

// WeeklyTrend sums session minutes, questions and counts for each of
// the trailing 4 Monday-aligned weeks, ordered oldest to newest
func (e *Engine) WeeklyTrend() []WeekTrend {
	currentWeek := domain.WeekStart(e.now())
	trend := make([]WeekTrend, 0, trendWeeks)

	for i := trendWeeks - 1; i >= 0; i-- {
		weekStart := currentWeek.AddDate(0, 0, -7*i)
		weekEnd := weekStart.AddDate(0, 0, 6)
		startDate := domain.Date(weekStart)
		endDate := domain.Date(weekEnd)

		week := WeekTrend{
			Label:     fmt.Sprintf("Week %d", trendWeeks-i),
			StartDate: startDate,
			EndDate:   endDate,
		}
		for _, s := range e.sessions.All() {
			day := domain.Date(s.StartTime)
			if day < startDate || day > endDate {
				continue
			}
			week.TotalTime += s.DurationMinutes
			week.TotalQuestions += s.QuestionsSolved
			week.Sessions++
		}
		trend = append(trend, week)
	}
	return trend
}

// Performance is the derived per-subject metric set
type Performance struct {
	ProgressPercentage float64 `json:"progress_percentage"`
	Efficiency         float64 `json:"efficiency"` // questions per hour
	CompletionRate     float64 `json:"completion_rate"`
	TotalTimeHours     float64 `json:"total_time_hours"`
	AverageSessionTime float64 `json:"average_session_time"`
	ConsistencyScore   float64 `json:"consistency_score"`
}

// SubjectPerformance combines the subject record with its trailing
// 30-day session stats. Every ratio degrades to 0 instead of dividing
// by zero.
func (e *Engine) SubjectPerformance(name string) (Performance, error) {
	subject, ok := e.subjects.Get(name)
	if !ok {
		return Performance{}, fmt.Errorf("subject performance %q: %w", name, domain.ErrNotFound)
	}
	stats := e.sessions.SubjectStats(name, performanceWindow)

	totalHours := stats.TotalTimeMinutes / 60
	efficiency := 0.0
	if totalHours > 0 {
		efficiency = float64(subject.SolvedCount) / totalHours
	}
	completionRate := 0.0
	if len(subject.Topics) > 0 {
		completionRate = float64(subject.CompletedTopics()) / float64(len(subject.Topics)) * 100
	}
	consistency := 0.0
	if len(stats.DailyStats) > 0 {
		studyDays := 0
		for _, day := range stats.DailyStats {
			if day.TimeMinutes > 0 {
				studyDays++
			}
		}
		consistency = float64(studyDays) / float64(performanceWindow) * 100
	}

	return Performance{
		ProgressPercentage: subject.Progress(),
		Efficiency:         round2(efficiency),
		CompletionRate:     completionRate,
		TotalTimeHours:     round2(totalHours),
		AverageSessionTime: round2(stats.AverageTimePerSession),
		ConsistencyScore:   round1(consistency),
	}, nil
}

// Recommendation is one rule-based advice item
type Recommendation struct {
	Type     string `json:"type"` // warning, info, suggestion
	Message  string `json:"message"`
	Priority string `json:"priority"` // high, medium, low
	Subject  string `json:"subject,omitempty"`
}

// Recommendations evaluates the advice rules in a fixed order: the
// low-activity warning, then the upcoming-goals notice, then one
// low-progress suggestion per qualifying subject in name order.
func (e *Engine) Recommendations() []Recommendation {
	var out []Recommendation

	weekStats := e.sessions.WeekStats()
	if weekStats.TotalTimeMinutes < lowActivityMinutes {
		out = append(out, Recommendation{
			Type:     "warning",
			Message:  "Your study time is low this week. Consider setting aside more time.",
			Priority: "high",
		})
	}

	if upcoming := e.goals.Upcoming(upcomingGoalDays); len(upcoming) > 0 {
		out = append(out, Recommendation{
			Type:     "info",
			Message:  fmt.Sprintf("%d of your goals are coming up. Pick up the pace!", len(upcoming)),
			Priority: "medium",
		})
	}

	for _, name := range e.subjects.Names() {
		subject, ok := e.subjects.Get(name)
		if !ok || subject.TargetCount <= 0 {
			continue
		}
		if subject.Progress() < lowProgressPercent {
			out = append(out, Recommendation{
				Type:     "suggestion",
				Message:  fmt.Sprintf("Progress in %s is low. Put in some more work.", name),
				Priority: "low",
				Subject:  name,
			})
		}
	}
	return out
}

func clamp01(v float64) float64 {
	return math.Min(v, 1.0)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
