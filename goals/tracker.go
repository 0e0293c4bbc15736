// Package goals owns the goal document: per-subject goal records with
// progress and completion tracking.
package goals

import (
	"fmt"
	"sort"
	"time"

	"crono/domain"
	"crono/storage"
)

// Tracker is the sole writer of the goal document
type Tracker struct {
	store *storage.Store[domain.GoalDoc]
	doc   domain.GoalDoc
	now   func() time.Time
}

// NewTracker loads (or seeds) the goal document at path
func NewTracker(path string) *Tracker {
	t := &Tracker{
		store: storage.NewStore[domain.GoalDoc](path),
		now:   time.Now,
	}
	t.doc = t.store.Load(domain.GoalDoc{})
	if t.doc == nil {
		t.doc = domain.GoalDoc{}
	}
	return t
}

// Add creates a goal with zero progress. The target value must be
// positive; the target date is optional.
func (t *Tracker) Add(subject string, goalType domain.GoalType, targetValue float64, targetDate, description string) (*domain.Goal, error) {
	if subject == "" {
		return nil, fmt.Errorf("add goal: %w", domain.ErrEmptyName)
	}
	if !goalType.Valid() {
		return nil, fmt.Errorf("add goal for %q: type %q: %w", subject, goalType, domain.ErrInvalidValue)
	}
	if targetValue <= 0 {
		return nil, fmt.Errorf("add goal for %q: target %v: %w", subject, targetValue, domain.ErrInvalidValue)
	}

	now := t.now()
	goal := &domain.Goal{
		ID:          t.newID(now),
		Subject:     subject,
		Type:        goalType,
		TargetValue: targetValue,
		TargetDate:  targetDate,
		Description: description,
		CreatedDate: domain.Date(now),
	}
	t.doc[subject] = append(t.doc[subject], goal)
	if err := t.store.Save(t.doc); err != nil {
		return goal, err
	}
	return goal, nil
}

// UpdateProgress updates the first incomplete goal matching the subject
// and type, marking it completed (and stamping the completion date,
// exactly once) when the target is reached. Completed goals are never
// reopened or modified. Reports whether a goal was updated.
func (t *Tracker) UpdateProgress(subject string, goalType domain.GoalType, currentValue float64) bool {
	for _, goal := range t.doc[subject] {
		if goal.Type != goalType || goal.Completed {
			continue
		}
		goal.CurrentValue = currentValue
		if currentValue >= goal.TargetValue {
			goal.Completed = true
			goal.CompletedDate = domain.Date(t.now())
		}
		t.store.Save(t.doc)
		return true
	}
	return false
}

// Goals returns goals, optionally scoped to one subject (empty string
// means all) and optionally including completed ones, sorted ascending
// by target date. Goals without a target date sort after all dated ones.
func (t *Tracker) Goals(subject string, includeCompleted bool) []*domain.Goal {
	var out []*domain.Goal
	if subject != "" {
		out = append(out, t.doc[subject]...)
	} else {
		for _, name := range t.subjectNames() {
			out = append(out, t.doc[name]...)
		}
	}
	if !includeCompleted {
		filtered := out[:0:0]
		for _, g := range out {
			if !g.Completed {
				filtered = append(filtered, g)
			}
		}
		out = filtered
	}
	sortByTargetDate(out)
	return out
}

// Upcoming returns incomplete goals whose target date is within the
// given number of days from today (overdue goals included), sorted
// ascending by target date
func (t *Tracker) Upcoming(days int) []*domain.Goal {
	cutoff := domain.Date(t.now().AddDate(0, 0, days))
	var out []*domain.Goal
	for _, name := range t.subjectNames() {
		for _, g := range t.doc[name] {
			if g.Completed || g.TargetDate == "" {
				continue
			}
			if _, err := domain.ParseDate(g.TargetDate); err != nil {
				continue
			}
			if g.TargetDate <= cutoff {
				out = append(out, g)
			}
		}
	}
	sortByTargetDate(out)
	return out
}

// All exposes the full document snapshot for export consumers.
// Callers must treat it as read-only.
func (t *Tracker) All() domain.GoalDoc {
	return t.doc
}

func (t *Tracker) subjectNames() []string {
	names := make([]string, 0, len(t.doc))
	for name := range t.doc {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// sortByTargetDate orders dated goals ascending and pushes undated
// goals after them, keeping insertion order within equal keys
func sortByTargetDate(goals []*domain.Goal) {
	sort.SliceStable(goals, func(i, j int) bool {
		a, b := goals[i].TargetDate, goals[j].TargetDate
		if (a == "") != (b == "") {
			return a != ""
		}
		return a < b
	})
}

// newID derives an id from the creation timestamp, suffixed on
// same-second collisions
func (t *Tracker) newID(now time.Time) string {
	id := now.Format("20060102150405")
	if !t.idTaken(id) {
		return id
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", id, i)
		if !t.idTaken(candidate) {
			return candidate
		}
	}
}

func (t *Tracker) idTaken(id string) bool {
	for _, goals := range t.doc {
		for _, g := range goals {
			if g.ID == id {
				return true
			}
		}
	}
	return false
}
