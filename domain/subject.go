package domain

import "time"

// Priority of a subject/project
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid reports whether p is a known priority
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// SubjectStatus is the lifecycle state of a subject/project
type SubjectStatus string

const (
	SubjectActive    SubjectStatus = "active"
	SubjectCompleted SubjectStatus = "completed"
	SubjectOnHold    SubjectStatus = "on_hold"
	SubjectArchived  SubjectStatus = "archived"
)

// Valid reports whether s is a known subject status
func (s SubjectStatus) Valid() bool {
	switch s {
	case SubjectActive, SubjectCompleted, SubjectOnHold, SubjectArchived:
		return true
	}
	return false
}

// TopicStatus is the tri-state completion status of a topic
type TopicStatus string

const (
	TopicTodo       TopicStatus = "todo"
	TopicInProgress TopicStatus = "in_progress"
	TopicCompleted  TopicStatus = "completed"
)

// Valid reports whether s is a known topic status
func (s TopicStatus) Valid() bool {
	switch s {
	case TopicTodo, TopicInProgress, TopicCompleted:
		return true
	}
	return false
}

// DefaultTarget is the target question count assigned when none is given
const DefaultTarget = 500

// Topic is a sub-unit of a subject, identified by name within it
type Topic struct {
	Name      string      `json:"name"`
	Status    TopicStatus `json:"status"`
	StartDate string      `json:"start_date"` // NoDate when unset
	EndDate   string      `json:"end_date"`   // NoDate when unset
}

// Transition applies a status change and its date stamping rule.
// The resulting (status, start, end) triple depends only on the status
// being applied, so re-entering the current status is well-defined too.
func (t *Topic) Transition(status TopicStatus, today string) {
	switch status {
	case TopicInProgress:
		if t.StartDate == NoDate {
			t.StartDate = today
		}
		t.EndDate = NoDate
	case TopicCompleted:
		if t.StartDate == NoDate {
			t.StartDate = today
		}
		t.EndDate = today
	case TopicTodo:
		t.StartDate = NoDate
		t.EndDate = NoDate
	}
	t.Status = status
}

// Subject is a top-level trackable unit, keyed by its display name
type Subject struct {
	SolvedCount   int           `json:"solved_count"`
	TargetCount   int           `json:"target_count"`
	LastStudyDate string        `json:"last_study_date"` // empty until first question add
	Topics        []*Topic      `json:"topics"`
	Category      string        `json:"category"`
	Priority      Priority      `json:"priority"`
	Deadline      string        `json:"deadline"`
	Status        SubjectStatus `json:"status"`
	Description   string        `json:"description"`
	CreatedDate   string        `json:"created_date"`
	Tags          []string      `json:"tags"`
}

// Progress returns the solved/target percentage, 0 when no target is set
func (s *Subject) Progress() float64 {
	if s.TargetCount <= 0 {
		return 0
	}
	return float64(s.SolvedCount) / float64(s.TargetCount) * 100
}

// CompletedTopics counts topics with completed status
func (s *Subject) CompletedTopics() int {
	n := 0
	for _, t := range s.Topics {
		if t.Status == TopicCompleted {
			n++
		}
	}
	return n
}

// Topic returns the topic with the given name, nil if absent
func (s *Subject) Topic(name string) *Topic {
	for _, t := range s.Topics {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// SubjectDoc is the subject/topic document, keyed by subject name
type SubjectDoc map[string]*Subject

// Normalize back-fills fields older documents may be missing and coerces
// unknown enum values to their defaults. Reports whether anything changed.
func (d SubjectDoc) Normalize() bool {
	changed := false
	for _, s := range d {
		if s.TargetCount <= 0 {
			s.TargetCount = DefaultTarget
			changed = true
		}
		if s.Topics == nil {
			s.Topics = []*Topic{}
			changed = true
		}
		if !s.Priority.Valid() {
			s.Priority = PriorityMedium
			changed = true
		}
		if !s.Status.Valid() {
			s.Status = SubjectActive
			changed = true
		}
		if s.CreatedDate == "" {
			s.CreatedDate = Date(time.Now())
			changed = true
		}
		if s.Tags == nil {
			s.Tags = []string{}
			changed = true
		}
		for _, t := range s.Topics {
			if !t.Status.Valid() {
				t.Status = TopicTodo
				changed = true
			}
			if t.StartDate == "" {
				t.StartDate = NoDate
				changed = true
			}
			if t.EndDate == "" {
				t.EndDate = NoDate
				changed = true
			}
		}
	}
	return changed
}
