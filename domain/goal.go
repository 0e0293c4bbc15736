package domain

// GoalType is the quantity a goal tracks
type GoalType string

const (
	GoalQuestions GoalType = "questions"
	GoalTime      GoalType = "time"
	GoalTopics    GoalType = "topics"
)

// Valid reports whether t is a known goal type
func (t GoalType) Valid() bool {
	switch t {
	case GoalQuestions, GoalTime, GoalTopics:
		return true
	}
	return false
}

// Goal is a target value tracked to completion, weak-referencing a
// subject by name
type Goal struct {
	ID            string   `json:"id"`
	Subject       string   `json:"subject"`
	Type          GoalType `json:"type"`
	TargetValue   float64  `json:"target_value"`
	CurrentValue  float64  `json:"current_value"`
	TargetDate    string   `json:"target_date"` // empty means no deadline
	Description   string   `json:"description"`
	CreatedDate   string   `json:"created_date"`
	Completed     bool     `json:"completed"`
	CompletedDate string   `json:"completed_date"` // stamped once on completion
}

// GoalDoc is the goal document, grouped under subject name
type GoalDoc map[string][]*Goal

// Normalize back-fills goal lists that older documents stored as null
func (d GoalDoc) Normalize() bool {
	changed := false
	for subject, goals := range d {
		if goals == nil {
			d[subject] = []*Goal{}
			changed = true
		}
	}
	return changed
}
