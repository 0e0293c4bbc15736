// Package subjects owns the subject/topic document: subject and topic
// CRUD, question/target mutation, tag and filter helpers, and the
// aggregate statistics rollup.
package subjects

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"crono/domain"
	"crono/storage"
)

// Repository is the sole writer of the subject/topic document
type Repository struct {
	store *storage.Store[domain.SubjectDoc]
	doc   domain.SubjectDoc
	now   func() time.Time
}

// NewRepository loads (or seeds) the document at path
func NewRepository(path string) *Repository {
	r := &Repository{
		store: storage.NewStore[domain.SubjectDoc](path),
		now:   time.Now,
	}
	r.doc = r.store.Load(domain.SubjectDoc{})
	if r.doc == nil {
		r.doc = domain.SubjectDoc{}
	}
	return r
}

// AddParams are the optional fields of a new subject. Zero values mean
// "use the default" (target 500, medium priority, active status).
type AddParams struct {
	Target      int
	Category    string
	Priority    domain.Priority
	Deadline    string
	Status      domain.SubjectStatus
	Description string
}

// Add creates a subject with zeroed counters
func (r *Repository) Add(name string, p AddParams) (*domain.Subject, error) {
	name = trimName(name)
	if name == "" {
		return nil, fmt.Errorf("add subject: %w", domain.ErrEmptyName)
	}
	if _, ok := r.doc[name]; ok {
		return nil, fmt.Errorf("add subject %q: %w", name, domain.ErrAlreadyExists)
	}

	target := p.Target
	if target == 0 {
		target = domain.DefaultTarget
	}
	if target < 0 {
		return nil, fmt.Errorf("add subject %q: target %d: %w", name, target, domain.ErrInvalidValue)
	}
	priority := p.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("add subject %q: priority %q: %w", name, priority, domain.ErrInvalidValue)
	}
	status := p.Status
	if status == "" {
		status = domain.SubjectActive
	}
	if !status.Valid() {
		return nil, fmt.Errorf("add subject %q: status %q: %w", name, status, domain.ErrInvalidValue)
	}

	subject := &domain.Subject{
		TargetCount: target,
		Topics:      []*domain.Topic{},
		Category:    p.Category,
		Priority:    priority,
		Deadline:    p.Deadline,
		Status:      status,
		Description: p.Description,
		CreatedDate: domain.Date(r.now()),
		Tags:        []string{},
	}
	r.doc[name] = subject
	if err := r.persist(); err != nil {
		return nil, err
	}
	return subject, nil
}

// UpdateParams are the optional overrides of Update; nil fields are
// left untouched
type UpdateParams struct {
	Target      *int
	Category    *string
	Priority    *domain.Priority
	Deadline    *string
	Status      *domain.SubjectStatus
	Description *string
}

// Update renames a subject and applies the provided overrides, preserving
// every other field. Renaming to an existing name is rejected.
func (r *Repository) Update(oldName, newName string, p UpdateParams) error {
	newName = trimName(newName)
	if newName == "" {
		return fmt.Errorf("update subject: %w", domain.ErrEmptyName)
	}
	if oldName != newName {
		if _, ok := r.doc[newName]; ok {
			return fmt.Errorf("update subject %q: %w", newName, domain.ErrAlreadyExists)
		}
	}
	subject, ok := r.doc[oldName]
	if !ok {
		return fmt.Errorf("update subject %q: %w", oldName, domain.ErrNotFound)
	}

	if p.Target != nil {
		if *p.Target <= 0 {
			return fmt.Errorf("update subject %q: target %d: %w", oldName, *p.Target, domain.ErrInvalidValue)
		}
		subject.TargetCount = *p.Target
	}
	if p.Priority != nil {
		if !p.Priority.Valid() {
			return fmt.Errorf("update subject %q: priority %q: %w", oldName, *p.Priority, domain.ErrInvalidValue)
		}
		subject.Priority = *p.Priority
	}
	if p.Status != nil {
		if !p.Status.Valid() {
			return fmt.Errorf("update subject %q: status %q: %w", oldName, *p.Status, domain.ErrInvalidValue)
		}
		subject.Status = *p.Status
	}
	if p.Category != nil {
		subject.Category = *p.Category
	}
	if p.Deadline != nil {
		subject.Deadline = *p.Deadline
	}
	if p.Description != nil {
		subject.Description = *p.Description
	}

	delete(r.doc, oldName)
	r.doc[newName] = subject
	return r.persist()
}

// Delete removes a subject. Deleting an absent subject is a no-op
// returning false. Sessions, goals and notes referencing the subject
// are left in place.
func (r *Repository) Delete(name string) bool {
	if _, ok := r.doc[name]; !ok {
		return false
	}
	delete(r.doc, name)
	r.persist()
	return true
}

// AddQuestions credits solved questions to a subject and stamps its
// last study date. Non-positive counts are rejected.
func (r *Repository) AddQuestions(name string, count int) error {
	if count <= 0 {
		return fmt.Errorf("add questions to %q: count %d: %w", name, count, domain.ErrInvalidValue)
	}
	subject, ok := r.doc[name]
	if !ok {
		return fmt.Errorf("add questions to %q: %w", name, domain.ErrNotFound)
	}
	// Solved may exceed the target; no upper bound
	subject.SolvedCount += count
	subject.LastStudyDate = domain.Date(r.now())
	return r.persist()
}

// SetTarget replaces a subject's target question count
func (r *Repository) SetTarget(name string, target int) error {
	if target <= 0 {
		return fmt.Errorf("set target of %q: target %d: %w", name, target, domain.ErrInvalidValue)
	}
	subject, ok := r.doc[name]
	if !ok {
		return fmt.Errorf("set target of %q: %w", name, domain.ErrNotFound)
	}
	subject.TargetCount = target
	return r.persist()
}

// AddTopic appends a fresh todo topic to a subject
func (r *Repository) AddTopic(subjectName, topicName string) error {
	subject, ok := r.doc[subjectName]
	if !ok {
		return fmt.Errorf("add topic to %q: %w", subjectName, domain.ErrNotFound)
	}
	topicName = trimName(topicName)
	if topicName == "" {
		return fmt.Errorf("add topic to %q: %w", subjectName, domain.ErrEmptyName)
	}
	if subject.Topic(topicName) != nil {
		return fmt.Errorf("add topic %q to %q: %w", topicName, subjectName, domain.ErrAlreadyExists)
	}
	subject.Topics = append(subject.Topics, &domain.Topic{
		Name:      topicName,
		Status:    domain.TopicTodo,
		StartDate: domain.NoDate,
		EndDate:   domain.NoDate,
	})
	return r.persist()
}

// UpdateTopicStatus applies the transition rule to a topic
func (r *Repository) UpdateTopicStatus(subjectName, topicName string, status domain.TopicStatus) error {
	if !status.Valid() {
		return fmt.Errorf("update topic %q: status %q: %w", topicName, status, domain.ErrInvalidValue)
	}
	subject, ok := r.doc[subjectName]
	if !ok {
		return fmt.Errorf("update topic in %q: %w", subjectName, domain.ErrNotFound)
	}
	topic := subject.Topic(topicName)
	if topic == nil {
		return fmt.Errorf("update topic %q in %q: %w", topicName, subjectName, domain.ErrNotFound)
	}
	topic.Transition(status, domain.Date(r.now()))
	return r.persist()
}

// DeleteTopic removes a topic by name, reporting whether a removal
// occurred
func (r *Repository) DeleteTopic(subjectName, topicName string) bool {
	subject, ok := r.doc[subjectName]
	if !ok {
		return false
	}
	for i, t := range subject.Topics {
		if t.Name == topicName {
			subject.Topics = append(subject.Topics[:i], subject.Topics[i+1:]...)
			r.persist()
			return true
		}
	}
	return false
}

// AddTag adds a tag to a subject if not already present
func (r *Repository) AddTag(subjectName, tag string) error {
	subject, ok := r.doc[subjectName]
	if !ok {
		return fmt.Errorf("tag subject %q: %w", subjectName, domain.ErrNotFound)
	}
	tag = trimName(tag)
	if tag == "" {
		return fmt.Errorf("tag subject %q: %w", subjectName, domain.ErrEmptyName)
	}
	for _, existing := range subject.Tags {
		if existing == tag {
			return nil
		}
	}
	subject.Tags = append(subject.Tags, tag)
	return r.persist()
}

// RemoveTag removes a tag from a subject, reporting whether a removal
// occurred
func (r *Repository) RemoveTag(subjectName, tag string) bool {
	subject, ok := r.doc[subjectName]
	if !ok {
		return false
	}
	for i, existing := range subject.Tags {
		if existing == tag {
			subject.Tags = append(subject.Tags[:i], subject.Tags[i+1:]...)
			r.persist()
			return true
		}
	}
	return false
}

// Get returns a subject by name
func (r *Repository) Get(name string) (*domain.Subject, bool) {
	s, ok := r.doc[name]
	return s, ok
}

// Names returns all subject names in sorted order. The document map is
// unordered, so this is the repository's canonical iteration order.
func (r *Repository) Names() []string {
	names := make([]string, 0, len(r.doc))
	for name := range r.doc {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All exposes the full document snapshot for export and chart consumers.
// Callers must treat it as read-only.
func (r *Repository) All() domain.SubjectDoc {
	return r.doc
}

// ByCategory returns subjects with an exact category match
func (r *Repository) ByCategory(category string) map[string]*domain.Subject {
	return r.filter(func(s *domain.Subject) bool { return s.Category == category })
}

// ByPriority returns subjects with the given priority
func (r *Repository) ByPriority(priority domain.Priority) map[string]*domain.Subject {
	return r.filter(func(s *domain.Subject) bool { return s.Priority == priority })
}

// ByStatus returns subjects with the given status
func (r *Repository) ByStatus(status domain.SubjectStatus) map[string]*domain.Subject {
	return r.filter(func(s *domain.Subject) bool { return s.Status == status })
}

// UpcomingDeadlines returns subjects whose deadline falls within
// [today, today+days], skipping unparseable deadline strings
func (r *Repository) UpcomingDeadlines(days int) map[string]*domain.Subject {
	today := domain.Date(r.now())
	cutoff := domain.Date(r.now().AddDate(0, 0, days))
	return r.filter(func(s *domain.Subject) bool {
		if s.Deadline == "" {
			return false
		}
		deadline, err := domain.ParseDate(s.Deadline)
		if err != nil {
			return false
		}
		d := domain.Date(deadline)
		return d >= today && d <= cutoff
	})
}

// Categories returns all distinct non-empty categories, sorted
func (r *Repository) Categories() []string {
	seen := map[string]bool{}
	for _, s := range r.doc {
		if s.Category != "" {
			seen[s.Category] = true
		}
	}
	return sortedKeys(seen)
}

// Tags returns all distinct tags, sorted
func (r *Repository) Tags() []string {
	seen := map[string]bool{}
	for _, s := range r.doc {
		for _, tag := range s.Tags {
			seen[tag] = true
		}
	}
	return sortedKeys(seen)
}

// Statistics is the aggregate rollup across all subjects
type Statistics struct {
	TotalSolved     int     `json:"total_solved"`
	TotalTarget     int     `json:"total_target"`
	Progress        float64 `json:"progress"`
	TotalTopics     int     `json:"total_topics"`
	CompletedTopics int     `json:"completed_topics"`
	Remaining       int     `json:"remaining"`
}

// Statistics computes the aggregate rollup. Progress is 0 when the
// total target is 0.
func (r *Repository) Statistics() Statistics {
	var stats Statistics
	for _, s := range r.doc {
		stats.TotalSolved += s.SolvedCount
		stats.TotalTarget += s.TargetCount
		stats.TotalTopics += len(s.Topics)
		stats.CompletedTopics += s.CompletedTopics()
	}
	if stats.TotalTarget > 0 {
		stats.Progress = float64(stats.TotalSolved) / float64(stats.TotalTarget) * 100
	}
	if remaining := stats.TotalTarget - stats.TotalSolved; remaining > 0 {
		stats.Remaining = remaining
	}
	return stats
}

func (r *Repository) filter(keep func(*domain.Subject) bool) map[string]*domain.Subject {
	out := map[string]*domain.Subject{}
	for name, s := range r.doc {
		if keep(s) {
			out[name] = s
		}
	}
	return out
}

// persist writes the document. A failed save keeps the mutation in
// memory; the next successful save flushes it.
func (r *Repository) persist() error {
	return r.store.Save(r.doc)
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func trimName(s string) string {
	return strings.TrimSpace(s)
}
