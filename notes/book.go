// Package notes owns the note document: free-text entries keyed by
// subject and optional topic, plus one last-position bookmark per
// subject in a reserved slot.
package notes

import (
	"fmt"
	"sort"
	"time"

	"crono/domain"
	"crono/storage"
)

// Book is the sole writer of the note document
type Book struct {
	store *storage.Store[domain.NoteDoc]
	doc   domain.NoteDoc
	now   func() time.Time
}

// NewBook loads (or seeds) the note document at path
func NewBook(path string) *Book {
	b := &Book{
		store: storage.NewStore[domain.NoteDoc](path),
		now:   time.Now,
	}
	b.doc = b.store.Load(domain.NoteDoc{})
	if b.doc == nil {
		b.doc = domain.NoteDoc{}
	}
	return b
}

// Add appends a timestamped note under the (subject, topic) key. The
// topic may be empty for subject-level notes.
func (b *Book) Add(subject, topic, text string) (*domain.Note, error) {
	if subject == "" {
		return nil, fmt.Errorf("add note: %w", domain.ErrEmptyName)
	}
	now := b.now()
	note := &domain.Note{
		ID:      b.newID(now),
		Text:    text,
		Date:    now,
		Subject: subject,
		Topic:   topic,
	}
	key := noteKey(subject, topic)
	b.doc[key] = append(b.doc[key], note)
	if err := b.store.Save(b.doc); err != nil {
		return note, err
	}
	return note, nil
}

// Notes returns the notes under the (subject, topic) key, empty when
// there are none
func (b *Book) Notes(subject, topic string) []*domain.Note {
	return b.doc[noteKey(subject, topic)]
}

// Delete removes a note by id, reporting whether a removal occurred
func (b *Book) Delete(subject, topic, id string) bool {
	key := noteKey(subject, topic)
	notes, ok := b.doc[key]
	if !ok {
		return false
	}
	for i, n := range notes {
		if n.ID == id {
			b.doc[key] = append(notes[:i], notes[i+1:]...)
			b.store.Save(b.doc)
			return true
		}
	}
	return false
}

// AllNotes flattens every key's notes (bookmarks included), sorted by
// date descending
func (b *Book) AllNotes() []*domain.Note {
	var out []*domain.Note
	for _, notes := range b.doc {
		out = append(out, notes...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// SetLastPosition overwrites the subject's single bookmark slot with a
// new timestamped record. The slot is never appended to.
func (b *Book) SetLastPosition(subject, text string) (*domain.Note, error) {
	if subject == "" {
		return nil, fmt.Errorf("set last position: %w", domain.ErrEmptyName)
	}
	note := &domain.Note{
		ID:             domain.LastPositionID,
		Text:           text,
		Date:           b.now(),
		Subject:        subject,
		IsLastPosition: true,
	}
	b.doc[noteKey(subject, domain.LastPositionTopic)] = []*domain.Note{note}
	if err := b.store.Save(b.doc); err != nil {
		return note, err
	}
	return note, nil
}

// LastPosition returns the subject's bookmark, nil when absent
func (b *Book) LastPosition(subject string) *domain.Note {
	notes := b.doc[noteKey(subject, domain.LastPositionTopic)]
	if len(notes) == 0 {
		return nil
	}
	return notes[0]
}

// DeleteLastPosition removes the subject's bookmark, reporting whether
// one existed
func (b *Book) DeleteLastPosition(subject string) bool {
	key := noteKey(subject, domain.LastPositionTopic)
	if _, ok := b.doc[key]; !ok {
		return false
	}
	delete(b.doc, key)
	b.store.Save(b.doc)
	return true
}

// All exposes the full document snapshot for export consumers.
// Callers must treat it as read-only.
func (b *Book) All() domain.NoteDoc {
	return b.doc
}

func noteKey(subject, topic string) string {
	return subject + ":" + topic
}

// newID derives an id from the creation timestamp, suffixed on
// same-second collisions
func (b *Book) newID(now time.Time) string {
	id := now.Format("20060102150405")
	if !b.idTaken(id) {
		return id
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", id, i)
		if !b.idTaken(candidate) {
			return candidate
		}
	}
}

func (b *Book) idTaken(id string) bool {
	for _, notes := range b.doc {
		for _, n := range notes {
			if n.ID == id {
				return true
			}
		}
	}
	return false
}
