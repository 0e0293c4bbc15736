package domain

import "time"

// LastPositionTopic is the reserved topic slot holding a subject's bookmark
const LastPositionTopic = "__LAST_POSITION__"

// LastPositionID is the fixed id of a bookmark record
const LastPositionID = "last_position"

// Note is a timestamped free-text entry attached to a subject and an
// optional topic
type Note struct {
	ID             string    `json:"id"`
	Text           string    `json:"text"`
	Date           time.Time `json:"date"`
	Subject        string    `json:"subject"`
	Topic          string    `json:"topic"` // empty for subject-level notes
	IsLastPosition bool      `json:"is_last_position,omitempty"`
}

// NoteDoc is the note document, keyed by "subject:topic"
type NoteDoc map[string][]*Note

// Normalize back-fills note lists that older documents stored as null
func (d NoteDoc) Normalize() bool {
	changed := false
	for key, notes := range d {
		if notes == nil {
			d[key] = []*Note{}
			changed = true
		}
	}
	return changed
}
