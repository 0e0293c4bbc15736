// Package storage persists each document as a pretty-printed JSON file,
// one file per store, written synchronously after every mutation.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"crono/domain"
	"crono/logging"
)

// Document is what a Store can persist. Normalize back-fills fields an
// older document may be missing and reports whether anything changed,
// so the store can self-heal the schema on load.
type Document interface {
	Normalize() bool
}

// Store owns the file backing one document
type Store[T Document] struct {
	path string
}

// NewStore creates a store for the document at path
func NewStore[T Document](path string) *Store[T] {
	return &Store[T]{path: path}
}

// Path returns the backing file path
func (s *Store[T]) Path() string {
	return s.path
}

// Load reads the backing document. A missing file seeds and persists the
// caller-supplied defaults; an unreadable or unparseable file logs and
// falls back to the defaults without overwriting the corrupt bytes. Any
// back-fill performed by Normalize is re-saved once.
func (s *Store[T]) Load(defaults T) T {
	data, err := os.ReadFile(s.path)
	if err != nil {
		defaults.Normalize()
		if os.IsNotExist(err) {
			if saveErr := s.Save(defaults); saveErr != nil {
				logging.Logger.Warn("failed to seed default document",
					"path", s.path, "error", saveErr)
			}
		} else {
			logging.Logger.Warn("failed to read document, using defaults",
				"path", s.path, "error", err)
		}
		return defaults
	}

	var doc T
	if err := json.Unmarshal(data, &doc); err != nil {
		// Keep the corrupt file on disk until the next mutation saves,
		// so the bytes stay recoverable by hand
		logging.Logger.Warn("failed to parse document, using defaults",
			"path", s.path, "error", err)
		defaults.Normalize()
		return defaults
	}

	if doc.Normalize() {
		if err := s.Save(doc); err != nil {
			logging.Logger.Warn("failed to persist schema back-fill",
				"path", s.path, "error", err)
		}
	}
	return doc
}

// Save serializes the document to the backing file, creating parent
// directories as needed. Failures are logged and reported as
// domain.ErrPersistence; they never panic.
func (s *Store[T]) Save(doc T) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		logging.Logger.Error("failed to create document directory",
			"path", s.path, "error", err)
		return fmt.Errorf("create directory for %s: %w", s.path, domain.ErrPersistence)
	}

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		logging.Logger.Error("failed to serialize document",
			"path", s.path, "error", err)
		return fmt.Errorf("serialize %s: %w", s.path, domain.ErrPersistence)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		logging.Logger.Error("failed to write document",
			"path", s.path, "error", err)
		return fmt.Errorf("write %s: %w", s.path, domain.ErrPersistence)
	}
	return nil
}
