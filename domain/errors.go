package domain

import "errors"

// Validation and persistence failures surfaced by the stores.
// Callers match with errors.Is; not-found deletes are bool no-ops instead.
var (
	ErrEmptyName     = errors.New("name is empty")
	ErrAlreadyExists = errors.New("already exists")
	ErrNotFound      = errors.New("not found")
	ErrInvalidValue  = errors.New("invalid value")
	ErrPersistence   = errors.New("persistence failure")
)
