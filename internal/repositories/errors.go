package repositories

import "errors"

var (
	// ErrNotFound is returned when no document matches the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrVersionConflict is returned when an update lost an optimistic
	// concurrency race.
	ErrVersionConflict = errors.New("record was modified concurrently")
	// ErrDuplicate is returned when a write would break a unique constraint.
	ErrDuplicate = errors.New("record already exists")
)
