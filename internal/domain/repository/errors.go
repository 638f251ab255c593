package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")

	// Unique-constraint violations on user insert. Uniqueness is checked
	// before insert, but the constraint still fires under concurrent
	// registration.
	ErrDuplicateEmail    = errors.New("duplicate email")
	ErrDuplicateUsername = errors.New("duplicate username")
)
