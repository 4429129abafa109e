package store

import "errors"

var (
	// ErrNotFound is returned when a document does not exist, or exists but
	// is not reachable by the given owner scope. The two cases are
	// deliberately indistinguishable.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when an insert would violate an application
	// uniqueness rule (email, stall, review pair).
	ErrDuplicate = errors.New("already exists")
)
