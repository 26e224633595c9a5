package repo_errors

import "errors"

var (
	ErrNotFound = errors.New("entity not found")

	// ErrConflict reports that a conditional write found the row in a state
	// that forbids it: a duplicate non-draft proposal, or a status guard
	// that matched zero rows.
	ErrConflict = errors.New("conflicting state")
)
