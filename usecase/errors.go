package usecase

import "errors"

var (
	// ErrInvalidStrategy is returned for a strategy name outside
	// planner/sprinter/flow. Surfaced as a client error.
	ErrInvalidStrategy = errors.New("invalid strategy")

	// ErrMissingDeadline is returned when a task reaches scoring without a
	// deadline. Deadlines are required by the data model, so this is a
	// data-integrity failure and never silently defaulted.
	ErrMissingDeadline = errors.New("task has no deadline")

	// ErrNotFound is returned when a referenced task or subtask does not
	// exist or is not owned by the caller.
	ErrNotFound = errors.New("not found")
)
