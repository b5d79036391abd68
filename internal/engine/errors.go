package engine

import "errors"

var (
	// ErrValidation indicates bad configuration or an unresolvable plan;
	// the run never starts.
	ErrValidation = errors.New("validation failed")

	// ErrBackup indicates the pre-run archive could not be created; the run
	// aborts before any mutation.
	ErrBackup = errors.New("backup failed")
)
