package domain

import "time"

// TaskResult is the outcome of executing one work item through the executor.
// Exactly one result is produced per input item; failures are encoded here
// rather than propagated as errors.
type TaskResult[R any] struct {
	// ID identifies the work item (typically a unit path).
	ID string
	// Index is the item's position in the input slice.
	Index int
	// Result holds the worker's return value when OK is true.
	Result R
	// Duration is the elapsed wall time across all attempts.
	Duration time.Duration
	// OK reports whether the item eventually succeeded.
	OK bool
	// Err is the last attempt's error when OK is false.
	Err error
	// Retries is the number of retries actually consumed.
	Retries int
}
