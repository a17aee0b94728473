package engine

import "errors"

var (
	// ErrInvalidInput marks a malformed scan window or a degenerate time slot
	// reaching any stage. Fatal for the run.
	ErrInvalidInput = errors.New("invalid planning input")

	// ErrInvalidPreference marks a daily study window outside 0000-2359 or
	// with a minute part above 59. Surfaced before any slot computation.
	ErrInvalidPreference = errors.New("invalid study window preference")

	// ErrEmptyExamSet means there is nothing to plan for. Callers are
	// expected to short-circuit before invoking the engine.
	ErrEmptyExamSet = errors.New("no exams found in the scan window")
)
