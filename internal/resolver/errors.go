package resolver

import "errors"

var (
	// ErrMalformedInput is returned when the dataset cannot be resolved at all.
	ErrMalformedInput = errors.New("malformed input")
	// ErrNotFound is returned by index lookups for unknown identifiers.
	ErrNotFound = errors.New("not found")
	// ErrInvalidStepChoice is returned when an explicit pending-queue index is
	// out of range. The step is a no-op and the ceremony continues.
	ErrInvalidStepChoice = errors.New("invalid step choice")
)
