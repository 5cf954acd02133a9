package kmc

import "errors"

// Error kinds surfaced by the engine and the reduction layer. Callers match
// them with errors.Is; every returned error wraps one of these sentinels.
var (
	// ErrOccupancyViolation reports an attempt to place or move an object
	// onto a site that already holds one.
	ErrOccupancyViolation = errors.New("occupancy violation")

	// ErrEmptyEventSet reports a next-event selection with no pending events.
	ErrEmptyEventSet = errors.New("empty event set")

	// ErrLengthMismatch reports reduction inputs of unequal length where
	// equality is required.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrInvalidArgument reports malformed inputs: out-of-range coordinates
	// on a non-periodic axis, reductions with fewer than two entries, or
	// mismatched bin spacings across ranks.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrAllocation reports that a gather buffer could not be sized.
	ErrAllocation = errors.New("allocation failure")
)
