package streams

import "errors"

// Configuration errors are raised at registration time; usage errors are raised by
// the draw gate. None are recoverable: callers wrap them with the stream name and stop.
var (
	ErrNotInitialized     = errors.New("used before initialization")
	ErrAlreadyInitialized = errors.New("already initialized")
	ErrDuplicateName      = errors.New("stream name already registered")
	ErrSeedCollision      = errors.New("seed offset already in use")
	ErrMissingSlots       = errors.New("slot table required")

	ErrInvalidSize       = errors.New("invalid draw size")
	ErrInvalidTimestep   = errors.New("timestep index must be non-negative")
	ErrConsumedStream    = errors.New("already sampled on this timestep")
	ErrParameterLength   = errors.New("parameter length matches neither the requested agents nor the underlying draw")
	ErrUnassignedSlot    = errors.New("agent has no assigned slot")
	ErrAmbiguousArgument = errors.New("exactly one size, identifier or mask argument is required")
	ErrInvalidParameter  = errors.New("invalid distribution parameter")
)
