package script

import "errors"

var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrNotFunction is returned when a required global is missing or is
	// not a function.
	ErrNotFunction = errors.New("not a lua function")
)
