package dispatcher

import "errors"

var (
	// ErrUnknownAction means no override or namespace handler accepts the
	// action name.
	ErrUnknownAction = errors.New("dispatcher: unknown action")

	// ErrInvalidAction is returned for an action with an empty name.
	ErrInvalidAction = errors.New("dispatcher: invalid action")

	// ErrPanic wraps a recovered handler panic.
	ErrPanic = errors.New("dispatcher: handler panic")
)
