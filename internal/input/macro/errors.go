package macro

import "errors"

var (
	ErrInvalidRegister = errors.New("invalid macro register")
	ErrNotRecording    = errors.New("not recording")
	// ErrRecursive is returned when a register that is being played is
	// played again.
	ErrRecursive = errors.New("recursive macro")
	// ErrTooDeep is returned when replays nest deeper than the limit.
	ErrTooDeep = errors.New("replay nested too deeply")
)
