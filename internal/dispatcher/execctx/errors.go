package execctx

import "errors"

// Returned by Validate and ValidateForEdit when the context lacks a piece
// of session state the action needs.
var (
	ErrMissingBuffer  = errors.New("execctx: no buffer")
	ErrMissingHistory = errors.New("execctx: no undo history")
	ErrMissingModes   = errors.New("execctx: no mode manager")

	// ErrMissingCommand is returned for an operator action that arrives
	// without a composed motion or text object.
	ErrMissingCommand = errors.New("execctx: operator has no motion or text object")
)
