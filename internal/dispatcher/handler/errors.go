package handler

import "errors"

var (
	// ErrCommandFailed means the action could not do its job, e.g. a
	// motion that cannot move or J on the last line.
	ErrCommandFailed = errors.New("handler: command failed")

	ErrEmptyRegister = errors.New("handler: register is empty")

	// ErrUnhandled means an action reached a handler that has nothing
	// bound for it.
	ErrUnhandled = errors.New("handler: action not handled")
)
