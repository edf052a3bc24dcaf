package keymap

import "errors"

var (
	ErrUnknownMode = errors.New("unknown mode")
	ErrEmptyKeys   = errors.New("empty keys")
	ErrEmptyAction = errors.New("empty action")
)
