package handler

import (
	"fmt"

	"github.com/dshills/modalcore/internal/engine/buffer"
)

// Status classifies how an action ended.
type Status uint8

const (
	StatusOK Status = iota
	// StatusNoOp means the action ran but left the buffer and cursor as
	// they were, e.g. undo with an empty history.
	StatusNoOp
	StatusError
)

var statusNames = [...]string{
	StatusOK:    "ok",
	StatusNoOp:  "no-op",
	StatusError: "error",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// Result is what a handler reports back to the dispatcher. Cursor is nil
// when the handler did not move the cursor.
type Result struct {
	Status  Status
	Error   error
	Message string
	Cursor  *buffer.Point
	Edited  bool
}

// IsOK reports whether the action succeeded.
func (r Result) IsOK() bool { return r.Status == StatusOK }

// IsError reports whether the action failed.
func (r Result) IsError() bool { return r.Status == StatusError }

// Success is a plain successful result.
func Success() Result { return Result{Status: StatusOK} }

// Moved is a successful result that places the cursor at p.
func Moved(p buffer.Point) Result { return Success().WithCursor(p) }

// NoOp is a result for an action that had nothing to do.
func NoOp() Result { return Result{Status: StatusNoOp} }

// Error wraps err in a failed result.
func Error(err error) Result { return Result{Status: StatusError, Error: err} }

// Errorf is Error with a formatted error whose text doubles as the message.
func Errorf(format string, args ...any) Result {
	err := fmt.Errorf(format, args...)
	return Result{Status: StatusError, Error: err, Message: err.Error()}
}

func (r Result) WithMessage(msg string) Result {
	r.Message = msg
	return r
}

func (r Result) WithCursor(p buffer.Point) Result {
	r.Cursor = &p
	return r
}

// WithEdit marks the result as having changed the buffer.
func (r Result) WithEdit() Result {
	r.Edited = true
	return r
}
