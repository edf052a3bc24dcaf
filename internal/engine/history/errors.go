package history

import "errors"

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")

	// ErrDeltaMismatch is returned when the buffer does not hold the text a
	// delta expects to remove.
	ErrDeltaMismatch = errors.New("buffer content does not match delta")

	// ErrTransactionClosed is returned when using a committed or rolled
	// back transaction.
	ErrTransactionClosed = errors.New("transaction is closed")
)
