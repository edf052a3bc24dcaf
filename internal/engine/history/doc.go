// Package history provides undo/redo for the editing core.
//
// Every mutation is recorded as a Delta, a minimal reversible description
// of one buffer change. Deltas that make up one user-visible edit are
// grouped into a Frame, together with the cursor before and after the
// edit, so that a single undo step restores cursor placement along with
// the text.
//
// # Deltas
//
// A Delta is one of:
//   - Insert: text was inserted at a position
//   - Delete: text was removed at a position (the removed text is kept)
//   - Replace: old text at a position was replaced with new text
//
// Applying a delta and then its inverse restores the buffer exactly.
//
// # Transactions
//
// A Transaction wraps a buffer.Facade and records each mutation made
// through it:
//
//	tx := history.Begin(buf, "delete word", buf.Cursor())
//	tx.Delete(span)
//	if frame := tx.Commit(buf.Cursor()); frame != nil {
//	    hist.Record(frame)
//	}
//
// Commit returns nil when nothing changed, so no empty frame is recorded.
//
// # History Stack
//
// The History type keeps two stacks. Record pushes onto the undo stack and
// clears the redo stack. Undo applies a frame's inverse deltas in reverse
// order and returns the cursor to restore; Redo re-applies the deltas in
// order. Depth is bounded and the oldest frames are evicted first.
package history
