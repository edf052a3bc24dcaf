// Package buffer defines the text buffer contract the editing core works
// against and provides a line-oriented implementation of it.
//
// The package provides:
//
//   - Point and Span, the (line, column) coordinates used throughout the core
//   - Reader, the read-only half of the contract used by motions and text objects
//   - Facade, the full read/mutate contract used by operators and history
//   - Buffer, a thread-safe line-slice implementation of Facade
//   - Snapshot, an immutable view for resolution without locking
//
// Columns are measured in grapheme clusters, not bytes and not display
// cells. A column is therefore stable across combining marks and emoji
// sequences:
//
//	buf := buffer.NewBuffer(buffer.WithText("héllo\nworld"))
//	buf.Line(0)                           // "héllo"
//	buf.Insert(buffer.Point{Line: 0, Column: 5}, "!")
//	removed := buf.Delete(buffer.NewSpan(
//	    buffer.Point{Line: 0, Column: 0},
//	    buffer.Point{Line: 1, Column: 0},
//	))                                    // "héllo!\n"
//
// All positions passed to a Buffer are clamped into range before use.
package buffer
