// Package mode provides handlers for mode switching operations.
//
// ModeHandler serves the entry points of the "insert" namespace:
//   - insert.before (i): Insert before cursor
//   - insert.after (a): Append after cursor
//   - insert.lineStart (I): Insert at first non-blank
//   - insert.lineEnd (A): Append at end of line
//   - insert.lineBelow (o): Open line below
//   - insert.lineAbove (O): Open line above
//   - insert.escape (<Esc>): Back to normal mode
//
// # Insert Sessions
//
// Each entry point opens a transaction and hands it to the session state
// together with its count. Typing is served by the editor package under
// the same namespace. <Esc> repeats the typed text for the count (on new
// lines after o and O), steps the cursor back one column and records the
// whole session as a single undo frame.
//
// # Usage
//
//	d.AddNamespace(mode.NewModeHandler())
//	d.AddNamespace(editor.NewInsertHandler())
package mode
