// Package editor provides handlers for text editing operations.
//
// # Normal mode edits
//
// EditHandler serves the "edit" namespace:
//   - edit.deleteChar (x), edit.deleteCharBefore (X)
//   - edit.substitute (s), edit.substituteLine (S), edit.changeToEnd (C)
//   - edit.deleteToEnd (D), edit.yankLine (Y)
//   - edit.join (J), edit.replaceChar (r{c}), edit.toggleCaseChar (~)
//   - edit.putAfter (p), edit.putBefore (P)
//
// Each one is a single undo frame. s, S and C delete first and then open
// an insert session on the same transaction.
//
// # Insert mode typing
//
// InsertHandler serves the typing half of the "insert" namespace:
// insert.char, insert.text, insert.newline, insert.backspace,
// insert.deleteForward, insert.tab and insert.deleteWord. The entry points
// are in the mode handler; both register under "insert" and the routes
// asks each in turn.
//
// # History
//
// HistoryHandler serves history.undo (u) and history.redo (<C-r>).
package editor
