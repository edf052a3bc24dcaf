// Package dispatcher routes resolved actions to handlers and runs them
// against the editing state.
//
// The dispatcher is the executor behind the input resolver. The resolver
// turns keys into input.Action values; the dispatcher finds a handler for
// each action and applies it to the buffer, the undo history, the
// registers and the mode manager held in an execctx.State.
//
// # Routing
//
// Routes resolves a name in two steps. An override bound to the exact
// name wins; otherwise the name goes to its namespace, the prefix before
// the first dot ("cursor.down" goes to "cursor"). A namespace can have
// several handlers and the first whose CanHandle accepts the name runs.
//
// Built-in namespaces:
//
//	cursor     motions (cursor.left, cursor.wordForward, ...)
//	operator   composed operator commands (operator.delete, ...)
//	edit       single-key edits (x, X, s, S, C, D, J, r, ~, p, P, Y)
//	insert     insert-mode entry, escape, and typing
//	history    undo and redo
//
// # Undo frames
//
// Every edit runs in one history transaction. An insert session (from i,
// a, o, c and friends until the mode leaves insert) keeps its transaction
// open across keystrokes, so the whole session undoes as one frame. The
// session is closed by insert.escape or by any switch out of insert mode.
//
// # Usage
//
//	buf := buffer.NewBufferFromString("hello")
//	d := dispatcher.NewWithDefaults(buf)
//	defer d.Close()
//
//	err := d.Execute(input.Action{Name: "edit.deleteChar", Count: 2})
//
// Execute reports handler errors and unknown actions; a no-op result is
// not an error.
package dispatcher
