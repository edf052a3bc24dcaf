// Package cursor provides the "cursor" namespace handler.
//
// Each action is a motion from the motion package, looked up by action
// name: cursor.down (j), cursor.wordForward (w), cursor.findChar (f{c}),
// cursor.paragraphForward (}), cursor.sectionForward (]]) and so on. The
// count and character argument of the action are passed to the motion
// unchanged, so G without a count still means the last line.
//
// The motion context of the session is shared with the operator composer,
// which is what lets ; repeat an f typed as part of df{c}.
//
// Usage:
//
//	d.AddNamespace(cursor.NewHandler())
package cursor
