// Package session assembles one modal editing session over a buffer.
//
// A Session owns the undo history, the registers, the mode manager, the
// binding table, the operator-pending composer, the input resolver and the
// dispatcher that executes resolved actions. Sessions share nothing, so a
// host may run any number of them side by side.
//
// The host drives a session from its event loop:
//
//	s := session.New(buffer.NewBufferFromString("hello world"))
//	out := s.SubmitKey(key.Rune('d'))
//	out = s.SubmitKey(key.Rune('w'))
//
// A session never starts timers. When SubmitKey returns a Partial outcome
// the host arms a timer for Timeout and calls FlushPendingOnTimeout from
// the same loop when it fires.
package session
