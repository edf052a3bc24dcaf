// Package term connects a session to a terminal through tcell: it turns
// tcell key events into key.Events and draws the buffer with a status
// line.
package term
