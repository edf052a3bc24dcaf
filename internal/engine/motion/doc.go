// Package motion implements cursor motions: the targets that a bare key
// moves the cursor to and that an operator acts upon.
//
// A motion is a pure function of a buffer.Reader, a start point, a count
// and an optional character argument. The only state it touches is the
// Context, which remembers the last f/F/t/T search for ; and , and carries
// the configured section and sentence rules.
//
// Motions may return a column equal to the line length. Operators need that
// position to reach the end of a line; callers moving the cursor in normal
// mode clamp it back onto the last character.
package motion
