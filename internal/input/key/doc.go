// Package key defines key events and the Vim key notation used to write
// them down.
//
// An Event is a plain value: a key, a rune for character keys and a
// modifier set. Two events are equal when they compare equal with ==.
//
// Sequences are written in Vim notation, where printable characters stand
// for themselves and everything else is spelled inside angle brackets:
//
//	d3w        delete three words
//	ihi<Esc>   insert "hi" and leave insert mode
//	<C-r>      redo
//	<lt>       a literal '<'
package key
