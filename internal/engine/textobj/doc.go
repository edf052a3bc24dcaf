// Package textobj resolves Vim text objects: word, WORD, sentence,
// paragraph, quoted string, bracket pair and markup tag, each with inner
// and around semantics.
//
// Resolution is a pure function of a buffer.Reader and a cursor. Nothing is
// cached inside the resolver and nothing is mutated, so callers may resolve
// speculatively against a buffer.Snapshot from any goroutine:
//
//	span, ok := textobj.Resolve(snap, cursor, textobj.Paren, textobj.Inner, 1)
//
// Word, sentence and quote objects stay on the cursor line or paragraph.
// Bracket and tag objects scan the whole buffer.
package textobj
