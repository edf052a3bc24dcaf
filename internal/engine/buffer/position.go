package buffer

import (
	"cmp"
	"fmt"
)

// Point is a zero-based position in the buffer. Column counts grapheme
// clusters, not bytes, so "é" written as e plus a combining accent is a
// single column.
type Point struct {
	Line   int
	Column int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare orders points by line, then column, and returns -1, 0 or +1.
func (p Point) Compare(q Point) int {
	if c := cmp.Compare(p.Line, q.Line); c != 0 {
		return c
	}
	return cmp.Compare(p.Column, q.Column)
}

func (p Point) Before(q Point) bool { return p.Compare(q) < 0 }
func (p Point) After(q Point) bool  { return p.Compare(q) > 0 }
