package buffer

import "strings"

// Reader is the read-only view of a line-oriented buffer.
// Line returns the empty string for indices out of range.
type Reader interface {
	Line(i int) string
	LineCount() int
}

// Facade is the contract the editing core requires from a text buffer.
// Implementations clamp every position they receive.
type Facade interface {
	Reader

	// Insert inserts text at p and returns the position just past it.
	Insert(p Point, text string) Point

	// Delete removes the text in s and returns it.
	Delete(s Span) string

	SetCursor(p Point)
	Cursor() Point
}

// LineLen returns the length of line i in grapheme clusters.
func LineLen(r Reader, i int) int {
	return GraphemeCount(r.Line(i))
}

// LastPoint returns the position just past the last character of r.
func LastPoint(r Reader) Point {
	n := r.LineCount()
	if n == 0 {
		return Point{}
	}
	return Point{Line: n - 1, Column: LineLen(r, n-1)}
}

// Clamp returns p moved into the valid range of r.
// The column may equal the line length.
func Clamp(r Reader, p Point) Point {
	n := r.LineCount()
	if n == 0 || p.Line < 0 {
		return Point{}
	}
	if p.Line >= n {
		return LastPoint(r)
	}
	if p.Column < 0 {
		p.Column = 0
	}
	if l := LineLen(r, p.Line); p.Column > l {
		p.Column = l
	}
	return p
}

// ClampSpan returns s with both ends clamped and ordered.
func ClampSpan(r Reader, s Span) Span {
	return NewSpan(Clamp(r, s.Start), Clamp(r, s.End))
}

// TextIn returns the text covered by s.
func TextIn(r Reader, s Span) string {
	s = ClampSpan(r, s)
	if s.Start.Line == s.End.Line {
		return SliceColumns(r.Line(s.Start.Line), s.Start.Column, s.End.Column)
	}
	var sb strings.Builder
	first := r.Line(s.Start.Line)
	sb.WriteString(first[ByteOffset(first, s.Start.Column):])
	for i := s.Start.Line + 1; i < s.End.Line; i++ {
		sb.WriteByte('\n')
		sb.WriteString(r.Line(i))
	}
	sb.WriteByte('\n')
	last := r.Line(s.End.Line)
	sb.WriteString(last[:ByteOffset(last, s.End.Column)])
	return sb.String()
}

// Lines returns every line of r.
func Lines(r Reader) []string {
	out := make([]string, r.LineCount())
	for i := range out {
		out[i] = r.Line(i)
	}
	return out
}

// IsBlank reports whether line i holds only whitespace.
func IsBlank(r Reader, i int) bool {
	return strings.TrimSpace(r.Line(i)) == ""
}
