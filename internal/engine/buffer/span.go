package buffer

import "fmt"

// Span represents a region of the buffer.
// Start is inclusive, End is exclusive: [Start, End).
// A Span may cross lines; the newline between two lines counts as one
// position at the end of the earlier line.
type Span struct {
	Start Point
	End   Point
}

// NewSpan creates a Span from two points in either order.
func NewSpan(a, b Point) Span {
	if b.Before(a) {
		a, b = b, a
	}
	return Span{Start: a, End: b}
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	return fmt.Sprintf("[%s-%s)", s.Start, s.End)
}

// IsEmpty returns true if the span has zero length.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// IsValid returns true if Start <= End.
func (s Span) IsValid() bool {
	return !s.End.Before(s.Start)
}

// Contains returns true if p lies within [Start, End).
func (s Span) Contains(p Point) bool {
	return !p.Before(s.Start) && p.Before(s.End)
}

// ContainsSpan returns true if other lies entirely within s.
func (s Span) ContainsSpan(other Span) bool {
	return !other.Start.Before(s.Start) && !other.End.After(s.End)
}

// IsMultiline returns true if the span crosses a line boundary.
func (s Span) IsMultiline() bool {
	return s.Start.Line != s.End.Line
}
