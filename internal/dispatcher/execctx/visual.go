package execctx

import (
	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/textobj"
	"github.com/dshills/modalcore/internal/input/mode"
)

// Selection is the region covered by a visual selection.
type Selection struct {
	Span     buffer.Span
	Linewise bool
}

// Anchor returns the fixed end of the visual selection.
func (s *State) Anchor() buffer.Point {
	return s.anchor
}

// SetAnchor moves the fixed end of the visual selection.
func (s *State) SetAnchor(p buffer.Point) {
	s.anchor = p
}

// Selection returns the region from the anchor to the cursor, both ends
// included. ok is false outside the visual modes.
//
// A characterwise selection ending on an empty line, or past the end of
// its line, takes the line break too.
func (s *State) Selection() (sel Selection, ok bool) {
	m := s.Modes.Current()
	if !m.IsVisual() || s.Buffer.LineCount() == 0 {
		return Selection{}, false
	}
	start := buffer.Clamp(s.Buffer, s.anchor)
	end := buffer.Clamp(s.Buffer, s.Buffer.Cursor())
	if end.Before(start) {
		start, end = end, start
	}

	if m == mode.VisualLine {
		return Selection{
			Span: buffer.Span{
				Start: buffer.Point{Line: start.Line},
				End:   buffer.Point{Line: end.Line, Column: buffer.LineLen(s.Buffer, end.Line)},
			},
			Linewise: true,
		}, true
	}

	n := buffer.LineLen(s.Buffer, end.Line)
	switch {
	case end.Column < n:
		end.Column++
	case end.Line+1 < s.Buffer.LineCount():
		end = buffer.Point{Line: end.Line + 1}
	default:
		end.Column = n
	}
	return Selection{Span: buffer.Span{Start: start, End: end}}, true
}

// ResolveObject resolves a text object around the cursor. Buffers that
// take snapshots go through the Objects cache.
func (s *State) ResolveObject(obj textobj.Object, scope textobj.Scope, count int) (buffer.Span, bool) {
	cur := s.Buffer.Cursor()
	if sn, ok := s.Buffer.(interface{ Snapshot() *buffer.Snapshot }); ok && s.Objects != nil {
		return s.Objects.Preview(sn.Snapshot(), cur, obj, scope, count)
	}
	return textobj.Resolve(s.Buffer, cur, obj, scope, count)
}
