package buffer

import "strings"

// Snapshot provides a read-only view of a buffer at a specific point in time.
// It is safe for concurrent access and will not change even if the original
// buffer is modified.
type Snapshot struct {
	lines    []string
	revision RevisionID
	cursor   Point
}

// NewSnapshot creates a snapshot over lines. The slice is copied.
func NewSnapshot(lines ...string) *Snapshot {
	if len(lines) == 0 {
		lines = []string{""}
	}
	cp := make([]string, len(lines))
	copy(cp, lines)
	return &Snapshot{lines: cp}
}

// Line returns the text of line i.
func (s *Snapshot) Line(i int) string {
	if i < 0 || i >= len(s.lines) {
		return ""
	}
	return s.lines[i]
}

// LineCount returns the number of lines.
func (s *Snapshot) LineCount() int {
	return len(s.lines)
}

// Text returns the full snapshot content.
func (s *Snapshot) Text() string {
	return strings.Join(s.lines, "\n")
}

// Revision returns the revision the snapshot was taken at.
func (s *Snapshot) Revision() RevisionID {
	return s.revision
}

// Cursor returns the cursor at the time the snapshot was taken.
func (s *Snapshot) Cursor() Point {
	return s.cursor
}
