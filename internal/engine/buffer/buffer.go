package buffer

import (
	"strings"
	"sync"
)

// RevisionID identifies a buffer state. It increases on every mutation.
type RevisionID uint64

// Buffer is a thread-safe, line-slice implementation of Facade.
// A buffer always holds at least one (possibly empty) line.
type Buffer struct {
	mu       sync.RWMutex
	lines    []string
	cursor   Point
	revision RevisionID
}

// NewBuffer creates a new buffer with the given options.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{lines: []string{""}}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewBufferFromString creates a buffer holding s.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	return NewBuffer(append([]Option{WithText(s)}, opts...)...)
}

// Line returns the text of line i without its newline.
func (b *Buffer) Line(i int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return b.lines[i]
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.lines)
}

// Text returns the full content joined with newlines.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return strings.Join(b.lines, "\n")
}

// Revision returns the current revision.
func (b *Buffer) Revision() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.revision
}

// Insert inserts text at p and returns the position just past it.
func (b *Buffer) Insert(p Point, text string) Point {
	b.mu.Lock()
	defer b.mu.Unlock()

	p = b.clampLocked(p)
	if text == "" {
		return p
	}
	text = normalizeNewlines(text)

	line := b.lines[p.Line]
	off := ByteOffset(line, p.Column)
	head, tail := line[:off], line[off:]

	parts := strings.Split(text, "\n")
	if len(parts) == 1 {
		b.lines[p.Line] = head + text + tail
	} else {
		inserted := make([]string, len(parts))
		inserted[0] = head + parts[0]
		copy(inserted[1:], parts[1:])
		inserted[len(parts)-1] += tail

		newLines := make([]string, 0, len(b.lines)+len(parts)-1)
		newLines = append(newLines, b.lines[:p.Line]...)
		newLines = append(newLines, inserted...)
		newLines = append(newLines, b.lines[p.Line+1:]...)
		b.lines = newLines
	}
	b.revision++
	return Advance(p, text)
}

// Delete removes the text in s and returns it.
func (b *Buffer) Delete(s Span) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	s = NewSpan(b.clampLocked(s.Start), b.clampLocked(s.End))
	if s.IsEmpty() {
		return ""
	}

	first := b.lines[s.Start.Line]
	last := b.lines[s.End.Line]
	startOff := ByteOffset(first, s.Start.Column)
	endOff := ByteOffset(last, s.End.Column)

	var removed string
	if s.Start.Line == s.End.Line {
		removed = first[startOff:endOff]
		b.lines[s.Start.Line] = first[:startOff] + first[endOff:]
	} else {
		var sb strings.Builder
		sb.WriteString(first[startOff:])
		for i := s.Start.Line + 1; i < s.End.Line; i++ {
			sb.WriteByte('\n')
			sb.WriteString(b.lines[i])
		}
		sb.WriteByte('\n')
		sb.WriteString(last[:endOff])
		removed = sb.String()

		joined := first[:startOff] + last[endOff:]
		b.lines = append(b.lines[:s.Start.Line+1], b.lines[s.End.Line+1:]...)
		b.lines[s.Start.Line] = joined
	}
	b.revision++
	return removed
}

// SetCursor moves the cursor, clamping it into the buffer.
func (b *Buffer) SetCursor(p Point) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.cursor = b.clampLocked(p)
}

// Cursor returns the cursor position.
func (b *Buffer) Cursor() Point {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.clampLocked(b.cursor)
}

// Snapshot returns an immutable copy of the current content.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	lines := make([]string, len(b.lines))
	copy(lines, b.lines)
	return &Snapshot{lines: lines, revision: b.revision, cursor: b.clampLocked(b.cursor)}
}

func (b *Buffer) clampLocked(p Point) Point {
	if p.Line < 0 {
		return Point{}
	}
	if p.Line >= len(b.lines) {
		last := len(b.lines) - 1
		return Point{Line: last, Column: GraphemeCount(b.lines[last])}
	}
	if p.Column < 0 {
		p.Column = 0
	}
	if l := GraphemeCount(b.lines[p.Line]); p.Column > l {
		p.Column = l
	}
	return p
}

func normalizeNewlines(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
