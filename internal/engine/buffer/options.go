package buffer

import "strings"

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithText sets the initial content. CRLF and CR line endings are
// normalized to LF.
func WithText(s string) Option {
	return func(b *Buffer) {
		b.lines = strings.Split(normalizeNewlines(s), "\n")
	}
}

// WithLines sets the initial content from individual lines.
func WithLines(lines ...string) Option {
	return func(b *Buffer) {
		if len(lines) == 0 {
			b.lines = []string{""}
			return
		}
		b.lines = make([]string, len(lines))
		copy(b.lines, lines)
	}
}

// WithCursor sets the initial cursor position.
func WithCursor(p Point) Option {
	return func(b *Buffer) {
		b.cursor = p
	}
}
