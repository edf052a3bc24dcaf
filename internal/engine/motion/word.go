package motion

import (
	"unicode"
	"unicode/utf8"

	"github.com/dshills/modalcore/internal/engine/buffer"
)

// Cell classes. The cell one past the end of a line stands for its line
// break and counts as space; an empty line is a word of its own.
const (
	classSpace = iota
	classEmpty
	classWord
	classPunct
)

// walker steps through a buffer one cell at a time.
type walker struct {
	r     buffer.Reader
	big   bool
	lines map[int][]string
}

func newWalker(r buffer.Reader, big bool) *walker {
	return &walker{r: r, big: big, lines: make(map[int][]string)}
}

func (w *walker) graphemes(line int) []string {
	g, ok := w.lines[line]
	if !ok {
		g = buffer.Graphemes(w.r.Line(line))
		w.lines[line] = g
	}
	return g
}

func (w *walker) class(p buffer.Point) int {
	g := w.graphemes(p.Line)
	switch {
	case p.Column < len(g):
		return classOf(g[p.Column], w.big)
	case len(g) == 0:
		return classEmpty
	default:
		return classSpace
	}
}

func (w *walker) next(p buffer.Point) (buffer.Point, bool) {
	if p.Column < len(w.graphemes(p.Line)) {
		p.Column++
		return p, true
	}
	if p.Line+1 < w.r.LineCount() {
		return buffer.Point{Line: p.Line + 1}, true
	}
	return p, false
}

func (w *walker) prev(p buffer.Point) (buffer.Point, bool) {
	if p.Column > 0 {
		p.Column--
		return p, true
	}
	if p.Line > 0 {
		return buffer.Point{Line: p.Line - 1, Column: len(w.graphemes(p.Line - 1))}, true
	}
	return p, false
}

func classOf(g string, big bool) int {
	r, _ := utf8.DecodeRuneInString(g)
	switch {
	case unicode.IsSpace(r):
		return classSpace
	case big || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
		return classWord
	default:
		return classPunct
	}
}

type stepFunc func(w *walker, p buffer.Point) (buffer.Point, bool)

// wordMotion repeats step count times. It succeeds if at least one step
// moved.
func wordMotion(big bool, step stepFunc) Func {
	return func(r buffer.Reader, _ *Context, from buffer.Point, count int, _ string) (buffer.Point, bool) {
		w := newWalker(r, big)
		p := from
		for range countOf(count) {
			q, ok := step(w, p)
			if !ok {
				break
			}
			p = q
		}
		return p, p != from
	}
}

// wordForward moves to the start of the next word. At the end of the
// buffer it stops past the last character.
func wordForward(w *walker, p buffer.Point) (buffer.Point, bool) {
	q := p
	switch c := w.class(q); c {
	case classSpace:
	case classEmpty:
		n, ok := w.next(q)
		if !ok {
			return p, false
		}
		q = n
	default:
		for w.class(q) == c {
			n, ok := w.next(q)
			if !ok {
				return q, q != p
			}
			q = n
		}
	}
	for w.class(q) == classSpace {
		n, ok := w.next(q)
		if !ok {
			return q, q != p
		}
		q = n
	}
	return q, true
}

// wordBackward moves to the start of the current or previous word.
func wordBackward(w *walker, p buffer.Point) (buffer.Point, bool) {
	q, ok := w.prev(p)
	if !ok {
		return p, false
	}
	for w.class(q) == classSpace {
		n, ok := w.prev(q)
		if !ok {
			return q, true
		}
		q = n
	}
	c := w.class(q)
	if c == classEmpty {
		return q, true
	}
	for {
		n, ok := w.prev(q)
		if !ok || w.class(n) != c {
			return q, true
		}
		q = n
	}
}

// wordEnd moves to the last character of the current or next word. Empty
// lines are skipped.
func wordEnd(w *walker, p buffer.Point) (buffer.Point, bool) {
	q, ok := w.next(p)
	if !ok {
		return p, false
	}
	for c := w.class(q); c == classSpace || c == classEmpty; c = w.class(q) {
		n, ok := w.next(q)
		if !ok {
			return p, false
		}
		q = n
	}
	c := w.class(q)
	for {
		n, ok := w.next(q)
		if !ok || w.class(n) != c {
			return q, true
		}
		q = n
	}
}

// wordEndBackward moves to the last character of the previous word. An
// empty line stops it.
func wordEndBackward(w *walker, p buffer.Point) (buffer.Point, bool) {
	q := p
	if c := w.class(q); c == classWord || c == classPunct {
		for w.class(q) == c {
			n, ok := w.prev(q)
			if !ok {
				return q, q != p
			}
			q = n
		}
	} else {
		n, ok := w.prev(q)
		if !ok {
			return p, false
		}
		q = n
	}
	for w.class(q) == classSpace {
		n, ok := w.prev(q)
		if !ok {
			return q, q != p
		}
		q = n
	}
	return q, q != p
}

// ChangeWordEnd returns the last character covered by cw or cW from a
// non-blank cursor. It behaves like e, except that a cursor already on the
// end of a word counts as the first word end.
func ChangeWordEnd(r buffer.Reader, from buffer.Point, count int, big bool) (buffer.Point, bool) {
	w := newWalker(r, big)
	from = buffer.Clamp(r, from)
	c := w.class(from)
	if c != classWord && c != classPunct {
		return from, false
	}
	p := from
	for i := range countOf(count) {
		if i == 0 {
			if n, ok := w.next(p); !ok || w.class(n) != c {
				continue
			}
		}
		q, ok := wordEnd(w, p)
		if !ok {
			break
		}
		p = q
	}
	return p, true
}

// IsBlankAt reports whether the character at p is whitespace or p is past
// the end of its line.
func IsBlankAt(r buffer.Reader, p buffer.Point) bool {
	c := newWalker(r, false).class(p)
	return c == classSpace || c == classEmpty
}
