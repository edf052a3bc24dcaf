package motion

import "github.com/dshills/modalcore/internal/engine/buffer"

// FindKind is one of the four in-line character searches.
type FindKind uint8

const (
	FindNone FindKind = iota
	FindForward
	FindBackward
	TillForward
	TillBackward
)

// Forward reports whether the search moves right.
func (k FindKind) Forward() bool {
	return k == FindForward || k == TillForward
}

// Reverse returns the search in the opposite direction.
func (k FindKind) Reverse() FindKind {
	switch k {
	case FindForward:
		return FindBackward
	case FindBackward:
		return FindForward
	case TillForward:
		return TillBackward
	case TillBackward:
		return TillForward
	}
	return FindNone
}

// Find is a remembered character search.
type Find struct {
	Kind FindKind
	Char string
}

func findMotion(kind FindKind) Func {
	return func(r buffer.Reader, ctx *Context, from buffer.Point, count int, arg string) (buffer.Point, bool) {
		if arg == "" {
			return from, false
		}
		ctx.LastFind = Find{Kind: kind, Char: arg}
		return findChar(r, from, countOf(count), kind, arg, false)
	}
}

func repeatFind(reverse bool) Func {
	return func(r buffer.Reader, ctx *Context, from buffer.Point, count int, _ string) (buffer.Point, bool) {
		f := ctx.LastFind
		if f.Kind == FindNone {
			return from, false
		}
		kind := f.Kind
		if reverse {
			kind = kind.Reverse()
		}
		return findChar(r, from, countOf(count), kind, f.Char, true)
	}
}

// findChar searches the cursor line for the count-th occurrence of char.
// A repeated till search skips a match right next to the cursor so that it
// does not stay put.
func findChar(r buffer.Reader, from buffer.Point, count int, kind FindKind, char string, repeat bool) (buffer.Point, bool) {
	g := buffer.Graphemes(r.Line(from.Line))
	till := kind == TillForward || kind == TillBackward
	skip := 1
	if till && repeat {
		skip = 2
	}

	if kind.Forward() {
		for i := from.Column + skip; i < len(g); i++ {
			if g[i] != char {
				continue
			}
			if count--; count == 0 {
				if till {
					i--
				}
				return buffer.Point{Line: from.Line, Column: i}, true
			}
		}
		return from, false
	}

	for i := from.Column - skip; i >= 0; i-- {
		if g[i] != char {
			continue
		}
		if count--; count == 0 {
			if till {
				i++
			}
			return buffer.Point{Line: from.Line, Column: i}, true
		}
	}
	return from, false
}
