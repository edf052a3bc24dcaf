package textobj

import (
	"unicode"
	"unicode/utf8"

	"github.com/dshills/modalcore/internal/engine/buffer"
)

// flat addresses a range of buffer lines as one grapheme sequence. The
// newline between two lines is a single "\n" element at the end of the
// earlier line.
type flat struct {
	first  int
	lines  [][]string
	starts []int
	total  int
}

func flatten(r buffer.Reader, first, last int) *flat {
	f := &flat{first: first}
	for i := first; i <= last; i++ {
		g := buffer.Graphemes(r.Line(i))
		f.starts = append(f.starts, f.total)
		f.lines = append(f.lines, g)
		f.total += len(g)
		if i < last {
			f.total++
		}
	}
	return f
}

func flattenAll(r buffer.Reader) *flat {
	return flatten(r, 0, r.LineCount()-1)
}

// at returns the grapheme at flat index i, "\n" for line breaks and "" out
// of range.
func (f *flat) at(i int) string {
	if i < 0 || i >= f.total {
		return ""
	}
	l := f.lineOf(i)
	col := i - f.starts[l]
	if col >= len(f.lines[l]) {
		return "\n"
	}
	return f.lines[l][col]
}

func (f *flat) lineOf(i int) int {
	lo, hi := 0, len(f.starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if f.starts[mid] <= i {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

func (f *flat) point(i int) buffer.Point {
	if i >= f.total {
		last := len(f.lines) - 1
		return buffer.Point{Line: f.first + last, Column: len(f.lines[last])}
	}
	if i < 0 {
		i = 0
	}
	l := f.lineOf(i)
	return buffer.Point{Line: f.first + l, Column: i - f.starts[l]}
}

func (f *flat) index(p buffer.Point) int {
	l := p.Line - f.first
	if l < 0 {
		return 0
	}
	if l >= len(f.lines) {
		return f.total
	}
	col := p.Column
	if col > len(f.lines[l]) {
		col = len(f.lines[l])
	}
	if col < 0 {
		col = 0
	}
	return f.starts[l] + col
}

func (f *flat) span(start, end int) buffer.Span {
	return buffer.Span{Start: f.point(start), End: f.point(end)}
}

// Character classes used by word objects.
const (
	classSpace = iota
	classWord
	classPunct
)

func firstRune(g string) rune {
	r, _ := utf8.DecodeRuneInString(g)
	return r
}

func isSpace(g string) bool {
	return g == "" || unicode.IsSpace(firstRune(g))
}

func isWordChar(g string) bool {
	r := firstRune(g)
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func classOf(g string, big bool) int {
	switch {
	case isSpace(g):
		return classSpace
	case big || isWordChar(g):
		return classWord
	default:
		return classPunct
	}
}
