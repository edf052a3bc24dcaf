package motion

import (
	"strings"

	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/textobj"
)

// paragraphForward moves to the next blank line after a paragraph, or to
// the end of the buffer.
func paragraphForward(r buffer.Reader, _ *Context, from buffer.Point, count int, _ string) (buffer.Point, bool) {
	total := r.LineCount()
	line := from.Line
	for range countOf(count) {
		for line < total && buffer.IsBlank(r, line) {
			line++
		}
		for line < total && !buffer.IsBlank(r, line) {
			line++
		}
		if line >= total {
			end := buffer.LastPoint(r)
			return end, end != from
		}
	}
	return buffer.Point{Line: line}, true
}

// paragraphBackward moves to the previous blank line before a paragraph,
// or to the start of the buffer.
func paragraphBackward(r buffer.Reader, _ *Context, from buffer.Point, count int, _ string) (buffer.Point, bool) {
	line := from.Line
	for range countOf(count) {
		for line >= 0 && buffer.IsBlank(r, line) {
			line--
		}
		for line >= 0 && !buffer.IsBlank(r, line) {
			line--
		}
		if line < 0 {
			return buffer.Point{}, from != buffer.Point{}
		}
	}
	return buffer.Point{Line: line}, true
}

func sentenceStarts(r buffer.Reader, ctx *Context) []buffer.Point {
	if ctx.Sentences != nil {
		return ctx.Sentences.SentenceStarts(r)
	}
	return textobj.SentenceStarts(r)
}

func sentenceForward(r buffer.Reader, ctx *Context, from buffer.Point, count int, _ string) (buffer.Point, bool) {
	starts := sentenceStarts(r, ctx)
	p := from
	for range countOf(count) {
		next := buffer.LastPoint(r)
		for _, s := range starts {
			if s.After(p) {
				next = s
				break
			}
		}
		p = next
	}
	return p, p != from
}

func sentenceBackward(r buffer.Reader, ctx *Context, from buffer.Point, count int, _ string) (buffer.Point, bool) {
	starts := sentenceStarts(r, ctx)
	p := from
	for range countOf(count) {
		prev := buffer.Point{}
		for i := len(starts) - 1; i >= 0; i-- {
			if starts[i].Before(p) {
				prev = starts[i]
				break
			}
		}
		p = prev
	}
	return p, p != from
}

func sectionForward(r buffer.Reader, ctx *Context, from buffer.Point, count int, _ string) (buffer.Point, bool) {
	section := ctx.Section
	if section == nil {
		section = DefaultSection
	}
	total := r.LineCount()
	line := from.Line
	for range countOf(count) {
		line++
		for line < total && !section(r.Line(line), line) {
			line++
		}
		if line >= total {
			end := buffer.Point{Line: total - 1}
			return end, end != from
		}
	}
	return buffer.Point{Line: line}, true
}

func sectionBackward(r buffer.Reader, ctx *Context, from buffer.Point, count int, _ string) (buffer.Point, bool) {
	section := ctx.Section
	if section == nil {
		section = DefaultSection
	}
	line := from.Line
	if from.Column > 0 && section(r.Line(line), line) {
		// From inside a section line, go to its start first.
		line++
	}
	for range countOf(count) {
		line--
		for line > 0 && !section(r.Line(line), line) {
			line--
		}
		if line <= 0 {
			return buffer.Point{}, from != buffer.Point{}
		}
	}
	return buffer.Point{Line: line}, true
}

const pairChars = "()[]{}"

// matchPair jumps from the first bracket at or after the cursor on its
// line to the bracket matching it.
func matchPair(r buffer.Reader, _ *Context, from buffer.Point, _ int, _ string) (buffer.Point, bool) {
	g := buffer.Graphemes(r.Line(from.Line))
	for col := from.Column; col < len(g); col++ {
		if len(g[col]) != 1 {
			continue
		}
		c := rune(g[col][0])
		if !strings.ContainsRune(pairChars, c) {
			continue
		}
		obj, _ := textobj.Lookup(c)
		at := buffer.Point{Line: from.Line, Column: col}
		span, ok := textobj.Resolve(r, at, obj, textobj.Around, 1)
		if !ok {
			return from, false
		}
		if g[col] == obj.Open {
			return buffer.Point{Line: span.End.Line, Column: span.End.Column - 1}, true
		}
		return span.Start, true
	}
	return from, false
}
