package motion

import (
	"unicode"
	"unicode/utf8"

	"github.com/dshills/modalcore/internal/engine/buffer"
)

func left(r buffer.Reader, _ *Context, from buffer.Point, count int, _ string) (buffer.Point, bool) {
	if from.Column == 0 {
		return from, false
	}
	from.Column = max(from.Column-countOf(count), 0)
	return from, true
}

// right may stop one past the last character so that an operator can reach
// the end of the line.
func right(r buffer.Reader, _ *Context, from buffer.Point, count int, _ string) (buffer.Point, bool) {
	n := buffer.LineLen(r, from.Line)
	if from.Column >= n {
		return from, false
	}
	from.Column = min(from.Column+countOf(count), n)
	return from, true
}

func down(r buffer.Reader, _ *Context, from buffer.Point, count int, _ string) (buffer.Point, bool) {
	last := r.LineCount() - 1
	if from.Line >= last {
		return from, false
	}
	to := buffer.Point{Line: min(from.Line+countOf(count), last), Column: from.Column}
	return buffer.Clamp(r, to), true
}

func up(r buffer.Reader, _ *Context, from buffer.Point, count int, _ string) (buffer.Point, bool) {
	if from.Line == 0 {
		return from, false
	}
	to := buffer.Point{Line: max(from.Line-countOf(count), 0), Column: from.Column}
	return buffer.Clamp(r, to), true
}

func nextLine(r buffer.Reader, ctx *Context, from buffer.Point, count int, arg string) (buffer.Point, bool) {
	to, ok := down(r, ctx, from, count, arg)
	if !ok {
		return from, false
	}
	return buffer.Point{Line: to.Line, Column: firstNonBlankCol(r.Line(to.Line))}, true
}

func prevLine(r buffer.Reader, ctx *Context, from buffer.Point, count int, arg string) (buffer.Point, bool) {
	to, ok := up(r, ctx, from, count, arg)
	if !ok {
		return from, false
	}
	return buffer.Point{Line: to.Line, Column: firstNonBlankCol(r.Line(to.Line))}, true
}

func lineStart(_ buffer.Reader, _ *Context, from buffer.Point, _ int, _ string) (buffer.Point, bool) {
	return buffer.Point{Line: from.Line}, true
}

func firstNonBlank(r buffer.Reader, _ *Context, from buffer.Point, _ int, _ string) (buffer.Point, bool) {
	return buffer.Point{Line: from.Line, Column: firstNonBlankCol(r.Line(from.Line))}, true
}

// lineEnd lands on the last character of the line count-1 lines down.
func lineEnd(r buffer.Reader, _ *Context, from buffer.Point, count int, _ string) (buffer.Point, bool) {
	line := min(from.Line+countOf(count)-1, r.LineCount()-1)
	return buffer.Point{Line: line, Column: max(buffer.LineLen(r, line)-1, 0)}, true
}

func currentLine(r buffer.Reader, _ *Context, from buffer.Point, count int, _ string) (buffer.Point, bool) {
	line := min(from.Line+countOf(count)-1, r.LineCount()-1)
	return buffer.Point{Line: line, Column: firstNonBlankCol(r.Line(line))}, true
}

// documentStart goes to line count, or the first line without a count.
func documentStart(r buffer.Reader, _ *Context, _ buffer.Point, count int, _ string) (buffer.Point, bool) {
	line := 0
	if count > 0 {
		line = min(count-1, r.LineCount()-1)
	}
	return buffer.Point{Line: line, Column: firstNonBlankCol(r.Line(line))}, true
}

// documentEnd goes to line count, or the last line without a count.
func documentEnd(r buffer.Reader, _ *Context, _ buffer.Point, count int, _ string) (buffer.Point, bool) {
	line := r.LineCount() - 1
	if count > 0 {
		line = min(count-1, line)
	}
	return buffer.Point{Line: line, Column: firstNonBlankCol(r.Line(line))}, true
}

// firstNonBlankCol returns the column of the first non-space grapheme, or
// the last column of an all-blank line.
func firstNonBlankCol(line string) int {
	g := buffer.Graphemes(line)
	for i, s := range g {
		if !isSpace(s) {
			return i
		}
	}
	return max(len(g)-1, 0)
}

func isSpace(g string) bool {
	r, _ := utf8.DecodeRuneInString(g)
	return g != "" && unicode.IsSpace(r)
}
