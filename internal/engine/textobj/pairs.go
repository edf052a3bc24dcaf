package textobj

import (
	"sort"
	"strings"
	"unicode"

	"github.com/dshills/modalcore/internal/engine/buffer"
)

// resolveQuote finds a quoted region on the cursor line. Delimiters pair
// from the start of the line; a delimiter preceded by an odd number of
// backslashes is escaped.
func resolveQuote(rd buffer.Reader, cursor buffer.Point, q string, scope Scope, count int) (buffer.Span, bool) {
	gs := buffer.Graphemes(rd.Line(cursor.Line))

	var delims []int
	for i, g := range gs {
		if g != q {
			continue
		}
		slashes := 0
		for j := i - 1; j >= 0 && gs[j] == `\`; j-- {
			slashes++
		}
		if slashes%2 == 0 {
			delims = append(delims, i)
		}
	}

	col := cursor.Column
	pair := -1
	before := 0
	for k, d := range delims {
		if d == col {
			pair = k - k%2
			break
		}
		if d < col {
			before++
		}
	}
	if pair < 0 {
		if before%2 == 1 {
			pair = before - 1
		} else {
			pair = before
		}
	}
	if pair+1 >= len(delims) {
		return buffer.Span{}, false
	}

	open, close := delims[pair], delims[pair+1]
	if scope == Inner && count < 2 {
		return lineSpan(cursor.Line, open+1, close), true
	}
	return lineSpan(cursor.Line, open, close+1), true
}

// resolveBracket finds the count-th enclosing balanced pair across the
// whole buffer.
func resolveBracket(rd buffer.Reader, cursor buffer.Point, open, close string, scope Scope, count int) (buffer.Span, bool) {
	f := flattenAll(rd)
	idx := f.index(cursor)

	var o, c int
	switch f.at(idx) {
	case open:
		o = idx
		c = matchForward(f, idx+1, open, close)
	case close:
		c = idx
		o = matchBackward(f, idx-1, open, close)
	default:
		o = matchBackward(f, idx-1, open, close)
		c = matchForward(f, o+1, open, close)
	}
	for k := 1; k < count && o >= 0 && c >= 0; k++ {
		o = matchBackward(f, o-1, open, close)
		c = matchForward(f, o+1, open, close)
	}
	if o < 0 || c < 0 {
		return buffer.Span{}, false
	}

	if scope == Around {
		return f.span(o, c+1), true
	}

	start, end := o+1, c
	if f.at(start) == "\n" && start < end {
		start++
		if onlySpaceBefore(f, c) {
			end = f.starts[f.lineOf(c)]
		}
	}
	if end < start {
		end = start
	}
	return f.span(start, end), true
}

// matchBackward scans left from i for an unmatched open delimiter.
func matchBackward(f *flat, i int, open, close string) int {
	depth := 0
	for ; i >= 0; i-- {
		switch f.at(i) {
		case close:
			depth++
		case open:
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}

// matchForward scans right from i for an unmatched close delimiter.
func matchForward(f *flat, i int, open, close string) int {
	if i <= 0 {
		return -1
	}
	depth := 0
	for ; i < f.total; i++ {
		switch f.at(i) {
		case open:
			depth++
		case close:
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}

func onlySpaceBefore(f *flat, i int) bool {
	l := f.lineOf(i)
	for j := f.starts[l]; j < i; j++ {
		if !isSpace(f.at(j)) {
			return false
		}
	}
	return true
}

type tagToken struct {
	start, end int
	name       string
	closing    bool
}

type tagPair struct {
	open, close tagToken
}

// resolveTag finds the count-th enclosing start/end tag pair.
func resolveTag(rd buffer.Reader, cursor buffer.Point, scope Scope, count int) (buffer.Span, bool) {
	f := flattenAll(rd)
	idx := f.index(cursor)

	var enclosing []tagPair
	for _, p := range pairTags(scanTags(f)) {
		if p.open.start <= idx && idx < p.close.end {
			enclosing = append(enclosing, p)
		}
	}
	if len(enclosing) < count {
		return buffer.Span{}, false
	}
	sort.Slice(enclosing, func(i, j int) bool {
		return enclosing[i].open.start > enclosing[j].open.start
	})
	p := enclosing[count-1]

	if scope == Around {
		return f.span(p.open.start, p.close.end), true
	}
	return f.span(p.open.end, p.close.start), true
}

// scanTags tokenizes start and end tags, skipping self-closing tags,
// comments and declarations.
func scanTags(f *flat) []tagToken {
	var toks []tagToken
	for i := 0; i < f.total; i++ {
		if f.at(i) != "<" {
			continue
		}
		if f.at(i+1) == "!" || f.at(i+1) == "?" {
			end := skipDeclaration(f, i)
			if end < 0 {
				break
			}
			i = end - 1
			continue
		}

		j := i + 1
		closing := f.at(j) == "/"
		if closing {
			j++
		}
		var name strings.Builder
		for ; j < f.total; j++ {
			g := f.at(j)
			r := firstRune(g)
			if !(unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("-_:.", r)) {
				break
			}
			name.WriteString(g)
		}
		if name.Len() == 0 {
			continue
		}

		end, selfClosing := tagEnd(f, j)
		if end < 0 {
			continue
		}
		if !selfClosing {
			toks = append(toks, tagToken{start: i, end: end, name: name.String(), closing: closing})
		}
		i = end - 1
	}
	return toks
}

// tagEnd finds the index just past the '>' closing a tag, honoring quoted
// attribute values.
func tagEnd(f *flat, i int) (int, bool) {
	quote := ""
	for ; i < f.total; i++ {
		g := f.at(i)
		switch {
		case quote != "":
			if g == quote {
				quote = ""
			}
		case g == `"` || g == "'":
			quote = g
		case g == "<":
			return -1, false
		case g == ">":
			return i + 1, f.at(i-1) == "/"
		}
	}
	return -1, false
}

func skipDeclaration(f *flat, i int) int {
	comment := f.at(i+2) == "-" && f.at(i+3) == "-"
	for j := i + 2; j < f.total; j++ {
		if f.at(j) != ">" {
			continue
		}
		if !comment || (f.at(j-1) == "-" && f.at(j-2) == "-" && j-2 > i+3) {
			return j + 1
		}
	}
	return -1
}

// pairTags matches end tags to the nearest open start tag of the same name.
func pairTags(toks []tagToken) []tagPair {
	var (
		stack []tagToken
		pairs []tagPair
	)
	for _, t := range toks {
		if !t.closing {
			stack = append(stack, t)
			continue
		}
		for k := len(stack) - 1; k >= 0; k-- {
			if strings.EqualFold(stack[k].name, t.name) {
				pairs = append(pairs, tagPair{open: stack[k], close: t})
				stack = stack[:k]
				break
			}
		}
	}
	return pairs
}
