package textobj

import (
	"strings"

	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/logging"
)

// DefaultSentenceEnders are the characters that can end a sentence.
const DefaultSentenceEnders = ".!?"

// sentenceClosers may follow a sentence ender before the whitespace.
const sentenceClosers = `)]"'`

// Resolver computes text object spans. A Resolver holds configuration only;
// every resolution is a pure function of the reader and cursor it is given.
type Resolver struct {
	sentenceEnders string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithSentenceEnders sets the characters that end a sentence.
func WithSentenceEnders(enders string) Option {
	return func(r *Resolver) {
		if enders != "" {
			r.sentenceEnders = enders
		}
	}
}

// NewResolver creates a resolver.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{sentenceEnders: DefaultSentenceEnders}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultResolver = NewResolver()

// Resolve computes the span of obj around cursor using default settings.
func Resolve(rd buffer.Reader, cursor buffer.Point, obj Object, scope Scope, count int) (buffer.Span, bool) {
	return defaultResolver.Resolve(rd, cursor, obj, scope, count)
}

// Resolve computes the span of obj around cursor. It returns false when no
// such object encloses or follows the cursor.
func (r *Resolver) Resolve(rd buffer.Reader, cursor buffer.Point, obj Object, scope Scope, count int) (buffer.Span, bool) {
	if rd.LineCount() == 0 {
		return buffer.Span{}, false
	}
	if count < 1 {
		count = 1
	}
	cursor = buffer.Clamp(rd, cursor)

	var (
		span buffer.Span
		ok   bool
	)
	switch obj.Kind {
	case KindWord, KindBigWord:
		span, ok = resolveWord(rd, cursor, obj.Kind == KindBigWord, scope, count)
	case KindSentence:
		span, ok = r.resolveSentence(rd, cursor, scope, count)
	case KindParagraph:
		span, ok = resolveParagraph(rd, cursor, scope, count)
	case KindQuote:
		span, ok = resolveQuote(rd, cursor, obj.Open, scope, count)
	case KindBracket:
		span, ok = resolveBracket(rd, cursor, obj.Open, obj.Close, scope, count)
	case KindTag:
		span, ok = resolveTag(rd, cursor, scope, count)
	}
	if !ok {
		logging.Debug("text object not found", "object", obj.String(), "cursor", cursor.String())
	}
	return span, ok
}

// resolveWord finds a word or WORD on the cursor line.
func resolveWord(rd buffer.Reader, cursor buffer.Point, big bool, scope Scope, count int) (buffer.Span, bool) {
	gs := buffer.Graphemes(rd.Line(cursor.Line))
	n := len(gs)
	if n == 0 {
		return buffer.Span{}, false
	}
	col := min(cursor.Column, n-1)

	cls := func(i int) int { return classOf(gs[i], big) }
	runEnd := func(i int) int {
		c := cls(i)
		for i < n && cls(i) == c {
			i++
		}
		return i
	}

	start := col
	for start > 0 && cls(start-1) == cls(col) {
		start--
	}
	end := runEnd(col)

	if scope == Inner {
		for k := 1; k < count && end < n; k++ {
			end = runEnd(end)
		}
		return lineSpan(cursor.Line, start, end), true
	}

	if cls(col) == classSpace {
		// Whitespace plus the following word(s).
		for k := 0; k < count && end < n; k++ {
			end = runEnd(end)
			if k+1 < count && end < n && cls(end) == classSpace {
				end = runEnd(end)
			}
		}
		return lineSpan(cursor.Line, start, end), true
	}

	for k := 1; k < count && end < n; k++ {
		if cls(end) == classSpace {
			end = runEnd(end)
		}
		if end < n {
			end = runEnd(end)
		}
	}
	if end < n && cls(end) == classSpace {
		end = runEnd(end)
	} else {
		for start > 0 && cls(start-1) == classSpace {
			start--
		}
	}
	return lineSpan(cursor.Line, start, end), true
}

func lineSpan(line, start, end int) buffer.Span {
	return buffer.Span{
		Start: buffer.Point{Line: line, Column: start},
		End:   buffer.Point{Line: line, Column: end},
	}
}

// paragraphBounds returns the run of lines sharing the blankness of line.
func paragraphBounds(rd buffer.Reader, line int) (first, last int) {
	blank := buffer.IsBlank(rd, line)
	first, last = line, line
	for first > 0 && buffer.IsBlank(rd, first-1) == blank {
		first--
	}
	for last+1 < rd.LineCount() && buffer.IsBlank(rd, last+1) == blank {
		last++
	}
	return first, last
}

// resolveParagraph returns a linewise span from column 0 of the first line
// to the end of the last line.
func resolveParagraph(rd buffer.Reader, cursor buffer.Point, scope Scope, count int) (buffer.Span, bool) {
	first, last := paragraphBounds(rd, cursor.Line)
	total := rd.LineCount()

	runs := count
	if scope == Around {
		runs = 2 * count
	}
	for k := 1; k < runs && last+1 < total; k++ {
		_, last = paragraphBounds(rd, last+1)
	}

	if scope == Around && !buffer.IsBlank(rd, last) && first > 0 && buffer.IsBlank(rd, first-1) {
		// No trailing blank run: take the one before the paragraph.
		first, _ = paragraphBounds(rd, first-1)
	}

	return buffer.Span{
		Start: buffer.Point{Line: first},
		End:   buffer.Point{Line: last, Column: buffer.LineLen(rd, last)},
	}, true
}

type sentence struct {
	start, end, next int
}

// resolveSentence finds a sentence within the paragraph holding the
// cursor. A blank line always ends a sentence, whatever the punctuation.
func (r *Resolver) resolveSentence(rd buffer.Reader, cursor buffer.Point, scope Scope, count int) (buffer.Span, bool) {
	if buffer.IsBlank(rd, cursor.Line) {
		return buffer.Span{}, false
	}
	first, last := paragraphBounds(rd, cursor.Line)
	f := flatten(rd, first, last)
	sents := r.sentences(f)
	if len(sents) == 0 {
		return buffer.Span{}, false
	}

	idx := f.index(cursor)
	cur := len(sents) - 1
	for i, s := range sents {
		if idx < s.next {
			cur = i
			break
		}
	}
	s := sents[cur]

	if idx >= s.end && s.next > s.end {
		// On the whitespace between sentences.
		start, end := s.end, s.next
		if scope == Around && cur+1 < len(sents) {
			end = sents[cur+1].end
		}
		return f.span(start, end), true
	}

	lastIdx := min(cur+count-1, len(sents)-1)
	start := s.start
	end := sents[lastIdx].end
	if scope == Around {
		if sents[lastIdx].next > end {
			end = sents[lastIdx].next
		} else if cur > 0 {
			start = sents[cur-1].end
		}
	}
	return f.span(start, end), true
}

// sentences splits a paragraph into sentences.
func (r *Resolver) sentences(f *flat) []sentence {
	var out []sentence
	i := 0
	for i < f.total && isSpace(f.at(i)) {
		i++
	}
	for i < f.total {
		s := sentence{start: i}
		j := i
		for ; j < f.total; j++ {
			if !strings.Contains(r.sentenceEnders, f.at(j)) {
				continue
			}
			k := j + 1
			for k < f.total && strings.Contains(sentenceClosers, f.at(k)) {
				k++
			}
			if k >= f.total || isSpace(f.at(k)) {
				j = k
				break
			}
		}
		s.end = j
		for j < f.total && isSpace(f.at(j)) {
			j++
		}
		s.next = j
		out = append(out, s)
		i = j
	}
	return out
}

// SentenceStarts lists, in buffer order, the first point of every sentence
// and of every run of blank lines. Sentence motions move between them.
func (r *Resolver) SentenceStarts(rd buffer.Reader) []buffer.Point {
	var out []buffer.Point
	for line := 0; line < rd.LineCount(); {
		first, last := paragraphBounds(rd, line)
		if buffer.IsBlank(rd, first) {
			out = append(out, buffer.Point{Line: first})
		} else {
			f := flatten(rd, first, last)
			for _, s := range r.sentences(f) {
				out = append(out, f.point(s.start))
			}
		}
		line = last + 1
	}
	return out
}

// SentenceStarts uses the default sentence enders.
func SentenceStarts(rd buffer.Reader) []buffer.Point {
	return defaultResolver.SentenceStarts(rd)
}
