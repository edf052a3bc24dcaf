package textobj

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dshills/modalcore/internal/engine/buffer"
)

func pt(line, col int) buffer.Point {
	return buffer.Point{Line: line, Column: col}
}

func span(l1, c1, l2, c2 int) buffer.Span {
	return buffer.Span{Start: pt(l1, c1), End: pt(l2, c2)}
}

type objCase struct {
	name   string
	lines  []string
	cursor buffer.Point
	obj    Object
	scope  Scope
	count  int
	want   buffer.Span
	found  bool
}

func runCases(t *testing.T, cases []objCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snap := buffer.NewSnapshot(tc.lines...)
			got, ok := Resolve(snap, tc.cursor, tc.obj, tc.scope, tc.count)
			require.Equal(t, tc.found, ok)
			if tc.found {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestWord(t *testing.T) {
	line := []string{"hello world  foo"}
	runCases(t, []objCase{
		{"inner on word", line, pt(0, 1), Word, Inner, 1, span(0, 0, 0, 5), true},
		{"around takes trailing space", line, pt(0, 1), Word, Around, 1, span(0, 0, 0, 6), true},
		{"around falls back to leading space", line, pt(0, 14), Word, Around, 1, span(0, 11, 0, 16), true},
		{"inner on whitespace", line, pt(0, 5), Word, Inner, 1, span(0, 5, 0, 6), true},
		{"around on whitespace takes next word", line, pt(0, 11), Word, Around, 1, span(0, 11, 0, 16), true},
		{"inner count counts runs", line, pt(0, 0), Word, Inner, 2, span(0, 0, 0, 6), true},
		{"around count counts words", line, pt(0, 0), Word, Around, 2, span(0, 0, 0, 13), true},
		{"punctuation is its own class", []string{"foo.bar"}, pt(0, 3), Word, Inner, 1, span(0, 3, 0, 4), true},
		{"WORD spans punctuation", []string{"foo.bar baz"}, pt(0, 3), BigWord, Inner, 1, span(0, 0, 0, 7), true},
		{"cursor past end uses last char", []string{"abc"}, pt(0, 3), Word, Inner, 1, span(0, 0, 0, 3), true},
		{"empty line", []string{""}, pt(0, 0), Word, Inner, 1, buffer.Span{}, false},
		{"grapheme columns", []string{"héllo wörld"}, pt(0, 7), Word, Inner, 1, span(0, 6, 0, 11), true},
	})
}

func TestSentence(t *testing.T) {
	prose := []string{"Hello there. How are you?  Fine!", "", "Next para"}
	runCases(t, []objCase{
		{"inner", prose, pt(0, 14), Sentence, Inner, 1, span(0, 13, 0, 25), true},
		{"around includes trailing whitespace", prose, pt(0, 14), Sentence, Around, 1, span(0, 13, 0, 27), true},
		{"around last takes leading whitespace", prose, pt(0, 28), Sentence, Around, 1, span(0, 25, 0, 32), true},
		{"inner on gap selects whitespace", prose, pt(0, 12), Sentence, Inner, 1, span(0, 12, 0, 13), true},
		{"count extends", prose, pt(0, 0), Sentence, Inner, 2, span(0, 0, 0, 25), true},
		{"blank line wins over missing punctuation", []string{"no punctuation here", "", "second"}, pt(0, 3), Sentence, Inner, 1, span(0, 0, 0, 19), true},
		{"crosses lines within paragraph", []string{"This is a", "long one. Next."}, pt(0, 2), Sentence, Inner, 1, span(0, 0, 1, 9), true},
		{"closing quote after ender", []string{`He said "stop." Then left.`}, pt(0, 2), Sentence, Inner, 1, span(0, 0, 0, 15), true},
		{"blank line", prose, pt(1, 0), Sentence, Inner, 1, buffer.Span{}, false},
	})
}

func TestSentenceCustomEnders(t *testing.T) {
	snap := buffer.NewSnapshot("one; two; three")
	r := NewResolver(WithSentenceEnders(";"))

	got, ok := r.Resolve(snap, pt(0, 6), Sentence, Inner, 1)
	require.True(t, ok)
	assert.Equal(t, span(0, 5, 0, 9), got)
}

func TestParagraph(t *testing.T) {
	lines := []string{"a", "b", "", "  ", "c", "d"}
	runCases(t, []objCase{
		{"inner", lines, pt(0, 0), Paragraph, Inner, 1, span(0, 0, 1, 1), true},
		{"around includes trailing blank run", lines, pt(1, 0), Paragraph, Around, 1, span(0, 0, 3, 2), true},
		{"around at end takes preceding blanks", lines, pt(4, 0), Paragraph, Around, 1, span(2, 0, 5, 1), true},
		{"inner on blank selects blank run", lines, pt(2, 0), Paragraph, Inner, 1, span(2, 0, 3, 2), true},
		{"inner count counts runs", lines, pt(0, 0), Paragraph, Inner, 3, span(0, 0, 5, 1), true},
	})
	assert.True(t, Paragraph.Linewise())
	assert.False(t, Word.Linewise())
}

func TestQuote(t *testing.T) {
	line := []string{`say "hi there" and 'x'`}
	dq := QuoteObject(`"`)
	runCases(t, []objCase{
		{"inner", line, pt(0, 6), dq, Inner, 1, span(0, 5, 0, 13), true},
		{"around", line, pt(0, 6), dq, Around, 1, span(0, 4, 0, 14), true},
		{"on opening delimiter", line, pt(0, 4), dq, Inner, 1, span(0, 5, 0, 13), true},
		{"on closing delimiter", line, pt(0, 13), dq, Inner, 1, span(0, 5, 0, 13), true},
		{"following the cursor", line, pt(0, 0), dq, Inner, 1, span(0, 5, 0, 13), true},
		{"count two includes quotes", line, pt(0, 6), dq, Inner, 2, span(0, 4, 0, 14), true},
		{"single quotes", line, pt(0, 20), QuoteObject("'"), Inner, 1, span(0, 20, 0, 21), true},
		{"after last pair", line, pt(0, 16), dq, Inner, 1, buffer.Span{}, false},
		{"escaped delimiter", []string{`a "b\"c" d`}, pt(0, 3), dq, Inner, 1, span(0, 3, 0, 7), true},
		{"unclosed opener", []string{`x "abc`}, pt(0, 4), dq, Inner, 1, buffer.Span{}, false},
		{"other line ignored", []string{`"a`, `b"`}, pt(1, 0), dq, Inner, 1, buffer.Span{}, false},
	})
}

func TestBracket(t *testing.T) {
	nested := []string{"(a (b) c)"}
	block := []string{"func() {", "    body", "}"}
	runCases(t, []objCase{
		{"inner innermost", nested, pt(0, 4), Paren, Inner, 1, span(0, 4, 0, 5), true},
		{"around innermost", nested, pt(0, 4), Paren, Around, 1, span(0, 3, 0, 6), true},
		{"count selects outer pair", nested, pt(0, 4), Paren, Inner, 2, span(0, 1, 0, 8), true},
		{"on open delimiter", nested, pt(0, 3), Paren, Around, 1, span(0, 3, 0, 6), true},
		{"on close delimiter", nested, pt(0, 8), Paren, Around, 1, span(0, 0, 0, 9), true},
		{"empty pair", []string{"f()"}, pt(0, 1), Paren, Inner, 1, span(0, 2, 0, 2), true},
		{"multi-line inner keeps delimiter lines", block, pt(1, 4), Brace, Inner, 1, span(1, 0, 2, 0), true},
		{"multi-line around", block, pt(1, 4), Brace, Around, 1, span(0, 7, 2, 1), true},
		{"outside any pair", block, pt(0, 2), Paren, Inner, 1, buffer.Span{}, false},
		{"unbalanced", []string{"(a (b c"}, pt(0, 5), Paren, Inner, 1, buffer.Span{}, false},
		{"square", []string{"x[1][2]"}, pt(0, 5), Square, Inner, 1, span(0, 5, 0, 6), true},
		{"angle", []string{"Vec<T>"}, pt(0, 4), Angle, Around, 1, span(0, 3, 0, 6), true},
	})
}

func TestTag(t *testing.T) {
	html := []string{"<div><p>hi</p><br/></div>"}
	runCases(t, []objCase{
		{"inner", html, pt(0, 8), Tag, Inner, 1, span(0, 8, 0, 10), true},
		{"around", html, pt(0, 8), Tag, Around, 1, span(0, 5, 0, 14), true},
		{"count selects outer tag", html, pt(0, 8), Tag, Inner, 2, span(0, 5, 0, 19), true},
		{"self-closing ignored", html, pt(0, 16), Tag, Inner, 1, span(0, 5, 0, 19), true},
		{"on start tag", html, pt(0, 1), Tag, Around, 1, span(0, 0, 0, 25), true},
		{"attributes and comments", []string{`<a href="x>y"><!-- <b> -->t</a>`}, pt(0, 27), Tag, Inner, 1, span(0, 14, 0, 27), true},
		{"multi-line", []string{"<ul>", "  <li>x</li>", "</ul>"}, pt(1, 6), Tag, Around, 1, span(1, 2, 1, 12), true},
		{"no tags", []string{"plain text"}, pt(0, 2), Tag, Inner, 1, buffer.Span{}, false},
	})
}

func TestLookup(t *testing.T) {
	tests := []struct {
		letter rune
		want   Object
	}{
		{'w', Word},
		{'W', BigWord},
		{'s', Sentence},
		{'p', Paragraph},
		{'b', Paren},
		{')', Paren},
		{'B', Brace},
		{']', Square},
		{'>', Angle},
		{'t', Tag},
		{'`', QuoteObject("`")},
	}
	for _, tt := range tests {
		got, ok := Lookup(tt.letter)
		require.True(t, ok, "letter %q", tt.letter)
		assert.Equal(t, tt.want, got)
	}

	_, ok := Lookup('z')
	assert.False(t, ok)
	assert.Len(t, Letters(), len(objectLetters))
}

func TestCachePreview(t *testing.T) {
	c := NewCache(nil, 0)
	snap := buffer.NewSnapshot("(a (b) c)")

	first, ok := c.Preview(snap, pt(0, 4), Paren, Inner, 1)
	require.True(t, ok)
	second, ok := c.Preview(snap, pt(0, 4), Paren, Inner, 1)
	require.True(t, ok)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, c.Len())

	_, ok = c.Preview(snap, pt(0, 0), Tag, Inner, 1)
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())

	c.Flush()
	assert.Equal(t, 0, c.Len())
}

func TestResolveIsIdempotentProperty(t *testing.T) {
	letters := Letters()
	rapid.Check(t, func(t *rapid.T) {
		lines := rapid.SliceOfN(
			rapid.StringMatching(`[a-z .!?"'()\[\]{}<>/]{0,12}`), 1, 5,
		).Draw(t, "lines")
		snap := buffer.NewSnapshot(lines...)

		line := rapid.IntRange(0, len(lines)-1).Draw(t, "line")
		col := rapid.IntRange(0, buffer.LineLen(snap, line)).Draw(t, "col")
		obj, _ := Lookup(rapid.SampledFrom(letters).Draw(t, "letter"))
		scope := Scope(rapid.IntRange(0, 1).Draw(t, "scope"))
		count := rapid.IntRange(1, 3).Draw(t, "count")

		first, ok1 := Resolve(snap, pt(line, col), obj, scope, count)
		second, ok2 := Resolve(snap, pt(line, col), obj, scope, count)

		if ok1 != ok2 || first != second {
			t.Fatalf("non-idempotent: %v/%v vs %v/%v", first, ok1, second, ok2)
		}
		if !ok1 {
			return
		}
		if first.End.Before(first.Start) {
			t.Fatalf("inverted span %v", first)
		}
		if buffer.Clamp(snap, first.Start) != first.Start || buffer.Clamp(snap, first.End) != first.End {
			t.Fatalf("span out of bounds %v", first)
		}
	})
}
