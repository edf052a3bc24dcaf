package operator

import (
	"testing"

	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/history"
)

type regCall struct {
	reg      rune
	text     string
	linewise bool
	deleted  bool
}

type recorder struct {
	calls []regCall
}

func (r *recorder) Yank(reg rune, text string, linewise bool) {
	r.calls = append(r.calls, regCall{reg, text, linewise, false})
}

func (r *recorder) Delete(reg rune, text string, linewise bool) {
	r.calls = append(r.calls, regCall{reg, text, linewise, true})
}

func pt(line, col int) buffer.Point {
	return buffer.Point{Line: line, Column: col}
}

func span(l1, c1, l2, c2 int) buffer.Span {
	return buffer.Span{Start: pt(l1, c1), End: pt(l2, c2)}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		cursor     buffer.Point
		req        Request
		wantText   string
		wantCursor buffer.Point
		wantReg    regCall
		wantInsert bool
	}{
		{
			name:       "delete chars",
			text:       "hello world",
			req:        Request{Kind: Delete, Span: span(0, 0, 0, 6)},
			wantText:   "world",
			wantReg:    regCall{0, "hello ", false, true},
			wantCursor: pt(0, 0),
		},
		{
			name:       "delete across lines",
			text:       "one\ntwo\nthree",
			cursor:     pt(0, 1),
			req:        Request{Kind: Delete, Span: span(0, 1, 1, 1), Register: 'a'},
			wantText:   "owo\nthree",
			wantReg:    regCall{'a', "ne\nt", false, true},
			wantCursor: pt(0, 1),
		},
		{
			name:       "change chars",
			text:       "foo bar",
			req:        Request{Kind: Change, Span: span(0, 0, 0, 3)},
			wantText:   " bar",
			wantReg:    regCall{0, "foo", false, true},
			wantCursor: pt(0, 0),
			wantInsert: true,
		},
		{
			name:       "yank chars moves to start",
			text:       "foo bar",
			cursor:     pt(0, 6),
			req:        Request{Kind: Yank, Span: span(0, 4, 0, 7)},
			wantText:   "foo bar",
			wantReg:    regCall{0, "bar", false, false},
			wantCursor: pt(0, 4),
		},
		{
			name:       "delete middle lines",
			text:       "a\nb\nc\nd",
			cursor:     pt(1, 0),
			req:        Request{Kind: Delete, Span: span(1, 0, 2, 0), Linewise: true},
			wantText:   "a\nd",
			wantReg:    regCall{0, "b\nc", true, true},
			wantCursor: pt(1, 0),
		},
		{
			name:       "delete last lines",
			text:       "a\n  b\nc",
			cursor:     pt(2, 0),
			req:        Request{Kind: Delete, Span: span(2, 0, 2, 0), Linewise: true},
			wantText:   "a\n  b",
			wantReg:    regCall{0, "c", true, true},
			wantCursor: pt(1, 2),
		},
		{
			name:       "delete every line",
			text:       "a\nb",
			req:        Request{Kind: Delete, Span: span(0, 0, 1, 0), Linewise: true},
			wantText:   "",
			wantReg:    regCall{0, "a\nb", true, true},
			wantCursor: pt(0, 0),
		},
		{
			name:       "change lines keeps indent",
			text:       "  a\n  b\nc",
			req:        Request{Kind: Change, Span: span(0, 0, 1, 0), Linewise: true},
			wantText:   "  \nc",
			wantReg:    regCall{0, "  a\n  b", true, true},
			wantCursor: pt(0, 2),
			wantInsert: true,
		},
		{
			name:       "yank lines keeps cursor on first line",
			text:       "a\nb",
			cursor:     pt(0, 0),
			req:        Request{Kind: Yank, Span: span(0, 0, 1, 0), Linewise: true},
			wantText:   "a\nb",
			wantReg:    regCall{0, "a\nb", true, false},
			wantCursor: pt(0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := buffer.NewBufferFromString(tt.text, buffer.WithCursor(tt.cursor))
			tx := history.Begin(buf, tt.name)
			regs := &recorder{}

			res := Apply(tx, regs, tt.req, DefaultSettings)

			if got := buf.Text(); got != tt.wantText {
				t.Errorf("text = %q, want %q", got, tt.wantText)
			}
			if res.Cursor != tt.wantCursor || buf.Cursor() != tt.wantCursor {
				t.Errorf("cursor = %v (buffer %v), want %v", res.Cursor, buf.Cursor(), tt.wantCursor)
			}
			if res.Insert != tt.wantInsert {
				t.Errorf("Insert = %v, want %v", res.Insert, tt.wantInsert)
			}
			if len(regs.calls) != 1 || regs.calls[0] != tt.wantReg {
				t.Errorf("register calls = %+v, want %+v", regs.calls, tt.wantReg)
			}
		})
	}
}

func TestShiftAndCase(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		req      Request
		settings Settings
		want     string
	}{
		{"indent lines", "a\n\nb", Request{Kind: Indent, Span: span(0, 0, 2, 0), Linewise: true}, DefaultSettings, "    a\n\n    b"},
		{"indent with tab", "a", Request{Kind: Indent, Linewise: true}, Settings{ShiftWidth: 8}, "\ta"},
		{"unindent spaces", "      a", Request{Kind: Unindent, Linewise: true}, DefaultSettings, "  a"},
		{"unindent tab", "\t\ta", Request{Kind: Unindent, Linewise: true}, DefaultSettings, "\ta"},
		{"unindent short", "  a", Request{Kind: Unindent, Linewise: true}, DefaultSettings, "a"},
		{"indent charwise span shifts lines", "a\nb", Request{Kind: Indent, Span: span(0, 0, 1, 1)}, DefaultSettings, "    a\n    b"},
		{"toggle chars", "Hello World", Request{Kind: ToggleCase, Span: span(0, 0, 0, 5)}, DefaultSettings, "hELLO World"},
		{"upper across lines", "ab\ncd", Request{Kind: Uppercase, Span: span(0, 1, 1, 1)}, DefaultSettings, "aB\nCd"},
		{"lower lines", "AB\nCD", Request{Kind: Lowercase, Span: span(0, 0, 1, 0), Linewise: true}, DefaultSettings, "ab\ncd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := buffer.NewBufferFromString(tt.text)
			tx := history.Begin(buf, tt.name)
			Apply(tx, nil, tt.req, tt.settings)
			if got := buf.Text(); got != tt.want {
				t.Errorf("text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApplyUndoesAsOneFrame(t *testing.T) {
	buf := buffer.NewBufferFromString("one two\nthree")
	h := history.NewHistory(0)

	tx := history.Begin(buf, "indent")
	Apply(tx, nil, Request{Kind: Indent, Span: span(0, 0, 1, 0), Linewise: true}, DefaultSettings)
	h.Record(tx.Commit(buf.Cursor()))

	if _, err := h.Undo(buf); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := buf.Text(); got != "one two\nthree" {
		t.Errorf("after undo = %q", got)
	}
}

func TestPut(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		cursor     buffer.Point
		put        string
		linewise   bool
		before     bool
		count      int
		want       string
		wantCursor buffer.Point
	}{
		{"chars after", "ac", pt(0, 0), "b", false, false, 1, "abc", pt(0, 1)},
		{"chars before", "ac", pt(0, 1), "b", false, true, 1, "abc", pt(0, 1)},
		{"chars with count", "a", pt(0, 0), "xy", false, false, 2, "axyxy", pt(0, 4)},
		{"chars into empty line", "", pt(0, 0), "x", false, false, 1, "x", pt(0, 0)},
		{"lines after", "a\nc", pt(0, 0), "b", true, false, 1, "a\nb\nc", pt(1, 0)},
		{"lines after last", "a", pt(0, 0), "  b", true, false, 2, "a\n  b\n  b", pt(1, 2)},
		{"lines before", "b", pt(0, 0), "a", true, true, 1, "a\nb", pt(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := buffer.NewBufferFromString(tt.text, buffer.WithCursor(tt.cursor))
			tx := history.Begin(buf, "put")
			got := Put(tx, tt.put, tt.linewise, tt.before, tt.count)
			if buf.Text() != tt.want {
				t.Errorf("text = %q, want %q", buf.Text(), tt.want)
			}
			if got != tt.wantCursor {
				t.Errorf("cursor = %v, want %v", got, tt.wantCursor)
			}
		})
	}
}

func TestJoin(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		count      int
		want       string
		wantCursor buffer.Point
		wantOK     bool
	}{
		{"two lines", "foo\n   bar", 0, "foo bar", pt(0, 3), true},
		{"count three", "a\nb\nc\nd", 3, "a b c\nd", pt(0, 3), true},
		{"empty next line", "foo\n", 0, "foo", pt(0, 2), true},
		{"closing paren", "f(\n)", 0, "f()", pt(0, 2), true},
		{"last line", "foo", 0, "foo", pt(0, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := buffer.NewBufferFromString(tt.text)
			tx := history.Begin(buf, "join")
			got, ok := Join(tx, 0, tt.count)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if buf.Text() != tt.want {
				t.Errorf("text = %q, want %q", buf.Text(), tt.want)
			}
			if got != tt.wantCursor {
				t.Errorf("cursor = %v, want %v", got, tt.wantCursor)
			}
		})
	}
}

func TestReplaceAndToggleChars(t *testing.T) {
	buf := buffer.NewBufferFromString("abcd")
	tx := history.Begin(buf, "r")
	if _, ok := ReplaceChars(tx, "x", 5); ok {
		t.Fatal("ReplaceChars past the end should fail")
	}
	p, ok := ReplaceChars(tx, "x", 2)
	if !ok || buf.Text() != "xxcd" || p != pt(0, 1) {
		t.Fatalf("ReplaceChars = %q %v %v", buf.Text(), p, ok)
	}

	buf.SetCursor(pt(0, 2))
	p = ToggleChars(tx, 5)
	if buf.Text() != "xxCD" || p != pt(0, 3) {
		t.Errorf("ToggleChars = %q %v", buf.Text(), p)
	}
}

func TestLookup(t *testing.T) {
	for k, name := range kindNames {
		got, ok := Lookup(name)
		if !ok || got != k {
			t.Errorf("Lookup(%q) = %v, %v", name, got, ok)
		}
		if k.String() != name {
			t.Errorf("String() = %q, want %q", k.String(), name)
		}
	}
	if _, ok := Lookup("explode"); ok {
		t.Error("Lookup should reject unknown operators")
	}
	if Yank.Modifies() || !Delete.Modifies() {
		t.Error("only yank leaves the buffer alone")
	}
	if got := ToggleString("aBc-É"); got != "AbC-é" {
		t.Errorf("ToggleString = %q", got)
	}
}
