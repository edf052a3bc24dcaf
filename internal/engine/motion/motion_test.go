package motion

import (
	"testing"

	"github.com/dshills/modalcore/internal/engine/buffer"
)

func pt(line, col int) buffer.Point {
	return buffer.Point{Line: line, Column: col}
}

type motionCase struct {
	name   string
	action string
	from   buffer.Point
	count  int
	arg    string
	want   buffer.Point
	wantOK bool
}

func runMotions(t *testing.T, text string, tests []motionCase) {
	t.Helper()
	buf := buffer.NewBufferFromString(text)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := Lookup(tt.action)
			if !ok {
				t.Fatalf("Lookup(%q) failed", tt.action)
			}
			got, ok := m.Apply(buf, NewContext(), tt.from, tt.count, tt.arg)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWordMotions(t *testing.T) {
	runMotions(t, "foo bar.baz  qux\n\n  next", []motionCase{
		{"w over space", "cursor.wordForward", pt(0, 0), 0, "", pt(0, 4), true},
		{"w stops at punctuation", "cursor.wordForward", pt(0, 4), 0, "", pt(0, 7), true},
		{"w leaves punctuation", "cursor.wordForward", pt(0, 7), 0, "", pt(0, 8), true},
		{"w stops on empty line", "cursor.wordForward", pt(0, 13), 0, "", pt(1, 0), true},
		{"w from empty line", "cursor.wordForward", pt(1, 0), 0, "", pt(2, 2), true},
		{"w with count", "cursor.wordForward", pt(0, 0), 3, "", pt(0, 8), true},
		{"w at end", "cursor.wordForward", pt(2, 2), 0, "", pt(2, 6), true},
		{"W skips punctuation", "cursor.bigWordForward", pt(0, 4), 0, "", pt(0, 13), true},
		{"b to empty line", "cursor.wordBackward", pt(2, 2), 0, "", pt(1, 0), true},
		{"b onto punctuation", "cursor.wordBackward", pt(0, 8), 0, "", pt(0, 7), true},
		{"b at start", "cursor.wordBackward", pt(0, 0), 0, "", pt(0, 0), false},
		{"B whole WORD", "cursor.bigWordBackward", pt(0, 10), 0, "", pt(0, 4), true},
		{"e in word", "cursor.wordEnd", pt(0, 0), 0, "", pt(0, 2), true},
		{"e from end of word", "cursor.wordEnd", pt(0, 2), 0, "", pt(0, 6), true},
		{"E", "cursor.bigWordEnd", pt(0, 4), 0, "", pt(0, 10), true},
		{"ge onto punctuation", "cursor.wordEndBackward", pt(0, 8), 0, "", pt(0, 7), true},
		{"ge stops on empty line", "cursor.wordEndBackward", pt(2, 2), 0, "", pt(1, 0), true},
	})
}

func TestLineMotions(t *testing.T) {
	runMotions(t, "hello\n  world\nx", []motionCase{
		{"h", "cursor.left", pt(0, 3), 2, "", pt(0, 1), true},
		{"h at column 0", "cursor.left", pt(0, 0), 0, "", pt(0, 0), false},
		{"l past end for operators", "cursor.right", pt(0, 4), 0, "", pt(0, 5), true},
		{"l clamps count", "cursor.right", pt(0, 1), 10, "", pt(0, 5), true},
		{"j keeps column", "cursor.down", pt(0, 3), 0, "", pt(1, 3), true},
		{"j clamps column", "cursor.down", pt(1, 6), 0, "", pt(2, 1), true},
		{"j on last line", "cursor.down", pt(2, 0), 0, "", pt(2, 0), false},
		{"k with count", "cursor.up", pt(2, 0), 5, "", pt(0, 0), true},
		{"+", "cursor.nextLine", pt(0, 0), 0, "", pt(1, 2), true},
		{"0", "cursor.lineStart", pt(1, 4), 0, "", pt(1, 0), true},
		{"^", "cursor.firstNonBlank", pt(1, 5), 0, "", pt(1, 2), true},
		{"$", "cursor.lineEnd", pt(0, 0), 0, "", pt(0, 4), true},
		{"$ with count", "cursor.lineEnd", pt(0, 0), 2, "", pt(1, 6), true},
		{"_ with count", "cursor.currentLine", pt(0, 3), 2, "", pt(1, 2), true},
		{"gg", "cursor.documentStart", pt(2, 0), 0, "", pt(0, 0), true},
		{"gg with count", "cursor.documentStart", pt(0, 0), 2, "", pt(1, 2), true},
		{"G", "cursor.documentEnd", pt(0, 0), 0, "", pt(2, 0), true},
		{"G beyond end", "cursor.documentEnd", pt(0, 0), 99, "", pt(2, 0), true},
	})
}

func TestFindMotions(t *testing.T) {
	runMotions(t, "a,b,c,d", []motionCase{
		{"f with count", "cursor.findChar", pt(0, 0), 2, ",", pt(0, 3), true},
		{"f missing", "cursor.findChar", pt(0, 0), 0, "x", pt(0, 0), false},
		{"f count too large", "cursor.findChar", pt(0, 0), 4, ",", pt(0, 0), false},
		{"t", "cursor.tillChar", pt(0, 2), 0, ",", pt(0, 2), true},
		{"F", "cursor.findCharBack", pt(0, 6), 0, ",", pt(0, 5), true},
		{"T", "cursor.tillCharBack", pt(0, 6), 2, ",", pt(0, 4), true},
		{"f without argument", "cursor.findChar", pt(0, 0), 0, "", pt(0, 0), false},
	})
}

func TestRepeatFind(t *testing.T) {
	buf := buffer.NewBufferFromString("a,b,c,d")
	ctx := NewContext()

	semi, _ := Lookup("cursor.repeatFind")
	comma, _ := Lookup("cursor.repeatFindReverse")

	if _, ok := semi.Apply(buf, ctx, pt(0, 0), 0, ""); ok {
		t.Fatal("; without a previous search should fail")
	}

	tm, _ := Lookup("cursor.tillChar")
	p, _ := tm.Apply(buf, ctx, pt(0, 0), 0, ",")
	if p != pt(0, 0) {
		t.Fatalf("t, = %v", p)
	}
	if !semi.IsInclusive(ctx) || comma.IsInclusive(ctx) {
		t.Error("inclusiveness should follow the repeated search")
	}

	p, ok := semi.Apply(buf, ctx, p, 0, "")
	if !ok || p != pt(0, 2) {
		t.Fatalf("; after t = %v, %v; want (0,2)", p, ok)
	}
	p, ok = comma.Apply(buf, ctx, pt(0, 6), 0, "")
	if !ok || p != pt(0, 4) {
		t.Fatalf(", after t = %v, %v; want (0,4)", p, ok)
	}

	fm, _ := Lookup("cursor.findCharBack")
	fm.Apply(buf, ctx, pt(0, 6), 0, ",")
	p, ok = comma.Apply(buf, ctx, pt(0, 1), 0, "")
	if !ok || p != pt(0, 3) {
		t.Errorf(", after F = %v, %v; want (0,3)", p, ok)
	}
}

func TestParagraphMotions(t *testing.T) {
	runMotions(t, "a\nb\n\nc\n\n\nd", []motionCase{
		{"} to blank", "cursor.paragraphForward", pt(0, 0), 0, "", pt(2, 0), true},
		{"} with count", "cursor.paragraphForward", pt(0, 0), 2, "", pt(4, 0), true},
		{"} past last paragraph", "cursor.paragraphForward", pt(0, 0), 3, "", pt(6, 1), true},
		{"{ to blank", "cursor.paragraphBackward", pt(6, 0), 0, "", pt(5, 0), true},
		{"{ over blank run", "cursor.paragraphBackward", pt(5, 0), 0, "", pt(2, 0), true},
		{"{ to start", "cursor.paragraphBackward", pt(1, 0), 0, "", pt(0, 0), true},
	})
}

func TestSentenceMotions(t *testing.T) {
	runMotions(t, "One. Two! Three\n\nFour.", []motionCase{
		{")", "cursor.sentenceForward", pt(0, 0), 0, "", pt(0, 5), true},
		{") with count", "cursor.sentenceForward", pt(0, 0), 2, "", pt(0, 10), true},
		{") to blank line", "cursor.sentenceForward", pt(0, 11), 0, "", pt(1, 0), true},
		{"(", "cursor.sentenceBackward", pt(0, 7), 0, "", pt(0, 5), true},
		{"( from sentence start", "cursor.sentenceBackward", pt(0, 5), 0, "", pt(0, 0), true},
		{"( across blank line", "cursor.sentenceBackward", pt(2, 0), 0, "", pt(1, 0), true},
	})
}

func TestSectionMotions(t *testing.T) {
	runMotions(t, "x\n{\ny\n{\nz", []motionCase{
		{"]]", "cursor.sectionForward", pt(0, 0), 0, "", pt(1, 0), true},
		{"]] with count", "cursor.sectionForward", pt(0, 0), 2, "", pt(3, 0), true},
		{"]] past last section", "cursor.sectionForward", pt(3, 0), 0, "", pt(4, 0), true},
		{"[[", "cursor.sectionBackward", pt(4, 0), 0, "", pt(3, 0), true},
		{"[[ to start", "cursor.sectionBackward", pt(1, 0), 0, "", pt(0, 0), true},
	})
}

func TestPrefixSection(t *testing.T) {
	buf := buffer.NewBufferFromString("package x\n\nfunc a() {}\n\ntype T int\nfunc b() {}")
	ctx := NewContext(WithSection(PrefixSection("func ", "type ")))
	m, _ := Lookup("cursor.sectionForward")

	var got []int
	p := pt(0, 0)
	for {
		next, ok := m.Apply(buf, ctx, p, 0, "")
		if !ok {
			break
		}
		got = append(got, next.Line)
		p = next
	}
	want := []int{2, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("section lines = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("section lines = %v, want %v", got, want)
		}
	}

	if fn := PrefixSection(); !fn("{", 0) {
		t.Error("PrefixSection() should fall back to the default rule")
	}
	either := AnySection(DefaultSection, func(line string, _ int) bool { return line == "#" })
	if !either("#", 0) || !either("{x", 1) || either("x", 2) {
		t.Error("AnySection should match if any predicate matches")
	}
}

func TestMatchPair(t *testing.T) {
	runMotions(t, "if (a[1]) {\n  x\n}", []motionCase{
		{"% forward", "cursor.matchPair", pt(0, 0), 0, "", pt(0, 8), true},
		{"% backward", "cursor.matchPair", pt(0, 8), 0, "", pt(0, 3), true},
		{"% inner bracket", "cursor.matchPair", pt(0, 5), 0, "", pt(0, 7), true},
		{"% across lines", "cursor.matchPair", pt(0, 10), 0, "", pt(2, 0), true},
		{"% no bracket", "cursor.matchPair", pt(1, 0), 0, "", pt(1, 0), false},
	})
}

func TestLookupAndAll(t *testing.T) {
	all := All()
	if len(all) == 0 {
		t.Fatal("All() returned no motions")
	}
	seen := make(map[string]bool)
	for i, m := range all {
		if seen[m.Keys] {
			t.Errorf("duplicate keys %q", m.Keys)
		}
		seen[m.Keys] = true
		if i > 0 && all[i-1].Action > m.Action {
			t.Errorf("All() not sorted at %q", m.Action)
		}
		got, ok := Lookup(m.Action)
		if !ok || got.Keys != m.Keys {
			t.Errorf("Lookup(%q) = %v, %v", m.Action, got.Keys, ok)
		}
	}
	if _, ok := Lookup("cursor.nowhere"); ok {
		t.Error("Lookup should fail for unknown actions")
	}
	if m, _ := Lookup("cursor.documentEnd"); m.Type != Linewise || !m.Jump {
		t.Error("G should be a linewise jump")
	}
}

func TestApplyOnGraphemes(t *testing.T) {
	runMotions(t, "éé x", []motionCase{
		{"w counts clusters", "cursor.wordForward", pt(0, 0), 0, "", pt(0, 3), true},
		{"l counts clusters", "cursor.right", pt(0, 0), 0, "", pt(0, 1), true},
	})
}

func TestChangeWordEnd(t *testing.T) {
	buf := buffer.NewBufferFromString("foo bar.baz")
	tests := []struct {
		name   string
		from   buffer.Point
		count  int
		want   buffer.Point
		wantOK bool
	}{
		{"inside word", pt(0, 0), 1, pt(0, 2), true},
		{"on word end", pt(0, 2), 1, pt(0, 2), true},
		{"with count", pt(0, 0), 2, pt(0, 6), true},
		{"single punctuation", pt(0, 7), 1, pt(0, 7), true},
		{"on blank", pt(0, 3), 1, pt(0, 3), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ChangeWordEnd(buf, tt.from, tt.count, false)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ChangeWordEnd = %v, %v, want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
	if !IsBlankAt(buf, pt(0, 3)) || IsBlankAt(buf, pt(0, 0)) {
		t.Error("IsBlankAt misclassified")
	}
}
