package key

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want Event
	}{
		{"a", Rune('a')},
		{"A", Rune('A')},
		{"@", Rune('@')},
		{"<", Rune('<')},
		{"<Esc>", Escape},
		{"<esc>", Escape},
		{"<CR>", Special(KeyEnter, ModNone)},
		{"<Enter>", Special(KeyEnter, ModNone)},
		{"<BS>", Special(KeyBackspace, ModNone)},
		{"<C-r>", Ctrl('r')},
		{"<C-R>", Ctrl('r')},
		{"<S-Tab>", Special(KeyTab, ModShift)},
		{"<C-S-Up>", Special(KeyUp, ModCtrl|ModShift)},
		{"<Space>", Rune(' ')},
		{"<lt>", Rune('<')},
		{"<F5>", Special(KeyF5, ModNone)},
	}
	for _, tt := range tests {
		got, err := Parse(tt.spec)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.spec, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.spec, got, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		spec string
		want error
	}{
		{"", ErrEmptySpec},
		{"ab", ErrInvalidSpec},
		{"<C-nothing>", ErrInvalidSpec},
		{"<Q-a>", ErrInvalidSpec},
	}
	for _, tt := range tests {
		if _, err := Parse(tt.spec); !errors.Is(err, tt.want) {
			t.Errorf("Parse(%q) error = %v, want %v", tt.spec, err, tt.want)
		}
	}
}

func TestParseSequence(t *testing.T) {
	got, err := ParseSequence("d3w<Esc>i<lt>x>")
	if err != nil {
		t.Fatalf("ParseSequence error = %v", err)
	}
	want := []Event{Rune('d'), Rune('3'), Rune('w'), Escape, Rune('i'), Rune('<'), Rune('x'), Rune('>')}
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestParseSequenceLiteralAngle(t *testing.T) {
	got, err := ParseSequence("a<b c>")
	if err != nil {
		t.Fatalf("ParseSequence error = %v", err)
	}
	if Format(got) != "a<lt>b<Space>c>" {
		t.Errorf("Format = %q", Format(got))
	}
}

func TestFormatRoundTrip(t *testing.T) {
	seqs := []string{
		"dw",
		"qaxq3@a",
		"ihello<Space>world<Esc>",
		"<C-r><C-S-Up><S-Tab>",
		"<lt><gt>",
		"f<CR>",
	}
	for _, s := range seqs {
		events, err := ParseSequence(s)
		if err != nil {
			t.Fatalf("ParseSequence(%q) error = %v", s, err)
		}
		again, err := ParseSequence(Format(events))
		if err != nil {
			t.Fatalf("reparse of %q error = %v", Format(events), err)
		}
		if len(again) != len(events) {
			t.Fatalf("%q: round trip changed length %d -> %d", s, len(events), len(again))
		}
		for i := range events {
			if again[i] != events[i] {
				t.Errorf("%q: event %d = %+v, want %+v", s, i, again[i], events[i])
			}
		}
	}
}

func TestEventPredicates(t *testing.T) {
	if !Rune('7').IsDigit() || Ctrl('7').IsDigit() {
		t.Error("IsDigit should accept only unmodified digits")
	}
	if !Escape.IsEscape() || !Ctrl('[').IsEscape() || Rune('[').IsEscape() {
		t.Error("IsEscape mismatch")
	}
	tests := []struct {
		e    Event
		want string
	}{
		{Rune('x'), "x"},
		{Special(KeyEnter, ModNone), "\n"},
		{Special(KeyTab, ModNone), "\t"},
		{Ctrl('x'), ""},
		{Escape, ""},
	}
	for _, tt := range tests {
		if got := tt.e.Text(); got != tt.want {
			t.Errorf("%v.Text() = %q, want %q", tt.e, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	e := Event{Key: KeyRune, Rune: 'A', Modifiers: ModShift}
	if e.Normalize() != Rune('A') {
		t.Errorf("Normalize = %+v", e.Normalize())
	}
	c := Event{Key: KeyRune, Rune: 'R', Modifiers: ModCtrl | ModShift}
	if c.Normalize() != Ctrl('r') {
		t.Errorf("Normalize = %+v", c.Normalize())
	}
	if got := (ModCtrl | ModAlt).String(); got != "Ctrl+Alt" {
		t.Errorf("Modifier.String = %q", got)
	}
	if FromName("pgdn") != KeyPageDown || FromName("nope") != KeyNone {
		t.Error("FromName mismatch")
	}
}
