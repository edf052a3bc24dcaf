package keymap

import (
	"errors"
	"testing"

	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/input/mode"
)

func seq(t *testing.T, s string) []key.Event {
	t.Helper()
	events, err := key.ParseSequence(s)
	if err != nil {
		t.Fatalf("ParseSequence(%q): %v", s, err)
	}
	return events
}

func TestLookup(t *testing.T) {
	tbl := Default()
	tests := []struct {
		keys       string
		mode       mode.Mode
		wantAction string
		wantLonger bool
		wantNone   bool
	}{
		{"x", mode.Normal, "edit.deleteChar", false, false},
		{"g", mode.Normal, "", true, false},
		{"gg", mode.Normal, "cursor.documentStart", false, false},
		{"gu", mode.Normal, "operator.lowercase", false, false},
		{"]", mode.Normal, "", true, false},
		{"]]", mode.Normal, "cursor.sectionForward", false, false},
		{"<C-r>", mode.Normal, "history.redo", false, false},
		{"Z", mode.Normal, "", false, true},
		{"w", mode.OperatorPending, "cursor.wordForward", false, false},
		{"d", mode.OperatorPending, "", false, true},
		{"<Esc>", mode.Insert, "insert.escape", false, false},
		{"x", mode.Insert, "", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String()+"/"+tt.keys, func(t *testing.T) {
			m := tbl.Lookup(tt.mode, seq(t, tt.keys))
			if m.None() != tt.wantNone {
				t.Fatalf("None() = %v, want %v", m.None(), tt.wantNone)
			}
			if m.Longer != tt.wantLonger {
				t.Errorf("Longer = %v, want %v", m.Longer, tt.wantLonger)
			}
			got := ""
			if m.Binding != nil {
				got = m.Binding.Action
			}
			if got != tt.wantAction {
				t.Errorf("action = %q, want %q", got, tt.wantAction)
			}
		})
	}
}

func TestBindingFlags(t *testing.T) {
	tbl := Default()
	d := tbl.Lookup(mode.Normal, seq(t, "d")).Binding
	if d == nil || !d.IsOperator() || d.Operator != "delete" {
		t.Fatalf("d binding = %+v", d)
	}
	f := tbl.Lookup(mode.Normal, seq(t, "f")).Binding
	if f == nil || !f.Char {
		t.Fatalf("f binding = %+v", f)
	}
	lt := tbl.Lookup(mode.Normal, []key.Event{key.Rune('<')}).Binding
	if lt == nil || lt.Operator != "unindent" {
		t.Fatalf("< binding = %+v", lt)
	}
}

func TestRegisterOverrides(t *testing.T) {
	tbl := Default()
	err := tbl.Register(&Keymap{
		Name: "user",
		Mode: "normal",
		Bindings: []Binding{
			{Keys: "x", Action: "edit.deleteCharBefore"},
			{Keys: "gx", Action: "custom.thing"},
		},
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if got := tbl.Lookup(mode.Normal, seq(t, "x")).Binding.Action; got != "edit.deleteCharBefore" {
		t.Errorf("x = %q, want override", got)
	}
	if got := tbl.Lookup(mode.Normal, seq(t, "gx")).Binding.Action; got != "custom.thing" {
		t.Errorf("gx = %q", got)
	}
}

func TestUnbindKeepsLongerBindings(t *testing.T) {
	tbl := NewTable()
	if err := tbl.Bind(mode.Normal, Binding{Keys: "ab", Action: "x.ab"}); err != nil {
		t.Fatal(err)
	}
	if err := tbl.Bind(mode.Normal, Binding{Keys: "abc", Action: "x.abc"}); err != nil {
		t.Fatal(err)
	}
	tbl.Unbind(mode.Normal, "abc")

	m := tbl.Lookup(mode.Normal, seq(t, "ab"))
	if m.Binding == nil || m.Longer {
		t.Errorf("after unbind: %+v", m)
	}
	if m := tbl.Lookup(mode.Normal, seq(t, "a")); !m.Longer || m.Binding != nil {
		t.Errorf("prefix a: %+v", m)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		km   Keymap
		want error
	}{
		{"bad mode", Keymap{Name: "k", Mode: "select"}, ErrUnknownMode},
		{"empty keys", Keymap{Name: "k", Mode: "normal", Bindings: []Binding{{Action: "a"}}}, ErrEmptyKeys},
		{"empty action", Keymap{Name: "k", Mode: "normal", Bindings: []Binding{{Keys: "a"}}}, ErrEmptyAction},
		{"bad keys", Keymap{Name: "k", Mode: "normal", Bindings: []Binding{{Keys: "<C-bogus>", Action: "a"}}}, key.ErrInvalidSpec},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.km.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestBindingsAndClone(t *testing.T) {
	tbl := Default()
	list := tbl.Bindings(mode.Insert)
	if len(list) != len(DefaultInsertKeymap().Bindings) {
		t.Fatalf("insert bindings = %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].Keys > list[i].Keys {
			t.Fatalf("bindings not sorted: %q > %q", list[i-1].Keys, list[i].Keys)
		}
	}

	c := tbl.Clone()
	c.Unbind(mode.Normal, "x")
	if tbl.Lookup(mode.Normal, seq(t, "x")).Binding == nil {
		t.Error("unbinding in a clone changed the original")
	}
}
