package dispatcher_test

import (
	"slices"
	"testing"

	"github.com/dshills/modalcore/internal/dispatcher"
	"github.com/dshills/modalcore/internal/dispatcher/execctx"
	"github.com/dshills/modalcore/internal/dispatcher/handler"
	"github.com/dshills/modalcore/internal/input"
)

func says(msg string, priority int) handler.Handler {
	return handler.FuncWithPriority(func(input.Action, *execctx.ExecutionContext) handler.Result {
		return handler.Success().WithMessage(msg)
	}, priority)
}

func table(ns, msg string, actions ...string) *handler.Table {
	t := handler.NewTable(ns)
	for _, a := range actions {
		t.On(a, func(input.Action, *execctx.ExecutionContext) handler.Result {
			return handler.Success().WithMessage(msg)
		})
	}
	return t
}

// message runs whatever Lookup finds, or returns "" when nothing does.
func message(r *dispatcher.Routes, name string) string {
	h := r.Lookup(name)
	if h == nil {
		return ""
	}
	return h.Handle(input.Action{Name: name}, execctx.New()).Message
}

func TestRoutesLookup(t *testing.T) {
	r := dispatcher.NewRoutes()
	r.AddNamespace(table("cursor", "down", "cursor.down"))
	r.AddNamespace(table("insert", "entry", "insert.before", "insert.escape"))
	r.AddNamespace(table("insert", "typing", "insert.char", "insert.escape"))

	tests := []struct {
		action string
		want   string
	}{
		{"cursor.down", "down"},
		{"cursor.up", ""},
		{"window.split", ""},
		{"plain", ""},
		{"insert.before", "entry"},
		{"insert.char", "typing"},
		// first registered wins
		{"insert.escape", "entry"},
	}
	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			if got := message(r, tt.action); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if r.Has(tt.action) != (tt.want != "") {
				t.Errorf("Has(%q) disagrees with Lookup", tt.action)
			}
		})
	}
}

func TestRoutesOverride(t *testing.T) {
	r := dispatcher.NewRoutes()
	r.AddNamespace(table("edit", "builtin", "edit.join"))

	low := says("low", 1)
	r.Override("edit.join", low)
	r.Override("edit.join", says("high", 10))
	r.Override("edit.join", says("low-later", 1))

	if got := message(r, "edit.join"); got != "high" {
		t.Errorf("got %q, want the highest priority override", got)
	}
	if got := r.Overridden(); !slices.Equal(got, []string{"edit.join"}) {
		t.Errorf("Overridden() = %v", got)
	}

	r.RemoveOverride("edit.join", low)
	r.RemoveOverride("edit.join", nil)
	if got := message(r, "edit.join"); got != "builtin" {
		t.Errorf("got %q, want the namespace handler back", got)
	}
	if len(r.Overridden()) != 0 {
		t.Errorf("Overridden() = %v, want none", r.Overridden())
	}
}

func TestRoutesRemoveOverrideKeepsOthers(t *testing.T) {
	r := dispatcher.NewRoutes()
	a, b := says("a", 5), says("b", 0)
	r.Override("x.y", a)
	r.Override("x.y", b)

	r.RemoveOverride("x.y", a)
	if got := message(r, "x.y"); got != "b" {
		t.Errorf("got %q, want b", got)
	}
	r.RemoveOverride("x.y", b)
	if r.Has("x.y") {
		t.Error("x.y should be gone")
	}
}

func TestRoutesNamespaces(t *testing.T) {
	r := dispatcher.NewRoutes()
	r.AddNamespace(handler.NewTable("history"))
	r.AddNamespace(handler.NewTable("cursor"))
	r.AddNamespace(handler.NewTable("edit"))

	if got, want := r.Namespaces(), []string{"cursor", "edit", "history"}; !slices.Equal(got, want) {
		t.Errorf("Namespaces() = %v, want %v", got, want)
	}
	r.RemoveNamespace("edit")
	if got, want := r.Namespaces(), []string{"cursor", "history"}; !slices.Equal(got, want) {
		t.Errorf("Namespaces() = %v, want %v", got, want)
	}
}
