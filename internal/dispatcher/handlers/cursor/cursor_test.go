package cursor_test

import (
	"errors"
	"testing"

	"github.com/dshills/modalcore/internal/dispatcher/execctx"
	"github.com/dshills/modalcore/internal/dispatcher/handler"
	cursorhandler "github.com/dshills/modalcore/internal/dispatcher/handlers/cursor"
	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/input"
)

func run(t *testing.T, text string, at buffer.Point, a input.Action) (handler.Result, *execctx.State) {
	t.Helper()
	buf := buffer.NewBufferFromString(text)
	buf.SetCursor(at)
	state := execctx.NewState(buf)
	h := cursorhandler.NewHandler()
	if !h.CanHandle(a.Name) {
		t.Fatalf("expected handler to accept %s", a.Name)
	}
	return h.HandleAction(a, execctx.NewForAction(state, a)), state
}

func TestCanHandle(t *testing.T) {
	h := cursorhandler.NewHandler()
	if h.Namespace() != "cursor" {
		t.Errorf("expected cursor namespace, got %s", h.Namespace())
	}
	for _, name := range []string{"cursor.left", "cursor.wordForward", "cursor.findChar", "cursor.sectionForward"} {
		if !h.CanHandle(name) {
			t.Errorf("expected %s to be handled", name)
		}
	}
	if h.CanHandle("cursor.nowhere") {
		t.Error("expected unknown motion to be rejected")
	}
}

func TestMotions(t *testing.T) {
	const text = "one two three\nfour five\n\nsix"

	tests := []struct {
		name   string
		at     buffer.Point
		action input.Action
		want   buffer.Point
	}{
		{"right", buffer.Point{}, input.Action{Name: "cursor.right"}, buffer.Point{Column: 1}},
		{"right count", buffer.Point{}, input.Action{Name: "cursor.right", Count: 3}, buffer.Point{Column: 3}},
		{"down", buffer.Point{Column: 2}, input.Action{Name: "cursor.down"}, buffer.Point{Line: 1, Column: 2}},
		{"word forward", buffer.Point{}, input.Action{Name: "cursor.wordForward", Count: 2}, buffer.Point{Column: 8}},
		{"line end", buffer.Point{}, input.Action{Name: "cursor.lineEnd"}, buffer.Point{Column: 12}},
		{"document end", buffer.Point{}, input.Action{Name: "cursor.documentEnd"}, buffer.Point{Line: 3}},
		{"goto line", buffer.Point{}, input.Action{Name: "cursor.documentEnd", Count: 2}, buffer.Point{Line: 1}},
		{"find char", buffer.Point{}, input.Action{Name: "cursor.findChar", Arg: "t"}, buffer.Point{Column: 4}},
		{"paragraph", buffer.Point{}, input.Action{Name: "cursor.paragraphForward"}, buffer.Point{Line: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, state := run(t, text, tt.at, tt.action)
			if !res.IsOK() {
				t.Fatalf("expected success, got %v", res.Error)
			}
			if got := state.Buffer.Cursor(); got != tt.want {
				t.Errorf("expected cursor %v, got %v", tt.want, got)
			}
			if res.Cursor == nil || *res.Cursor != tt.want {
				t.Errorf("expected result cursor %v, got %v", tt.want, res.Cursor)
			}
		})
	}
}

func TestMotionFailure(t *testing.T) {
	res, state := run(t, "abc", buffer.Point{}, input.Action{Name: "cursor.left"})
	if !res.IsError() {
		t.Fatal("expected an error at column 0")
	}
	if !errors.Is(res.Error, handler.ErrCommandFailed) {
		t.Errorf("expected ErrCommandFailed, got %v", res.Error)
	}
	if state.Buffer.Cursor() != (buffer.Point{}) {
		t.Errorf("expected cursor unchanged, got %v", state.Buffer.Cursor())
	}
}

func TestMissingChar(t *testing.T) {
	res, _ := run(t, "abc", buffer.Point{}, input.Action{Name: "cursor.findChar"})
	if !res.IsError() {
		t.Error("expected an error without a character")
	}
}

func TestRepeatFindUsesSharedContext(t *testing.T) {
	buf := buffer.NewBufferFromString("a.b.c.d")
	state := execctx.NewState(buf)
	h := cursorhandler.NewHandler()

	find := input.Action{Name: "cursor.findChar", Arg: "."}
	h.HandleAction(find, execctx.NewForAction(state, find))
	again := input.Action{Name: "cursor.repeatFind"}
	res := h.HandleAction(again, execctx.NewForAction(state, again))
	if !res.IsOK() {
		t.Fatalf("expected success, got %v", res.Error)
	}
	if buf.Cursor() != (buffer.Point{Column: 3}) {
		t.Errorf("expected column 3, got %v", buf.Cursor())
	}
}

func TestValidate(t *testing.T) {
	h := cursorhandler.NewHandler()
	res := h.HandleAction(input.Action{Name: "cursor.left"}, execctx.New())
	if !errors.Is(res.Error, execctx.ErrMissingBuffer) {
		t.Errorf("expected ErrMissingBuffer, got %v", res.Error)
	}
}

func TestRightStopsOnLastChar(t *testing.T) {
	res, state := run(t, "abc", buffer.Point{Column: 2}, input.Action{Name: "cursor.right"})
	if !errors.Is(res.Error, handler.ErrCommandFailed) {
		t.Errorf("expected ErrCommandFailed, got %v", res.Error)
	}
	if state.Buffer.Cursor() != (buffer.Point{Column: 2}) {
		t.Errorf("expected cursor unchanged, got %v", state.Buffer.Cursor())
	}

	res, state = run(t, "abc", buffer.Point{Column: 1}, input.Action{Name: "cursor.right", Count: 5})
	if !res.IsOK() || state.Buffer.Cursor() != (buffer.Point{Column: 2}) {
		t.Errorf("expected column 2, got %v (%v)", state.Buffer.Cursor(), res.Error)
	}
}
