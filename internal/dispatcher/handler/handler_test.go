package handler_test

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/dshills/modalcore/internal/dispatcher/execctx"
	"github.com/dshills/modalcore/internal/dispatcher/handler"
	"github.com/dshills/modalcore/internal/input"
)

func TestFunc(t *testing.T) {
	var got input.Action
	h := handler.Func(func(action input.Action, _ *execctx.ExecutionContext) handler.Result {
		got = action
		return handler.Success()
	})

	res := h.Handle(input.Action{Name: "edit.join", Count: 3}, execctx.New())
	if !res.IsOK() {
		t.Fatalf("status = %v", res.Status)
	}
	if got.Name != "edit.join" || got.Count != 3 {
		t.Errorf("function saw %+v", got)
	}
	if !h.CanHandle("anything.at.all") {
		t.Error("Func should accept every name")
	}
	if h.Priority() != 0 {
		t.Errorf("priority = %d, want 0", h.Priority())
	}
	if p := handler.FuncWithPriority(nil, 7).Priority(); p != 7 {
		t.Errorf("priority = %d, want 7", p)
	}
}

func TestFuncNil(t *testing.T) {
	res := handler.Func(nil).Handle(input.Action{Name: "edit.join"}, execctx.New())
	if !errors.Is(res.Error, handler.ErrUnhandled) {
		t.Errorf("error = %v, want ErrUnhandled", res.Error)
	}
}

func TestTable(t *testing.T) {
	tbl := handler.NewTable("edit")
	tbl.On("edit.join", func(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
		return handler.Success().WithMessage("joined " + ctx.Arg)
	})
	tbl.On("edit.deleteChar", func(input.Action, *execctx.ExecutionContext) handler.Result {
		return handler.NoOp()
	})

	if tbl.Namespace() != "edit" {
		t.Errorf("namespace = %q", tbl.Namespace())
	}
	if !tbl.CanHandle("edit.join") || tbl.CanHandle("edit.split") {
		t.Error("CanHandle disagrees with bindings")
	}
	if want := []string{"edit.deleteChar", "edit.join"}; !slices.Equal(tbl.Actions(), want) {
		t.Errorf("Actions() = %v, want %v", tbl.Actions(), want)
	}

	ctx := execctx.New()
	ctx.Arg = "x"
	if res := tbl.HandleAction(input.Action{Name: "edit.join"}, ctx); res.Message != "joined x" {
		t.Errorf("message = %q", res.Message)
	}

	res := tbl.HandleAction(input.Action{Name: "edit.split"}, ctx)
	if !errors.Is(res.Error, handler.ErrUnhandled) || !strings.Contains(res.Error.Error(), "edit.split") {
		t.Errorf("error = %v, want ErrUnhandled naming the action", res.Error)
	}
}

func TestForNamespace(t *testing.T) {
	tbl := handler.NewTable("history")
	tbl.On("history.undo", func(input.Action, *execctx.ExecutionContext) handler.Result {
		return handler.NoOp().WithMessage("Already at oldest change")
	})

	h := handler.ForNamespace(tbl)
	if !h.CanHandle("history.undo") || h.CanHandle("history.redo") {
		t.Error("CanHandle should delegate to the table")
	}
	if h.Priority() != 0 {
		t.Errorf("priority = %d, want 0", h.Priority())
	}
	if res := h.Handle(input.Action{Name: "history.undo"}, execctx.New()); res.Status != handler.StatusNoOp {
		t.Errorf("status = %v, want no-op", res.Status)
	}
}
