// Package editor provides handlers for text editing operations.
package editor

import (
	"fmt"

	"github.com/dshills/modalcore/internal/dispatcher/execctx"
	"github.com/dshills/modalcore/internal/dispatcher/handler"
	"github.com/dshills/modalcore/internal/engine/buffer"
	ops "github.com/dshills/modalcore/internal/engine/operator"
	"github.com/dshills/modalcore/internal/input"
)

// Action names of the "edit" namespace.
const (
	ActionDeleteChar       = "edit.deleteChar"       // x
	ActionDeleteCharBefore = "edit.deleteCharBefore" // X
	ActionSubstitute       = "edit.substitute"       // s
	ActionSubstituteLine   = "edit.substituteLine"   // S
	ActionChangeToEnd      = "edit.changeToEnd"      // C
	ActionDeleteToEnd      = "edit.deleteToEnd"      // D
	ActionYankLine         = "edit.yankLine"         // Y
	ActionJoin             = "edit.join"             // J
	ActionReplaceChar      = "edit.replaceChar"      // r{c}
	ActionToggleCaseChar   = "edit.toggleCaseChar"   // ~
	ActionPutAfter         = "edit.putAfter"         // p
	ActionPutBefore        = "edit.putBefore"        // P
)

// EditHandler serves the "edit" namespace: the single-key normal mode
// edits that do not go through the operator composer.
type EditHandler struct {
	*handler.Table
}

// NewEditHandler creates the "edit" namespace handler.
func NewEditHandler() *EditHandler {
	h := &EditHandler{Table: handler.NewTable("edit")}
	h.On(ActionDeleteChar, h.deleteChar)
	h.On(ActionDeleteCharBefore, h.deleteCharBefore)
	h.On(ActionSubstitute, h.substitute)
	h.On(ActionSubstituteLine, h.substituteLine)
	h.On(ActionChangeToEnd, h.toLineEnd(true))
	h.On(ActionDeleteToEnd, h.toLineEnd(false))
	h.On(ActionYankLine, h.yankLine)
	h.On(ActionJoin, h.join)
	h.On(ActionReplaceChar, h.replaceChar)
	h.On(ActionToggleCaseChar, h.toggleCaseChar)
	h.On(ActionPutAfter, h.put(false))
	h.On(ActionPutBefore, h.put(true))
	return h
}

// HandleAction validates the context and runs the registered action.
func (h *EditHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}
	return h.Table.HandleAction(action, ctx)
}

func failed(what string) handler.Result {
	return handler.Error(fmt.Errorf("%s: %w", what, handler.ErrCommandFailed))
}

func edited(changed bool, cur buffer.Point) handler.Result {
	res := handler.Moved(cur)
	if changed {
		res = res.WithEdit()
	}
	return res
}

// deleteChar deletes count characters under and after the cursor (x).
// The deletion never crosses the end of the line.
func (h *EditHandler) deleteChar(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
	cur := ctx.Cursor()
	n := buffer.LineLen(ctx.Buffer, cur.Line)
	if n == 0 {
		return handler.NoOp()
	}
	end := buffer.Point{Line: cur.Line, Column: min(cur.Column+ctx.GetCount(), n)}

	tx := ctx.Begin(ActionDeleteChar)
	text := tx.Delete(buffer.Span{Start: cur, End: end})
	ctx.Registers.Delete(ctx.Register, text, false)
	return edited(ctx.Commit(tx, cur), cur)
}

// deleteCharBefore deletes count characters before the cursor (X).
func (h *EditHandler) deleteCharBefore(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
	cur := ctx.Cursor()
	if cur.Column == 0 {
		return failed("delete before cursor")
	}
	start := buffer.Point{Line: cur.Line, Column: max(cur.Column-ctx.GetCount(), 0)}

	tx := ctx.Begin(ActionDeleteCharBefore)
	text := tx.Delete(buffer.Span{Start: start, End: cur})
	ctx.Registers.Delete(ctx.Register, text, false)
	return edited(ctx.Commit(tx, start), start)
}

// substitute deletes count characters and starts inserting (s).
func (h *EditHandler) substitute(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
	cur := ctx.Cursor()
	end := buffer.Point{Line: cur.Line, Column: min(cur.Column+ctx.GetCount(), buffer.LineLen(ctx.Buffer, cur.Line))}

	tx := ctx.Begin(ActionSubstitute)
	if text := tx.Delete(buffer.Span{Start: cur, End: end}); text != "" {
		ctx.Registers.Delete(ctx.Register, text, false)
	}
	tx.SetCursor(cur)
	ctx.StartInsert(tx, 1, false)
	return handler.Moved(cur).WithEdit()
}

// substituteLine empties count lines, keeping the indent of the first,
// and starts inserting (S).
func (h *EditHandler) substituteLine(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
	cur := ctx.Cursor()
	last := min(cur.Line+ctx.GetCount()-1, ctx.Buffer.LineCount()-1)

	tx := ctx.Begin(ActionSubstituteLine)
	res := ops.Apply(tx, ctx.Registers, ops.Request{
		Kind:     ops.Change,
		Span:     buffer.Span{Start: buffer.Point{Line: cur.Line}, End: buffer.Point{Line: last}},
		Linewise: true,
		Register: ctx.Register,
	}, ctx.Settings)
	tx.SetCursor(res.Cursor)
	ctx.StartInsert(tx, 1, false)
	return handler.Moved(res.Cursor).WithEdit()
}

// toLineEnd deletes from the cursor to the end of the line, and with a
// count to the end of count-1 lines below (D). With change set it then
// starts inserting (C).
func (h *EditHandler) toLineEnd(change bool) func(input.Action, *execctx.ExecutionContext) handler.Result {
	return func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		cur := ctx.Cursor()
		last := min(cur.Line+ctx.GetCount()-1, ctx.Buffer.LineCount()-1)
		end := buffer.Point{Line: last, Column: buffer.LineLen(ctx.Buffer, last)}

		tx := ctx.Begin(action.Name)
		text := tx.Delete(buffer.Span{Start: cur, End: end})
		ctx.Registers.Delete(ctx.Register, text, false)
		if change {
			tx.SetCursor(cur)
			ctx.StartInsert(tx, 1, false)
			return handler.Moved(cur).WithEdit()
		}
		return edited(ctx.Commit(tx, cur), cur)
	}
}

// join joins count lines, at least two (J).
func (h *EditHandler) join(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
	cur := ctx.Cursor()
	tx := ctx.Begin(ActionJoin)
	p, ok := ops.Join(tx, cur.Line, ctx.GetCount())
	if !ok {
		return failed("join")
	}
	return edited(ctx.Commit(tx, p), p)
}

// replaceChar overwrites count characters with the argument (r{c}).
func (h *EditHandler) replaceChar(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
	tx := ctx.Begin(ActionReplaceChar)
	p, ok := ops.ReplaceChars(tx, ctx.Arg, ctx.GetCount())
	if !ok {
		return failed("replace")
	}
	return edited(ctx.Commit(tx, p), p)
}

// toggleCaseChar swaps the case of count characters and moves past them (~).
func (h *EditHandler) toggleCaseChar(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if buffer.LineLen(ctx.Buffer, ctx.Cursor().Line) == 0 {
		return handler.NoOp()
	}
	tx := ctx.Begin(ActionToggleCaseChar)
	p := ops.ToggleChars(tx, ctx.GetCount())
	return edited(ctx.Commit(tx, p), p)
}
