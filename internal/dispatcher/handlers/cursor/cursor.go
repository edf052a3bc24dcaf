// Package cursor provides handlers for cursor movement operations.
package cursor

import (
	"fmt"

	"github.com/dshills/modalcore/internal/dispatcher/execctx"
	"github.com/dshills/modalcore/internal/dispatcher/handler"
	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/motion"
	"github.com/dshills/modalcore/internal/input"
	"github.com/dshills/modalcore/internal/input/mode"
)

// Namespace is the action prefix served by this package.
const Namespace = "cursor"

// Handler moves the cursor with the motions of the motion package. Every
// motion that motion.Lookup knows is an action of this handler.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Namespace() string {
	return Namespace
}

// CanHandle accepts every motion motion.Lookup knows.
func (h *Handler) CanHandle(actionName string) bool {
	_, ok := motion.Lookup(actionName)
	return ok
}

// HandleAction moves the cursor. A motion that cannot move, such as h in
// column 0, fails with handler.ErrCommandFailed so a running macro stops.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	m, ok := motion.Lookup(action.Name)
	if !ok {
		return handler.Errorf("unknown cursor action: %s", action.Name)
	}
	if m.NeedsChar && ctx.Arg == "" {
		return handler.Errorf("%s: missing character", m.Name)
	}

	from := ctx.Cursor()
	p, ok := m.Apply(ctx.Buffer, ctx.Motions, from, ctx.Count, ctx.Arg)
	if ok && ctx.Mode() != mode.Insert {
		// Motions may target the position past the line for operators;
		// the cursor itself stays on a character.
		moved := p != from
		if n := buffer.LineLen(ctx.Buffer, p.Line); p.Column >= n {
			p.Column = max(n-1, 0)
		}
		ok = !moved || p != from
	}
	if !ok {
		return handler.Error(fmt.Errorf("%s: %w", m.Name, handler.ErrCommandFailed))
	}
	ctx.Buffer.SetCursor(p)
	return handler.Moved(p)
}
