package editor

import (
	"fmt"
	"strings"

	"github.com/dshills/modalcore/internal/dispatcher/execctx"
	"github.com/dshills/modalcore/internal/dispatcher/handler"
	"github.com/dshills/modalcore/internal/engine/buffer"
	ops "github.com/dshills/modalcore/internal/engine/operator"
	"github.com/dshills/modalcore/internal/input"
	"github.com/dshills/modalcore/internal/input/vim"
)

// yankLine yanks count lines linewise (Y). The cursor does not move.
func (h *EditHandler) yankLine(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
	cur := ctx.Cursor()
	last := min(cur.Line+ctx.GetCount()-1, ctx.Buffer.LineCount()-1)
	lines := buffer.Lines(ctx.Buffer)[cur.Line : last+1]
	ctx.Registers.Yank(ctx.Register, strings.Join(lines, "\n"), true)
	return handler.Success().WithMessage(fmt.Sprintf("%d lines yanked", len(lines)))
}

// put inserts a register count times after the cursor (p), or before it
// (P). Linewise text goes on lines of its own.
func (h *EditHandler) put(before bool) func(input.Action, *execctx.ExecutionContext) handler.Result {
	return func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		reg := ctx.Register
		if reg == 0 {
			reg = vim.RegUnnamed
		}
		c, ok := ctx.Registers.Get(reg)
		if !ok || c.Text == "" {
			return handler.Error(fmt.Errorf("register %q: %w", reg, handler.ErrEmptyRegister))
		}

		tx := ctx.Begin(action.Name)
		p := ops.Put(tx, c.Text, c.Linewise, before, ctx.GetCount())
		return edited(ctx.Commit(tx, p), p)
	}
}
