package editor

import (
	"errors"
	"fmt"

	"github.com/dshills/modalcore/internal/dispatcher/execctx"
	"github.com/dshills/modalcore/internal/dispatcher/handler"
	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/history"
	"github.com/dshills/modalcore/internal/input"
)

// Action names of the "history" namespace.
const (
	ActionUndo = "history.undo"
	ActionRedo = "history.redo"
)

// HistoryHandler undoes and redoes whole frames, count times.
type HistoryHandler struct{}

func NewHistoryHandler() *HistoryHandler {
	return &HistoryHandler{}
}

func (h *HistoryHandler) Namespace() string {
	return "history"
}

func (h *HistoryHandler) CanHandle(actionName string) bool {
	return actionName == ActionUndo || actionName == ActionRedo
}

// HandleAction steps through the history. Running out of frames part way
// keeps the steps already taken; running out at once is a no-op.
func (h *HistoryHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}
	// An open insert session is its own frame and goes first.
	ctx.EndInsert()

	step, empty, msg := ctx.History.Undo, history.ErrNothingToUndo, "Already at oldest change"
	if action.Name == ActionRedo {
		step, empty, msg = ctx.History.Redo, history.ErrNothingToRedo, "Already at newest change"
	}

	var (
		cur   buffer.Point
		steps int
	)
	for range ctx.GetCount() {
		p, err := step(ctx.Buffer)
		if errors.Is(err, empty) {
			break
		}
		if err != nil {
			return handler.Error(fmt.Errorf("%s: %w", action.Name, err))
		}
		cur = p
		steps++
	}
	if steps == 0 {
		return handler.NoOp().WithMessage(msg)
	}
	ctx.Buffer.SetCursor(cur)
	return handler.Moved(cur).WithEdit().
		WithMessage(fmt.Sprintf("%d changes", steps))
}
