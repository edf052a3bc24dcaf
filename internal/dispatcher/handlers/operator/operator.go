// Package operator provides the handler for composed operator commands.
package operator

import (
	"strings"

	"github.com/dshills/modalcore/internal/dispatcher/execctx"
	"github.com/dshills/modalcore/internal/dispatcher/handler"
	ops "github.com/dshills/modalcore/internal/engine/operator"
	"github.com/dshills/modalcore/internal/input"
	inputmode "github.com/dshills/modalcore/internal/input/mode"
	"github.com/dshills/modalcore/internal/logging"
)

// Namespace is the action prefix served by this package.
const Namespace = "operator"

// Operator action names.
const (
	ActionDelete     = "operator.delete"
	ActionChange     = "operator.change"
	ActionYank       = "operator.yank"
	ActionIndent     = "operator.indent"
	ActionUnindent   = "operator.unindent"
	ActionToggleCase = "operator.toggleCase"
	ActionLowercase  = "operator.lowercase"
	ActionUppercase  = "operator.uppercase"
)

// OperatorHandler applies a composed command: d{motion}, ci(, >ap and the
// rest. The region has already been resolved by the composer. An action
// without a command, typed in a visual mode, applies to the selection.
type OperatorHandler struct{}

func NewOperatorHandler() *OperatorHandler {
	return &OperatorHandler{}
}

func (h *OperatorHandler) Namespace() string {
	return Namespace
}

// CanHandle accepts the operator actions with a registered operator.
func (h *OperatorHandler) CanHandle(actionName string) bool {
	_, ok := kindOf(actionName)
	return ok
}

func kindOf(actionName string) (ops.Kind, bool) {
	name, ok := strings.CutPrefix(actionName, Namespace+".")
	if !ok {
		return 0, false
	}
	return ops.Lookup(name)
}

// HandleAction runs the operator inside one transaction. A change leaves
// the transaction open as the insert session, so c{motion} and the text
// typed after it undo together.
func (h *OperatorHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}
	kind, ok := kindOf(action.Name)
	if !ok {
		return handler.Errorf("unknown operator action: %s", action.Name)
	}
	var req ops.Request
	switch cmd := action.Command; {
	case cmd != nil:
		if cmd.Operator != kind {
			return handler.Errorf("operator mismatch: %s carries %s", action.Name, cmd.Operator)
		}
		req = cmd.Request()
	default:
		// Typed in a visual mode: the selection is the target.
		sel, ok := ctx.Selection()
		if !ok {
			return handler.Error(execctx.ErrMissingCommand)
		}
		req = ops.Request{Kind: kind, Span: sel.Span, Linewise: sel.Linewise, Register: ctx.Register}
		ctx.Modes.Switch(inputmode.Normal)
	}

	tx := ctx.Begin(action.Name)
	res := ops.Apply(tx, ctx.Registers, req, ctx.Settings)
	logging.Debug("operator applied",
		"operator", kind.String(),
		"span", req.Span.String(),
		"linewise", req.Linewise,
	)

	if res.Insert {
		tx.SetCursor(res.Cursor)
		ctx.StartInsert(tx, 1, false)
		return handler.Moved(res.Cursor).WithEdit()
	}

	result := handler.Moved(res.Cursor)
	if ctx.Commit(tx, res.Cursor) {
		result = result.WithEdit()
	}
	return result
}
