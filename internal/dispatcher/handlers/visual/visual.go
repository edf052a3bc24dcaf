package visual

import (
	"fmt"
	"unicode/utf8"

	"github.com/dshills/modalcore/internal/dispatcher/execctx"
	"github.com/dshills/modalcore/internal/dispatcher/handler"
	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/textobj"
	"github.com/dshills/modalcore/internal/input"
	"github.com/dshills/modalcore/internal/input/mode"
	"github.com/dshills/modalcore/internal/logging"
)

// Namespace is the action prefix served by this package.
const Namespace = "visual"

// Visual action names.
const (
	ActionChar   = "visual.char"   // v
	ActionLine   = "visual.line"   // V
	ActionExit   = "visual.exit"   // <Esc>
	ActionSwap   = "visual.swap"   // o
	ActionInner  = "visual.inner"  // i{object}
	ActionAround = "visual.around" // a{object}
)

// Handler manages the visual selection.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Namespace() string {
	return Namespace
}

func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionChar, ActionLine, ActionExit, ActionSwap, ActionInner, ActionAround:
		return true
	}
	return false
}

// HandleAction processes a visual action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}

	switch action.Name {
	case ActionChar:
		return toggle(ctx, mode.Visual)
	case ActionLine:
		return toggle(ctx, mode.VisualLine)
	case ActionExit:
		if !ctx.Mode().IsVisual() {
			return handler.NoOp()
		}
		ctx.Modes.Switch(mode.Normal)
		return handler.Moved(ctx.Cursor())
	case ActionSwap:
		if !ctx.Mode().IsVisual() {
			return handler.NoOp()
		}
		anchor := ctx.Anchor()
		ctx.SetAnchor(ctx.Cursor())
		ctx.Buffer.SetCursor(anchor)
		return handler.Moved(anchor)
	case ActionInner:
		return selectObject(ctx, textobj.Inner)
	case ActionAround:
		return selectObject(ctx, textobj.Around)
	default:
		return handler.Errorf("unknown visual action: %s", action.Name)
	}
}

// toggle enters m, switches to it from the other visual mode, or leaves
// visual mode when m is already current.
func toggle(ctx *execctx.ExecutionContext, m mode.Mode) handler.Result {
	cur := ctx.Mode()
	switch {
	case cur == m:
		ctx.Modes.Switch(mode.Normal)
	case cur.IsVisual():
		ctx.Modes.Switch(m)
	default:
		ctx.SetAnchor(ctx.Cursor())
		ctx.Modes.Switch(m)
	}
	return handler.Moved(ctx.Cursor())
}

// selectObject replaces the selection with the text object named by the
// action's argument. A linewise object turns a characterwise selection
// linewise.
func selectObject(ctx *execctx.ExecutionContext, scope textobj.Scope) handler.Result {
	if !ctx.Mode().IsVisual() {
		return handler.NoOp()
	}
	letter, _ := utf8.DecodeRuneInString(ctx.Arg)
	obj, ok := textobj.Lookup(letter)
	if !ok {
		return handler.Error(fmt.Errorf("unknown text object %q: %w", ctx.Arg, handler.ErrCommandFailed))
	}
	span, ok := ctx.ResolveObject(obj, scope, ctx.GetCount())
	if !ok || (span.IsEmpty() && !obj.Linewise()) {
		logging.Debug("text object not found", "object", obj.String(), "cursor", ctx.Cursor().String())
		return handler.Error(fmt.Errorf("%s: %w", obj.String(), handler.ErrCommandFailed))
	}

	last := lastPoint(ctx.Buffer, span)
	if obj.Linewise() {
		last = buffer.Point{Line: span.End.Line}
		if ctx.Mode() == mode.Visual {
			ctx.Modes.Switch(mode.VisualLine)
		}
	}
	ctx.SetAnchor(span.Start)
	ctx.Buffer.SetCursor(last)
	return handler.Moved(last)
}

// lastPoint returns the last character inside the non-empty span s.
func lastPoint(r buffer.Reader, s buffer.Span) buffer.Point {
	if s.End.Column > 0 {
		return buffer.Point{Line: s.End.Line, Column: s.End.Column - 1}
	}
	line := s.End.Line - 1
	return buffer.Point{Line: line, Column: max(buffer.LineLen(r, line)-1, 0)}
}
