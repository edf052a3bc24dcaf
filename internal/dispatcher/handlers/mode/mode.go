// Package mode provides handlers for mode switching operations.
package mode

import (
	"unicode/utf8"

	"github.com/dshills/modalcore/internal/dispatcher/execctx"
	"github.com/dshills/modalcore/internal/dispatcher/handler"
	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/input"
	inputmode "github.com/dshills/modalcore/internal/input/mode"
)

// Action names for the insert entry points and <Esc>.
const (
	ActionInsert          = "insert.before"    // i - insert before cursor
	ActionAppend          = "insert.after"     // a - append after cursor
	ActionInsertLineStart = "insert.lineStart" // I - insert at first non-blank
	ActionAppendLineEnd   = "insert.lineEnd"   // A - append at end of line
	ActionOpenBelow       = "insert.lineBelow" // o - open line below
	ActionOpenAbove       = "insert.lineAbove" // O - open line above
	ActionEscape          = "insert.escape"    // <Esc> - back to normal mode
)

// ModeHandler enters and leaves insert mode. Entering opens the insert
// session that collects everything typed until <Esc>.
type ModeHandler struct{}

func NewModeHandler() *ModeHandler {
	return &ModeHandler{}
}

func (h *ModeHandler) Namespace() string {
	return "insert"
}

func (h *ModeHandler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionInsert, ActionAppend, ActionInsertLineStart, ActionAppendLineEnd,
		ActionOpenBelow, ActionOpenAbove, ActionEscape:
		return true
	}
	return false
}

// HandleAction processes a mode action.
func (h *ModeHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}

	switch action.Name {
	case ActionEscape:
		return h.escape(ctx)
	case ActionInsert:
		return h.enter(ctx, action.Name, ctx.Cursor())
	case ActionAppend:
		cur := ctx.Cursor()
		if n := buffer.LineLen(ctx.Buffer, cur.Line); n > 0 {
			cur.Column = min(cur.Column+1, n)
		}
		return h.enter(ctx, action.Name, cur)
	case ActionInsertLineStart:
		line := ctx.Cursor().Line
		return h.enter(ctx, action.Name, buffer.Point{Line: line, Column: firstNonBlank(ctx.Buffer.Line(line))})
	case ActionAppendLineEnd:
		line := ctx.Cursor().Line
		return h.enter(ctx, action.Name, buffer.Point{Line: line, Column: buffer.LineLen(ctx.Buffer, line)})
	case ActionOpenBelow:
		return h.open(ctx, action.Name, false)
	case ActionOpenAbove:
		return h.open(ctx, action.Name, true)
	default:
		return handler.Errorf("unknown mode action: %s", action.Name)
	}
}

// enter starts inserting at p.
func (h *ModeHandler) enter(ctx *execctx.ExecutionContext, label string, p buffer.Point) handler.Result {
	tx := ctx.Begin(label)
	tx.SetCursor(p)
	ctx.StartInsert(tx, ctx.GetCount(), false)
	return handler.Moved(p)
}

// open inserts an empty line below the cursor line, or above it, and
// starts inserting there.
func (h *ModeHandler) open(ctx *execctx.ExecutionContext, label string, above bool) handler.Result {
	line := ctx.Cursor().Line
	tx := ctx.Begin(label)
	var p buffer.Point
	if above {
		tx.Insert(buffer.Point{Line: line}, "\n")
		p = buffer.Point{Line: line}
	} else {
		p = tx.Insert(buffer.Point{Line: line, Column: buffer.LineLen(tx, line)}, "\n")
	}
	tx.SetCursor(p)
	ctx.StartInsert(tx, ctx.GetCount(), true)
	return handler.Moved(p).WithEdit()
}

// escape closes the insert session and returns to normal mode. The
// session becomes one undo frame.
func (h *ModeHandler) escape(ctx *execctx.ExecutionContext) handler.Result {
	if !ctx.InsertActive() && ctx.Modes.Is(inputmode.Normal) {
		return handler.NoOp()
	}
	ctx.EndInsert()
	ctx.Modes.Switch(inputmode.Normal)
	return handler.Moved(ctx.Cursor())
}

// firstNonBlank returns the column I inserts at: the first non-blank, or
// the end of an all-blank line.
func firstNonBlank(line string) int {
	col := 0
	for len(line) > 0 {
		r, size := utf8.DecodeRuneInString(line)
		if r != ' ' && r != '\t' {
			return col
		}
		line = line[size:]
		col++
	}
	return col
}
