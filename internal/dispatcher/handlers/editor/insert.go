package editor

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/modalcore/internal/dispatcher/execctx"
	"github.com/dshills/modalcore/internal/dispatcher/handler"
	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/input"
)

// Action names for insert-mode typing. The entry points of the "insert"
// namespace (i, a, o and the rest) live in the mode handler.
const (
	ActionInsertChar    = "insert.char"
	ActionInsertText    = "insert.text"
	ActionNewline       = "insert.newline"
	ActionBackspace     = "insert.backspace"
	ActionDeleteForward = "insert.deleteForward"
	ActionTab           = "insert.tab"
	ActionDeleteWord    = "insert.deleteWord"
)

// InsertHandler handles typing in insert mode. Every change lands in the
// open insert session, so the whole session undoes as one step.
type InsertHandler struct{}

func NewInsertHandler() *InsertHandler {
	return &InsertHandler{}
}

func (h *InsertHandler) Namespace() string {
	return "insert"
}

// CanHandle accepts typing actions; the entry points belong to the mode
// handler.
func (h *InsertHandler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionInsertChar, ActionInsertText, ActionNewline, ActionBackspace,
		ActionDeleteForward, ActionTab, ActionDeleteWord:
		return true
	}
	return false
}

// HandleAction processes an insert action.
func (h *InsertHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}

	is := ctx.Insert()
	switch action.Name {
	case ActionInsertChar, ActionInsertText:
		return h.insertText(is, ctx.Arg)
	case ActionNewline:
		return h.insertText(is, "\n")
	case ActionTab:
		return h.insertText(is, h.tab(ctx))
	case ActionBackspace:
		return h.backspace(is)
	case ActionDeleteForward:
		return h.deleteForward(is)
	case ActionDeleteWord:
		return h.deleteWord(is)
	default:
		return handler.Errorf("unknown insert action: %s", action.Name)
	}
}

// insertText inserts text at the cursor and moves past it.
func (h *InsertHandler) insertText(is *execctx.InsertSession, text string) handler.Result {
	if text == "" {
		return handler.NoOp()
	}
	p := is.Tx.Insert(is.Tx.Cursor(), text)
	is.Tx.SetCursor(p)
	is.Record(text)
	return handler.Moved(p).WithEdit()
}

// tab returns the text <Tab> inserts: spaces up to the next shift width
// stop with expandtab, a tab character otherwise.
func (h *InsertHandler) tab(ctx *execctx.ExecutionContext) string {
	sw := ctx.Settings.ShiftWidth
	if !ctx.Settings.ExpandTab || sw <= 0 {
		return "\t"
	}
	col := ctx.Cursor().Column
	return strings.Repeat(" ", sw-col%sw)
}

// backspace deletes the character before the cursor. In column 0 it joins
// the line to the previous one.
func (h *InsertHandler) backspace(is *execctx.InsertSession) handler.Result {
	cur := is.Tx.Cursor()
	var start buffer.Point
	switch {
	case cur.Column > 0:
		start = buffer.Point{Line: cur.Line, Column: cur.Column - 1}
	case cur.Line > 0:
		start = buffer.Point{Line: cur.Line - 1, Column: buffer.LineLen(is.Tx, cur.Line-1)}
	default:
		return handler.NoOp()
	}
	return h.erase(is, start, cur)
}

// deleteWord deletes the word before the cursor, and any blanks between
// them (<C-w>).
func (h *InsertHandler) deleteWord(is *execctx.InsertSession) handler.Result {
	cur := is.Tx.Cursor()
	if cur.Column == 0 {
		return h.backspace(is)
	}
	g := buffer.Graphemes(is.Tx.Line(cur.Line))[:min(cur.Column, buffer.LineLen(is.Tx, cur.Line))]
	i := len(g)
	for i > 0 && isBlank(g[i-1]) {
		i--
	}
	if i > 0 {
		word := isWord(g[i-1])
		for i > 0 && !isBlank(g[i-1]) && isWord(g[i-1]) == word {
			i--
		}
	}
	return h.erase(is, buffer.Point{Line: cur.Line, Column: i}, cur)
}

// erase deletes start..end before the cursor, forgetting the typed text
// it removes.
func (h *InsertHandler) erase(is *execctx.InsertSession, start, end buffer.Point) handler.Result {
	removed := is.Tx.Delete(buffer.Span{Start: start, End: end})
	for range buffer.GraphemeCount(removed) {
		is.Erase()
	}
	is.Tx.SetCursor(start)
	return handler.Moved(start).WithEdit()
}

// deleteForward deletes the character under the cursor, joining the next
// line at the end of a line.
func (h *InsertHandler) deleteForward(is *execctx.InsertSession) handler.Result {
	cur := is.Tx.Cursor()
	end := buffer.Point{Line: cur.Line, Column: cur.Column + 1}
	if cur.Column >= buffer.LineLen(is.Tx, cur.Line) {
		if cur.Line+1 >= is.Tx.LineCount() {
			return handler.NoOp()
		}
		end = buffer.Point{Line: cur.Line + 1}
	}
	is.Tx.Delete(buffer.Span{Start: cur, End: end})
	is.Tx.SetCursor(cur)
	return handler.Moved(cur).WithEdit()
}

func isBlank(g string) bool {
	return g == " " || g == "\t"
}

func isWord(g string) bool {
	r, _ := utf8.DecodeRuneInString(g)
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
