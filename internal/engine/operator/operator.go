// Package operator applies Vim operators to a region of a buffer inside an
// undo transaction.
package operator

import (
	"strings"

	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/history"
)

// Kind identifies an operator.
type Kind uint8

const (
	Delete Kind = iota
	Change
	Yank
	Indent
	Unindent
	ToggleCase
	Lowercase
	Uppercase
)

var kindNames = map[Kind]string{
	Delete:     "delete",
	Change:     "change",
	Yank:       "yank",
	Indent:     "indent",
	Unindent:   "unindent",
	ToggleCase: "toggleCase",
	Lowercase:  "lowercase",
	Uppercase:  "uppercase",
}

// String returns the operator name used in action names.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Lookup returns the operator with the given name.
func Lookup(name string) (Kind, bool) {
	for k, s := range kindNames {
		if s == name {
			return k, true
		}
	}
	return 0, false
}

// Modifies reports whether the operator changes the buffer.
func (k Kind) Modifies() bool {
	return k != Yank
}

// Registers receives the text an operator removes or copies. reg is the
// register the user named, or 0 for none.
type Registers interface {
	Yank(reg rune, text string, linewise bool)
	Delete(reg rune, text string, linewise bool)
}

// Request describes one operator application.
type Request struct {
	Kind Kind
	// Span is the region to operate on. For linewise requests only the
	// lines of Start and End matter.
	Span     buffer.Span
	Linewise bool
	Register rune
}

// Result reports what an operator did.
type Result struct {
	Cursor buffer.Point
	// Text is the text removed or copied.
	Text string
	// Insert is set by Change: the caller should enter insert mode.
	Insert bool
}

// Settings holds the options that shape indentation.
type Settings struct {
	ShiftWidth int
	ExpandTab  bool
}

// DefaultSettings indents by four spaces.
var DefaultSettings = Settings{ShiftWidth: 4, ExpandTab: true}

// Apply runs req against tx. regs may be nil.
func Apply(tx *history.Transaction, regs Registers, req Request, s Settings) Result {
	span := buffer.ClampSpan(tx, req.Span)
	if req.Linewise {
		return applyLines(tx, regs, req, span.Start.Line, span.End.Line, s)
	}
	return applyChars(tx, regs, req, span, s)
}

func applyChars(tx *history.Transaction, regs Registers, req Request, span buffer.Span, s Settings) Result {
	switch req.Kind {
	case Delete, Change:
		text := tx.Delete(span)
		if regs != nil {
			regs.Delete(req.Register, text, false)
		}
		tx.SetCursor(span.Start)
		return Result{Cursor: span.Start, Text: text, Insert: req.Kind == Change}
	case Yank:
		text := buffer.TextIn(tx, span)
		if regs != nil {
			regs.Yank(req.Register, text, false)
		}
		tx.SetCursor(span.Start)
		return Result{Cursor: span.Start, Text: text}
	case Indent, Unindent:
		// Shifting is always linewise.
		return applyLines(tx, regs, req, span.Start.Line, span.End.Line, s)
	default:
		for line := span.Start.Line; line <= span.End.Line; line++ {
			from, to := 0, buffer.LineLen(tx, line)
			if line == span.Start.Line {
				from = span.Start.Column
			}
			if line == span.End.Line {
				to = span.End.Column
			}
			recase(tx, line, from, to, req.Kind)
		}
		tx.SetCursor(span.Start)
		return Result{Cursor: span.Start}
	}
}

func applyLines(tx *history.Transaction, regs Registers, req Request, first, last int, s Settings) Result {
	text := strings.Join(buffer.Lines(tx)[first:last+1], "\n")

	switch req.Kind {
	case Delete:
		if regs != nil {
			regs.Delete(req.Register, text, true)
		}
		tx.Delete(lineRange(tx, first, last))
		line := min(first, tx.LineCount()-1)
		cur := buffer.Point{Line: line, Column: firstNonBlank(tx.Line(line))}
		tx.SetCursor(cur)
		return Result{Cursor: cur, Text: text}

	case Change:
		if regs != nil {
			regs.Delete(req.Register, text, true)
		}
		indent := leadingSpace(tx.Line(first))
		tx.Delete(buffer.Span{
			Start: buffer.Point{Line: first},
			End:   buffer.Point{Line: last, Column: buffer.LineLen(tx, last)},
		})
		cur := tx.Insert(buffer.Point{Line: first}, indent)
		tx.SetCursor(cur)
		return Result{Cursor: cur, Text: text, Insert: true}

	case Yank:
		if regs != nil {
			regs.Yank(req.Register, text, true)
		}
		cur := tx.Cursor()
		if cur.Line != first {
			cur = buffer.Point{Line: first, Column: firstNonBlank(tx.Line(first))}
		}
		tx.SetCursor(cur)
		return Result{Cursor: cur, Text: text}

	case Indent, Unindent:
		for line := first; line <= last; line++ {
			tx.RewriteLine(line, shift(tx.Line(line), req.Kind == Indent, s))
		}

	default:
		for line := first; line <= last; line++ {
			recase(tx, line, 0, buffer.LineLen(tx, line), req.Kind)
		}
	}

	cur := buffer.Point{Line: first, Column: firstNonBlank(tx.Line(first))}
	tx.SetCursor(cur)
	return Result{Cursor: cur}
}

// lineRange returns the span that removes lines first..last together with
// one line break.
func lineRange(r buffer.Reader, first, last int) buffer.Span {
	switch {
	case last+1 < r.LineCount():
		return buffer.Span{Start: buffer.Point{Line: first}, End: buffer.Point{Line: last + 1}}
	case first > 0:
		return buffer.Span{
			Start: buffer.Point{Line: first - 1, Column: buffer.LineLen(r, first-1)},
			End:   buffer.Point{Line: last, Column: buffer.LineLen(r, last)},
		}
	default:
		return buffer.Span{End: buffer.Point{Line: last, Column: buffer.LineLen(r, last)}}
	}
}

func leadingSpace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

func firstNonBlank(line string) int {
	g := buffer.Graphemes(line)
	for i, s := range g {
		if s != " " && s != "\t" {
			return i
		}
	}
	return max(len(g)-1, 0)
}
