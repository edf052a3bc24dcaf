package vim

import (
	"strings"

	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/motion"
	"github.com/dshills/modalcore/internal/engine/operator"
	"github.com/dshills/modalcore/internal/engine/textobj"
	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/logging"
)

// TargetKind says what an operator was applied to.
type TargetKind uint8

const (
	TargetMotion TargetKind = iota
	TargetObject
	// TargetLine is the doubled operator: count whole lines.
	TargetLine
)

// Target is the unresolved second half of an operator command.
type Target struct {
	Kind TargetKind

	Motion motion.Motion
	// Arg is the character argument of f, F, t and T.
	Arg string

	Object textobj.Object
	Scope  textobj.Scope
}

// Region is the part of the buffer an operator acts on.
type Region struct {
	Span     buffer.Span
	Linewise bool
}

// Command is a composed operator command.
type Command struct {
	Operator operator.Kind
	// Count is the product of both counts, or 0 when none was typed.
	Count    int
	Register rune
	Target   Target
	Region   Region
	// Keys are the keys from the operator on, without either count.
	Keys []key.Event
	// CountKeys is the number of count digits typed after the operator.
	CountKeys int
}

// Request converts the command into an operator request.
func (cmd *Command) Request() operator.Request {
	return operator.Request{
		Kind:     cmd.Operator,
		Span:     cmd.Region.Span,
		Linewise: cmd.Region.Linewise,
		Register: cmd.Register,
	}
}

// region computes the target region against a snapshot of the buffer.
func (c *Composer) region(t Target, count int) (Region, bool) {
	var r buffer.Reader = c.view
	if s, ok := c.view.(interface{ Snapshot() *buffer.Snapshot }); ok {
		r = s.Snapshot()
	}
	if r.LineCount() == 0 {
		return Region{}, false
	}
	cursor := buffer.Clamp(r, c.view.Cursor())

	switch t.Kind {
	case TargetLine:
		last := min(cursor.Line+max(count, 1)-1, r.LineCount()-1)
		return lineRegion(r, cursor.Line, last), true

	case TargetObject:
		span, ok := c.objects.Resolve(r, cursor, t.Object, t.Scope, max(count, 1))
		if !ok {
			logging.Debug("text object not found", "object", t.Object.String(), "cursor", cursor.String())
			return Region{}, false
		}
		return Region{Span: span, Linewise: t.Object.Linewise()}, true

	default:
		return c.motionRegion(r, t, cursor, count)
	}
}

func (c *Composer) motionRegion(r buffer.Reader, t Target, from buffer.Point, count int) (Region, bool) {
	mo := t.Motion

	if big, ok := wordForwardMotions[mo.Action]; ok && c.op == operator.Change && !motion.IsBlankAt(r, from) {
		end, ok := motion.ChangeWordEnd(r, from, count, big)
		if !ok {
			return Region{}, false
		}
		end.Column++
		return Region{Span: buffer.Span{Start: from, End: end}}, true
	}

	to, ok := mo.Apply(r, c.motions, from, count, t.Arg)
	if !ok {
		return Region{}, false
	}

	if mo.Type == motion.Linewise {
		return lineRegion(r, min(from.Line, to.Line), max(from.Line, to.Line)), true
	}

	span := buffer.NewSpan(from, to)
	if mo.IsInclusive(c.motions) {
		span.End.Column++
		return Region{Span: buffer.ClampSpan(r, span)}, true
	}

	if span.End.Line > span.Start.Line && onlyBlankBefore(r, span.End) {
		if _, isWord := wordForwardMotions[mo.Action]; isWord {
			// The last word moved over ends the region, not the next line.
			span.End = lineEndPoint(r, span.End.Line-1)
			return Region{Span: span}, true
		}
		if span.End.Column == 0 {
			if onlyBlankBefore(r, span.Start) {
				return lineRegion(r, span.Start.Line, span.End.Line-1), true
			}
			span.End = lineEndPoint(r, span.End.Line-1)
		}
	}
	return Region{Span: span}, true
}

var wordForwardMotions = map[string]bool{
	"cursor.wordForward":    false,
	"cursor.bigWordForward": true,
}

func lineRegion(r buffer.Reader, first, last int) Region {
	return Region{
		Span:     buffer.Span{Start: buffer.Point{Line: first}, End: lineEndPoint(r, last)},
		Linewise: true,
	}
}

func lineEndPoint(r buffer.Reader, line int) buffer.Point {
	return buffer.Point{Line: line, Column: buffer.LineLen(r, line)}
}

// onlyBlankBefore reports whether everything on p's line before p is
// whitespace.
func onlyBlankBefore(r buffer.Reader, p buffer.Point) bool {
	g := buffer.Graphemes(r.Line(p.Line))
	for _, s := range g[:min(p.Column, len(g))] {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	return true
}
