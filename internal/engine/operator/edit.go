package operator

import (
	"strings"

	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/history"
)

// Put inserts text count times after the cursor, or before it when before
// is set, and returns the new cursor. Linewise text goes on lines of its
// own.
func Put(tx *history.Transaction, text string, linewise, before bool, count int) buffer.Point {
	count = max(count, 1)
	cur := tx.Cursor()
	if text == "" {
		return cur
	}

	if linewise {
		body := strings.Repeat(text+"\n", count)
		var at buffer.Point
		line := cur.Line
		switch {
		case before:
			at = buffer.Point{Line: cur.Line}
		case cur.Line+1 < tx.LineCount():
			at = buffer.Point{Line: cur.Line + 1}
			line = cur.Line + 1
		default:
			// Appending below the last line: the break goes first.
			at = buffer.Point{Line: cur.Line, Column: buffer.LineLen(tx, cur.Line)}
			body = "\n" + strings.TrimSuffix(body, "\n")
			line = cur.Line + 1
		}
		tx.Insert(at, body)
		p := buffer.Point{Line: line, Column: firstNonBlank(tx.Line(line))}
		tx.SetCursor(p)
		return p
	}

	at := cur
	if !before && buffer.LineLen(tx, cur.Line) > 0 {
		at.Column = min(cur.Column+1, buffer.LineLen(tx, cur.Line))
	}
	body := strings.Repeat(text, count)
	end := tx.Insert(at, body)
	p := at
	if !strings.Contains(body, "\n") {
		p = buffer.Point{Line: end.Line, Column: max(end.Column-1, 0)}
	}
	tx.SetCursor(p)
	return p
}

// Join joins count lines starting at line, with a minimum of two. Leading
// whitespace of each joined line is replaced by one space, which is
// omitted when the joined line is empty or starts with ')'. It returns
// false when there is no line to join.
func Join(tx *history.Transaction, line, count int) (buffer.Point, bool) {
	joins := max(count-1, 1)
	if line+1 >= tx.LineCount() {
		return tx.Cursor(), false
	}
	var cur buffer.Point
	for range joins {
		if line+1 >= tx.LineCount() {
			break
		}
		head := tx.Line(line)
		next := tx.Line(line + 1)
		rest := strings.TrimLeft(next, " \t")
		headLen := buffer.GraphemeCount(head)
		sep := " "
		if rest == "" || strings.HasPrefix(rest, ")") || strings.HasSuffix(head, " ") || head == "" {
			sep = ""
		}
		lead := buffer.GraphemeCount(next) - buffer.GraphemeCount(rest)
		tx.Replace(buffer.Span{
			Start: buffer.Point{Line: line, Column: headLen},
			End:   buffer.Point{Line: line + 1, Column: lead},
		}, sep)
		cur = buffer.Point{Line: line, Column: max(headLen+len(sep)-1, 0)}
		if sep == "" && rest != "" {
			cur.Column = headLen
		}
	}
	tx.SetCursor(cur)
	return cur, true
}

// ReplaceChars overwrites count characters at the cursor with ch. It fails
// when fewer than count characters remain on the line.
func ReplaceChars(tx *history.Transaction, ch string, count int) (buffer.Point, bool) {
	count = max(count, 1)
	cur := tx.Cursor()
	if ch == "" || cur.Column+count > buffer.LineLen(tx, cur.Line) {
		return cur, false
	}
	end := buffer.Point{Line: cur.Line, Column: cur.Column + count}
	if ch == "\n" {
		tx.Replace(buffer.Span{Start: cur, End: end}, "\n")
		p := buffer.Point{Line: cur.Line + 1}
		tx.SetCursor(p)
		return p, true
	}
	tx.Replace(buffer.Span{Start: cur, End: end}, strings.Repeat(ch, count))
	p := buffer.Point{Line: cur.Line, Column: end.Column - 1}
	tx.SetCursor(p)
	return p, true
}

// ToggleChars swaps the case of count characters from the cursor and moves
// the cursor past them, stopping on the last character of the line.
func ToggleChars(tx *history.Transaction, count int) buffer.Point {
	count = max(count, 1)
	cur := tx.Cursor()
	n := buffer.LineLen(tx, cur.Line)
	if n == 0 {
		return cur
	}
	end := min(cur.Column+count, n)
	recase(tx, cur.Line, cur.Column, end, ToggleCase)
	p := buffer.Point{Line: cur.Line, Column: min(end, n-1)}
	tx.SetCursor(p)
	return p
}
