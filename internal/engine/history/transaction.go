package history

import (
	"github.com/dshills/modalcore/internal/engine/buffer"
)

// Transaction records the mutations made through it so they can be
// committed as one Frame. A Transaction implements buffer.Facade and can be
// handed to any code that edits a buffer.
type Transaction struct {
	f      buffer.Facade
	label  string
	before buffer.Point
	deltas []Delta
	closed bool
}

// Begin starts a transaction on f, capturing the current cursor as the
// frame's cursor-before.
func Begin(f buffer.Facade, label string) *Transaction {
	return &Transaction{f: f, label: label, before: f.Cursor()}
}

// Label returns the label given to Begin.
func (tx *Transaction) Label() string {
	return tx.label
}

// SetLabel replaces the label.
func (tx *Transaction) SetLabel(label string) {
	tx.label = label
}

// Line returns the text of line i.
func (tx *Transaction) Line(i int) string {
	return tx.f.Line(i)
}

// LineCount returns the number of lines.
func (tx *Transaction) LineCount() int {
	return tx.f.LineCount()
}

// Cursor returns the cursor of the underlying buffer.
func (tx *Transaction) Cursor() buffer.Point {
	return tx.f.Cursor()
}

// SetCursor moves the cursor of the underlying buffer. Cursor moves are not
// recorded as deltas.
func (tx *Transaction) SetCursor(p buffer.Point) {
	tx.f.SetCursor(p)
}

// Insert inserts text at p and records the delta.
func (tx *Transaction) Insert(p buffer.Point, text string) buffer.Point {
	p = buffer.Clamp(tx.f, p)
	end := tx.f.Insert(p, text)
	if text != "" && !tx.closed {
		tx.appendDelta(Insert(p, tx.inserted(p, end)))
	}
	return end
}

// Delete removes the text in s, records the delta and returns the text.
func (tx *Transaction) Delete(s buffer.Span) string {
	s = buffer.ClampSpan(tx.f, s)
	removed := tx.f.Delete(s)
	if removed != "" && !tx.closed {
		tx.appendDelta(Delete(s.Start, removed))
	}
	return removed
}

// Replace replaces the text in s with text and returns the end of the new
// text.
func (tx *Transaction) Replace(s buffer.Span, text string) buffer.Point {
	s = buffer.ClampSpan(tx.f, s)
	removed := tx.f.Delete(s)
	end := tx.f.Insert(s.Start, text)
	if tx.closed {
		return end
	}
	if text != "" {
		text = tx.inserted(s.Start, end)
	}
	switch {
	case removed == "" && text == "":
	case removed == "":
		tx.appendDelta(Insert(s.Start, text))
	case text == "":
		tx.appendDelta(Delete(s.Start, removed))
	case removed != text:
		tx.appendDelta(Replace(s.Start, removed, text))
	}
	return end
}

// Deltas returns the deltas recorded so far.
func (tx *Transaction) Deltas() []Delta {
	return tx.deltas
}

// Changed reports whether any delta was recorded.
func (tx *Transaction) Changed() bool {
	return len(tx.deltas) > 0
}

// Commit closes the transaction and returns its frame, or nil if nothing
// changed.
func (tx *Transaction) Commit(after buffer.Point) *Frame {
	if tx.closed {
		return nil
	}
	tx.closed = true
	if len(tx.deltas) == 0 {
		return nil
	}
	return NewFrame(tx.label, tx.before, after, tx.deltas...)
}

// Rollback reverts every recorded delta and closes the transaction.
func (tx *Transaction) Rollback() error {
	if tx.closed {
		return ErrTransactionClosed
	}
	tx.closed = true
	f := &Frame{Label: tx.label, Deltas: tx.deltas}
	if err := f.Undo(tx.f); err != nil {
		return err
	}
	tx.f.SetCursor(tx.before)
	return nil
}

// inserted returns the text the buffer holds between p and end. The
// buffer may normalize line endings, so the caller's text can differ.
func (tx *Transaction) inserted(p, end buffer.Point) string {
	return buffer.TextIn(tx.f, buffer.Span{Start: p, End: end})
}

// appendDelta records d, merging consecutive typing into one insert.
func (tx *Transaction) appendDelta(d Delta) {
	if n := len(tx.deltas); n > 0 && d.Kind == DeltaInsert {
		prev := &tx.deltas[n-1]
		if prev.Kind == DeltaInsert && buffer.Advance(prev.At, prev.New) == d.At {
			prev.New += d.New
			return
		}
	}
	tx.deltas = append(tx.deltas, d)
}
