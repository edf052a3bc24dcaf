package input

import (
	"slices"
	"strconv"

	"github.com/dshills/modalcore/internal/input/key"
)

// RepeatRecord is the last change, as "." replays it.
type RepeatRecord struct {
	// Action is the name of the action that started the change.
	Action string
	// Keys are the keys of the change without its count. For changes that
	// enter insert mode they run through the <Esc> that ended the insert.
	Keys []key.Event
	// Count is the count of the change, or 0. For operators it is the
	// product of both counts.
	Count int
}

// Clone returns a deep copy of the record.
func (r RepeatRecord) Clone() RepeatRecord {
	r.Keys = slices.Clone(r.Keys)
	return r
}

// events returns the keys to feed when replaying with count (0 keeps the
// recorded count).
func (r RepeatRecord) events(count int) []key.Event {
	if count <= 0 {
		count = r.Count
	}
	var out []key.Event
	if count > 0 {
		for _, d := range strconv.Itoa(count) {
			out = append(out, key.Rune(d))
		}
	}
	return append(out, r.Keys...)
}

// DefaultRepeatable lists the actions "." repeats: everything that changes
// the buffer. Yanks, motions and undo are not repeatable.
var DefaultRepeatable = []string{
	"operator.delete",
	"operator.change",
	"operator.indent",
	"operator.unindent",
	"operator.toggleCase",
	"operator.lowercase",
	"operator.uppercase",
	"edit.deleteChar",
	"edit.deleteCharBefore",
	"edit.substitute",
	"edit.substituteLine",
	"edit.changeToEnd",
	"edit.deleteToEnd",
	"edit.join",
	"edit.replaceChar",
	"edit.toggleCaseChar",
	"edit.putAfter",
	"edit.putBefore",
	"insert.before",
	"insert.after",
	"insert.lineStart",
	"insert.lineEnd",
	"insert.lineBelow",
	"insert.lineAbove",
}
