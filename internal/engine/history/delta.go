package history

import (
	"fmt"

	"github.com/dshills/modalcore/internal/engine/buffer"
)

// DeltaKind identifies the shape of a Delta.
type DeltaKind uint8

const (
	// DeltaInsert records text inserted at a position.
	DeltaInsert DeltaKind = iota
	// DeltaDelete records text removed at a position.
	DeltaDelete
	// DeltaReplace records old text at a position replaced by new text.
	DeltaReplace
)

// String returns the name of the kind.
func (k DeltaKind) String() string {
	switch k {
	case DeltaInsert:
		return "insert"
	case DeltaDelete:
		return "delete"
	case DeltaReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Delta is a minimal, invertible description of one buffer mutation.
//
// For an insert, Old is empty and New holds the inserted text.
// For a delete, Old holds the removed text and New is empty.
// For a replace, Old was replaced by New.
type Delta struct {
	Kind DeltaKind
	At   buffer.Point
	Old  string
	New  string
}

// Insert creates an insert delta.
func Insert(at buffer.Point, text string) Delta {
	return Delta{Kind: DeltaInsert, At: at, New: text}
}

// Delete creates a delete delta for removed text.
func Delete(at buffer.Point, removed string) Delta {
	return Delta{Kind: DeltaDelete, At: at, Old: removed}
}

// Replace creates a replace delta.
func Replace(at buffer.Point, oldText, newText string) Delta {
	return Delta{Kind: DeltaReplace, At: at, Old: oldText, New: newText}
}

// String returns a human-readable representation of the delta.
func (d Delta) String() string {
	switch d.Kind {
	case DeltaInsert:
		return fmt.Sprintf("insert%s %q", d.At, d.New)
	case DeltaDelete:
		return fmt.Sprintf("delete%s %q", d.At, d.Old)
	default:
		return fmt.Sprintf("replace%s %q->%q", d.At, d.Old, d.New)
	}
}

// Len returns the length of the removed text in characters.
// It is zero for inserts.
func (d Delta) Len() int {
	return buffer.GraphemeCount(d.Old)
}

// OldSpan returns the span the old text occupies before the delta applies.
func (d Delta) OldSpan() buffer.Span {
	return buffer.Span{Start: d.At, End: buffer.Advance(d.At, d.Old)}
}

// NewSpan returns the span the new text occupies after the delta applies.
func (d Delta) NewSpan() buffer.Span {
	return buffer.Span{Start: d.At, End: buffer.Advance(d.At, d.New)}
}

// Invert returns the delta that undoes d.
func (d Delta) Invert() Delta {
	switch d.Kind {
	case DeltaInsert:
		return Delete(d.At, d.New)
	case DeltaDelete:
		return Insert(d.At, d.Old)
	default:
		return Replace(d.At, d.New, d.Old)
	}
}

// Apply performs the delta against f.
// It fails with ErrDeltaMismatch, leaving f untouched, if f does not hold
// the text the delta expects to remove.
func (d Delta) Apply(f buffer.Facade) error {
	if d.Old != "" {
		span := d.OldSpan()
		if got := buffer.TextIn(f, span); got != d.Old {
			return fmt.Errorf("%s: found %q: %w", d, got, ErrDeltaMismatch)
		}
		f.Delete(span)
	}
	if d.New != "" {
		f.Insert(d.At, d.New)
	}
	return nil
}
