package history

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/modalcore/internal/engine/buffer"
)

// Frame is one undoable user action: one or more deltas plus the cursor
// before and after the edit.
type Frame struct {
	ID           uuid.UUID
	Label        string
	Deltas       []Delta
	CursorBefore buffer.Point
	CursorAfter  buffer.Point
	Timestamp    time.Time
}

// NewFrame creates a frame from deltas.
func NewFrame(label string, before, after buffer.Point, deltas ...Delta) *Frame {
	return &Frame{
		ID:           uuid.New(),
		Label:        label,
		Deltas:       deltas,
		CursorBefore: before,
		CursorAfter:  after,
		Timestamp:    time.Now(),
	}
}

// IsEmpty returns true if the frame holds no deltas.
func (f *Frame) IsEmpty() bool {
	return len(f.Deltas) == 0
}

// Undo applies the inverse of every delta in reverse order.
// On failure the deltas already reverted are re-applied.
func (f *Frame) Undo(buf buffer.Facade) error {
	for i := len(f.Deltas) - 1; i >= 0; i-- {
		if err := f.Deltas[i].Invert().Apply(buf); err != nil {
			errs := []error{err}
			for j := i + 1; j < len(f.Deltas); j++ {
				if rerr := f.Deltas[j].Apply(buf); rerr != nil {
					errs = append(errs, fmt.Errorf("restore: %w", rerr))
				}
			}
			return fmt.Errorf("undo %q: %w", f.Label, errors.Join(errs...))
		}
	}
	return nil
}

// Redo re-applies every delta in order.
// On failure the deltas already applied are reverted.
func (f *Frame) Redo(buf buffer.Facade) error {
	for i, d := range f.Deltas {
		if err := d.Apply(buf); err != nil {
			errs := []error{err}
			for j := i - 1; j >= 0; j-- {
				if rerr := f.Deltas[j].Invert().Apply(buf); rerr != nil {
					errs = append(errs, fmt.Errorf("restore: %w", rerr))
				}
			}
			return fmt.Errorf("redo %q: %w", f.Label, errors.Join(errs...))
		}
	}
	return nil
}
