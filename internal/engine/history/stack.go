package history

import (
	"sync"

	"github.com/dshills/modalcore/internal/engine/buffer"
)

// DefaultMaxDepth is the undo depth used when none is configured.
const DefaultMaxDepth = 1000

// History manages undo/redo state for a buffer.
type History struct {
	mu sync.Mutex

	undoStack []*Frame
	redoStack []*Frame

	maxDepth int
}

// NewHistory creates a new history bounded to maxDepth undo frames.
// A non-positive maxDepth selects DefaultMaxDepth.
func NewHistory(maxDepth int) *History {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &History{maxDepth: maxDepth}
}

// Record pushes a frame onto the undo stack and clears the redo stack.
// Empty frames are ignored.
func (h *History) Record(f *Frame) {
	if f == nil || f.IsEmpty() {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = append(h.undoStack, f)
	h.redoStack = nil
	h.trimLocked()
}

// Undo reverts the most recent frame and returns the cursor to restore.
func (h *History) Undo(buf buffer.Facade) (buffer.Point, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return buffer.Point{}, ErrNothingToUndo
	}

	f := h.undoStack[len(h.undoStack)-1]
	if err := f.Undo(buf); err != nil {
		return buffer.Point{}, err
	}
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, f)
	return f.CursorBefore, nil
}

// Redo re-applies the most recently undone frame and returns the cursor
// to restore.
func (h *History) Redo(buf buffer.Facade) (buffer.Point, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return buffer.Point{}, ErrNothingToRedo
	}

	f := h.redoStack[len(h.redoStack)-1]
	if err := f.Redo(buf); err != nil {
		return buffer.Point{}, err
	}
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, f)
	h.trimLocked()
	return f.CursorAfter, nil
}

// SetMaxDepth changes the depth bound, evicting the oldest frames if needed.
func (h *History) SetMaxDepth(n int) {
	if n <= 0 {
		n = DefaultMaxDepth
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.maxDepth = n
	h.trimLocked()
}

// MaxDepth returns the depth bound.
func (h *History) MaxDepth() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxDepth
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo frames available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo frames available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// Peek returns the frame that Undo would revert, or nil.
func (h *History) Peek() *Frame {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return nil
	}
	return h.undoStack[len(h.undoStack)-1]
}

// Clear drops both stacks.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = nil
	h.redoStack = nil
}

// trimLocked evicts the oldest undo frames beyond maxDepth.
func (h *History) trimLocked() {
	if excess := len(h.undoStack) - h.maxDepth; excess > 0 {
		clear(h.undoStack[:excess])
		h.undoStack = h.undoStack[excess:]
	}
}
