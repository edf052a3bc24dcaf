// Package execctx provides the execution context for action handlers.
package execctx

import (
	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/input"
	"github.com/dshills/modalcore/internal/input/mode"
)

// ExecutionContext is what a handler sees: the editing state of the session
// plus the arguments of the action being run.
type ExecutionContext struct {
	*State

	// Count is the typed count, or 0 when none was typed.
	Count int

	// Register is the register named with ", or 0.
	Register rune

	// Arg is the character argument or inserted text.
	Arg string

	// Source is where the action came from.
	Source input.ActionSource

	// Data holds handler-specific values.
	Data map[string]any
}

// New creates an execution context with no editing state.
func New() *ExecutionContext {
	return &ExecutionContext{Data: make(map[string]any)}
}

// NewForAction creates the context for running a on state.
func NewForAction(state *State, a input.Action) *ExecutionContext {
	return &ExecutionContext{
		State:    state,
		Count:    a.Count,
		Register: a.Register,
		Arg:      a.Arg,
		Source:   a.Source,
		Data:     make(map[string]any),
	}
}

// WithState returns the context with state attached.
func (ctx *ExecutionContext) WithState(state *State) *ExecutionContext {
	ctx.State = state
	return ctx
}

// WithCount returns the context with the specified count.
func (ctx *ExecutionContext) WithCount(count int) *ExecutionContext {
	ctx.Count = count
	return ctx
}

// GetCount returns the repeat count, defaulting to 1.
func (ctx *ExecutionContext) GetCount() int {
	if ctx.Count <= 0 {
		return 1
	}
	return ctx.Count
}

// HasCount reports whether a count was typed.
func (ctx *ExecutionContext) HasCount() bool {
	return ctx.Count > 0
}

// Mode returns the current mode.
func (ctx *ExecutionContext) Mode() mode.Mode {
	if ctx.State == nil || ctx.Modes == nil {
		return mode.Normal
	}
	return ctx.Modes.Current()
}

// Cursor returns the cursor of the buffer.
func (ctx *ExecutionContext) Cursor() buffer.Point {
	if ctx.State == nil || ctx.Buffer == nil {
		return buffer.Point{}
	}
	return ctx.Buffer.Cursor()
}

// SetData sets a context data value.
func (ctx *ExecutionContext) SetData(key string, value any) {
	if ctx.Data == nil {
		ctx.Data = make(map[string]any)
	}
	ctx.Data[key] = value
}

// GetData retrieves a context data value.
func (ctx *ExecutionContext) GetData(key string) (any, bool) {
	if ctx.Data == nil {
		return nil, false
	}
	v, ok := ctx.Data[key]
	return v, ok
}

// Validate checks that the context has a buffer to work on.
func (ctx *ExecutionContext) Validate() error {
	if ctx.State == nil || ctx.Buffer == nil {
		return ErrMissingBuffer
	}
	return nil
}

// ValidateForEdit checks that the context is valid for editing operations.
func (ctx *ExecutionContext) ValidateForEdit() error {
	if err := ctx.Validate(); err != nil {
		return err
	}
	if ctx.History == nil {
		return ErrMissingHistory
	}
	if ctx.Modes == nil {
		return ErrMissingModes
	}
	return nil
}
