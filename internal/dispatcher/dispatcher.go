package dispatcher

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/dshills/modalcore/internal/dispatcher/execctx"
	"github.com/dshills/modalcore/internal/dispatcher/handler"
	"github.com/dshills/modalcore/internal/dispatcher/handlers/cursor"
	"github.com/dshills/modalcore/internal/dispatcher/handlers/editor"
	modehandler "github.com/dshills/modalcore/internal/dispatcher/handlers/mode"
	"github.com/dshills/modalcore/internal/dispatcher/handlers/operator"
	"github.com/dshills/modalcore/internal/dispatcher/handlers/visual"
	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/input"
	"github.com/dshills/modalcore/internal/input/mode"
	"github.com/dshills/modalcore/internal/logging"
)

// Dispatcher runs the actions of one editing session against its state.
// It implements input.Executor.
type Dispatcher struct {
	mu sync.Mutex

	routes *Routes

	state  *execctx.State
	config Config

	unsubscribe func()
}

var _ input.Executor = (*Dispatcher)(nil)

// New creates a dispatcher for state with the built-in handlers
// registered. Leaving insert mode by any route, <Esc> or a host switching
// modes, closes the open insert session.
func New(state *execctx.State, config Config) *Dispatcher {
	d := &Dispatcher{
		routes: NewRoutes(),
		state:  state,
		config: config,
	}

	state.Settings = config.Settings
	if config.HistoryDepth > 0 {
		state.History.SetMaxDepth(config.HistoryDepth)
	}
	d.unsubscribe = state.Modes.OnChange(func(from, to mode.Mode) {
		if from == mode.Insert && to != mode.Insert {
			state.EndInsert()
		}
		if to.IsVisual() && !from.IsVisual() {
			state.SetAnchor(state.Buffer.Cursor())
		}
	})

	d.routes.AddNamespace(cursor.NewHandler())
	d.routes.AddNamespace(operator.NewOperatorHandler())
	d.routes.AddNamespace(editor.NewEditHandler())
	d.routes.AddNamespace(modehandler.NewModeHandler())
	d.routes.AddNamespace(editor.NewInsertHandler())
	d.routes.AddNamespace(editor.NewHistoryHandler())
	d.routes.AddNamespace(visual.NewHandler())
	return d
}

// NewWithDefaults creates a dispatcher over buf with default configuration.
func NewWithDefaults(buf buffer.Facade) *Dispatcher {
	return New(execctx.NewState(buf), DefaultConfig())
}

// Close detaches the dispatcher from the mode manager.
func (d *Dispatcher) Close() {
	if d.unsubscribe != nil {
		d.unsubscribe()
		d.unsubscribe = nil
	}
}

// State returns the editing state the dispatcher works on.
func (d *Dispatcher) State() *execctx.State {
	return d.state
}

// Execute implements input.Executor. A no-op result is not an error; an
// action nobody handles is ErrUnknownAction.
func (d *Dispatcher) Execute(a input.Action) error {
	res := d.Dispatch(a)
	if res.IsError() {
		return res.Error
	}
	return nil
}

// Dispatch executes an action synchronously.
func (d *Dispatcher) Dispatch(action input.Action) handler.Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	if action.Name == "" {
		return handler.Error(ErrInvalidAction)
	}

	h := d.routes.Lookup(action.Name)
	if h == nil {
		return handler.Error(fmt.Errorf("%w: %s", ErrUnknownAction, action.Name))
	}

	ctx := execctx.NewForAction(d.state, action)
	if limit := d.config.MaxRepeatCount; limit > 0 && ctx.Count > limit {
		ctx.Count = limit
	}

	var result handler.Result
	if d.config.RecoverFromPanic {
		result = d.executeWithRecovery(h, action, ctx)
	} else {
		result = h.Handle(action, ctx)
	}

	if !d.state.Modes.Is(mode.Insert) {
		d.state.ClampNormal()
	}
	if result.IsError() {
		logging.Debug("action failed", "action", action.Name, "source", action.Source.String(), "error", result.Error)
	}
	return result
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(h handler.Handler, action input.Action, ctx *execctx.ExecutionContext) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)
			logging.Error("handler panic", "action", action.Name, "panic", r, "stack", string(stack[:n]))
			result = handler.Error(fmt.Errorf("%w: %s: %v", ErrPanic, action.Name, r))
		}
	}()

	return h.Handle(action, ctx)
}

// Undo reverts the most recent frame and moves the cursor where the
// change was made.
func (d *Dispatcher) Undo() error {
	return d.step(editor.ActionUndo)
}

// Redo reapplies the most recently undone frame.
func (d *Dispatcher) Redo() error {
	return d.step(editor.ActionRedo)
}

func (d *Dispatcher) step(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.state.EndInsert()
	var (
		p   buffer.Point
		err error
	)
	if name == editor.ActionUndo {
		p, err = d.state.History.Undo(d.state.Buffer)
	} else {
		p, err = d.state.History.Redo(d.state.Buffer)
	}
	if err != nil {
		return err
	}
	d.state.Buffer.SetCursor(p)
	if !d.state.Modes.Is(mode.Insert) {
		d.state.ClampNormal()
	}
	return nil
}

// Override binds h to one action name ahead of the built-in handlers.
func (d *Dispatcher) Override(actionName string, h handler.Handler) {
	d.routes.Override(actionName, h)
}

// OverrideFunc is Override for a plain function.
func (d *Dispatcher) OverrideFunc(actionName string, fn handler.ActionFunc) {
	d.routes.Override(actionName, handler.Func(fn))
}

// RemoveOverride drops every override of actionName.
func (d *Dispatcher) RemoveOverride(actionName string) {
	d.routes.RemoveOverride(actionName, nil)
}

// AddNamespace routes the namespace of h to it after the handlers already
// serving that namespace.
func (d *Dispatcher) AddNamespace(h handler.NamespaceHandler) {
	d.routes.AddNamespace(h)
}

// CanDispatch reports whether some handler accepts the action.
func (d *Dispatcher) CanDispatch(actionName string) bool {
	return d.routes.Has(actionName)
}

func (d *Dispatcher) Routes() *Routes {
	return d.routes
}

func (d *Dispatcher) Config() Config {
	return d.config
}
