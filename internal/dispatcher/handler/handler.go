// Package handler defines what the dispatcher calls to run an action,
// along with small building blocks for writing handlers.
package handler

import (
	"fmt"
	"maps"
	"slices"

	"github.com/dshills/modalcore/internal/dispatcher/execctx"
	"github.com/dshills/modalcore/internal/input"
)

// ActionFunc runs one action against the execution context.
type ActionFunc func(action input.Action, ctx *execctx.ExecutionContext) Result

// Handler runs actions registered under an exact name.
type Handler interface {
	Handle(action input.Action, ctx *execctx.ExecutionContext) Result
	CanHandle(actionName string) bool

	// Priority orders handlers registered for the same action name,
	// highest first.
	Priority() int
}

// NamespaceHandler serves the actions sharing a prefix, "cursor" for
// "cursor.down".
type NamespaceHandler interface {
	Namespace() string
	CanHandle(actionName string) bool
	HandleAction(action input.Action, ctx *execctx.ExecutionContext) Result
}

type funcHandler struct {
	fn       ActionFunc
	priority int
}

// Func turns fn into a Handler. It accepts whatever name it is
// registered under.
func Func(fn ActionFunc) Handler {
	return FuncWithPriority(fn, 0)
}

// FuncWithPriority is Func with an explicit priority.
func FuncWithPriority(fn ActionFunc, priority int) Handler {
	return &funcHandler{fn: fn, priority: priority}
}

func (f *funcHandler) Handle(action input.Action, ctx *execctx.ExecutionContext) Result {
	if f.fn == nil {
		return Error(fmt.Errorf("%w: %s has no function", ErrUnhandled, action.Name))
	}
	return f.fn(action, ctx)
}

func (f *funcHandler) CanHandle(string) bool { return true }
func (f *funcHandler) Priority() int         { return f.priority }

type namespaced struct {
	NamespaceHandler
}

// ForNamespace presents a namespace handler as a Handler of priority 0.
func ForNamespace(h NamespaceHandler) Handler {
	return namespaced{h}
}

func (n namespaced) Handle(action input.Action, ctx *execctx.ExecutionContext) Result {
	return n.HandleAction(action, ctx)
}

func (namespaced) Priority() int { return 0 }

// Table is a NamespaceHandler backed by a map from action name to
// function. Handlers embed it and wrap HandleAction with their own
// precondition checks.
type Table struct {
	namespace string
	actions   map[string]ActionFunc
}

// NewTable returns an empty table for namespace.
func NewTable(namespace string) *Table {
	return &Table{namespace: namespace, actions: make(map[string]ActionFunc)}
}

// On binds a full action name such as "edit.join" to fn.
func (t *Table) On(actionName string, fn ActionFunc) {
	t.actions[actionName] = fn
}

func (t *Table) Namespace() string { return t.namespace }

func (t *Table) CanHandle(actionName string) bool {
	_, ok := t.actions[actionName]
	return ok
}

// Actions lists the bound action names in order.
func (t *Table) Actions() []string {
	return slices.Sorted(maps.Keys(t.actions))
}

func (t *Table) HandleAction(action input.Action, ctx *execctx.ExecutionContext) Result {
	fn, ok := t.actions[action.Name]
	if !ok {
		return Error(fmt.Errorf("%w: %s in namespace %s", ErrUnhandled, action.Name, t.namespace))
	}
	return fn(action, ctx)
}
