package input

import (
	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/input/vim"
)

// Actions handled by the resolver itself. They never reach the executor.
const (
	ActionRepeat         = "repeat.last"
	ActionMacroRecord    = "macro.record"
	ActionMacroPlay      = "macro.play"
	ActionRegisterSelect = "register.select"
	ActionCancel         = "normal.cancel"
)

// ActionInsertChar inserts Action.Arg. It is produced for printable keys
// that have no insert-mode binding.
const ActionInsertChar = "insert.char"

// ActionSource indicates the origin of an action.
type ActionSource uint8

const (
	// SourceKeyboard indicates the action originated from keyboard input.
	SourceKeyboard ActionSource = iota
	// SourceMacro indicates the action originated from macro playback.
	SourceMacro
	// SourceRepeat indicates the action was replayed by ".".
	SourceRepeat
	// SourceAPI indicates the action originated from an API call.
	SourceAPI
)

// String returns a string representation of the action source.
func (s ActionSource) String() string {
	switch s {
	case SourceKeyboard:
		return "keyboard"
	case SourceMacro:
		return "macro"
	case SourceRepeat:
		return "repeat"
	case SourceAPI:
		return "api"
	default:
		return "unknown"
	}
}

// Action is a resolved command handed to the Executor.
type Action struct {
	// Name is the command identifier, such as "cursor.down" or
	// "operator.delete".
	Name string

	// Count is the typed count, or 0 when none was typed. For operator
	// actions it is the product of both counts.
	Count int

	// Register is the register named with ", or 0.
	Register rune

	// Arg is the character argument of f, t, r and similar commands, or
	// the text of an insert.char action.
	Arg string

	// Command is set for operator actions.
	Command *vim.Command

	// Keys are the keys that produced the action, without the leading
	// count. Operator actions also drop the count typed after the
	// operator.
	Keys []key.Event

	Source ActionSource
}

// CountOr returns the count, or def when none was typed.
func (a Action) CountOr(def int) int {
	if a.Count > 0 {
		return a.Count
	}
	return def
}

// IsOperator reports whether the action applies an operator.
func (a Action) IsOperator() bool {
	return a.Command != nil
}

// OutcomeKind classifies the result of submitting a key.
type OutcomeKind uint8

const (
	// Ignored means the key completed nothing: it was unbound, cancelled a
	// pending command, or the command failed.
	Ignored OutcomeKind = iota
	// Partial means the key was consumed and more keys are expected.
	Partial
	// Dispatched means a command ran.
	Dispatched
)

// String returns the outcome kind name.
func (k OutcomeKind) String() string {
	switch k {
	case Ignored:
		return "ignored"
	case Partial:
		return "partial"
	case Dispatched:
		return "dispatched"
	default:
		return "unknown"
	}
}

// Outcome is returned by Submit and FlushPendingOnTimeout.
type Outcome struct {
	Kind OutcomeKind
	// Action is the command that ran or was attempted.
	Action *Action
	// Err is set when the executor rejected the action. Macro playback
	// stops at the first error.
	Err error
}

var (
	partial = Outcome{Kind: Partial}
	ignored = Outcome{Kind: Ignored}
)

// Executor runs resolved actions against the buffer. Execute is called
// synchronously from Submit.
type Executor interface {
	Execute(a Action) error
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(a Action) error

// Execute calls f(a).
func (f ExecutorFunc) Execute(a Action) error {
	return f(a)
}
