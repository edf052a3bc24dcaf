package vim

import (
	"slices"

	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/motion"
	"github.com/dshills/modalcore/internal/engine/operator"
	"github.com/dshills/modalcore/internal/engine/textobj"
	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/input/keymap"
	"github.com/dshills/modalcore/internal/input/mode"
	"github.com/dshills/modalcore/internal/logging"
)

// Status is the result of feeding one key to the composer.
type Status uint8

const (
	// AwaitingMore means the key was consumed and the command is not
	// complete yet.
	AwaitingMore Status = iota
	// Complete means Outcome.Command is ready to apply.
	Complete
	// Invalid means the composition was abandoned.
	Invalid
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case AwaitingMore:
		return "awaiting"
	case Complete:
		return "complete"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Outcome is returned by Extend and Flush.
type Outcome struct {
	Status  Status
	Command *Command
	// Reason says why an Invalid outcome was produced.
	Reason string
}

// View is what the composer reads from the buffer.
type View interface {
	buffer.Reader
	Cursor() buffer.Point
}

// Composer combines an operator with a count and a motion, text object or
// doubled operator.
type Composer struct {
	table   *keymap.Table
	view    View
	motions *motion.Context
	objects *textobj.Resolver

	active   bool
	op       operator.Kind
	opKeys   []key.Event
	count1   int
	count2   Count
	// countKeys is the number of digit keys typed into count2.
	countKeys int
	register  rune

	keys      []key.Event
	scope     textobj.Scope
	hasScope  bool
	charFor   *keymap.Binding
	lastMatch *keymap.Binding
}

// ComposerOption configures a Composer.
type ComposerOption func(*Composer)

// WithMotionContext shares the motion state (last find, section rule) of
// the session with the composer.
func WithMotionContext(ctx *motion.Context) ComposerOption {
	return func(c *Composer) {
		if ctx != nil {
			c.motions = ctx
		}
	}
}

// WithObjectResolver sets the resolver used for text objects.
func WithObjectResolver(r *textobj.Resolver) ComposerOption {
	return func(c *Composer) {
		if r != nil {
			c.objects = r
		}
	}
}

// NewComposer creates a composer that looks motions up in the
// operator-pending bindings of table and resolves them against view.
func NewComposer(table *keymap.Table, view View, opts ...ComposerOption) *Composer {
	c := &Composer{
		table:   table,
		view:    view,
		motions: motion.NewContext(),
		objects: textobj.NewResolver(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Begin starts composing operator op, triggered by opKeys. count is the
// count typed before the operator (0 for none) and register the register
// named with ", or 0.
func (c *Composer) Begin(op operator.Kind, opKeys []key.Event, count int, register rune) {
	c.Reset()
	c.active = true
	c.op = op
	c.opKeys = slices.Clone(opKeys)
	c.count1 = count
	c.register = register
}

// Reset abandons any composition in progress.
func (c *Composer) Reset() {
	c.active = false
	c.opKeys = nil
	c.count1 = 0
	c.count2.Reset()
	c.countKeys = 0
	c.register = 0
	c.keys = nil
	c.hasScope = false
	c.charFor = nil
	c.lastMatch = nil
}

// Active reports whether an operator is pending.
func (c *Composer) Active() bool {
	return c.active
}

// Pending returns the keys typed since the operator, in key notation, for
// display.
func (c *Composer) Pending() string {
	if !c.active {
		return ""
	}
	s := key.Format(c.opKeys) + c.count2.String() + key.Format(c.keys)
	if c.hasScope {
		s += string(c.scope.Prefix())
	}
	return s
}

// Extend feeds one key to the composer.
func (c *Composer) Extend(ev key.Event) Outcome {
	if !c.active {
		return Outcome{Status: Invalid, Reason: "no operator pending"}
	}
	if ev.IsEscape() {
		return c.invalid("cancelled")
	}

	if c.charFor != nil {
		if !ev.IsRune() {
			return c.invalid("expected a character")
		}
		c.keys = append(c.keys, ev)
		return c.completeMotion(c.charFor, string(ev.Rune))
	}

	if c.hasScope {
		obj, ok := textobj.Lookup(ev.Rune)
		if !ev.IsRune() || !ok {
			return c.invalid("unknown text object")
		}
		c.keys = append(c.keys, ev)
		return c.complete(Target{Kind: TargetObject, Object: obj, Scope: c.scope})
	}

	if len(c.keys) == 0 && ev.IsRune() && c.count2.Accumulate(ev.Rune) {
		c.countKeys++
		return Outcome{Status: AwaitingMore}
	}

	c.keys = append(c.keys, ev)

	if c.isDoubled() {
		return c.complete(Target{Kind: TargetLine})
	}
	if len(c.keys) == 1 && ev.IsRune() {
		if scope, ok := textobj.ScopeFor(ev.Rune); ok {
			c.scope = scope
			c.hasScope = true
			c.keys = c.keys[:0]
			return Outcome{Status: AwaitingMore}
		}
	}

	m := c.table.Lookup(mode.OperatorPending, c.keys)
	switch {
	case m.None():
		return c.invalid("not a motion")
	case m.Longer:
		c.lastMatch = m.Binding
		return Outcome{Status: AwaitingMore}
	default:
		return c.completeMotion(m.Binding, "")
	}
}

// Flush resolves an ambiguous multi-key motion after the sequence timeout:
// the longest complete match wins, otherwise the composition is abandoned.
// It does nothing while waiting for a character or an object letter.
func (c *Composer) Flush() Outcome {
	if !c.active || len(c.keys) == 0 || c.charFor != nil || c.hasScope {
		return Outcome{Status: AwaitingMore}
	}
	if c.lastMatch == nil {
		return c.invalid("incomplete motion")
	}
	return c.completeMotion(c.lastMatch, "")
}

// isDoubled reports whether the keys repeat the operator: the whole
// operator (dd, g~g~) or its last key (g~~, guu).
func (c *Composer) isDoubled() bool {
	if slices.Equal(c.keys, c.opKeys) {
		return true
	}
	return len(c.keys) == 1 && len(c.opKeys) > 1 && c.keys[0] == c.opKeys[len(c.opKeys)-1]
}

func (c *Composer) completeMotion(b *keymap.Binding, arg string) Outcome {
	mo, ok := motion.Lookup(b.Action)
	if !ok {
		return c.invalid("not a motion")
	}
	if (b.Char || mo.NeedsChar) && arg == "" {
		c.charFor = b
		c.lastMatch = nil
		return Outcome{Status: AwaitingMore}
	}
	return c.complete(Target{Kind: TargetMotion, Motion: mo, Arg: arg})
}

func (c *Composer) complete(t Target) Outcome {
	count := CombineCounts(c.count1, c.count2.Value())
	region, ok := c.region(t, count)
	if !ok {
		return c.invalid("target not found")
	}
	cmd := &Command{
		Operator:  c.op,
		Count:     count,
		Register:  c.register,
		Target:    t,
		Region:    region,
		Keys:      c.typedKeys(),
		CountKeys: c.countKeys,
	}
	c.Reset()
	return Outcome{Status: Complete, Command: cmd}
}

// typedKeys returns the keys of the command without either count.
func (c *Composer) typedKeys() []key.Event {
	out := slices.Clone(c.opKeys)
	if c.hasScope {
		out = append(out, key.Rune(c.scope.Prefix()))
	}
	out = append(out, c.keys...)
	return out
}

func (c *Composer) invalid(reason string) Outcome {
	logging.Debug("operator abandoned", "operator", c.op.String(), "pending", c.Pending(), "reason", reason)
	c.Reset()
	return Outcome{Status: Invalid, Reason: reason}
}
