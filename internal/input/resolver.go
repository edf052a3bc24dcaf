package input

import (
	"errors"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dshills/modalcore/internal/engine/operator"
	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/input/keymap"
	"github.com/dshills/modalcore/internal/input/macro"
	"github.com/dshills/modalcore/internal/input/mode"
	"github.com/dshills/modalcore/internal/input/vim"
	"github.com/dshills/modalcore/internal/logging"
)

// Config configures a Resolver.
type Config struct {
	// SequenceTimeout is how long a host waits after a Partial outcome
	// before calling FlushPendingOnTimeout. The resolver runs no timers.
	// Default: 1000ms
	SequenceTimeout time.Duration

	// MaxReplayDepth bounds nested macro and repeat playback.
	MaxReplayDepth int

	// Repeatable lists the actions "." repeats.
	Repeatable []string
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SequenceTimeout: 1000 * time.Millisecond,
		MaxReplayDepth:  macro.DefaultMaxReplayDepth,
		Repeatable:      DefaultRepeatable,
	}
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) Option {
	return func(r *Resolver) {
		r.config = cfg
	}
}

// WithModes shares a mode manager with the executor, which switches modes
// when it enters or leaves insert mode.
func WithModes(m *mode.Manager) Option {
	return func(r *Resolver) {
		if m != nil {
			r.modes = m
		}
	}
}

// WithRegisters sets the register store macros are recorded into.
func WithRegisters(store *vim.RegisterStore) Option {
	return func(r *Resolver) {
		if store != nil {
			r.registers = store
		}
	}
}

// WithMetrics sets the metrics tracker.
func WithMetrics(m *Metrics) Option {
	return func(r *Resolver) {
		if m != nil {
			r.metrics = m
		}
	}
}

// Resolver turns key events into actions. It resolves multi-key bindings,
// counts, registers and operators, and owns "." repeat and macros.
//
// A Resolver is not safe for concurrent use. Hosts feed it from a single
// event loop; replays re-enter it synchronously from that loop.
type Resolver struct {
	table      *keymap.Table
	composer   *vim.Composer
	exec       Executor
	modes      *mode.Manager
	config     Config
	repeatable map[string]bool
	metrics    *Metrics

	registers *vim.RegisterStore
	macros    *macro.Registers
	guard     *macro.Replay
	recorder  *macro.Recorder
	player    *macro.Player

	// Pending command state.
	pending   []key.Event
	lastMatch *keymap.Binding
	matchLen  int
	charFor   *keymap.Binding
	count     vim.Count
	register  rune
	cmdKeys   []key.Event
	source    ActionSource

	repeat   *RepeatRecord
	building *RepeatRecord
}

// NewResolver creates a resolver that looks keys up in table, composes
// operators with composer and hands resolved actions to exec.
func NewResolver(table *keymap.Table, composer *vim.Composer, exec Executor, opts ...Option) *Resolver {
	r := &Resolver{
		table:    table,
		composer: composer,
		exec:     exec,
		config:   DefaultConfig(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.modes == nil {
		r.modes = mode.NewManager()
	}
	if r.registers == nil {
		r.registers = vim.NewRegisterStore()
	}
	if r.metrics == nil {
		r.metrics = NewMetrics()
	}

	r.repeatable = make(map[string]bool, len(r.config.Repeatable))
	for _, name := range r.config.Repeatable {
		r.repeatable[name] = true
	}
	r.macros = macro.NewRegisters(r.registers)
	r.guard = macro.NewReplay(r.config.MaxReplayDepth)
	r.recorder = macro.NewRecorder(r.guard, r.macros.Set)
	r.player = macro.NewPlayer(r.guard, r.macros)
	return r
}

// Submit processes one key event.
func (r *Resolver) Submit(ev key.Event) Outcome {
	start := time.Now()
	ev = normalize(ev)

	wasRecording := r.recorder.IsRecording()
	inInsert := r.modes.Is(mode.Insert)

	out := r.submit(ev)

	// The keys that start and stop a recording are not part of it.
	if wasRecording && r.recorder.IsRecording() {
		r.recorder.Record(ev)
	}
	if r.building != nil {
		if inInsert {
			r.building.Keys = append(r.building.Keys, ev)
		}
		if !r.modes.Is(mode.Insert) {
			r.finishInsert()
		}
	}

	r.metrics.RecordKey(time.Since(start))
	r.metrics.recordOutcome(out)
	return out
}

// FlushPendingOnTimeout resolves an ambiguous pending sequence: the last
// complete match runs and the keys after it are processed again, or the
// sequence is discarded. In insert mode discarded keys are inserted as
// text. Counts, registers and character arguments keep waiting.
func (r *Resolver) FlushPendingOnTimeout() Outcome {
	if r.modes.Is(mode.OperatorPending) && r.composer != nil {
		out := r.composer.Flush()
		if out.Status == vim.AwaitingMore {
			return partial
		}
		r.metrics.RecordSequenceTimeout()
		logging.Debug("sequence timeout", "mode", mode.OperatorPending.String(), "keys", key.Format(r.cmdKeys))
		return r.operatorOutcome(out)
	}
	if r.charFor != nil || len(r.pending) == 0 {
		if r.Pending() {
			return partial
		}
		return ignored
	}

	r.metrics.RecordSequenceTimeout()
	logging.Debug("sequence timeout", "mode", r.modes.Current().String(), "keys", key.Format(r.pending))
	return r.unmatched(r.modes.Current())
}

func normalize(ev key.Event) key.Event {
	ev = ev.Normalize()
	if ev.IsEscape() {
		return key.Escape
	}
	return ev
}

func (r *Resolver) submit(ev key.Event) Outcome {
	switch r.modes.Current() {
	case mode.OperatorPending:
		if r.composer == nil || !r.composer.Active() {
			r.modes.Switch(mode.Normal)
			return r.submit(ev)
		}
		r.cmdKeys = append(r.cmdKeys, ev)
		return r.operatorOutcome(r.composer.Extend(ev))

	case mode.Insert:
		if r.charFor != nil {
			return r.takeChar(ev)
		}
		return r.match(mode.Insert, ev)

	default:
		if r.charFor != nil {
			return r.takeChar(ev)
		}
		if len(r.pending) == 0 && ev.IsRune() && r.count.Accumulate(ev.Rune) {
			return partial
		}
		m := r.modes.Current()
		if !m.IsVisual() {
			m = mode.Normal
		}
		return r.match(m, ev)
	}
}

func (r *Resolver) match(m mode.Mode, ev key.Event) Outcome {
	r.cmdKeys = append(r.cmdKeys, ev)
	r.pending = append(r.pending, ev)

	res := r.table.Lookup(m, r.pending)
	switch {
	case res.None():
		return r.unmatched(m)
	case res.Longer:
		if res.Binding != nil {
			r.lastMatch = res.Binding
			r.matchLen = len(r.pending)
		}
		return partial
	default:
		r.pending = nil
		r.lastMatch = nil
		return r.resolve(res.Binding)
	}
}

// unmatched handles a pending sequence that can no longer become a
// binding.
func (r *Resolver) unmatched(m mode.Mode) Outcome {
	seq := r.pending
	r.pending = nil

	if b := r.lastMatch; b != nil {
		rest := slices.Clone(seq[r.matchLen:])
		r.lastMatch = nil
		r.cmdKeys = r.cmdKeys[:max(0, len(r.cmdKeys)-len(rest))]
		out := r.resolve(b)
		for _, ev := range rest {
			out = r.submit(ev)
		}
		return out
	}

	if m == mode.Insert && len(seq) > 0 {
		r.resetCommand()
		out := ignored
		if text := seq[0].Text(); text != "" {
			out = r.execute(&Action{
				Name:   ActionInsertChar,
				Arg:    text,
				Keys:   seq[:1],
				Source: r.source,
			}, 0)
		}
		for _, ev := range seq[1:] {
			out = r.submit(ev)
		}
		return out
	}

	logging.Debug("key sequence discarded", "mode", m.String(), "keys", key.Format(seq))
	r.resetCommand()
	return ignored
}

func (r *Resolver) resolve(b *keymap.Binding) Outcome {
	switch {
	case b.Action == ActionMacroRecord && r.recorder.IsRecording():
		return r.stopRecording()
	case b.IsOperator():
		return r.beginOperator(b)
	case b.Char:
		r.charFor = b
		return partial
	}
	return r.dispatch(b, "")
}

func (r *Resolver) beginOperator(b *keymap.Binding) Outcome {
	op, ok := operator.Lookup(b.Operator)
	keys, err := key.ParseSequence(b.Keys)
	if !ok || err != nil || r.composer == nil {
		logging.Debug("operator unavailable", "operator", b.Operator, "keys", b.Keys)
		r.resetCommand()
		return ignored
	}
	r.composer.Begin(op, keys, r.count.Value(), r.register)
	r.pending = nil
	r.modes.Switch(mode.OperatorPending)
	return partial
}

func (r *Resolver) takeChar(ev key.Event) Outcome {
	b := r.charFor
	r.charFor = nil
	arg := ev.Text()
	if ev.IsEscape() || arg == "" {
		r.resetCommand()
		return ignored
	}
	r.cmdKeys = append(r.cmdKeys, ev)
	return r.dispatch(b, arg)
}

func (r *Resolver) dispatch(b *keymap.Binding, arg string) Outcome {
	switch b.Action {
	case ActionRegisterSelect:
		reg, _ := utf8.DecodeRuneInString(arg)
		if !vim.IsValidRegister(reg) {
			logging.Debug("invalid register", "register", arg)
			r.resetCommand()
			return ignored
		}
		// The count and the register both carry over to the command.
		r.register = reg
		return partial
	case ActionCancel:
		r.resetCommand()
		return ignored
	}

	typed := r.count.Value()
	a := &Action{
		Name:     b.Action,
		Count:    typed,
		Register: r.register,
		Arg:      arg,
		Keys:     slices.Clone(r.cmdKeys),
		Source:   r.source,
	}
	r.resetCommand()

	switch a.Name {
	case ActionRepeat:
		return r.repeatLast(a)
	case ActionMacroRecord:
		reg, _ := utf8.DecodeRuneInString(arg)
		if err := r.recorder.Start(reg); err != nil {
			return Outcome{Kind: Ignored, Action: a, Err: err}
		}
		return Outcome{Kind: Dispatched, Action: a}
	case ActionMacroPlay:
		return r.playMacro(a)
	}
	return r.execute(a, typed)
}

func (r *Resolver) operatorOutcome(out vim.Outcome) Outcome {
	switch out.Status {
	case vim.AwaitingMore:
		return partial
	case vim.Invalid:
		r.resetCommand()
		r.modes.Switch(mode.Normal)
		return ignored
	}

	cmd := out.Command
	// Both counts fold into cmd.Count; the keys keep the register prefix
	// and drop the motion count so that "." can apply its own.
	prefix := max(0, len(r.cmdKeys)-len(cmd.Keys)-cmd.CountKeys)
	a := &Action{
		Name:     OperatorAction(cmd.Operator),
		Count:    cmd.Count,
		Register: cmd.Register,
		Command:  cmd,
		Keys:     append(slices.Clone(r.cmdKeys[:prefix]), cmd.Keys...),
		Source:   r.source,
	}
	r.resetCommand()
	r.modes.Switch(mode.Normal)
	return r.execute(a, cmd.Count)
}

// OperatorAction returns the action name of operator k.
func OperatorAction(k operator.Kind) string {
	return "operator." + k.String()
}

func (r *Resolver) execute(a *Action, typed int) Outcome {
	// Changes made on a visual selection depend on the selection, which
	// "." cannot rebuild, so they leave the record alone.
	visual := r.modes.Current().IsVisual()
	if err := r.exec.Execute(*a); err != nil {
		logging.Debug("action not executed", "action", a.Name, "error", err)
		return Outcome{Kind: Ignored, Action: a, Err: err}
	}

	if !visual && !r.guard.Replaying() && r.repeatable[a.Name] {
		rec := &RepeatRecord{Action: a.Name, Keys: a.Keys, Count: typed}
		if r.modes.Is(mode.Insert) {
			r.building = rec
		} else {
			r.repeat = rec
			r.building = nil
		}
	}
	return Outcome{Kind: Dispatched, Action: a}
}

// finishInsert completes the repeat record of an insert session.
func (r *Resolver) finishInsert() {
	rec := r.building
	r.building = nil
	if n := len(rec.Keys); n == 0 || !rec.Keys[n-1].IsEscape() {
		rec.Keys = append(rec.Keys, key.Escape)
	}
	r.repeat = rec
}

func (r *Resolver) repeatLast(a *Action) Outcome {
	if r.repeat == nil {
		return Outcome{Kind: Ignored, Action: a}
	}
	// A count given to "." sticks for later repeats, as in Vim.
	if a.Count > 0 {
		r.repeat.Count = a.Count
	}
	rec := r.repeat.Clone()

	exit, err := r.guard.Enter(0)
	if err != nil {
		logging.Debug("repeat refused", "error", err)
		return Outcome{Kind: Ignored, Action: a, Err: err}
	}
	defer exit()

	prev := r.source
	r.source = SourceRepeat
	defer func() { r.source = prev }()

	var last Outcome
	for _, ev := range rec.events(a.Count) {
		r.metrics.RecordReplayedKey()
		if last = r.submit(ev); last.Err != nil {
			break
		}
	}
	return Outcome{Kind: Dispatched, Action: a, Err: last.Err}
}

func (r *Resolver) playMacro(a *Action) Outcome {
	reg, _ := utf8.DecodeRuneInString(a.Arg)

	prev := r.source
	r.source = SourceMacro
	defer func() { r.source = prev }()

	err := r.player.Play(reg, a.Count, func(ev key.Event) error {
		r.metrics.RecordReplayedKey()
		return r.submit(normalize(ev)).Err
	})
	switch {
	case err == nil:
		return Outcome{Kind: Dispatched, Action: a}
	case errors.Is(err, macro.ErrRecursive):
		// Refusing only the nested playback lets the outer one finish.
		logging.Debug("recursive macro refused", "register", string(reg))
		return Outcome{Kind: Ignored, Action: a}
	case errors.Is(err, macro.ErrInvalidRegister):
		return Outcome{Kind: Ignored, Action: a, Err: err}
	default:
		logging.Debug("macro playback stopped", "register", string(reg), "error", err)
		return Outcome{Kind: Dispatched, Action: a, Err: err}
	}
}

func (r *Resolver) stopRecording() Outcome {
	a := &Action{Name: ActionMacroRecord, Keys: slices.Clone(r.cmdKeys), Source: r.source}
	r.resetCommand()
	if _, _, err := r.recorder.Stop(); err != nil {
		return Outcome{Kind: Ignored, Action: a, Err: err}
	}
	return Outcome{Kind: Dispatched, Action: a}
}

func (r *Resolver) resetCommand() {
	r.pending = nil
	r.lastMatch = nil
	r.matchLen = 0
	r.charFor = nil
	r.count.Reset()
	r.register = 0
	r.cmdKeys = nil
}

// SetMode switches to m and abandons any pending sequence, count, register
// and operator.
func (r *Resolver) SetMode(m mode.Mode) {
	r.resetCommand()
	if r.composer != nil {
		r.composer.Reset()
	}
	r.modes.Switch(m)
	if r.building != nil && m != mode.Insert {
		r.finishInsert()
	}
}

// Mode returns the current mode.
func (r *Resolver) Mode() mode.Mode {
	return r.modes.Current()
}

// Modes returns the mode manager.
func (r *Resolver) Modes() *mode.Manager {
	return r.modes
}

// Pending reports whether the resolver is in the middle of a command.
func (r *Resolver) Pending() bool {
	return len(r.cmdKeys) > 0 || r.count.Active() || r.charFor != nil || r.modes.Is(mode.OperatorPending)
}

// PendingKeys returns the keys of the command being typed, for display.
func (r *Resolver) PendingKeys() string {
	var b strings.Builder
	b.WriteString(r.count.String())
	b.WriteString(key.Format(r.cmdKeys))
	return b.String()
}

// Timeout returns the configured sequence timeout.
func (r *Resolver) Timeout() time.Duration {
	return r.config.SequenceTimeout
}

// LastRepeat returns the record "." replays.
func (r *Resolver) LastRepeat() (RepeatRecord, bool) {
	if r.repeat == nil {
		return RepeatRecord{}, false
	}
	return r.repeat.Clone(), true
}

// Repeatable reports whether "." records action name.
func (r *Resolver) Repeatable(name string) bool {
	return r.repeatable[name]
}

// StartRecording starts recording keys into register reg.
func (r *Resolver) StartRecording(reg rune) error {
	return r.recorder.Start(reg)
}

// StopRecording stops the active recording and returns its register.
func (r *Resolver) StopRecording() (rune, error) {
	reg, _, err := r.recorder.Stop()
	return reg, err
}

// Recording returns the register being recorded into, if any.
func (r *Resolver) Recording() (rune, bool) {
	if !r.recorder.IsRecording() {
		return 0, false
	}
	return r.recorder.Register(), true
}

// PlayMacro replays register reg count times, as typing {count}@{reg}
// would. Pending input is abandoned first.
func (r *Resolver) PlayMacro(reg rune, count int) error {
	if !r.guard.Replaying() {
		r.resetCommand()
	}
	return r.playMacro(&Action{Name: ActionMacroPlay, Arg: string(reg), Count: count, Source: SourceAPI}).Err
}

// Replaying reports whether a macro or repeat is being replayed.
func (r *Resolver) Replaying() bool {
	return r.guard.Replaying()
}

// Registers returns the register store.
func (r *Resolver) Registers() *vim.RegisterStore {
	return r.registers
}

// Macros returns the macro view of the register store.
func (r *Resolver) Macros() *macro.Registers {
	return r.macros
}

// Replay returns the replay guard shared by both recorders.
func (r *Resolver) Replay() *macro.Replay {
	return r.guard
}

// Metrics returns the metrics tracker.
func (r *Resolver) Metrics() *Metrics {
	return r.metrics
}
