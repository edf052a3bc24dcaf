package session

import (
	"errors"
	"strings"
	"time"

	"github.com/dshills/modalcore/internal/dispatcher"
	"github.com/dshills/modalcore/internal/dispatcher/execctx"
	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/history"
	"github.com/dshills/modalcore/internal/engine/motion"
	"github.com/dshills/modalcore/internal/engine/operator"
	"github.com/dshills/modalcore/internal/engine/textobj"
	"github.com/dshills/modalcore/internal/input"
	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/input/keymap"
	"github.com/dshills/modalcore/internal/input/macro"
	"github.com/dshills/modalcore/internal/input/mode"
	"github.com/dshills/modalcore/internal/input/vim"
	"github.com/dshills/modalcore/internal/logging"
)

// Session is one modal editing session over a buffer. It is not safe for
// concurrent use; the host calls it from a single event loop.
type Session struct {
	buf        buffer.Facade
	state      *execctx.State
	table      *keymap.Table
	dispatcher *dispatcher.Dispatcher
	resolver   *input.Resolver
}

// New creates a session editing buf.
func New(buf buffer.Facade, opts ...Option) *Session {
	o := Options{
		SequenceTimeout: input.DefaultConfig().SequenceTimeout,
		MaxReplayDepth:  macro.DefaultMaxReplayDepth,
		HistoryDepth:    history.DefaultMaxDepth,
		Editing:         operator.DefaultSettings,
		SentenceEnders:  textobj.DefaultSentenceEnders,
		Section:         motion.DefaultSection,
		Repeatable:      input.DefaultRepeatable,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Table == nil {
		o.Table = keymap.Default()
	}

	objects := textobj.NewResolver(textobj.WithSentenceEnders(o.SentenceEnders))

	state := execctx.NewState(buf)
	state.Motions = motion.NewContext(motion.WithSection(o.Section), motion.WithSentences(objects))
	state.Objects = textobj.NewCache(objects, 0)
	if o.Clipboard != nil {
		state.Registers.SetClipboard(o.Clipboard)
	}

	cfg := dispatcher.DefaultConfig().
		WithHistoryDepth(o.HistoryDepth).
		WithSettings(o.Editing)
	d := dispatcher.New(state, cfg)

	composer := vim.NewComposer(o.Table, buf,
		vim.WithMotionContext(state.Motions),
		vim.WithObjectResolver(objects),
	)

	rcfg := input.DefaultConfig()
	rcfg.SequenceTimeout = o.SequenceTimeout
	rcfg.MaxReplayDepth = o.MaxReplayDepth
	rcfg.Repeatable = o.Repeatable

	r := input.NewResolver(o.Table, composer, d,
		input.WithConfig(rcfg),
		input.WithModes(state.Modes),
		input.WithRegisters(state.Registers),
	)

	return &Session{
		buf:        buf,
		state:      state,
		table:      o.Table,
		dispatcher: d,
		resolver:   r,
	}
}

// Close releases the session's subscriptions.
func (s *Session) Close() {
	s.dispatcher.Close()
}

// SubmitKey feeds one key event to the session.
func (s *Session) SubmitKey(ev key.Event) input.Outcome {
	return s.resolver.Submit(ev)
}

// SubmitKeys parses keys in key notation, such as "3dw" or "ihi<Esc>",
// and submits them in order. It returns the outcome of the last key.
func (s *Session) SubmitKeys(keys string) (input.Outcome, error) {
	events, err := key.ParseSequence(keys)
	if err != nil {
		return input.Outcome{}, err
	}
	var out input.Outcome
	for _, ev := range events {
		out = s.resolver.Submit(ev)
	}
	return out, nil
}

// FlushPendingOnTimeout resolves a stalled multi-key sequence. The host
// calls it when Timeout has elapsed after a Partial outcome.
func (s *Session) FlushPendingOnTimeout() input.Outcome {
	return s.resolver.FlushPendingOnTimeout()
}

// Timeout returns how long the host should wait after a Partial outcome
// before calling FlushPendingOnTimeout.
func (s *Session) Timeout() time.Duration {
	return s.resolver.Timeout()
}

// Undo reverts the most recent change and returns the cursor it restored.
// ok is false when there is nothing to undo. A pending command or an open
// insert session is ended first.
func (s *Session) Undo() (cursor buffer.Point, ok bool) {
	return s.step(s.dispatcher.Undo)
}

// Redo reapplies the most recently undone change. ok is false when there
// is nothing to redo.
func (s *Session) Redo() (cursor buffer.Point, ok bool) {
	return s.step(s.dispatcher.Redo)
}

func (s *Session) step(fn func() error) (buffer.Point, bool) {
	if s.resolver.Pending() || !s.resolver.Modes().Is(mode.Normal) {
		s.resolver.SetMode(mode.Normal)
	}
	if err := fn(); err != nil {
		if !errors.Is(err, history.ErrNothingToUndo) && !errors.Is(err, history.ErrNothingToRedo) {
			logging.Warn("history step failed", "error", err)
		}
		return s.buf.Cursor(), false
	}
	return s.buf.Cursor(), true
}

// StartRecording starts recording keys into register reg. A recording in
// progress is stopped first.
func (s *Session) StartRecording(reg rune) error {
	return s.resolver.StartRecording(reg)
}

// StopRecording stops the active recording and returns its register.
func (s *Session) StopRecording() (rune, error) {
	return s.resolver.StopRecording()
}

// Recording returns the register being recorded into, if any.
func (s *Session) Recording() (rune, bool) {
	return s.resolver.Recording()
}

// PlayMacro replays register reg count times as if its keys were typed.
// '@' replays the last played register. An empty register does nothing.
func (s *Session) PlayMacro(reg rune, count int) error {
	return s.resolver.PlayMacro(reg, count)
}

// Mode returns the current mode.
func (s *Session) Mode() mode.Mode {
	return s.resolver.Mode()
}

// SetMode switches modes, abandoning any pending command.
func (s *Session) SetMode(m mode.Mode) {
	s.resolver.SetMode(m)
}

// PendingKeys returns the keys of the command being typed, for display.
func (s *Session) PendingKeys() string {
	return s.resolver.PendingKeys()
}

// Cursor returns the cursor position.
func (s *Session) Cursor() buffer.Point {
	return s.buf.Cursor()
}

// Lines returns the buffer contents line by line.
func (s *Session) Lines() []string {
	return buffer.Lines(s.buf)
}

// Text returns the buffer contents joined with newlines.
func (s *Session) Text() string {
	return strings.Join(buffer.Lines(s.buf), "\n")
}

// Buffer returns the buffer being edited.
func (s *Session) Buffer() buffer.Facade {
	return s.buf
}

// History returns the undo history.
func (s *Session) History() *history.History {
	return s.state.History
}

// Registers returns the register store.
func (s *Session) Registers() *vim.RegisterStore {
	return s.state.Registers
}

// Macros returns the macro view of the registers.
func (s *Session) Macros() *macro.Registers {
	return s.resolver.Macros()
}

// LastPlayed returns the register @@ replays, or 0.
func (s *Session) LastPlayed() rune {
	return s.resolver.Replay().LastPlayed()
}

// LoadMacros reads macro registers saved by SaveMacros. A missing file
// leaves the registers as they are.
func (s *Session) LoadMacros(path string) error {
	last, err := macro.Load(s.Macros(), path)
	if err != nil {
		return err
	}
	if last != 0 {
		s.resolver.Replay().SetLastPlayed(last)
	}
	return nil
}

// SaveMacros writes the macro registers and the last played register to
// path.
func (s *Session) SaveMacros(path string) error {
	return macro.Save(s.Macros(), s.LastPlayed(), path)
}

// Table returns the binding table.
func (s *Session) Table() *keymap.Table {
	return s.table
}

// Metrics returns the resolver metrics.
func (s *Session) Metrics() *input.Metrics {
	return s.resolver.Metrics()
}

// Dispatcher returns the executor behind the resolver, for hosts that
// register extra handlers.
func (s *Session) Dispatcher() *dispatcher.Dispatcher {
	return s.dispatcher
}
