package execctx

import (
	"strings"

	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/history"
	"github.com/dshills/modalcore/internal/engine/motion"
	"github.com/dshills/modalcore/internal/engine/operator"
	"github.com/dshills/modalcore/internal/engine/textobj"
	"github.com/dshills/modalcore/internal/input/mode"
	"github.com/dshills/modalcore/internal/input/vim"
	"github.com/dshills/modalcore/internal/logging"
)

// State is the editing state of one session, shared by every handler.
type State struct {
	Buffer    buffer.Facade
	History   *history.History
	Registers *vim.RegisterStore
	Modes     *mode.Manager
	Motions   *motion.Context
	Objects   *textobj.Cache
	Settings  operator.Settings

	insert *InsertSession
	anchor buffer.Point
}

// NewState creates a state for buf with fresh history, registers, modes,
// motion context and text-object cache.
func NewState(buf buffer.Facade) *State {
	return &State{
		Buffer:    buf,
		History:   history.NewHistory(0),
		Registers: vim.NewRegisterStore(),
		Modes:     mode.NewManager(),
		Motions:   motion.NewContext(),
		Objects:   textobj.NewCache(nil, 0),
		Settings:  operator.DefaultSettings,
	}
}

// Begin starts a transaction for a one-shot command.
func (s *State) Begin(label string) *history.Transaction {
	return history.Begin(s.Buffer, label)
}

// Commit moves the cursor to after and records the transaction as one
// undo frame. It reports whether anything changed.
func (s *State) Commit(tx *history.Transaction, after buffer.Point) bool {
	s.Buffer.SetCursor(after)
	f := tx.Commit(s.Buffer.Cursor())
	s.History.Record(f)
	return f != nil
}

// InsertSession is an open insert: one transaction from the command that
// entered insert mode to the <Esc> that leaves it.
type InsertSession struct {
	Tx *history.Transaction
	// Count repeats the typed text when the session ends, as 3ihi<Esc>
	// does.
	Count int
	// Linewise repetitions go on new lines, as for 3o.
	Linewise bool

	typed []string
}

// Typed returns the text typed in the session.
func (is *InsertSession) Typed() string {
	return strings.Join(is.typed, "")
}

// Record notes text typed in the session.
func (is *InsertSession) Record(text string) {
	is.typed = append(is.typed, buffer.Graphemes(text)...)
}

// Erase drops the last typed grapheme. It reports false when the erased
// text was not typed in this session.
func (is *InsertSession) Erase() bool {
	if len(is.typed) == 0 {
		return false
	}
	is.typed = is.typed[:len(is.typed)-1]
	return true
}

// StartInsert opens an insert session on tx and switches to insert mode.
// An open session is closed first.
func (s *State) StartInsert(tx *history.Transaction, count int, linewise bool) {
	if s.insert != nil {
		s.EndInsert()
	}
	s.insert = &InsertSession{Tx: tx, Count: count, Linewise: linewise}
	s.Modes.Switch(mode.Insert)
}

// Insert returns the open insert session. Insert mode entered without a
// command, as a host calling SetMode does, gets a session on first use.
func (s *State) Insert() *InsertSession {
	if s.insert == nil {
		s.insert = &InsertSession{Tx: s.Begin("insert"), Count: 1}
	}
	return s.insert
}

// InsertActive reports whether an insert session is open.
func (s *State) InsertActive() bool {
	return s.insert != nil
}

// EndInsert closes the insert session: the typed text is repeated for the
// count, the cursor steps back onto the last inserted character and the
// whole session is recorded as one undo frame.
func (s *State) EndInsert() {
	is := s.insert
	if is == nil {
		return
	}
	s.insert = nil

	if text := is.Typed(); text != "" && is.Count > 1 {
		for range is.Count - 1 {
			cur := is.Tx.Cursor()
			if is.Linewise {
				at := buffer.Point{Line: cur.Line, Column: buffer.LineLen(is.Tx, cur.Line)}
				is.Tx.SetCursor(is.Tx.Insert(at, "\n"+text))
				continue
			}
			is.Tx.SetCursor(is.Tx.Insert(cur, text))
		}
	}

	cur := is.Tx.Cursor()
	if cur.Column > 0 {
		cur.Column--
	}
	if s.Commit(is.Tx, cur) {
		logging.Debug("insert committed", "label", is.Tx.Label(), "typed", len(is.typed))
	}
	s.Registers.SetLastInserted(is.Typed())
}

// ClampNormal keeps the cursor on a character, as normal mode requires:
// never past the last character of its line.
func (s *State) ClampNormal() {
	p := buffer.Clamp(s.Buffer, s.Buffer.Cursor())
	if n := buffer.LineLen(s.Buffer, p.Line); p.Column >= n {
		p.Column = max(n-1, 0)
	}
	if p != s.Buffer.Cursor() {
		s.Buffer.SetCursor(p)
	}
}
