package session

import (
	"time"

	"github.com/dshills/modalcore/internal/engine/motion"
	"github.com/dshills/modalcore/internal/engine/operator"
	"github.com/dshills/modalcore/internal/input/keymap"
	"github.com/dshills/modalcore/internal/input/vim"
)

// Options holds the plain data a session is built from. Hosts that load
// settings from files convert them into Options; the session never parses
// configuration itself.
type Options struct {
	// Table is the binding table. Default: keymap.Default().
	Table *keymap.Table

	// SequenceTimeout is reported by Timeout for the host's timer.
	SequenceTimeout time.Duration

	// MaxReplayDepth bounds nested macro and repeat playback.
	MaxReplayDepth int

	// HistoryDepth bounds the undo stack.
	HistoryDepth int

	// Editing shapes indentation and tab insertion.
	Editing operator.Settings

	// SentenceEnders are the characters that end a sentence.
	SentenceEnders string

	// Section reports whether a line starts a section for [[ and ]].
	Section motion.SectionFunc

	// Clipboard backs the + and * registers when set.
	Clipboard vim.ClipboardProvider

	// Repeatable overrides the actions "." repeats.
	Repeatable []string
}

// Option configures a Session.
type Option func(*Options)

// WithTable sets the binding table.
func WithTable(t *keymap.Table) Option {
	return func(o *Options) {
		if t != nil {
			o.Table = t
		}
	}
}

// WithSequenceTimeout sets the multi-key sequence timeout.
func WithSequenceTimeout(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.SequenceTimeout = d
		}
	}
}

// WithMaxReplayDepth sets how deeply macros and "." may nest.
func WithMaxReplayDepth(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxReplayDepth = n
		}
	}
}

// WithHistoryDepth sets the maximum number of undo frames kept.
func WithHistoryDepth(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.HistoryDepth = n
		}
	}
}

// WithEditing sets the indentation settings.
func WithEditing(s operator.Settings) Option {
	return func(o *Options) {
		o.Editing = s
	}
}

// WithSentenceEnders sets the sentence-ending punctuation.
func WithSentenceEnders(enders string) Option {
	return func(o *Options) {
		if enders != "" {
			o.SentenceEnders = enders
		}
	}
}

// WithSection sets the section marker predicate.
func WithSection(fn motion.SectionFunc) Option {
	return func(o *Options) {
		if fn != nil {
			o.Section = fn
		}
	}
}

// WithClipboard connects the system clipboard registers.
func WithClipboard(c vim.ClipboardProvider) Option {
	return func(o *Options) {
		o.Clipboard = c
	}
}

// WithRepeatable replaces the list of actions "." repeats.
func WithRepeatable(names ...string) Option {
	return func(o *Options) {
		o.Repeatable = names
	}
}
