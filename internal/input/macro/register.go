package macro

import (
	"maps"
	"slices"
	"strings"
	"unicode"

	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/input/vim"
)

// IsValidRegister reports whether r can hold a macro: a-z, A-Z (append)
// or 0-9.
func IsValidRegister(r rune) bool {
	return IsLetterRegister(r) || IsAppendRegister(r) || IsDigitRegister(r)
}

// IsLetterRegister reports whether r is a-z.
func IsLetterRegister(r rune) bool {
	return r >= 'a' && r <= 'z'
}

// IsAppendRegister reports whether r is A-Z. Recording into an uppercase
// register appends to its lowercase register.
func IsAppendRegister(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

// IsDigitRegister reports whether r is 0-9.
func IsDigitRegister(r rune) bool {
	return r >= '0' && r <= '9'
}

// NormalizeRegister returns the register a name reads from, or 0 for an
// invalid name.
func NormalizeRegister(r rune) rune {
	if !IsValidRegister(r) {
		return 0
	}
	return unicode.ToLower(r)
}

// Registers stores macros in a register store as key notation.
type Registers struct {
	store *vim.RegisterStore
}

// NewRegisters wraps store.
func NewRegisters(store *vim.RegisterStore) *Registers {
	return &Registers{store: store}
}

// Get returns the keys held by register reg. Text that was yanked rather
// than recorded is read as typed keys, with line breaks as <CR>.
func (r *Registers) Get(reg rune) []key.Event {
	c, ok := r.store.Get(reg)
	if !ok || c.Text == "" {
		return nil
	}
	return Decode(c.Text, c.Linewise)
}

// Set stores events in register reg. An uppercase register appends.
func (r *Registers) Set(reg rune, events []key.Event) {
	r.store.Set(reg, vim.Content{Text: key.Format(events)})
}

// All returns every non-empty macro register, keyed by lowercase name.
func (r *Registers) All() map[rune][]key.Event {
	out := make(map[rune][]key.Event)
	for _, reg := range AllRegisters() {
		if events := r.Get(reg); len(events) > 0 {
			out[reg] = events
		}
	}
	return out
}

// Names returns the registers All would return, sorted.
func (r *Registers) Names() []rune {
	return slices.Sorted(maps.Keys(r.All()))
}

// AllRegisters returns a-z followed by 0-9.
func AllRegisters() []rune {
	out := make([]rune, 0, 36)
	for c := 'a'; c <= 'z'; c++ {
		out = append(out, c)
	}
	for c := '0'; c <= '9'; c++ {
		out = append(out, c)
	}
	return out
}

// Decode parses register text into keys. Text that is not valid key
// notation is taken character by character.
func Decode(text string, linewise bool) []key.Event {
	events, err := key.ParseSequence(text)
	if err != nil {
		events = events[:0]
		for _, c := range strings.ToValidUTF8(text, "") {
			events = append(events, key.Rune(c))
		}
	}
	for i, ev := range events {
		if ev.IsRune() {
			switch ev.Rune {
			case '\n', '\r':
				events[i] = key.Special(key.KeyEnter, key.ModNone)
			case '\t':
				events[i] = key.Special(key.KeyTab, key.ModNone)
			}
		}
	}
	if linewise {
		events = append(events, key.Special(key.KeyEnter, key.ModNone))
	}
	return events
}
