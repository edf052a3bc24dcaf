package key

import "unicode"

// Event is a single key press.
type Event struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
}

// Rune returns the event for typing r. Shift is folded into the character.
func Rune(r rune) Event {
	return Event{Key: KeyRune, Rune: r}
}

// Ctrl returns the event for r with Control held.
func Ctrl(r rune) Event {
	return Event{Key: KeyRune, Rune: unicode.ToLower(r), Modifiers: ModCtrl}
}

// Special returns the event for a non-character key.
func Special(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// Escape is the <Esc> event.
var Escape = Special(KeyEscape, ModNone)

// Normalize drops Shift from character events and lowercases controlled
// characters, so that events from different sources compare equal.
func (e Event) Normalize() Event {
	if e.Key == KeyRune {
		e.Modifiers = e.Modifiers.Without(ModShift)
		if e.Modifiers.Has(ModCtrl) {
			e.Rune = unicode.ToLower(e.Rune)
		}
	}
	return e
}

// IsRune reports whether e is an unmodified character key.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0 && e.Modifiers.Without(ModShift) == ModNone
}

// IsDigit reports whether e is an unmodified ASCII digit.
func (e Event) IsDigit() bool {
	return e.IsRune() && e.Rune >= '0' && e.Rune <= '9'
}

// IsEscape reports whether e is <Esc> or its control equivalent <C-[>.
func (e Event) IsEscape() bool {
	return e.Key == KeyEscape || e.Key == KeyRune && e.Rune == '[' && e.Modifiers == ModCtrl
}

// Text returns the text e inserts in insert mode, or "" if it inserts
// nothing.
func (e Event) Text() string {
	switch {
	case e.IsRune():
		return string(e.Rune)
	case e.Key == KeyEnter && e.Modifiers == ModNone:
		return "\n"
	case e.Key == KeyTab && e.Modifiers == ModNone:
		return "\t"
	}
	return ""
}

// String returns e in Vim notation.
func (e Event) String() string {
	if e.IsRune() {
		switch e.Rune {
		case '<':
			return "<lt>"
		case ' ':
			return "<Space>"
		}
		return string(e.Rune)
	}
	var name string
	switch e.Key {
	case KeyRune:
		switch e.Rune {
		case ' ':
			name = "Space"
		case '<':
			name = "lt"
		case '>':
			name = "gt"
		default:
			name = string(e.Rune)
		}
	case KeyNone:
		return ""
	default:
		name = e.Key.String()
	}
	return "<" + e.Modifiers.prefix() + name + ">"
}
