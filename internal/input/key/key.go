package key

import (
	"fmt"
	"strings"
)

// Key identifies a keyboard key. Character keys use KeyRune and carry the
// character in Event.Rune.
type Key uint8

const (
	KeyNone Key = iota
	KeyRune
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// keyNames holds the canonical notation name of each special key.
var keyNames = map[Key]string{
	KeyEscape:    "Esc",
	KeyEnter:     "CR",
	KeyTab:       "Tab",
	KeyBackspace: "BS",
	KeyDelete:    "Del",
	KeyInsert:    "Insert",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyF1:        "F1",
	KeyF2:        "F2",
	KeyF3:        "F3",
	KeyF4:        "F4",
	KeyF5:        "F5",
	KeyF6:        "F6",
	KeyF7:        "F7",
	KeyF8:        "F8",
	KeyF9:        "F9",
	KeyF10:       "F10",
	KeyF11:       "F11",
	KeyF12:       "F12",
}

// keyAliases maps lowercased names accepted inside <...> to keys.
var keyAliases = func() map[string]Key {
	m := map[string]Key{
		"escape":    KeyEscape,
		"enter":     KeyEnter,
		"return":    KeyEnter,
		"backspace": KeyBackspace,
		"delete":    KeyDelete,
		"ins":       KeyInsert,
		"pgup":      KeyPageUp,
		"pgdn":      KeyPageDown,
	}
	for k, name := range keyNames {
		m[strings.ToLower(name)] = k
	}
	return m
}()

// runeAliases maps lowercased names accepted inside <...> to characters.
var runeAliases = map[string]rune{
	"space":  ' ',
	"lt":     '<',
	"gt":     '>',
	"bar":    '|',
	"bslash": '\\',
}

// String returns the notation name of the key.
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "None"
	case KeyRune:
		return "Rune"
	}
	if s, ok := keyNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Key(%d)", k)
}

// IsSpecial reports whether k is a non-character key.
func (k Key) IsSpecial() bool {
	return k != KeyNone && k != KeyRune
}

// FromName returns the key with the given notation name or alias, matched
// case-insensitively. It returns KeyNone for unknown names.
func FromName(name string) Key {
	return keyAliases[strings.ToLower(strings.TrimSpace(name))]
}
