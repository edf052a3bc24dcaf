package key

import "strings"

// Modifier is a set of modifier keys.
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << (iota - 1)
	ModCtrl
	ModAlt
	ModMeta
)

// modifierOrder is the order modifiers appear in both notations, with
// the <C-A-D-S-x> letter and the long name.
var modifierOrder = []struct {
	mod    Modifier
	letter string
	name   string
}{
	{ModCtrl, "C", "Ctrl"},
	{ModAlt, "A", "Alt"},
	{ModMeta, "D", "Meta"},
	{ModShift, "S", "Shift"},
}

func (m Modifier) Has(mod Modifier) bool         { return m&mod != 0 }
func (m Modifier) With(mod Modifier) Modifier    { return m | mod }
func (m Modifier) Without(mod Modifier) Modifier { return m &^ mod }

// prefix is the key notation prefix of m, such as "C-S-".
func (m Modifier) prefix() string {
	var sb strings.Builder
	for _, o := range modifierOrder {
		if m.Has(o.mod) {
			sb.WriteString(o.letter)
			sb.WriteByte('-')
		}
	}
	return sb.String()
}

// String spells m as "Ctrl+Alt", or "None".
func (m Modifier) String() string {
	var parts []string
	for _, o := range modifierOrder {
		if m.Has(o.mod) {
			parts = append(parts, o.name)
		}
	}
	if len(parts) == 0 {
		return "None"
	}
	return strings.Join(parts, "+")
}

// modifierFromLetter maps a notation letter to its modifier. M is
// accepted as a synonym for A.
func modifierFromLetter(s string) Modifier {
	s = strings.ToUpper(s)
	if s == "M" {
		return ModAlt
	}
	for _, o := range modifierOrder {
		if o.letter == s {
			return o.mod
		}
	}
	return ModNone
}
