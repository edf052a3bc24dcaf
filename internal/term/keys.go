package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/modalcore/internal/input/key"
)

var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyInsert:     key.KeyInsert,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyF1:         key.KeyF1,
	tcell.KeyF2:         key.KeyF2,
	tcell.KeyF3:         key.KeyF3,
	tcell.KeyF4:         key.KeyF4,
	tcell.KeyF5:         key.KeyF5,
	tcell.KeyF6:         key.KeyF6,
	tcell.KeyF7:         key.KeyF7,
	tcell.KeyF8:         key.KeyF8,
	tcell.KeyF9:         key.KeyF9,
	tcell.KeyF10:        key.KeyF10,
	tcell.KeyF11:        key.KeyF11,
	tcell.KeyF12:        key.KeyF12,
}

func convertMod(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(key.ModMeta)
	}
	return mods
}

// FromTcell converts a tcell key event. It reports false for keys the
// editor has no name for.
func FromTcell(ev *tcell.EventKey) (key.Event, bool) {
	mods := convertMod(ev.Modifiers())
	k := ev.Key()

	if k == tcell.KeyRune {
		e := key.Event{Key: key.KeyRune, Rune: ev.Rune(), Modifiers: mods}
		return e.Normalize(), true
	}
	// tcell reports Tab, Enter, Backspace and Esc with the codes of their
	// control equivalents, so named keys are checked first.
	if sk, ok := specialKeys[k]; ok {
		return key.Special(sk, mods), true
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		e := key.Ctrl(rune('a' + int(k-tcell.KeyCtrlA)))
		e.Modifiers = e.Modifiers.With(mods.Without(key.ModShift))
		return e, true
	}
	return key.Event{}, false
}

// ToTcell converts a key event to the tcell event a terminal would send.
func ToTcell(ev key.Event) *tcell.EventKey {
	var mods tcell.ModMask
	if ev.Modifiers.Has(key.ModShift) {
		mods |= tcell.ModShift
	}
	if ev.Modifiers.Has(key.ModAlt) {
		mods |= tcell.ModAlt
	}
	if ev.Modifiers.Has(key.ModMeta) {
		mods |= tcell.ModMeta
	}

	if ev.Key == key.KeyRune {
		if ev.Modifiers.Has(key.ModCtrl) && ev.Rune >= 'a' && ev.Rune <= 'z' {
			return tcell.NewEventKey(tcell.KeyCtrlA+tcell.Key(ev.Rune-'a'), 0, mods|tcell.ModCtrl)
		}
		if ev.Modifiers.Has(key.ModCtrl) {
			mods |= tcell.ModCtrl
		}
		return tcell.NewEventKey(tcell.KeyRune, ev.Rune, mods)
	}
	for tk, k := range specialKeys {
		if k == ev.Key && tk != tcell.KeyBackspace {
			return tcell.NewEventKey(tk, 0, mods)
		}
	}
	return tcell.NewEventKey(tcell.KeyRune, 0, mods)
}
