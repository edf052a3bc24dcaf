// Package keymap holds the binding table: for each mode, a prefix tree from
// key sequences to actions.
//
// Bindings are plain data. A Keymap groups bindings for one mode and is
// registered into a Table; later registrations replace earlier bindings
// with the same keys, so user keymaps layer over the defaults:
//
//	t := keymap.Default()
//	err := t.Register(&keymap.Keymap{
//		Name: "user",
//		Mode: "normal",
//		Bindings: []keymap.Binding{{Keys: "Q", Action: "macro.playLast"}},
//	})
//
// Lookup reports both the binding that matches a sequence exactly and
// whether a longer binding extends it, which is what ambiguous prefix
// resolution needs.
package keymap
