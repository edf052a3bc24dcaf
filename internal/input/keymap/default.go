package keymap

import (
	"github.com/dshills/modalcore/internal/engine/motion"
	"github.com/dshills/modalcore/internal/input/mode"
)

// Default returns a table loaded with the default keymaps.
func Default() *Table {
	t := NewTable()
	for _, km := range DefaultKeymaps() {
		if err := t.Register(km); err != nil {
			// The defaults are constants; a failure here is a bug.
			panic(err)
		}
	}
	return t
}

// DefaultKeymaps returns the default keymap of each mode.
func DefaultKeymaps() []*Keymap {
	return []*Keymap{
		DefaultNormalKeymap(),
		DefaultOperatorPendingKeymap(),
		DefaultInsertKeymap(),
		DefaultVisualKeymap(),
	}
}

func motionBindings() []Binding {
	var out []Binding
	for _, m := range motion.All() {
		out = append(out, Binding{
			Keys:        m.Keys,
			Action:      m.Action,
			Char:        m.NeedsChar,
			Description: m.Name,
			Category:    "Movement",
		})
	}
	return append(out,
		Binding{Keys: "<Left>", Action: "cursor.left", Category: "Movement"},
		Binding{Keys: "<Right>", Action: "cursor.right", Category: "Movement"},
		Binding{Keys: "<Up>", Action: "cursor.up", Category: "Movement"},
		Binding{Keys: "<Down>", Action: "cursor.down", Category: "Movement"},
		Binding{Keys: "<Home>", Action: "cursor.lineStart", Category: "Movement"},
		Binding{Keys: "<End>", Action: "cursor.lineEnd", Category: "Movement"},
	)
}

// DefaultNormalKeymap returns default normal mode bindings.
func DefaultNormalKeymap() *Keymap {
	b := motionBindings()
	b = append(b,
		Binding{Keys: "<Space>", Action: "cursor.right", Category: "Movement"},
		Binding{Keys: "<CR>", Action: "cursor.nextLine", Category: "Movement"},

		// Operators
		Binding{Keys: "d", Action: "operator.delete", Operator: "delete", Description: "Delete", Category: "Operators"},
		Binding{Keys: "c", Action: "operator.change", Operator: "change", Description: "Change", Category: "Operators"},
		Binding{Keys: "y", Action: "operator.yank", Operator: "yank", Description: "Yank (copy)", Category: "Operators"},
		Binding{Keys: ">", Action: "operator.indent", Operator: "indent", Description: "Indent", Category: "Operators"},
		Binding{Keys: "<lt>", Action: "operator.unindent", Operator: "unindent", Description: "Unindent", Category: "Operators"},
		Binding{Keys: "g~", Action: "operator.toggleCase", Operator: "toggleCase", Description: "Toggle case", Category: "Operators"},
		Binding{Keys: "gu", Action: "operator.lowercase", Operator: "lowercase", Description: "Lowercase", Category: "Operators"},
		Binding{Keys: "gU", Action: "operator.uppercase", Operator: "uppercase", Description: "Uppercase", Category: "Operators"},

		// Editing
		Binding{Keys: "x", Action: "edit.deleteChar", Description: "Delete character", Category: "Editing"},
		Binding{Keys: "<Del>", Action: "edit.deleteChar", Description: "Delete character", Category: "Editing"},
		Binding{Keys: "X", Action: "edit.deleteCharBefore", Description: "Delete character before", Category: "Editing"},
		Binding{Keys: "s", Action: "edit.substitute", Description: "Substitute character", Category: "Editing"},
		Binding{Keys: "S", Action: "edit.substituteLine", Description: "Substitute line", Category: "Editing"},
		Binding{Keys: "C", Action: "edit.changeToEnd", Description: "Change to end of line", Category: "Editing"},
		Binding{Keys: "D", Action: "edit.deleteToEnd", Description: "Delete to end of line", Category: "Editing"},
		Binding{Keys: "Y", Action: "edit.yankLine", Description: "Yank line", Category: "Editing"},
		Binding{Keys: "J", Action: "edit.join", Description: "Join lines", Category: "Editing"},
		Binding{Keys: "r", Action: "edit.replaceChar", Char: true, Description: "Replace character", Category: "Editing"},
		Binding{Keys: "~", Action: "edit.toggleCaseChar", Description: "Toggle case of character", Category: "Editing"},
		Binding{Keys: "p", Action: "edit.putAfter", Description: "Put after", Category: "Editing"},
		Binding{Keys: "P", Action: "edit.putBefore", Description: "Put before", Category: "Editing"},

		// Insert mode entry
		Binding{Keys: "i", Action: "insert.before", Description: "Insert before cursor", Category: "Mode"},
		Binding{Keys: "<Insert>", Action: "insert.before", Description: "Insert before cursor", Category: "Mode"},
		Binding{Keys: "a", Action: "insert.after", Description: "Append after cursor", Category: "Mode"},
		Binding{Keys: "I", Action: "insert.lineStart", Description: "Insert at first non-blank", Category: "Mode"},
		Binding{Keys: "A", Action: "insert.lineEnd", Description: "Append at line end", Category: "Mode"},
		Binding{Keys: "o", Action: "insert.lineBelow", Description: "Open line below", Category: "Mode"},
		Binding{Keys: "O", Action: "insert.lineAbove", Description: "Open line above", Category: "Mode"},
		Binding{Keys: "v", Action: "visual.char", Description: "Start characterwise selection", Category: "Mode"},
		Binding{Keys: "V", Action: "visual.line", Description: "Start linewise selection", Category: "Mode"},

		// History
		Binding{Keys: "u", Action: "history.undo", Description: "Undo", Category: "History"},
		Binding{Keys: "<C-r>", Action: "history.redo", Description: "Redo", Category: "History"},
		Binding{Keys: ".", Action: "repeat.last", Description: "Repeat last change", Category: "History"},

		// Registers and macros
		Binding{Keys: `"`, Action: "register.select", Char: true, Description: "Select register", Category: "Registers"},
		Binding{Keys: "q", Action: "macro.record", Char: true, Description: "Record macro / stop recording", Category: "Macros"},
		Binding{Keys: "@", Action: "macro.play", Char: true, Description: "Play macro (@@ plays the last)", Category: "Macros"},

		Binding{Keys: "<Esc>", Action: "normal.cancel", Description: "Cancel pending command", Category: "Mode"},
	)
	return &Keymap{Name: "default-normal", Mode: mode.NameNormal, Source: "default", Bindings: b}
}

// DefaultOperatorPendingKeymap returns the motions accepted after an
// operator. Text objects and doubled operators are handled by the composer.
func DefaultOperatorPendingKeymap() *Keymap {
	return &Keymap{
		Name:     "default-operator-pending",
		Mode:     mode.NameOperatorPending,
		Source:   "default",
		Bindings: motionBindings(),
	}
}

// DefaultInsertKeymap returns default insert mode bindings. Printable keys
// without a binding insert themselves.
func DefaultInsertKeymap() *Keymap {
	return &Keymap{
		Name:   "default-insert",
		Mode:   mode.NameInsert,
		Source: "default",
		Bindings: []Binding{
			{Keys: "<Esc>", Action: "insert.escape", Description: "Return to normal mode", Category: "Mode"},
			{Keys: "<CR>", Action: "insert.newline", Description: "Insert line break", Category: "Editing"},
			{Keys: "<BS>", Action: "insert.backspace", Description: "Delete character before cursor", Category: "Editing"},
			{Keys: "<Del>", Action: "insert.deleteForward", Description: "Delete character under cursor", Category: "Editing"},
			{Keys: "<Tab>", Action: "insert.tab", Description: "Insert tab or spaces", Category: "Editing"},
			{Keys: "<C-w>", Action: "insert.deleteWord", Description: "Delete word before cursor", Category: "Editing"},
		},
	}
}

// DefaultVisualKeymap returns the bindings of both visual modes. Motions
// move the cursor end of the selection; operators act on the selection
// at once.
func DefaultVisualKeymap() *Keymap {
	b := motionBindings()
	b = append(b,
		Binding{Keys: "v", Action: "visual.char", Description: "Characterwise selection, or leave it", Category: "Mode"},
		Binding{Keys: "V", Action: "visual.line", Description: "Linewise selection, or leave it", Category: "Mode"},
		Binding{Keys: "<Esc>", Action: "visual.exit", Description: "Leave visual mode", Category: "Mode"},
		Binding{Keys: "o", Action: "visual.swap", Description: "Go to the other end of the selection", Category: "Movement"},
		Binding{Keys: "O", Action: "visual.swap", Description: "Go to the other end of the selection", Category: "Movement"},
		Binding{Keys: "i", Action: "visual.inner", Char: true, Description: "Select inner text object", Category: "Text objects"},
		Binding{Keys: "a", Action: "visual.around", Char: true, Description: "Select text object with surroundings", Category: "Text objects"},

		Binding{Keys: "d", Action: "operator.delete", Description: "Delete selection", Category: "Operators"},
		Binding{Keys: "x", Action: "operator.delete", Description: "Delete selection", Category: "Operators"},
		Binding{Keys: "<Del>", Action: "operator.delete", Description: "Delete selection", Category: "Operators"},
		Binding{Keys: "c", Action: "operator.change", Description: "Change selection", Category: "Operators"},
		Binding{Keys: "s", Action: "operator.change", Description: "Change selection", Category: "Operators"},
		Binding{Keys: "y", Action: "operator.yank", Description: "Yank selection", Category: "Operators"},
		Binding{Keys: ">", Action: "operator.indent", Description: "Indent selected lines", Category: "Operators"},
		Binding{Keys: "<lt>", Action: "operator.unindent", Description: "Unindent selected lines", Category: "Operators"},
		Binding{Keys: "~", Action: "operator.toggleCase", Description: "Toggle case of selection", Category: "Operators"},
		Binding{Keys: "u", Action: "operator.lowercase", Description: "Lowercase selection", Category: "Operators"},
		Binding{Keys: "U", Action: "operator.uppercase", Description: "Uppercase selection", Category: "Operators"},

		Binding{Keys: `"`, Action: "register.select", Char: true, Description: "Select register", Category: "Registers"},
	)
	return &Keymap{Name: "default-visual", Mode: mode.NameVisual, Source: "default", Bindings: b}
}
