package keymap

// Binding maps a key sequence to an action.
type Binding struct {
	// Keys is the sequence in Vim notation, such as "gg" or "<C-r>".
	Keys string `toml:"keys" yaml:"keys"`

	// Action names the command to run, such as "cursor.down".
	Action string `toml:"action" yaml:"action"`

	// Char bindings take the next key as a character argument, as f, r and
	// q do.
	Char bool `toml:"char,omitempty" yaml:"char,omitempty"`

	// Operator, when set, names the operator this binding starts. The
	// following keys are composed into a motion or text object.
	Operator string `toml:"operator,omitempty" yaml:"operator,omitempty"`

	Description string `toml:"description,omitempty" yaml:"description,omitempty"`
	Category    string `toml:"category,omitempty" yaml:"category,omitempty"`
}

// IsOperator reports whether the binding starts an operator.
func (b Binding) IsOperator() bool {
	return b.Operator != ""
}
