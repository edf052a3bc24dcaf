package keymap

import (
	"fmt"

	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/input/mode"
)

// Keymap is a named group of bindings for one mode.
type Keymap struct {
	Name     string    `toml:"name" yaml:"name"`
	Mode     string    `toml:"mode" yaml:"mode"`
	Source   string    `toml:"source,omitempty" yaml:"source,omitempty"`
	Bindings []Binding `toml:"bindings" yaml:"bindings"`
}

// Add appends a binding and returns the keymap for chaining.
func (k *Keymap) Add(keys, action string) *Keymap {
	k.Bindings = append(k.Bindings, Binding{Keys: keys, Action: action})
	return k
}

// Validate checks the mode and every binding.
func (k *Keymap) Validate() error {
	if _, ok := mode.Parse(k.Mode); !ok {
		return fmt.Errorf("keymap %q: %w: %q", k.Name, ErrUnknownMode, k.Mode)
	}
	for i, b := range k.Bindings {
		if b.Keys == "" {
			return fmt.Errorf("keymap %q: binding %d: %w", k.Name, i, ErrEmptyKeys)
		}
		if b.Action == "" {
			return fmt.Errorf("keymap %q: binding %d (%s): %w", k.Name, i, b.Keys, ErrEmptyAction)
		}
		if _, err := key.ParseSequence(b.Keys); err != nil {
			return fmt.Errorf("keymap %q: binding %d (%s): %w", k.Name, i, b.Keys, err)
		}
	}
	return nil
}
