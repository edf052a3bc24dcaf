package config

import (
	"fmt"

	"github.com/dshills/modalcore/internal/input/keymap"
	"github.com/dshills/modalcore/internal/input/mode"
)

// KeymapFile is the contents of a keymap file.
//
//	[[keymaps]]
//	name = "mine"
//	mode = "normal"
//	bindings = [{ keys = "Y", action = "edit.yankToEnd" }]
//
//	[[unbind]]
//	mode = "normal"
//	keys = "s"
type KeymapFile struct {
	Keymaps []*keymap.Keymap `toml:"keymaps" yaml:"keymaps"`
	Unbind  []Unbinding      `toml:"unbind,omitempty" yaml:"unbind,omitempty"`
}

// Unbinding removes a binding from a mode.
type Unbinding struct {
	Mode string `toml:"mode" yaml:"mode"`
	Keys string `toml:"keys" yaml:"keys"`
}

// LoadKeymap reads a keymap file. Unlike settings, a missing keymap file
// is an error.
func (l *Loader) LoadKeymap(path string) (*KeymapFile, error) {
	var f KeymapFile
	found, err := l.decodeFile(path, &f)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("keymap file %s: not found", path)
	}
	for _, km := range f.Keymaps {
		if km == nil {
			continue
		}
		if km.Source == "" {
			km.Source = path
		}
		if err := km.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	for i, u := range f.Unbind {
		if _, ok := mode.Parse(u.Mode); !ok {
			return nil, fmt.Errorf("%s: unbind %d: %w: %q", path, i, keymap.ErrUnknownMode, u.Mode)
		}
	}
	return &f, nil
}

// Apply merges the file into t: unbindings first, then bindings.
func (f *KeymapFile) Apply(t *keymap.Table) error {
	for _, u := range f.Unbind {
		m, _ := mode.Parse(u.Mode)
		t.Unbind(m, u.Keys)
	}
	for _, km := range f.Keymaps {
		if km == nil {
			continue
		}
		if err := t.Register(km); err != nil {
			return err
		}
	}
	return nil
}

// LoadTable returns the default table with each file merged in order.
func (l *Loader) LoadTable(paths ...string) (*keymap.Table, error) {
	t := keymap.Default()
	for _, p := range paths {
		f, err := l.LoadKeymap(p)
		if err != nil {
			return nil, err
		}
		if err := f.Apply(t); err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}
	return t, nil
}

// LoadTable loads keymap files with the default loader.
func LoadTable(paths ...string) (*keymap.Table, error) {
	return NewLoader().LoadTable(paths...)
}
