package keymap

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/input/mode"
)

// Match is the result of looking up a key sequence.
type Match struct {
	// Binding matches the sequence exactly, or is nil.
	Binding *Binding
	// Longer is set when some binding strictly extends the sequence.
	Longer bool
}

// None reports whether nothing matches or extends the sequence.
func (m Match) None() bool {
	return m.Binding == nil && !m.Longer
}

type node struct {
	children map[key.Event]*node
	binding  *Binding
}

func newNode() *node {
	return &node{children: make(map[key.Event]*node)}
}

// Table is the binding table of a session, keyed by mode.
type Table struct {
	mu    sync.RWMutex
	roots map[mode.Mode]*node
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{roots: make(map[mode.Mode]*node)}
}

// Register adds every binding of km, replacing bindings with equal keys.
func (t *Table) Register(km *Keymap) error {
	if km == nil {
		return fmt.Errorf("cannot register nil keymap")
	}
	if err := km.Validate(); err != nil {
		return err
	}
	m, _ := mode.Parse(km.Mode)
	for _, b := range km.Bindings {
		if err := t.Bind(m, b); err != nil {
			return fmt.Errorf("keymap %q: %w", km.Name, err)
		}
	}
	return nil
}

// Bind adds one binding to mode m.
func (t *Table) Bind(m mode.Mode, b Binding) error {
	seq, err := key.ParseSequence(b.Keys)
	if err != nil {
		return fmt.Errorf("binding %q: %w", b.Keys, err)
	}
	if len(seq) == 0 {
		return ErrEmptyKeys
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	m = m.Bindings()
	n, ok := t.roots[m]
	if !ok {
		n = newNode()
		t.roots[m] = n
	}
	for _, ev := range seq {
		child, ok := n.children[ev]
		if !ok {
			child = newNode()
			n.children[ev] = child
		}
		n = child
	}
	bc := b
	n.binding = &bc
	return nil
}

// Unbind removes the binding for keys in mode m. Prefix nodes are kept.
func (t *Table) Unbind(m mode.Mode, keys string) {
	seq, err := key.ParseSequence(keys)
	if err != nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if n := t.find(m, seq); n != nil {
		n.binding = nil
	}
}

// Lookup matches seq against the bindings of mode m.
func (t *Table) Lookup(m mode.Mode, seq []key.Event) Match {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := t.find(m, seq)
	if n == nil {
		return Match{}
	}
	return Match{Binding: n.binding, Longer: hasBinding(n.children)}
}

func (t *Table) find(m mode.Mode, seq []key.Event) *node {
	n, ok := t.roots[m.Bindings()]
	if !ok {
		return nil
	}
	for _, ev := range seq {
		if n = n.children[ev]; n == nil {
			return nil
		}
	}
	return n
}

func hasBinding(children map[key.Event]*node) bool {
	for _, c := range children {
		if c.binding != nil || hasBinding(c.children) {
			return true
		}
	}
	return false
}

// Bindings returns every binding of mode m sorted by keys.
func (t *Table) Bindings(m mode.Mode) []Binding {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var out []Binding
	var walk func(n *node)
	walk = func(n *node) {
		if n.binding != nil {
			out = append(out, *n.binding)
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	if root, ok := t.roots[m.Bindings()]; ok {
		walk(root)
	}
	slices.SortFunc(out, func(a, b Binding) int {
		return strings.Compare(a.Keys, b.Keys)
	})
	return out
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	t.mu.RLock()
	defer t.mu.RUnlock()

	c := NewTable()
	for m, root := range t.roots {
		c.roots[m] = cloneNode(root)
	}
	return c
}

func cloneNode(n *node) *node {
	c := newNode()
	if n.binding != nil {
		b := *n.binding
		c.binding = &b
	}
	for ev, child := range n.children {
		c.children[ev] = cloneNode(child)
	}
	return c
}
