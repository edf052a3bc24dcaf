package mode

import (
	"slices"
	"sync"
)

// ChangeFunc observes a mode switch after it happened.
type ChangeFunc func(from, to Mode)

type subscriber struct {
	id int
	fn ChangeFunc
}

// Manager tracks the mode of one session. The zero value is in Normal
// mode and ready to use.
type Manager struct {
	mu       sync.RWMutex
	current  Mode
	previous Mode
	subs     []subscriber
	nextID   int
}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) Current() Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Previous is the mode left by the last switch.
func (m *Manager) Previous() Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.previous
}

func (m *Manager) Is(mode Mode) bool {
	return m.Current() == mode
}

// Switch enters mode and notifies subscribers in the order they
// subscribed. It reports false, notifying nobody, when mode is already
// current. Subscribers run without the lock held and may call back into
// the manager.
func (m *Manager) Switch(mode Mode) bool {
	m.mu.Lock()
	from := m.current
	if from == mode {
		m.mu.Unlock()
		return false
	}
	m.previous, m.current = from, mode
	subs := slices.Clone(m.subs)
	m.mu.Unlock()

	for _, s := range subs {
		s.fn(from, mode)
	}
	return true
}

// OnChange subscribes fn to mode switches. The returned func unsubscribes
// it and is safe to call more than once.
func (m *Manager) OnChange(fn ChangeFunc) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	id := m.nextID
	m.subs = append(m.subs, subscriber{id: id, fn: fn})

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.subs = slices.DeleteFunc(m.subs, func(s subscriber) bool { return s.id == id })
	}
}
