package script

import (
	"context"
	"fmt"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultCallTimeout bounds a single call into a script.
const DefaultCallTimeout = 100 * time.Millisecond

// State is a restricted Lua state. It is safe for concurrent use; calls
// are serialised.
type State struct {
	mu      sync.Mutex
	L       *lua.LState
	timeout time.Duration
	closed  bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithCallTimeout sets the deadline of each call. Zero disables it.
func WithCallTimeout(d time.Duration) StateOption {
	return func(s *State) {
		s.timeout = d
	}
}

// NewState creates a restricted Lua state.
func NewState(opts ...StateOption) *State {
	s := &State{timeout: DefaultCallTimeout}
	for _, opt := range opts {
		opt(s)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	// io, os, debug and package stay closed.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
	s.L = L
	return s
}

// DoString runs code.
func (s *State) DoString(code string) error {
	return s.run(func() error { return s.L.DoString(code) })
}

// DoFile runs the file at path. The script itself cannot load others.
func (s *State) DoFile(path string) error {
	return s.run(func() error { return s.L.DoFile(path) })
}

// Call calls the global function fn with args and returns its first
// result, or LNil.
func (s *State) Call(fn string, args ...lua.LValue) (lua.LValue, error) {
	var ret lua.LValue = lua.LNil
	err := s.run(func() error {
		f, ok := s.L.GetGlobal(fn).(*lua.LFunction)
		if !ok {
			return fmt.Errorf("%w: %s", ErrNotFunction, fn)
		}
		if err := s.L.CallByParam(lua.P{Fn: f, NRet: 1, Protect: true}, args...); err != nil {
			return err
		}
		ret = s.L.Get(-1)
		s.L.Pop(1)
		return nil
	})
	return ret, err
}

// HasFunction reports whether the global name is a function.
func (s *State) HasFunction(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	_, ok := s.L.GetGlobal(name).(*lua.LFunction)
	return ok
}

// run executes fn under the lock and deadline, recovering panics.
func (s *State) run(fn func() error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}
	if s.timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		s.L.SetContext(ctx)
		defer s.L.RemoveContext()
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// Close releases the state. It is safe to call more than once.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.L.Close()
		s.closed = true
	}
	return nil
}
