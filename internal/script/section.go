package script

import (
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/modalcore/internal/engine/motion"
	"github.com/dshills/modalcore/internal/logging"
)

// SectionFuncName is the global a section script must define.
const SectionFuncName = "is_section"

// Section is a section predicate backed by a Lua script.
type Section struct {
	state *State
	warn  sync.Once
}

// LoadSection runs the script at path and checks that it defines
// is_section(line, index). index is zero-based.
func LoadSection(path string, opts ...StateOption) (*Section, error) {
	s := NewState(opts...)
	if err := s.DoFile(path); err != nil {
		s.Close()
		return nil, fmt.Errorf("section script %s: %w", path, err)
	}
	return newSection(s)
}

// SectionFromString is LoadSection for inline code.
func SectionFromString(code string, opts ...StateOption) (*Section, error) {
	s := NewState(opts...)
	if err := s.DoString(code); err != nil {
		s.Close()
		return nil, fmt.Errorf("section script: %w", err)
	}
	return newSection(s)
}

func newSection(s *State) (*Section, error) {
	if !s.HasFunction(SectionFuncName) {
		s.Close()
		return nil, fmt.Errorf("section script: %w: %s", ErrNotFunction, SectionFuncName)
	}
	return &Section{state: s}, nil
}

// Match calls is_section. A script error counts as no match and is
// logged once.
func (sec *Section) Match(line string, index int) bool {
	ret, err := sec.state.Call(SectionFuncName, lua.LString(line), lua.LNumber(index))
	if err != nil {
		sec.warn.Do(func() {
			logging.Warn("section script failed", "error", err)
		})
		return false
	}
	return lua.LVAsBool(ret)
}

// Func returns Match as a motion.SectionFunc.
func (sec *Section) Func() motion.SectionFunc {
	return sec.Match
}

// Close releases the Lua state.
func (sec *Section) Close() error {
	return sec.state.Close()
}
