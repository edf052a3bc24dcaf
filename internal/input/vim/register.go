package vim

import (
	"strings"
	"sync"
	"unicode"
)

// Special register names.
const (
	RegUnnamed     = '"'
	RegYank        = '0'
	RegSmallDelete = '-'
	RegBlackHole   = '_'
	RegInserted    = '.'
	RegClipboard   = '+'
	RegSelection   = '*'
)

// Content is the value of a register.
type Content struct {
	Text     string
	Linewise bool
}

// ClipboardProvider abstracts system clipboard access for "+ and "*.
type ClipboardProvider interface {
	Get() (string, error)
	Set(content string) error
}

// RegisterStore holds the registers of one editing session. It implements
// operator.Registers.
type RegisterStore struct {
	mu        sync.RWMutex
	registers map[rune]Content
	clipboard ClipboardProvider
}

// NewRegisterStore creates an empty register store.
func NewRegisterStore() *RegisterStore {
	return &RegisterStore{registers: make(map[rune]Content)}
}

// SetClipboard sets the provider behind the clipboard registers.
func (rs *RegisterStore) SetClipboard(clipboard ClipboardProvider) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.clipboard = clipboard
}

// IsValidRegister reports whether name can be read or written.
func IsValidRegister(name rune) bool {
	switch {
	case name >= 'a' && name <= 'z', name >= 'A' && name <= 'Z', name >= '0' && name <= '9':
		return true
	}
	switch name {
	case RegUnnamed, RegSmallDelete, RegBlackHole, RegInserted, RegClipboard, RegSelection:
		return true
	}
	return false
}

// Get returns the content of register name. Uppercase names read their
// lowercase register; 0 reads the unnamed register.
func (rs *RegisterStore) Get(name rune) (Content, bool) {
	name = canonical(name)
	if name == RegBlackHole {
		return Content{}, false
	}
	if c, ok, handled := rs.fromClipboard(name); handled {
		return c, ok
	}

	rs.mu.RLock()
	defer rs.mu.RUnlock()
	c, ok := rs.registers[name]
	return c, ok
}

// Set writes register name. An uppercase name appends to its lowercase
// register; a linewise register appends on a new line.
func (rs *RegisterStore) Set(name rune, c Content) {
	if !IsValidRegister(name) || name == RegBlackHole {
		return
	}
	if rs.toClipboard(name, c) {
		return
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.setLocked(name, c)
}

func (rs *RegisterStore) setLocked(name rune, c Content) Content {
	if unicode.IsUpper(name) {
		name = unicode.ToLower(name)
		if prev, ok := rs.registers[name]; ok {
			switch {
			case prev.Linewise || c.Linewise:
				c = Content{Text: prev.Text + "\n" + c.Text, Linewise: true}
			default:
				c = Content{Text: prev.Text + c.Text}
			}
		}
	}
	if name == 0 {
		name = RegUnnamed
	}
	rs.registers[name] = c
	return c
}

// Yank stores yanked text. Without a register name it also lands in "0.
func (rs *RegisterStore) Yank(reg rune, text string, linewise bool) {
	if reg == RegBlackHole || text == "" {
		return
	}
	c := Content{Text: text, Linewise: linewise}
	if rs.toClipboard(reg, c) {
		return
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()
	if isNamed(reg) {
		c = rs.setLocked(reg, c)
	} else {
		rs.registers[RegYank] = c
	}
	rs.registers[RegUnnamed] = c
}

// Delete stores deleted text. Without a register name, text within one
// line goes to "- and anything larger shifts the numbered registers.
func (rs *RegisterStore) Delete(reg rune, text string, linewise bool) {
	if reg == RegBlackHole || text == "" {
		return
	}
	c := Content{Text: text, Linewise: linewise}
	if rs.toClipboard(reg, c) {
		return
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()
	switch {
	case isNamed(reg):
		c = rs.setLocked(reg, c)
	case !linewise && !strings.Contains(text, "\n"):
		rs.registers[RegSmallDelete] = c
	default:
		for r := '9'; r > '1'; r-- {
			if prev, ok := rs.registers[r-1]; ok {
				rs.registers[r] = prev
			}
		}
		rs.registers['1'] = c
	}
	rs.registers[RegUnnamed] = c
}

// SetLastInserted records the text typed in the last insert session.
func (rs *RegisterStore) SetLastInserted(text string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.registers[RegInserted] = Content{Text: text}
}

// fromClipboard reads "+ and "* from the provider. handled is false when
// the store itself holds the register.
func (rs *RegisterStore) fromClipboard(name rune) (c Content, ok, handled bool) {
	if name != RegClipboard && name != RegSelection {
		return Content{}, false, false
	}
	rs.mu.RLock()
	clipboard := rs.clipboard
	rs.mu.RUnlock()
	if clipboard == nil {
		return Content{}, false, false
	}
	text, err := clipboard.Get()
	if err != nil {
		return Content{}, false, true
	}
	return Content{Text: text, Linewise: strings.HasSuffix(text, "\n")}, true, true
}

func (rs *RegisterStore) toClipboard(name rune, c Content) bool {
	if name != RegClipboard && name != RegSelection {
		return false
	}
	rs.mu.RLock()
	clipboard := rs.clipboard
	rs.mu.RUnlock()
	if clipboard == nil {
		return false
	}
	text := c.Text
	if c.Linewise {
		text += "\n"
	}
	_ = clipboard.Set(text)
	return true
}

func canonical(name rune) rune {
	if name == 0 {
		return RegUnnamed
	}
	return unicode.ToLower(name)
}

// isNamed reports whether reg is a register the user named explicitly.
func isNamed(reg rune) bool {
	return reg != 0 && reg != RegUnnamed
}
