package dispatcher

import (
	"github.com/dshills/modalcore/internal/engine/history"
	"github.com/dshills/modalcore/internal/engine/operator"
)

// DefaultMaxRepeatCount caps counts such as 99999x.
const DefaultMaxRepeatCount = 10000

// Config tunes a Dispatcher. The With methods return modified copies.
type Config struct {
	// RecoverFromPanic turns a handler panic into an ErrPanic result.
	RecoverFromPanic bool

	// MaxRepeatCount caps the count a handler sees. Zero disables the cap.
	MaxRepeatCount int

	HistoryDepth int

	// Settings drive the indent operators and <Tab> in insert mode.
	Settings operator.Settings
}

func DefaultConfig() Config {
	return Config{
		RecoverFromPanic: true,
		MaxRepeatCount:   DefaultMaxRepeatCount,
		HistoryDepth:     history.DefaultMaxDepth,
		Settings:         operator.DefaultSettings,
	}
}

func (c Config) WithPanicRecovery(on bool) Config {
	c.RecoverFromPanic = on
	return c
}

func (c Config) WithMaxRepeatCount(n int) Config {
	c.MaxRepeatCount = n
	return c
}

func (c Config) WithHistoryDepth(n int) Config {
	c.HistoryDepth = n
	return c
}

func (c Config) WithSettings(s operator.Settings) Config {
	c.Settings = s
	return c
}
