package macro

import (
	"context"
	"fmt"

	"github.com/dshills/modalcore/internal/input/key"
)

// EventHandler processes one replayed key. Returning an error aborts the
// playback.
type EventHandler func(ev key.Event) error

// Source provides the keys stored in a register.
type Source interface {
	Get(reg rune) []key.Event
}

// Player replays registers through a handler.
type Player struct {
	guard  *Replay
	source Source
}

// NewPlayer creates a player reading from source.
func NewPlayer(guard *Replay, source Source) *Player {
	if guard == nil {
		guard = NewReplay(0)
	}
	return &Player{guard: guard, source: source}
}

// Play replays register reg count times. '@' replays the last played
// register. An empty register, or @@ before any playback, does nothing.
func (p *Player) Play(reg rune, count int, handler EventHandler) error {
	return p.PlayContext(context.Background(), reg, count, handler)
}

// PlayContext is Play with cancellation between keys.
func (p *Player) PlayContext(ctx context.Context, reg rune, count int, handler EventHandler) error {
	if handler == nil {
		return fmt.Errorf("macro: nil handler")
	}
	if reg == '@' {
		if reg = p.guard.LastPlayed(); reg == 0 {
			return nil
		}
	}
	if !IsValidRegister(reg) {
		return fmt.Errorf("%w: %q", ErrInvalidRegister, reg)
	}
	reg = NormalizeRegister(reg)
	p.guard.SetLastPlayed(reg)

	events := p.source.Get(reg)
	if len(events) == 0 {
		return nil
	}

	exit, err := p.guard.Enter(reg)
	if err != nil {
		return err
	}
	defer exit()

	for range max(count, 1) {
		for _, ev := range events {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := handler(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// IsPlaying reports whether any replay is in progress.
func (p *Player) IsPlaying() bool {
	return p.guard.Replaying()
}
