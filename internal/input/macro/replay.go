package macro

import (
	"fmt"
	"slices"
	"sync"

	"github.com/dshills/modalcore/internal/logging"
)

// DefaultMaxReplayDepth bounds how deeply replays may nest.
const DefaultMaxReplayDepth = 100

// Replay is the replaying flag shared by the resolver, the repeat record
// and the macro recorder. It is set for the duration of every replay and
// nests: the flag clears only when the outermost replay ends.
type Replay struct {
	mu         sync.Mutex
	maxDepth   int
	depth      int
	playing    []rune
	lastPlayed rune
}

// NewReplay creates a guard allowing maxDepth nested replays.
func NewReplay(maxDepth int) *Replay {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxReplayDepth
	}
	return &Replay{maxDepth: maxDepth}
}

// Replaying reports whether a replay is in progress.
func (g *Replay) Replaying() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.depth > 0
}

// Depth returns the number of nested replays in progress.
func (g *Replay) Depth() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.depth
}

// Enter marks the start of a replay and returns the function that ends it.
// reg is the macro register being played, or 0 for a repeat. A register
// that is already being played is refused.
func (g *Replay) Enter(reg rune) (exit func(), err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if reg != 0 && slices.Contains(g.playing, reg) {
		logging.Debug("refused recursive macro", "register", string(reg), "depth", g.depth)
		return nil, fmt.Errorf("%w: @%c", ErrRecursive, reg)
	}
	if g.depth >= g.maxDepth {
		logging.Debug("replay depth exceeded", "depth", g.depth)
		return nil, fmt.Errorf("%w: %d", ErrTooDeep, g.depth)
	}

	g.depth++
	if reg != 0 {
		g.playing = append(g.playing, reg)
	}
	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			defer g.mu.Unlock()
			g.depth--
			if reg != 0 {
				if i := slices.Index(g.playing, reg); i >= 0 {
					g.playing = slices.Delete(g.playing, i, i+1)
				}
			}
		})
	}, nil
}

// LastPlayed returns the register @@ replays, or 0.
func (g *Replay) LastPlayed() rune {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastPlayed
}

// SetLastPlayed records the register @@ replays.
func (g *Replay) SetLastPlayed(reg rune) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastPlayed = reg
}
