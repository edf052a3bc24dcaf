package macro

import (
	"fmt"
	"slices"
	"sync"

	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/logging"
)

// SaveFunc stores a finished recording.
type SaveFunc func(reg rune, events []key.Event)

// Recorder captures typed keys into a register. At most one recording is
// active at a time.
type Recorder struct {
	mu        sync.Mutex
	guard     *Replay
	save      SaveFunc
	recording bool
	register  rune
	events    []key.Event
}

// NewRecorder creates a recorder that passes finished recordings to save.
// It declines to record while guard reports replaying.
func NewRecorder(guard *Replay, save SaveFunc) *Recorder {
	if guard == nil {
		guard = NewReplay(0)
	}
	return &Recorder{guard: guard, save: save}
}

// Start begins recording into reg. An active recording is stopped and
// saved first.
func (r *Recorder) Start(reg rune) error {
	if !IsValidRegister(reg) {
		return fmt.Errorf("%w: %q", ErrInvalidRegister, reg)
	}
	if r.IsRecording() {
		if _, _, err := r.Stop(); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.recording = true
	r.register = reg
	r.events = nil
	logging.Debug("macro recording started", "register", string(reg))
	return nil
}

// Stop ends the recording, saves it and returns it. An empty recording is
// saved too, clearing the register.
func (r *Recorder) Stop() (rune, []key.Event, error) {
	r.mu.Lock()
	if !r.recording {
		r.mu.Unlock()
		return 0, nil, ErrNotRecording
	}
	reg, events := r.register, r.events
	r.recording = false
	r.register = 0
	r.events = nil
	save := r.save
	r.mu.Unlock()

	logging.Debug("macro recording stopped", "register", string(reg), "keys", len(events))
	if save != nil {
		save(reg, slices.Clone(events))
	}
	return reg, events, nil
}

// Record appends ev to the active recording. It does nothing when not
// recording or while a replay is in progress.
func (r *Recorder) Record(ev key.Event) {
	if r.guard.Replaying() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording {
		r.events = append(r.events, ev)
	}
}

// IsRecording reports whether a recording is active.
func (r *Recorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// Register returns the register being recorded, or 0.
func (r *Recorder) Register() rune {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.register
}

// Len returns the number of keys recorded so far.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}
