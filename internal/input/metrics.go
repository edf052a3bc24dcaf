package input

import (
	"sync/atomic"
	"time"
)

// Metrics counts what the resolver did with the keys it was given.
type Metrics struct {
	keys       atomic.Uint64
	dispatched atomic.Uint64
	ignored    atomic.Uint64
	failed     atomic.Uint64
	timeouts   atomic.Uint64
	replayed   atomic.Uint64

	peakKeyLatency atomic.Int64
}

// NewMetrics creates a zeroed metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordKey records one submitted key and how long it took to process,
// including the command it dispatched.
func (m *Metrics) RecordKey(latency time.Duration) {
	m.keys.Add(1)
	ns := latency.Nanoseconds()
	for {
		current := m.peakKeyLatency.Load()
		if ns <= current {
			break
		}
		if m.peakKeyLatency.CompareAndSwap(current, ns) {
			break
		}
	}
}

func (m *Metrics) recordOutcome(out Outcome) {
	switch {
	case out.Err != nil:
		m.failed.Add(1)
	case out.Kind == Dispatched:
		m.dispatched.Add(1)
	case out.Kind == Ignored:
		m.ignored.Add(1)
	}
}

// RecordSequenceTimeout records a flushed pending sequence.
func (m *Metrics) RecordSequenceTimeout() {
	m.timeouts.Add(1)
}

// RecordReplayedKey records a key fed by "." or a macro.
func (m *Metrics) RecordReplayedKey() {
	m.replayed.Add(1)
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	Keys           uint64        `json:"keys" yaml:"keys"`
	Dispatched     uint64        `json:"dispatched" yaml:"dispatched"`
	Ignored        uint64        `json:"ignored" yaml:"ignored"`
	Failed         uint64        `json:"failed" yaml:"failed"`
	Timeouts       uint64        `json:"timeouts" yaml:"timeouts"`
	ReplayedKeys   uint64        `json:"replayedKeys" yaml:"replayedKeys"`
	PeakKeyLatency time.Duration `json:"peakKeyLatency" yaml:"peakKeyLatency"`
}

// Snapshot returns the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Keys:           m.keys.Load(),
		Dispatched:     m.dispatched.Load(),
		Ignored:        m.ignored.Load(),
		Failed:         m.failed.Load(),
		Timeouts:       m.timeouts.Load(),
		ReplayedKeys:   m.replayed.Load(),
		PeakKeyLatency: time.Duration(m.peakKeyLatency.Load()),
	}
}

// Reset zeroes every counter.
func (m *Metrics) Reset() {
	m.keys.Store(0)
	m.dispatched.Store(0)
	m.ignored.Store(0)
	m.failed.Store(0)
	m.timeouts.Store(0)
	m.replayed.Store(0)
	m.peakKeyLatency.Store(0)
}
