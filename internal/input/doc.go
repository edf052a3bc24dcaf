// Package input turns key events into editing actions.
//
// The Resolver is fed one key at a time through Submit. It accumulates
// counts, matches the keys typed so far against the binding table of the
// current mode and reports one of three outcomes:
//
//   - Partial: the key was consumed and more are expected, as after "g"
//     or "d".
//   - Dispatched: a command ran through the Executor.
//   - Ignored: nothing matched, or the command was cancelled or failed.
//
// # Key Sequences
//
// When a sequence is both a complete binding and the prefix of a longer
// one, the resolver waits. The host arms a timer for Config.SequenceTimeout
// after a Partial outcome and calls FlushPendingOnTimeout when it fires; the
// resolver itself never reads the clock to decide anything.
//
// # Operators
//
// Bindings that name an operator switch to operator-pending mode and hand
// the following keys to a vim.Composer until it produces a command.
//
// # Repeat and Macros
//
// "." replays the keys of the last change, and q/@ record and replay
// registers. Both replays go back through the same dispatch path as typed
// keys, under a shared macro.Replay guard that keeps either recorder from
// capturing its own playback.
//
// Sub-packages:
//
//   - key: key events and Vim key notation
//   - mode: editing modes and the mode manager
//   - keymap: binding tables and the default Vim bindings
//   - vim: counts, registers and the operator composer
//   - macro: macro recording, playback and persistence
package input
