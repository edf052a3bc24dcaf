// Package macro records key sequences into registers and replays them.
//
// A Recorder captures the keys a user types between q{reg} and q. A
// Player feeds a register back through a handler, normally the input
// resolver's Submit, one key at a time and synchronously.
//
// Both share a Replay guard. While the guard reports replaying, the
// recorder declines to record, so a macro being recorded never captures
// its own playback, and the resolver's repeat record is left alone. The
// guard also refuses to play a register that is already being played and
// bounds the nesting depth, so a macro that calls itself terminates.
//
//	guard := macro.NewReplay(macro.DefaultMaxReplayDepth)
//	macros := macro.NewRegisters(registers)
//	rec := macro.NewRecorder(guard, macros.Set)
//	player := macro.NewPlayer(guard, macros)
//
//	rec.Start('a')
//	rec.Record(key.Rune('x'))
//	rec.Stop()
//	player.Play('a', 3, resolver.SubmitEvent)
//
// Macros are kept in the session's register store as key notation, so
// "ap pastes a macro and a yanked line can be played with @a.
//
// Macro registers can also be saved to and loaded from a YAML file.
package macro
