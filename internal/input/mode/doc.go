// Package mode tracks the editing mode of a session: Normal, Insert or
// Operator-pending. The Manager notifies listeners on every transition so
// that pending input can be abandoned when the mode changes.
package mode
