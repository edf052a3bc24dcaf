// Package config loads editor settings and key bindings from disk.
//
// The editing core never parses configuration. This package turns files
// and environment variables into plain data: a Settings value and keymap
// tables that hosts hand to session.New.
//
// # Sources
//
// Settings are layered, later sources overriding earlier ones:
//
//  1. Built-in defaults (Default)
//  2. A TOML settings file
//  3. MODALCORE_* environment variables
//
// Environment variables map onto settings paths by section:
// MODALCORE_INPUT_SEQUENCE_TIMEOUT sets input.sequence_timeout.
//
// Keymap files are TOML or YAML, chosen by extension. Their bindings are
// merged over the default table.
//
// # Example settings file
//
//	[input]
//	sequence_timeout = "500ms"
//	max_replay_depth = 50
//
//	[editing]
//	shift_width = 2
//	expand_tab = true
//
//	[sections]
//	prefixes = ["func ", "## "]
//
// Live reload is provided by the watcher subpackage.
package config
