package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dshills/modalcore/internal/engine/history"
	"github.com/dshills/modalcore/internal/engine/motion"
	"github.com/dshills/modalcore/internal/engine/operator"
	"github.com/dshills/modalcore/internal/engine/textobj"
	"github.com/dshills/modalcore/internal/input"
	"github.com/dshills/modalcore/internal/input/macro"
	"github.com/dshills/modalcore/internal/session"
)

// Duration is a time.Duration that reads and writes as "500ms".
type Duration time.Duration

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Settings is the complete set of user settings.
type Settings struct {
	Input    InputSettings   `toml:"input" yaml:"input"`
	History  HistorySettings `toml:"history" yaml:"history"`
	Editing  EditingSettings `toml:"editing" yaml:"editing"`
	Sections SectionSettings `toml:"sections" yaml:"sections"`
	Log      LogSettings     `toml:"log" yaml:"log"`
	Keymaps  KeymapSettings  `toml:"keymaps" yaml:"keymaps"`
}

// InputSettings controls key resolution.
type InputSettings struct {
	SequenceTimeout Duration `toml:"sequence_timeout" yaml:"sequence_timeout"`
	MaxReplayDepth  int      `toml:"max_replay_depth" yaml:"max_replay_depth"`
	// Repeatable lists extra action names that "." may replay.
	Repeatable []string `toml:"repeatable,omitempty" yaml:"repeatable,omitempty"`
}

// HistorySettings controls the undo tree.
type HistorySettings struct {
	MaxDepth int `toml:"max_depth" yaml:"max_depth"`
}

// EditingSettings controls indentation and sentence detection.
type EditingSettings struct {
	ShiftWidth     int    `toml:"shift_width" yaml:"shift_width"`
	ExpandTab      bool   `toml:"expand_tab" yaml:"expand_tab"`
	SentenceEnders string `toml:"sentence_enders" yaml:"sentence_enders"`
}

// SectionSettings decides which lines start a section for [[ and ]].
type SectionSettings struct {
	Prefixes []string `toml:"prefixes,omitempty" yaml:"prefixes,omitempty"`
	// LuaScript is a file defining is_section(line, index).
	LuaScript string `toml:"lua_script,omitempty" yaml:"lua_script,omitempty"`
}

// LogSettings controls diagnostics.
type LogSettings struct {
	Level string `toml:"level" yaml:"level"`
	File  string `toml:"file,omitempty" yaml:"file,omitempty"`
}

// KeymapSettings lists keymap files merged over the defaults.
type KeymapSettings struct {
	Files []string `toml:"files,omitempty" yaml:"files,omitempty"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Input: InputSettings{
			SequenceTimeout: Duration(input.DefaultConfig().SequenceTimeout),
			MaxReplayDepth:  macro.DefaultMaxReplayDepth,
		},
		History: HistorySettings{MaxDepth: history.DefaultMaxDepth},
		Editing: EditingSettings{
			ShiftWidth:     operator.DefaultSettings.ShiftWidth,
			ExpandTab:      operator.DefaultSettings.ExpandTab,
			SentenceEnders: textobj.DefaultSentenceEnders,
		},
		Log: LogSettings{Level: "warn"},
	}
}

// Validate reports the first unusable value.
func (s Settings) Validate() error {
	switch {
	case s.Input.SequenceTimeout <= 0:
		return &ValueError{Path: "input.sequence_timeout", Value: s.Input.SequenceTimeout.Std(), Message: "must be positive"}
	case s.Input.MaxReplayDepth < 1:
		return &ValueError{Path: "input.max_replay_depth", Value: s.Input.MaxReplayDepth, Message: "must be at least 1"}
	case s.History.MaxDepth < 1:
		return &ValueError{Path: "history.max_depth", Value: s.History.MaxDepth, Message: "must be at least 1"}
	case s.Editing.ShiftWidth < 1 || s.Editing.ShiftWidth > 16:
		return &ValueError{Path: "editing.shift_width", Value: s.Editing.ShiftWidth, Message: "must be between 1 and 16"}
	case s.Editing.SentenceEnders == "":
		return &ValueError{Path: "editing.sentence_enders", Value: s.Editing.SentenceEnders, Message: "must not be empty"}
	}
	switch strings.ToLower(s.Log.Level) {
	case "debug", "info", "warn", "warning", "error", "off", "none":
	default:
		return &ValueError{Path: "log.level", Value: s.Log.Level, Message: "unknown level"}
	}
	return nil
}

// Set assigns raw to the setting at a dotted path such as
// "editing.shift_width". Lists are comma separated.
func (s *Settings) Set(path, raw string) error {
	var err error
	switch path {
	case "input.sequence_timeout":
		err = s.Input.SequenceTimeout.UnmarshalText([]byte(raw))
	case "input.max_replay_depth":
		s.Input.MaxReplayDepth, err = strconv.Atoi(raw)
	case "input.repeatable":
		s.Input.Repeatable = splitList(raw)
	case "history.max_depth":
		s.History.MaxDepth, err = strconv.Atoi(raw)
	case "editing.shift_width":
		s.Editing.ShiftWidth, err = strconv.Atoi(raw)
	case "editing.expand_tab":
		s.Editing.ExpandTab, err = strconv.ParseBool(raw)
	case "editing.sentence_enders":
		s.Editing.SentenceEnders = raw
	case "sections.prefixes":
		s.Sections.Prefixes = splitList(raw)
	case "sections.lua_script":
		s.Sections.LuaScript = raw
	case "log.level":
		s.Log.Level = raw
	case "log.file":
		s.Log.File = raw
	case "keymaps.files":
		s.Keymaps.Files = splitList(raw)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownSetting, path)
	}
	if err != nil {
		return &ValueError{Path: path, Value: raw, Message: err.Error()}
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SessionOptions converts the settings into session options. Sections
// use the configured prefixes; callers add scripted predicates themselves.
func (s Settings) SessionOptions() []session.Option {
	opts := []session.Option{
		session.WithSequenceTimeout(s.Input.SequenceTimeout.Std()),
		session.WithMaxReplayDepth(s.Input.MaxReplayDepth),
		session.WithHistoryDepth(s.History.MaxDepth),
		session.WithEditing(operator.Settings{
			ShiftWidth: s.Editing.ShiftWidth,
			ExpandTab:  s.Editing.ExpandTab,
		}),
		session.WithSentenceEnders(s.Editing.SentenceEnders),
	}
	if len(s.Sections.Prefixes) > 0 {
		opts = append(opts, session.WithSection(motion.PrefixSection(s.Sections.Prefixes...)))
	}
	if len(s.Input.Repeatable) > 0 {
		opts = append(opts, session.WithRepeatable(slices.Concat(input.DefaultRepeatable, s.Input.Repeatable)...))
	}
	return opts
}
