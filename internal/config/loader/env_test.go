package loader

import (
	"testing"
)

func fakeEnviron(vars ...string) func() []string {
	return func() []string { return vars }
}

func TestEnvLoader_Load(t *testing.T) {
	l := NewEnvLoader("MODALCORE_", WithEnviron(fakeEnviron(
		"MODALCORE_INPUT_SEQUENCE_TIMEOUT=500ms",
		"MODALCORE_LOG_LEVEL=debug",
		"MODALCORE_SHIFTWIDTH=2",
		"MODALCORE_EDITING_SENTENCE_ENDERS=",
		"OTHER_LOG_LEVEL=info",
		"MALFORMED",
	)))

	got := l.Load()

	want := map[string]string{
		"input.sequence_timeout":  "500ms",
		"log.level":               "debug",
		"editing.shift_width":     "2",
		"editing.sentence_enders": "",
	}
	if len(got) != len(want) {
		t.Fatalf("Load() = %v, want %v", got, want)
	}
	for path, val := range want {
		if v, ok := got[path]; !ok || v != val {
			t.Errorf("%s = %q (present %v), want %q", path, v, ok, val)
		}
	}
}

func TestEnvLoader_LoadFromProcess(t *testing.T) {
	t.Setenv("MODALCORE_HISTORY_MAX_DEPTH", "50")

	got := NewEnvLoader("MODALCORE_").Load()
	if got["history.max_depth"] != "50" {
		t.Errorf("history.max_depth = %q, want 50", got["history.max_depth"])
	}
}

func TestEnvLoader_pathOf(t *testing.T) {
	l := NewEnvLoader("MODALCORE_")

	tests := []struct {
		env      string
		expected string
	}{
		{"MODALCORE_INPUT_SEQUENCE_TIMEOUT", "input.sequence_timeout"},
		{"MODALCORE_LOG_FILE", "log.file"},
		{"MODALCORE_SIMPLE", "simple"},
		{"MODALCORE_SECTIONS_LUA_SCRIPT", "sections.lua_script"},
		{"MODALCORE_UNDO_LEVELS", "history.max_depth"},
	}

	for _, tt := range tests {
		got := l.pathOf(tt.env)
		if got != tt.expected {
			t.Errorf("pathOf(%q) = %q, want %q", tt.env, got, tt.expected)
		}
	}
}

func TestEnvLoader_Aliases(t *testing.T) {
	env := WithEnviron(fakeEnviron("MODALCORE_TW=8", "MODALCORE_EXPANDTAB=false"))

	got := NewEnvLoader("MODALCORE_", env, WithAlias("TW", "editing.shift_width")).Load()
	if got["editing.shift_width"] != "8" || got["editing.expand_tab"] != "false" {
		t.Errorf("Load() = %v, want both aliases applied", got)
	}

	got = NewEnvLoader("MODALCORE_", env, WithoutAliases()).Load()
	if got["tw"] != "8" || got["expandtab"] != "false" {
		t.Errorf("Load() = %v, want plain names without aliases", got)
	}
}
