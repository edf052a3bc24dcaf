package config

import (
	"errors"
	"testing"
	"time"

	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/session"
)

func TestDefaultIsValid(t *testing.T) {
	s := Default()
	if err := s.Validate(); err != nil {
		t.Fatalf("defaults failed validation: %v", err)
	}
	if s.Input.SequenceTimeout.Std() != time.Second {
		t.Errorf("SequenceTimeout = %v, want 1s", s.Input.SequenceTimeout.Std())
	}
	if s.Editing.ShiftWidth != 4 || !s.Editing.ExpandTab {
		t.Errorf("editing = %+v", s.Editing)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
		path   string
	}{
		{"zero timeout", func(s *Settings) { s.Input.SequenceTimeout = 0 }, "input.sequence_timeout"},
		{"zero replay depth", func(s *Settings) { s.Input.MaxReplayDepth = 0 }, "input.max_replay_depth"},
		{"zero history", func(s *Settings) { s.History.MaxDepth = 0 }, "history.max_depth"},
		{"wide shift", func(s *Settings) { s.Editing.ShiftWidth = 40 }, "editing.shift_width"},
		{"no enders", func(s *Settings) { s.Editing.SentenceEnders = "" }, "editing.sentence_enders"},
		{"bad level", func(s *Settings) { s.Log.Level = "loud" }, "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.modify(&s)
			err := s.Validate()
			if !errors.Is(err, ErrInvalidValue) {
				t.Fatalf("expected ErrInvalidValue, got %v", err)
			}
			var ve *ValueError
			if !errors.As(err, &ve) || ve.Path != tt.path {
				t.Errorf("expected path %s, got %v", tt.path, err)
			}
		})
	}
}

func TestSet(t *testing.T) {
	s := Default()
	sets := map[string]string{
		"input.sequence_timeout": "250ms",
		"input.max_replay_depth": "7",
		"history.max_depth":      "30",
		"editing.shift_width":    "2",
		"editing.expand_tab":     "false",
		"sections.prefixes":      "func , ## ,",
		"log.level":              "debug",
	}
	for path, raw := range sets {
		if err := s.Set(path, raw); err != nil {
			t.Fatalf("Set(%s): %v", path, err)
		}
	}

	if s.Input.SequenceTimeout.Std() != 250*time.Millisecond {
		t.Errorf("timeout = %v", s.Input.SequenceTimeout.Std())
	}
	if s.Input.MaxReplayDepth != 7 || s.History.MaxDepth != 30 {
		t.Errorf("depths = %d, %d", s.Input.MaxReplayDepth, s.History.MaxDepth)
	}
	if s.Editing.ShiftWidth != 2 || s.Editing.ExpandTab {
		t.Errorf("editing = %+v", s.Editing)
	}
	if len(s.Sections.Prefixes) != 2 || s.Sections.Prefixes[0] != "func" {
		t.Errorf("prefixes = %q", s.Sections.Prefixes)
	}
	if s.Log.Level != "debug" {
		t.Errorf("level = %q", s.Log.Level)
	}
}

func TestSetErrors(t *testing.T) {
	s := Default()
	if err := s.Set("editing.tabstop", "8"); !errors.Is(err, ErrUnknownSetting) {
		t.Errorf("expected ErrUnknownSetting, got %v", err)
	}
	if err := s.Set("editing.shift_width", "two"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue, got %v", err)
	}
	if err := s.Set("input.sequence_timeout", "soon"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue, got %v", err)
	}
}

func TestDurationText(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("1m30s")); err != nil {
		t.Fatal(err)
	}
	b, _ := d.MarshalText()
	if string(b) != "1m30s" {
		t.Errorf("MarshalText = %q", b)
	}
}

func TestSessionOptions(t *testing.T) {
	s := Default()
	s.Input.SequenceTimeout = Duration(300 * time.Millisecond)
	s.History.MaxDepth = 2
	s.Editing.ShiftWidth = 2
	s.Sections.Prefixes = []string{"## "}

	sess := session.New(buffer.NewBuffer(buffer.WithLines("intro", "## one", "body", "## two")), s.SessionOptions()...)
	defer sess.Close()

	if sess.Timeout() != 300*time.Millisecond {
		t.Errorf("Timeout = %v", sess.Timeout())
	}
	if sess.History().MaxDepth() != 2 {
		t.Errorf("history depth = %d", sess.History().MaxDepth())
	}

	if _, err := sess.SubmitKeys("]]"); err != nil {
		t.Fatal(err)
	}
	if sess.Cursor().Line != 1 {
		t.Errorf("expected ]] to stop at the first heading, got %v", sess.Cursor())
	}

	if _, err := sess.SubmitKeys(">>"); err != nil {
		t.Fatal(err)
	}
	if got := sess.Lines()[1]; got != "  ## one" {
		t.Errorf("expected a two space indent, got %q", got)
	}
}
