package script

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/motion"
)

const headings = `
function is_section(line, index)
  return line:match("^## ") ~= nil or index == 0
end
`

func TestSectionMatch(t *testing.T) {
	sec, err := SectionFromString(headings)
	if err != nil {
		t.Fatal(err)
	}
	defer sec.Close()

	tests := []struct {
		line  string
		index int
		want  bool
	}{
		{"## intro", 5, true},
		{"#  intro", 5, false},
		{"text", 0, true},
		{"", 3, false},
	}
	for _, tt := range tests {
		if got := sec.Match(tt.line, tt.index); got != tt.want {
			t.Errorf("Match(%q, %d) = %v, want %v", tt.line, tt.index, got, tt.want)
		}
	}
}

func TestSectionScriptErrorIsNoMatch(t *testing.T) {
	sec, err := SectionFromString(`function is_section(line) error("bad") end`)
	if err != nil {
		t.Fatal(err)
	}
	defer sec.Close()

	if sec.Match("## x", 0) || sec.Match("## y", 1) {
		t.Error("expected failing script to match nothing")
	}
}

func TestLoadSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sections.lua")
	if err := os.WriteFile(path, []byte(headings), 0o644); err != nil {
		t.Fatal(err)
	}
	sec, err := LoadSection(path)
	if err != nil {
		t.Fatalf("LoadSection() error = %v", err)
	}
	defer sec.Close()

	buf := buffer.NewBuffer(buffer.WithLines("a", "b", "## c", "d"))
	ctx := motion.NewContext(motion.WithSection(sec.Func()))
	m, ok := motion.Lookup("cursor.sectionForward")
	if !ok {
		t.Fatal("missing section motion")
	}
	to, ok := m.Apply(buf, ctx, buffer.Point{}, 1, "")
	if !ok || to.Line != 2 {
		t.Errorf("]] = %v, %v; want line 2", to, ok)
	}
}

func TestLoadSectionErrors(t *testing.T) {
	if _, err := SectionFromString(`x = 1`); !errors.Is(err, ErrNotFunction) {
		t.Errorf("expected ErrNotFunction, got %v", err)
	}
	if _, err := SectionFromString(`function (`); err == nil {
		t.Error("expected a syntax error")
	}
	if _, err := LoadSection(filepath.Join(t.TempDir(), "none.lua")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
