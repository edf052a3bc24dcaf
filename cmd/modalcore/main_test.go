package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd("test")
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	// Keep the user's settings file out of the tests.
	root.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.toml")}, args...))
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunFromStdin(t *testing.T) {
	out, _, err := execute(t, "one two\nthree\n", "run", "--keys", "dwjdd")
	require.NoError(t, err)
	require.Equal(t, "two\n", out)
}

func TestRunChangeWord(t *testing.T) {
	out, _, err := execute(t, "one two\n", "run", "--keys", "cwuno<Esc>")
	require.NoError(t, err)
	require.Equal(t, "uno two\n", out)
}

func TestRunWrite(t *testing.T) {
	path := writeTemp(t, "notes.txt", "a\nb\nc\n")

	out, _, err := execute(t, "", "run", path, "--keys", "jdd", "--write")
	require.NoError(t, err)
	require.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "a\nc\n", string(data))
}

func TestRunWriteNeedsFile(t *testing.T) {
	_, _, err := execute(t, "x\n", "run", "--keys", "x", "--write")
	require.Error(t, err)
}

func TestRunRequiresKeys(t *testing.T) {
	_, _, err := execute(t, "x\n", "run")
	require.Error(t, err)
}

func TestRunFlushesPending(t *testing.T) {
	out, _, err := execute(t, "abc\n", "run", "--keys", "xg")
	require.NoError(t, err)
	require.Equal(t, "bc\n", out)
}

func TestRunStats(t *testing.T) {
	_, errOut, err := execute(t, "abc\n", "run", "--keys", "xx", "--stats")
	require.NoError(t, err)
	require.Contains(t, errOut, "dispatched: 2")
}

func TestRunWithKeymap(t *testing.T) {
	keys := writeTemp(t, "keys.toml", `
[[keymaps]]
name = "test"
mode = "normal"
bindings = [{ keys = "Q", action = "edit.deleteChar" }]
`)
	out, _, err := execute(t, "abc\n", "--keymap", keys, "run", "--keys", "QQ")
	require.NoError(t, err)
	require.Equal(t, "c\n", out)
}

func TestRunWithSettings(t *testing.T) {
	settings := writeTemp(t, "settings.toml", "[editing]\nshift_width = 2\n")
	root := newRootCmd("test")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetIn(strings.NewReader("x\n"))
	root.SetArgs([]string{"--config", settings, "run", "--keys", ">>"})
	require.NoError(t, root.Execute())
	require.Equal(t, "  x\n", out.String())
}

func TestRunMacrosPersist(t *testing.T) {
	macros := filepath.Join(t.TempDir(), "macros.yaml")

	_, _, err := execute(t, "abc\n", "--macros", macros, "run", "--keys", "qaxq")
	require.NoError(t, err)

	out, _, err := execute(t, "wxyz\n", "--macros", macros, "run", "--keys", "2@a")
	require.NoError(t, err)
	require.Equal(t, "yz\n", out)
}

func TestRunLogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "modalcore.log")
	_, _, err := execute(t, "a\n", "--log-level", "debug", "--log-file", logPath, "run", "--keys", "x")
	require.NoError(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "settings loaded")
}

func TestKeysCommand(t *testing.T) {
	out, _, err := execute(t, "", "keys")
	require.NoError(t, err)
	require.Contains(t, out, "KEYS")
	require.Contains(t, out, "edit.deleteChar")

	out, _, err = execute(t, "", "keys", "--mode", "insert")
	require.NoError(t, err)
	require.Contains(t, out, "insert.escape")

	out, _, err = execute(t, "", "keys", "--mode", "visual")
	require.NoError(t, err)
	require.Contains(t, out, "visual.swap")

	_, _, err = execute(t, "", "keys", "--mode", "select")
	require.Error(t, err)
}

func TestEnvFile(t *testing.T) {
	good := writeTemp(t, "good.env", "MODALCORE_LOG_LEVEL=off\n")
	out, _, err := execute(t, "one two\n", "--env-file", good, "run", "--keys", "dw")
	require.NoError(t, err)
	require.Equal(t, "two\n", out)

	bad := writeTemp(t, "bad.env", "MODALCORE_SHIFTWIDTH=wide\n")
	_, _, err = execute(t, "one\n", "--env-file", bad, "run", "--keys", "x")
	require.Error(t, err)

	_, _, err = execute(t, "one\n", "--env-file", filepath.Join(t.TempDir(), "missing.env"), "run", "--keys", "x")
	require.Error(t, err)
}
