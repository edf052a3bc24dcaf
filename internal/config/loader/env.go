package loader

import (
	"os"
	"strings"
)

// EnvLoader turns prefixed environment variables into settings paths.
// MODALCORE_INPUT_SEQUENCE_TIMEOUT becomes input.sequence_timeout: the
// first word after the prefix names the section and the rest is the key.
// Aliases map a whole variable name to a path and take precedence.
type EnvLoader struct {
	prefix  string
	aliases map[string]string
	environ func() []string
}

type EnvOption func(*EnvLoader)

// WithAlias maps the variable prefix+name to path.
func WithAlias(name, path string) EnvOption {
	return func(l *EnvLoader) {
		l.aliases[l.prefix+name] = path
	}
}

// WithoutAliases drops the built-in short names.
func WithoutAliases() EnvOption {
	return func(l *EnvLoader) {
		clear(l.aliases)
	}
}

// WithEnviron replaces os.Environ as the source of variables.
func WithEnviron(fn func() []string) EnvOption {
	return func(l *EnvLoader) {
		l.environ = fn
	}
}

// NewEnvLoader reads variables starting with prefix, which should end in
// an underscore. The short names TIMEOUT, SHIFTWIDTH, EXPANDTAB and
// UNDO_LEVELS are recognised unless WithoutAliases is given.
func NewEnvLoader(prefix string, opts ...EnvOption) *EnvLoader {
	l := &EnvLoader{
		prefix: prefix,
		aliases: map[string]string{
			prefix + "TIMEOUT":     "input.sequence_timeout",
			prefix + "SHIFTWIDTH":  "editing.shift_width",
			prefix + "EXPANDTAB":   "editing.expand_tab",
			prefix + "UNDO_LEVELS": "history.max_depth",
		},
		environ: os.Environ,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the raw value of every prefixed variable keyed by settings
// path. A variable set to the empty string is still reported.
func (l *EnvLoader) Load() map[string]string {
	out := make(map[string]string)
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		if path := l.pathOf(name); path != "" {
			out[path] = value
		}
	}
	return out
}

func (l *EnvLoader) pathOf(name string) string {
	if path, ok := l.aliases[name]; ok {
		return path
	}
	key := strings.ToLower(strings.TrimPrefix(name, l.prefix))
	if section, rest, ok := strings.Cut(key, "_"); ok && section != "" && rest != "" {
		return section + "." + rest
	}
	return key
}
