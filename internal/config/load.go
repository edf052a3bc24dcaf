package config

import (
	"errors"
	"fmt"

	"github.com/dshills/modalcore/internal/config/loader"
	"github.com/dshills/modalcore/internal/logging"
)

// EnvPrefix is the prefix of environment variables that override settings.
const EnvPrefix = "MODALCORE_"

// Loader layers settings from defaults, a file and the environment.
type Loader struct {
	fs  loader.FileSystem
	env *loader.EnvLoader
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFileSystem reads files through fs.
func WithFileSystem(fs loader.FileSystem) LoaderOption {
	return func(l *Loader) {
		l.fs = fs
	}
}

// WithEnv replaces the environment loader. A nil loader disables
// environment overrides.
func WithEnv(env *loader.EnvLoader) LoaderOption {
	return func(l *Loader) {
		l.env = env
	}
}

// NewLoader creates a loader reading the OS file system and MODALCORE_*
// variables.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		fs:  loader.DefaultFS(),
		env: loader.NewEnvLoader(EnvPrefix),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadSettings loads settings from path with the default loader.
func LoadSettings(path string) (Settings, error) {
	return NewLoader().Load(path)
}

// Load returns the defaults overridden by the file at path, when it
// exists, and then by the environment. An empty path skips the file.
func (l *Loader) Load(path string) (Settings, error) {
	s := Default()
	if path != "" {
		if _, err := l.decodeFile(path, &s); err != nil {
			return Settings{}, err
		}
	}
	if l.env != nil {
		for p, raw := range l.env.Load() {
			err := s.Set(p, raw)
			if errors.Is(err, ErrUnknownSetting) {
				logging.Warn("ignoring environment override", "path", p, "error", err)
				continue
			}
			if err != nil {
				return Settings{}, fmt.Errorf("environment: %w", err)
			}
		}
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// decodeFile decodes path into v by extension and reports whether the
// file exists.
func (l *Loader) decodeFile(path string, v any) (bool, error) {
	switch loader.FormatOf(path) {
	case loader.FormatTOML:
		return loader.NewTOMLLoaderWithFS(l.fs).LoadFrom(path, v)
	case loader.FormatYAML:
		return loader.NewYAMLLoaderWithFS(l.fs).LoadFrom(path, v)
	default:
		return false, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}
