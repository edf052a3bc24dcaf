package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLLoader decodes YAML files.
type YAMLLoader struct {
	fs FileSystem
}

// NewYAMLLoader creates a YAML loader reading from the OS file system.
func NewYAMLLoader() *YAMLLoader {
	return &YAMLLoader{fs: DefaultFS()}
}

// NewYAMLLoaderWithFS creates a YAML loader with a custom file system.
func NewYAMLLoaderWithFS(fs FileSystem) *YAMLLoader {
	return &YAMLLoader{fs: fs}
}

// LoadFrom decodes the file at path into v. found is false, with a nil
// error, when the file does not exist.
func (l *YAMLLoader) LoadFrom(path string, v any) (found bool, err error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return true, l.decode(path, bytes.NewReader(data), v)
}

// LoadFromReader decodes YAML read from r into v.
func (l *YAMLLoader) LoadFromReader(r io.Reader, v any) error {
	return l.decode("<reader>", r, v)
}

func (l *YAMLLoader) decode(source string, r io.Reader, v any) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			// An empty document leaves v untouched.
			return nil
		}
		return yamlParseError(source, err)
	}
	return nil
}

// yamlParseError extracts the line from yaml.v3 messages of the form
// "yaml: line 3: ...".
func yamlParseError(source string, err error) *ParseError {
	pe := &ParseError{Path: source, Message: err.Error(), Err: err}

	msg := err.Error()
	var terr *yaml.TypeError
	if errors.As(err, &terr) && len(terr.Errors) > 0 {
		msg = strings.TrimSpace(terr.Errors[0])
	}
	msg = strings.TrimPrefix(msg, "yaml: ")

	var line int
	if n, _ := fmt.Sscanf(msg, "line %d:", &line); n == 1 {
		pe.Line = line
		if _, rest, ok := strings.Cut(msg, ": "); ok {
			msg = rest
		}
	}
	pe.Message = msg
	return pe
}
