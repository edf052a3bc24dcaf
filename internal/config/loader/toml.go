package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// TOMLLoader decodes TOML files.
type TOMLLoader struct {
	fs FileSystem
}

// NewTOMLLoader creates a TOML loader reading from the OS file system.
func NewTOMLLoader() *TOMLLoader {
	return &TOMLLoader{fs: DefaultFS()}
}

// NewTOMLLoaderWithFS creates a TOML loader with a custom file system.
func NewTOMLLoaderWithFS(fs FileSystem) *TOMLLoader {
	return &TOMLLoader{fs: fs}
}

// LoadFrom decodes the file at path into v. found is false, with a nil
// error, when the file does not exist.
func (l *TOMLLoader) LoadFrom(path string, v any) (found bool, err error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return true, l.decode(path, bytes.NewReader(data), v)
}

// LoadFromReader decodes TOML read from r into v.
func (l *TOMLLoader) LoadFromReader(r io.Reader, v any) error {
	return l.decode("<reader>", r, v)
}

func (l *TOMLLoader) decode(source string, r io.Reader, v any) error {
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return tomlParseError(source, err)
	}
	return nil
}

// tomlParseError converts go-toml errors, which carry positions, into a
// ParseError.
func tomlParseError(source string, err error) *ParseError {
	pe := &ParseError{Path: source, Message: err.Error(), Err: err}

	var derr *toml.DecodeError
	var serr *toml.StrictMissingError
	switch {
	case errors.As(err, &derr):
		pe.Line, pe.Column = derr.Position()
		pe.Message = derr.Error()
	case errors.As(err, &serr) && len(serr.Errors) > 0:
		first := serr.Errors[0]
		pe.Line, pe.Column = first.Position()
		pe.Message = "unknown key " + strings.Join(first.Key(), ".")
	}
	return pe
}

// ParseError locates a decode failure in a settings or keymap file. Line
// and Column are 1-based and zero when the decoder did not report them.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(e.Path)
	if e.Line > 0 {
		fmt.Fprintf(&b, ":%d", e.Line)
		if e.Column > 0 {
			fmt.Fprintf(&b, ":%d", e.Column)
		}
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }
