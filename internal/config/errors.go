package config

import (
	"errors"
	"fmt"

	"github.com/dshills/modalcore/internal/config/loader"
)

// Errors returned by configuration operations.
var (
	// ErrInvalidValue indicates a setting value that cannot be used.
	ErrInvalidValue = errors.New("invalid value")

	// ErrUnknownSetting indicates a setting path that does not exist.
	ErrUnknownSetting = errors.New("unknown setting")

	// ErrUnsupportedFormat indicates a file extension no loader handles.
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

// ParseError is the positioned error returned for malformed files.
type ParseError = loader.ParseError

// ValueError describes a setting that failed validation.
type ValueError struct {
	// Path is the dotted setting path, such as "editing.shift_width".
	Path string
	// Value is the rejected value.
	Value any
	// Message says what is wrong with it.
	Message string
}

// Error implements the error interface.
func (e *ValueError) Error() string {
	return fmt.Sprintf("%s: %s (value: %v)", e.Path, e.Message, e.Value)
}

// Is matches ErrInvalidValue.
func (e *ValueError) Is(target error) bool {
	return target == ErrInvalidValue
}
