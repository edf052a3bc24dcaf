// Package loader reads configuration files and environment variables.
//
// Files are decoded straight into the caller's structs: TOML with
// go-toml/v2 and YAML with yaml.v3. Unknown keys are rejected so typos
// surface as parse errors instead of silently falling back to defaults.
package loader

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Format is a configuration file format, picked by extension.
type Format uint8

const (
	FormatUnknown Format = iota
	FormatTOML           // .toml
	FormatYAML           // .yaml, .yml
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatUnknown
	}
}

// FileSystem is the part of the filesystem the loaders read through.
// Tests substitute an in-memory implementation.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	Stat(path string) (fs.FileInfo, error)
}

type osFS struct{}

func (osFS) ReadFile(path string) ([]byte, error)  { return os.ReadFile(path) }
func (osFS) Stat(path string) (fs.FileInfo, error) { return os.Stat(path) }

// DefaultFS reads from the operating system.
func DefaultFS() FileSystem { return osFS{} }
