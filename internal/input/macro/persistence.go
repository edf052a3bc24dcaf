package macro

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dshills/modalcore/internal/input/key"
)

const currentVersion = 1

// persistedMacro is one register in a macros file, in key notation.
type persistedMacro struct {
	Register string `yaml:"register"`
	Keys     string `yaml:"keys"`
}

type persistedData struct {
	Version    int              `yaml:"version"`
	SavedAt    time.Time        `yaml:"saved_at"`
	LastPlayed string           `yaml:"last_played,omitempty"`
	Macros     []persistedMacro `yaml:"macros"`
}

// Export encodes every macro register of macros as YAML.
func Export(macros *Registers, lastPlayed rune) ([]byte, error) {
	data := persistedData{
		Version: currentVersion,
		SavedAt: time.Now().UTC(),
	}
	if lastPlayed != 0 {
		data.LastPlayed = string(lastPlayed)
	}
	all := macros.All()
	for _, reg := range slices.Sorted(maps.Keys(all)) {
		data.Macros = append(data.Macros, persistedMacro{
			Register: string(reg),
			Keys:     key.Format(all[reg]),
		})
	}
	out, err := yaml.Marshal(&data)
	if err != nil {
		return nil, fmt.Errorf("marshal macros: %w", err)
	}
	return out, nil
}

// Import decodes YAML produced by Export into macros and returns the last
// played register. With merge set, registers that already hold a macro
// are kept.
func Import(macros *Registers, data []byte, merge bool) (rune, error) {
	var pd persistedData
	if err := yaml.Unmarshal(data, &pd); err != nil {
		return 0, fmt.Errorf("unmarshal macros: %w", err)
	}
	if pd.Version > currentVersion {
		return 0, fmt.Errorf("unsupported macros version: %d (max supported: %d)", pd.Version, currentVersion)
	}
	for _, m := range pd.Macros {
		reg := firstRune(m.Register)
		if !IsLetterRegister(reg) && !IsDigitRegister(reg) {
			continue
		}
		events, err := key.ParseSequence(m.Keys)
		if err != nil {
			return 0, fmt.Errorf("register %s: %w", m.Register, err)
		}
		if merge && len(macros.Get(reg)) > 0 {
			continue
		}
		macros.Set(reg, events)
	}
	last := firstRune(pd.LastPlayed)
	if !IsValidRegister(last) {
		last = 0
	}
	return last, nil
}

// Save writes the macros to path atomically.
func Save(macros *Registers, lastPlayed rune, path string) error {
	data, err := Export(macros, lastPlayed)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Load reads macros from path. A missing file is not an error.
func Load(macros *Registers, path string) (rune, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read macros file: %w", err)
	}
	return Import(macros, data, false)
}

// DefaultMacrosPath returns the per-user macros file.
func DefaultMacrosPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get config directory: %w", err)
	}
	return filepath.Join(dir, "modalcore", "macros.yaml"), nil
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
