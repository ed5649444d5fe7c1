// Package config reads splice.toml, the optional project file that names
// the library and cache settings so they need not be passed on every call.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file looked up from the working directory upwards.
const ManifestName = "splice.toml"

// Color modes accepted by [output].color and --color.
const (
	ColorAuto = "auto"
	ColorOn   = "on"
	ColorOff  = "off"
)

// Manifest is a loaded splice.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the TOML layout.
type Config struct {
	Library LibraryConfig `toml:"library"`
	Cache   CacheConfig   `toml:"cache"`
	Output  OutputConfig  `toml:"output"`
}

type LibraryConfig struct {
	Includes string   `toml:"includes"`
	List     string   `toml:"list"`
	Files    []string `toml:"files"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type OutputConfig struct {
	Color string `toml:"color"`
}

// Find looks for splice.toml in startDir and its parents.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds and loads the nearest splice.toml. ok is false when there
// is none.
func Discover(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// Load reads and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	var cfg Config
	meta, err := toml.DecodeFile(abs, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	if meta.IsDefined("library") {
		if !meta.IsDefined("library", "includes") || strings.TrimSpace(cfg.Library.Includes) == "" {
			return nil, fmt.Errorf("%s: missing [library].includes", path)
		}
		if strings.TrimSpace(cfg.Library.List) == "" && len(cfg.Library.Files) == 0 {
			return nil, fmt.Errorf("%s: [library] needs list or files", path)
		}
	}
	if !meta.IsDefined("output", "color") {
		cfg.Output.Color = ColorAuto
	}
	if err := ValidateColor(cfg.Output.Color); err != nil {
		return nil, fmt.Errorf("%s: [output].color: %w", path, err)
	}
	return &Manifest{Path: abs, Root: filepath.Dir(abs), Config: cfg}, nil
}

// ValidateColor accepts auto, on and off.
func ValidateColor(mode string) error {
	switch mode {
	case ColorAuto, ColorOn, ColorOff:
		return nil
	}
	return fmt.Errorf("invalid color mode %q (want auto, on or off)", mode)
}

// Resolve makes a manifest-relative path usable from the working directory.
func (m *Manifest) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.Root, filepath.FromSlash(p))
}

// IncludesPath returns the resolved [library].includes.
func (m *Manifest) IncludesPath() string {
	return m.Resolve(m.Config.Library.Includes)
}

// ListPath returns the resolved [library].list.
func (m *Manifest) ListPath() string {
	return m.Resolve(m.Config.Library.List)
}

// Files returns the resolved [library].files.
func (m *Manifest) Files() []string {
	out := make([]string, len(m.Config.Library.Files))
	for i, f := range m.Config.Library.Files {
		out[i] = m.Resolve(f)
	}
	return out
}

// CacheDir returns the resolved [cache].dir, "" for the default location.
func (m *Manifest) CacheDir() string {
	return m.Resolve(m.Config.Cache.Dir)
}
