package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrNoConfig is returned by LoadLocal and LoadGlobal when no file exists.
var ErrNoConfig = errors.New("no config file")

// LocalNames are searched in the scan root, in order.
var LocalNames = []string{".pushguard.yml", ".pushguard.yaml", "pushguard.yml", "pushguard.yaml"}

// FileConfig is the on-disk YAML configuration shape. Unset keys stay nil so
// layers can be merged.
type FileConfig struct {
	Include     *string `yaml:"include,omitempty"`
	Exclude     *string `yaml:"exclude,omitempty"`
	Threads     *int    `yaml:"threads,omitempty"`
	Enable      *string `yaml:"enable,omitempty"`
	Disable     *string `yaml:"disable,omitempty"`
	MaxChars    *int    `yaml:"max_chars,omitempty"`
	NoColor     *bool   `yaml:"no_color,omitempty"`
	SniffBinary *bool   `yaml:"sniff_binary,omitempty"`
	SkipHygiene *bool   `yaml:"skip_hygiene,omitempty"`
	Baseline    *string `yaml:"baseline,omitempty"`

	// Appended to the built-in exclusion sets, never replacing them.
	ExtraExcludeDirs  []string `yaml:"extra_exclude_dirs,omitempty"`
	ExtraExcludeFiles []string `yaml:"extra_exclude_files,omitempty"`
	ExtraExcludeExts  []string `yaml:"extra_exclude_exts,omitempty"`
}

// LoadFile reads a YAML config file from the provided path. Unknown keys are
// rejected so typos surface instead of being ignored.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return FileConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LocalPath returns the first local config file present in root, or "".
func LocalPath(root string) string {
	for _, name := range LocalNames {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// LoadLocal searches for a config file in the given root.
func LoadLocal(root string) (FileConfig, error) {
	p := LocalPath(root)
	if p == "" {
		return FileConfig{}, ErrNoConfig
	}
	return LoadFile(p)
}

// GlobalPath returns the global config location, or "" when neither
// XDG_CONFIG_HOME nor a home directory is available.
func GlobalPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return ""
	}
	return filepath.Join(base, "pushguard", "config.yml")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	p := GlobalPath()
	if p == "" {
		return FileConfig{}, ErrNoConfig
	}
	if _, err := os.Stat(p); err != nil {
		return FileConfig{}, ErrNoConfig
	}
	return LoadFile(p)
}

// Merge overlays over onto base. Set scalar fields in over win; extra
// exclusion lists are concatenated.
func Merge(base, over FileConfig) FileConfig {
	out := base
	if over.Include != nil {
		out.Include = over.Include
	}
	if over.Exclude != nil {
		out.Exclude = over.Exclude
	}
	if over.Threads != nil {
		out.Threads = over.Threads
	}
	if over.Enable != nil {
		out.Enable = over.Enable
	}
	if over.Disable != nil {
		out.Disable = over.Disable
	}
	if over.MaxChars != nil {
		out.MaxChars = over.MaxChars
	}
	if over.NoColor != nil {
		out.NoColor = over.NoColor
	}
	if over.SniffBinary != nil {
		out.SniffBinary = over.SniffBinary
	}
	if over.SkipHygiene != nil {
		out.SkipHygiene = over.SkipHygiene
	}
	if over.Baseline != nil {
		out.Baseline = over.Baseline
	}
	out.ExtraExcludeDirs = concat(base.ExtraExcludeDirs, over.ExtraExcludeDirs)
	out.ExtraExcludeFiles = concat(base.ExtraExcludeFiles, over.ExtraExcludeFiles)
	out.ExtraExcludeExts = concat(base.ExtraExcludeExts, over.ExtraExcludeExts)
	return out
}

func concat(a, b []string) []string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// Load returns global merged with local config for root. Missing files are
// not an error; unreadable or malformed ones are.
func Load(root string) (FileConfig, error) {
	global, err := LoadGlobal()
	if err != nil && !errors.Is(err, ErrNoConfig) {
		return FileConfig{}, err
	}
	local, err := LoadLocal(root)
	if err != nil && !errors.Is(err, ErrNoConfig) {
		return FileConfig{}, err
	}
	return Merge(global, local), nil
}
