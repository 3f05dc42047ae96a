// Package config loads .specgap.toml.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pelletier/go-toml/v2"
)

// FileName is the conventional config file at the repository root.
const FileName = ".specgap.toml"

const defaultMaxFileSize = 1_000_000 // 1 MB

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config controls which files and methods are checked and where specs live.
type Config struct {
	SpecDir       string   `toml:"spec_dir"`
	StripPrefixes []string `toml:"strip_prefixes"`
	Exclude       []string `toml:"exclude"`
	IgnoreMethods []string `toml:"ignore_methods"`
	MaxFileSize   int      `toml:"max_file_size"`
	Base          string   `toml:"base"`
}

// fileConfig mirrors Config with pointers so keys absent from the file keep
// their default values.
type fileConfig struct {
	SpecDir       *string   `toml:"spec_dir"`
	StripPrefixes *[]string `toml:"strip_prefixes"`
	Exclude       *[]string `toml:"exclude"`
	IgnoreMethods *[]string `toml:"ignore_methods"`
	MaxFileSize   *int      `toml:"max_file_size"`
	Base          *string   `toml:"base"`
}

func (f fileConfig) apply(cfg *Config) {
	if f.SpecDir != nil {
		cfg.SpecDir = *f.SpecDir
	}
	if f.StripPrefixes != nil {
		cfg.StripPrefixes = *f.StripPrefixes
	}
	if f.Exclude != nil {
		cfg.Exclude = *f.Exclude
	}
	if f.IgnoreMethods != nil {
		cfg.IgnoreMethods = *f.IgnoreMethods
	}
	if f.MaxFileSize != nil {
		cfg.MaxFileSize = *f.MaxFileSize
	}
	if f.Base != nil {
		cfg.Base = *f.Base
	}
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		SpecDir:       "spec",
		StripPrefixes: []string{"app/"},
		Exclude:       []string{"spec/**", "db/**", "vendor/**"},
		IgnoreMethods: []string{"initialize"},
		MaxFileSize:   defaultMaxFileSize,
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}

	var file fileConfig
	if err := toml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("decoding %s: %w", path, err)
	}
	file.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and glob syntax.
func (c Config) Validate() error {
	if c.SpecDir == "" {
		return fmt.Errorf("%w: spec_dir must not be empty", ErrInvalid)
	}
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("%w: max_file_size must be positive, got %d", ErrInvalid, c.MaxFileSize)
	}
	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("%w: bad exclude pattern %q", ErrInvalid, pattern)
		}
	}
	return nil
}

// Ignored reports whether method names should never be reported.
func (c Config) Ignored(name string) bool {
	for _, m := range c.IgnoreMethods {
		if m == name {
			return true
		}
	}
	return false
}

// Encode renders c as TOML.
func (c Config) Encode() (string, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}
	return string(data), nil
}
