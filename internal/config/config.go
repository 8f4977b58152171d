// Package config loads badnames.toml, the run configuration of a project.
// It never configures the rules themselves.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"badnames/internal/diagfmt"
	"badnames/internal/driver"
)

// FileName is the configuration file looked up from the target upwards.
const FileName = "badnames.toml"

// Config is the decoded badnames.toml.
type Config struct {
	Check CheckConfig `toml:"check"`
	Cache CacheConfig `toml:"cache"`
}

type CheckConfig struct {
	Format           string   `toml:"format"`
	Jobs             int      `toml:"jobs"`
	MaxDiagnostics   int      `toml:"max-diagnostics"`
	WarningsAsErrors bool     `toml:"warnings-as-errors"`
	NoWarnings       bool     `toml:"no-warnings"`
	OnMalformed      string   `toml:"on-malformed"`
	Exclude          []string `toml:"exclude"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// Manifest is a located and validated configuration file.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Check: CheckConfig{
			Format:         string(diagfmt.FormatPretty),
			MaxDiagnostics: 100,
			OnMalformed:    driver.MalformedContinue.String(),
		},
	}
}

// Find looks for FileName in startDir and its parents.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, FileName)
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

// Discover finds and loads the configuration for startDir. Without a file it
// returns nil and no error.
func Discover(startDir string) (*Manifest, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, err
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, nil
}

// Load decodes and validates path. Keys that are absent keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("check", "format") {
		if _, err := diagfmt.ParseFormat(cfg.Check.Format); err != nil {
			return Config{}, fmt.Errorf("%s: [check].format: %w", path, err)
		}
	}
	if meta.IsDefined("check", "on-malformed") {
		if _, err := driver.ParseMalformedPolicy(cfg.Check.OnMalformed); err != nil {
			return Config{}, fmt.Errorf("%s: [check].on-malformed: %w", path, err)
		}
	}
	if cfg.Check.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [check].jobs must not be negative", path)
	}
	if cfg.Check.MaxDiagnostics < 0 {
		return Config{}, fmt.Errorf("%s: [check].max-diagnostics must not be negative", path)
	}
	for _, pattern := range cfg.Check.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return Config{}, fmt.Errorf("%s: [check].exclude: bad pattern %q", path, pattern)
		}
	}
	if meta.IsDefined("cache", "dir") && cfg.Cache.Dir != "" && !filepath.IsAbs(cfg.Cache.Dir) {
		cfg.Cache.Dir = filepath.Join(filepath.Dir(path), cfg.Cache.Dir)
	}
	return cfg, nil
}

// DriverOptions converts the file settings into driver options.
// Cache and progress are wired by the caller.
func (c Config) DriverOptions() (driver.Options, error) {
	policy, err := driver.ParseMalformedPolicy(c.Check.OnMalformed)
	if err != nil {
		return driver.Options{}, err
	}
	return driver.Options{
		MaxDiagnostics:   c.Check.MaxDiagnostics,
		IgnoreWarnings:   c.Check.NoWarnings,
		WarningsAsErrors: c.Check.WarningsAsErrors,
		OnMalformed:      policy,
		Jobs:             c.Check.Jobs,
		Exclude:          c.Check.Exclude,
	}, nil
}
