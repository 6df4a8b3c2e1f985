// Package config loads the optional sharon.toml configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "sharon.toml"

// Config holds run settings. Zero values mean "use the default".
type Config struct {
	OutDir      string   `toml:"outdir"`
	DB          string   `toml:"db"`
	Jobs        int      `toml:"jobs"`
	Indent      int      `toml:"indent"`
	Export      string   `toml:"export"`
	MetricsFile string   `toml:"metrics_file"`
	Languages   []string `toml:"languages"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Jobs:   runtime.GOMAXPROCS(0),
		Indent: 1,
	}
}

// Load decodes the TOML file at path over the defaults. Unknown keys are
// rejected.
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
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Find returns the path of sharon.toml in dir, and false if there is none.
func Find(dir string) (string, bool, error) {
	candidate := filepath.Join(dir, FileName)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, true, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
	}
	return "", false, nil
}

// Resolve loads the explicit path when set, otherwise sharon.toml from dir
// when present, otherwise the defaults.
func Resolve(explicit, dir string) (Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, ok, err := Find(dir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}
	if c.Indent < 0 {
		return fmt.Errorf("indent must not be negative, got %d", c.Indent)
	}
	return nil
}

// ExportPath returns the configured export path, defaulting to
// files.jsonl inside the output directory.
func (c Config) ExportPath() string {
	if c.Export != "" {
		return c.Export
	}
	if c.OutDir == "" {
		return ""
	}
	return filepath.Join(c.OutDir, "files.jsonl")
}
