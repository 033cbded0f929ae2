package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

const configFileName = "shaderbuild.toml"

// buildConfig mirrors shaderbuild.toml.
type buildConfig struct {
	Compiler compilerConfig `toml:"compiler"`
	Build    buildSection   `toml:"build"`
}

type compilerConfig struct {
	Path  string `toml:"path"`
	Debug bool   `toml:"debug"`
}

type buildSection struct {
	Dir  string `toml:"dir"`
	Jobs int    `toml:"jobs"`
}

// loadedConfig is a decoded config plus which keys were present.
type loadedConfig struct {
	Path   string
	Config buildConfig
	meta   toml.MetaData
}

func (c *loadedConfig) has(keys ...string) bool {
	if c == nil {
		return false
	}
	return c.meta.IsDefined(keys...)
}

// findConfig returns the config to load: explicit when set (it must exist),
// otherwise <root>/shaderbuild.toml when present.
func findConfig(explicit, root string) (string, bool, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", false, fmt.Errorf("failed to stat config %q: %w", explicit, err)
		}
		return explicit, true, nil
	}
	candidate := filepath.Join(root, configFileName)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, true, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
	}
	return "", false, nil
}

func loadConfig(path string) (*loadedConfig, error) {
	var cfg buildConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if cfg.Build.Jobs < 0 {
		return nil, fmt.Errorf("%s: [build].jobs must not be negative", path)
	}
	if meta.IsDefined("compiler", "path") && strings.TrimSpace(cfg.Compiler.Path) == "" {
		return nil, fmt.Errorf("%s: [compiler].path is empty", path)
	}
	if cfg.Compiler.Path != "" && !filepath.IsAbs(cfg.Compiler.Path) {
		cfg.Compiler.Path = filepath.Join(filepath.Dir(path), filepath.FromSlash(cfg.Compiler.Path))
	}
	if filepath.IsAbs(cfg.Build.Dir) {
		return nil, fmt.Errorf("%s: [build].dir must be relative to the root", path)
	}
	return &loadedConfig{Path: path, Config: cfg, meta: meta}, nil
}
