// Package config loads .sysmlcore/config.yaml, the project-level
// defaults for workspace root, include/exclude globs, cache path, and log
// level/format (§11). Grounded on the teacher's
// cmd/uispec/config.go loadProjectConfig/resolveCatalogPath fallback
// chain: CLI flag overrides config file value overrides built-in default.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Project is the contents of .sysmlcore/config.yaml.
type Project struct {
	Workspace string   `yaml:"workspace"`
	Include   []string `yaml:"include"`
	Exclude   []string `yaml:"exclude"`
	CachePath string   `yaml:"cache_path"`
	LogLevel  string   `yaml:"log_level"`
	LogFormat string   `yaml:"log_format"`
}

// Path is the conventional location of a workspace's project config.
const Path = ".sysmlcore/config.yaml"

// Load reads Path relative to the current directory. A missing file is
// not an error: it returns (nil, nil), the same "absent means defaults"
// contract the teacher's loadProjectConfig uses.
func Load() (*Project, error) {
	return LoadFrom(Path)
}

// LoadFrom reads and parses the config file at path.
func LoadFrom(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg Project
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ResolveString applies the fallback chain: a non-empty flagValue wins,
// otherwise fall back to fromConfig (itself possibly empty), leaving the
// caller's own built-in default as the final fallback.
func ResolveString(flagValue, fromConfig string) string {
	if flagValue != "" {
		return flagValue
	}
	return fromConfig
}

// ResolveStrings applies the same fallback chain for a glob list: a
// non-empty flagValue list wins outright (no merge), else fromConfig.
func ResolveStrings(flagValue, fromConfig []string) []string {
	if len(flagValue) > 0 {
		return flagValue
	}
	return fromConfig
}
