// Package config provides configuration management for galup.
//
// The configuration file maps website names (or any of their aliases) to the
// author's username on that site. It is conventionally JSON, but the loader
// accepts YAML as well since every JSON document is valid YAML.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/open-gallery-collective/galup/pkg/desc"
)

// LocalConfigFile is looked up in the working directory before the
// user-level configuration path.
const LocalConfigFile = "config.json"

// Config holds the loaded username configuration.
type Config struct {
	// Users maps each configured website to the author's username there.
	Users desc.Users
	// Warnings lists configuration keys that were ignored, one message per
	// unknown website name.
	Warnings []string
}

// Load reads the username configuration at path. Website keys are resolved
// through the registry, so aliases like "eka" and "fa" work. Unknown keys are
// reported as warnings; empty usernames, two keys naming the same website and
// a configuration with no usable entry are errors.
func Load(path string, reg *desc.Registry) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	cfg := &Config{Users: make(desc.Users, len(raw))}
	configured := make(map[desc.SiteID]string, len(raw))
	for _, key := range keys {
		id, ok := reg.Canonical(key)
		if !ok {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("unknown website %q in %s", key, path))
			continue
		}
		username := strings.TrimSpace(raw[key])
		if username == "" {
			return nil, fmt.Errorf("empty username for website %q", key)
		}
		if prev, dup := configured[id]; dup {
			return nil, fmt.Errorf("websites %q and %q are the same site", prev, key)
		}
		configured[id] = key
		cfg.Users[id] = username
	}

	if len(cfg.Users) == 0 {
		return nil, errors.New("no valid website configured")
	}
	return cfg, nil
}

// Save writes the entries as a JSON configuration file, creating the parent
// directory if needed.
func Save(path string, entries map[string]string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultPath returns the configuration file to use when none is given on
// the command line: config.json next to the sources being generated, then
// the user-level file under the XDG config directory.
func DefaultPath() string {
	if _, err := os.Stat(LocalConfigFile); err == nil {
		return LocalConfigFile
	}

	path, err := xdg.ConfigFile(filepath.Join("galup", "config.json"))
	if err != nil {
		return LocalConfigFile
	}
	return path
}
