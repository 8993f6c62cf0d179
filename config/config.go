// Copyright © 2025 mdsheet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: Configuration store for mdsheet.

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/renameio"
)

const configName = "mdsheet.json"

// Config stores configuration values as JSON-compatible data.
type Config map[string]interface{}

// Section stores key/value pairs for a configuration section.
type Section map[string]interface{}

var (
	mu      sync.RWMutex
	once    sync.Once
	current Config
	loadErr error
)

// Settings is a typed snapshot of the values mdsheet reads.
type Settings struct {
	Theme     string
	TreeDepth int
	IndexPath string
	Hidden    bool
}

// Err returns the most recent config load error.
func Err() error {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return loadErr
}

// Store returns the loaded configuration map.
func Store() Config {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Current returns a typed snapshot of the loaded configuration.
func Current() Settings {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return Settings{
		Theme:     current.GetString("", "theme", "catppuccin-mocha"),
		TreeDepth: current.GetInt("", "tree_depth", 5),
		IndexPath: current.GetString("", "index_path", ""),
		Hidden:    current.GetBool("", "hidden", false),
	}
}

// Reload refreshes the configuration from disk.
func Reload() error {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	loadErr = loadLocked()
	return loadErr
}

// Set replaces the in-memory configuration with the provided config.
func Set(cfg Config) {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	if cfg == nil {
		cfg = make(Config)
	}
	current = Clone(cfg)
}

// Save persists the current configuration to disk.
func Save() error {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	path, err := configPath()
	if err != nil {
		return err
	}
	return writeConfig(path, current)
}

func initStore() {
	mu.Lock()
	defer mu.Unlock()
	current = make(Config)
	loadErr = loadLocked()
}

func readConfig(path string) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}

func writeConfig(path string, cfg Config) error {
	if cfg == nil {
		cfg = make(Config)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return renameio.WriteFile(path, data, 0644)
}
