// Copyright © 2025 mdsheet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for the mdsheet configuration file.

package config

import "log"

func applyDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("", Section{
		"theme":      "catppuccin-mocha",
		"tree_depth": 5,
		"hidden":     false,
	})
	if _, ok := cfg["index_path"]; !ok {
		if path, err := DefaultIndexPath(); err == nil {
			cfg["index_path"] = path
		} else {
			log.Printf("Config: Failed to resolve cache dir: %v", err)
		}
	}
}
