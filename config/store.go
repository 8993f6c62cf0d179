// Copyright © 2025 mdsheet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/store.go
// Summary: Load and first-run logic for the config store.

package config

import "log"

func loadLocked() error {
	path, err := configPath()
	if err != nil {
		log.Printf("Config: Failed to resolve config path: %v", err)
		current = make(Config)
		applyDefaults(current)
		return err
	}

	cfg, exists, readErr := readConfig(path)
	if readErr != nil {
		log.Printf("Config: Failed to read config %s: %v", path, readErr)
		cfg = make(Config)
	}

	if exists && len(cfg) == 0 {
		if def := embeddedDefaults(); def != nil {
			cfg = def
			if err := writeConfig(path, cfg); err != nil {
				log.Printf("Config: Failed to restore default config: %v", err)
				if readErr == nil {
					readErr = err
				}
			}
		}
	}

	if !exists {
		cfg = embeddedDefaults()
		if cfg == nil {
			cfg = make(Config)
		}
		applyDefaults(cfg)
		if err := writeConfig(path, cfg); err != nil {
			log.Printf("Config: Failed to write default config: %v", err)
			if readErr == nil {
				readErr = err
			}
		}
	} else {
		applyDefaults(cfg)
	}

	current = cfg
	if readErr == nil && exists {
		log.Printf("Config: Loaded config from %s", path)
	}
	return readErr
}
