// Copyright © 2025 mdsheet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/embedded.go
// Summary: Loads parsed defaults from the embedded JSON file.

package config

import (
	"encoding/json"
	"log"

	"github.com/framegrace/mdsheet/defaults"
)

// embeddedDefaults returns the parsed defaults from the embedded JSON,
// or nil when the embed is unreadable. Used by store.go when writing
// the initial config to disk.
func embeddedDefaults() Config {
	data, err := defaults.Config()
	if err != nil {
		log.Printf("Config: Failed to read embedded defaults: %v", err)
		return nil
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Printf("Config: Failed to parse embedded defaults: %v", err)
		return nil
	}
	return cfg
}
