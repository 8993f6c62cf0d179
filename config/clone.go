// Copyright © 2025 mdsheet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/clone.go
// Summary: Clone helper for config maps.

package config

// Clone returns a shallow copy of the config and its sections.
func Clone(cfg Config) Config {
	if cfg == nil {
		return nil
	}
	clone := make(Config, len(cfg))
	for name, value := range cfg {
		switch v := value.(type) {
		case Section:
			out := make(Section, len(v))
			for k, sv := range v {
				out[k] = sv
			}
			clone[name] = out
		case map[string]interface{}:
			out := make(Section, len(v))
			for k, sv := range v {
				out[k] = sv
			}
			clone[name] = out
		default:
			clone[name] = v
		}
	}
	return clone
}
