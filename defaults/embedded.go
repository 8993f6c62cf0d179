// Copyright © 2025 mdsheet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: defaults/embedded.go
// Summary: Embedded default configuration file.

package defaults

import "embed"

//go:embed mdsheet.json
var fs embed.FS

// Config returns the embedded default config JSON.
func Config() ([]byte, error) {
	return fs.ReadFile("mdsheet.json")
}
