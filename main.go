// Copyright © 2025 mdsheet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import "github.com/framegrace/mdsheet/cmd"

func main() {
	cmd.Execute()
}
