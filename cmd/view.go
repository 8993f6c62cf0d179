// Copyright © 2025 mdsheet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/framegrace/mdsheet/highlight"
	"github.com/framegrace/mdsheet/workspace"
)

var viewPlain bool

var viewCmd = &cobra.Command{
	Use:   "view <file>",
	Short: "Render a markdown file for the terminal",
	Long: `View prints a markdown document with its tables canonicalized and
colorized, headings styled by level, and fenced code blocks highlighted
with Chroma. When stdout is not a terminal the output degrades to the
plain canonical text.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := workspace.ReadDocument(args[0])
		if err != nil {
			return err
		}
		plain := viewPlain || !term.IsTerminal(int(os.Stdout.Fd()))
		out := highlight.Render(content, highlight.Options{
			Style: effectiveTheme(),
			Plain: plain,
		})
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	viewCmd.Flags().BoolVar(&viewPlain, "plain", false, "Disable all styling")
	rootCmd.AddCommand(viewCmd)
}
