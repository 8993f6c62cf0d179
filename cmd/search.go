// Copyright © 2025 mdsheet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var searchLimit int

var (
	hitPathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	hitHeadingStyle = lipgloss.NewStyle().Bold(true)
	hitSnippetStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search indexed table contents",
	Long: `Search runs a full-text query against the workspace index and prints
the matching tables: file, line, nearest heading, and a snippet of the
matching row. Run "mdsheet index" first to build the index.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, err := openIndex()
		if err != nil {
			return err
		}
		defer ix.Close()

		hits, err := ix.Search(args[0], searchLimit)
		if err != nil {
			return err
		}
		if len(hits) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), hitSnippetStyle.Render("no matches"))
			return nil
		}
		for _, hit := range hits {
			loc := fmt.Sprintf("%s:%d", hit.Path, hit.Line+1)
			line := hitPathStyle.Render(loc)
			if hit.Heading != "" {
				line += "  " + hitHeadingStyle.Render(hit.Heading)
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
			if hit.Snippet != "" {
				fmt.Fprintln(cmd.OutOrStdout(), "    "+hitSnippetStyle.Render(hit.Snippet))
			}
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 20, "Maximum number of hits")
	rootCmd.AddCommand(searchCmd)
}
