// Copyright © 2025 mdsheet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/framegrace/mdsheet/config"
	"github.com/framegrace/mdsheet/workspace"
)

var (
	treeJSON   bool
	treeDepth  int
	treeHidden bool
)

var (
	// dirStyle renders directory names in the tree listing
	dirStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("75"))

	// glyphStyle renders the branch glyphs
	glyphStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

var treeCmd = &cobra.Command{
	Use:   "tree [dir]",
	Short: "List the markdown files of a workspace",
	Long: `Tree walks a workspace directory and lists its markdown files, pruning
directories that contain none. The listing honors the configured depth
limit and hidden-file policy unless overridden by flags.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := workspace.TreeOptions{MaxDepth: treeDepth, IncludeHidden: treeHidden}
		if !cmd.Flags().Changed("depth") {
			opts.MaxDepth = config.Current().TreeDepth
		}
		if !cmd.Flags().Changed("hidden") {
			opts.IncludeHidden = config.Current().Hidden
		}

		root, err := workspace.BuildTree(resolveDir(args), opts)
		if err != nil {
			return err
		}

		if treeJSON {
			data, err := json.MarshalIndent(root, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), dirStyle.Render(root.Name))
		printTree(cmd, root.Children, "")
		return nil
	},
}

func printTree(cmd *cobra.Command, entries []workspace.FileEntry, prefix string) {
	for i, entry := range entries {
		glyph, childPrefix := "├── ", prefix+"│   "
		if i == len(entries)-1 {
			glyph, childPrefix = "└── ", prefix+"    "
		}
		name := entry.Name
		if entry.IsDir {
			name = dirStyle.Render(name)
		}
		fmt.Fprintln(cmd.OutOrStdout(), prefix+glyphStyle.Render(glyph)+name)
		if entry.IsDir {
			printTree(cmd, entry.Children, childPrefix)
		}
	}
}

func init() {
	treeCmd.Flags().BoolVar(&treeJSON, "json", false, "Emit the tree as JSON")
	treeCmd.Flags().IntVar(&treeDepth, "depth", workspace.DefaultMaxDepth, "Maximum directory depth")
	treeCmd.Flags().BoolVar(&treeHidden, "hidden", false, "Include dot-directories and dot-files")
	rootCmd.AddCommand(treeCmd)
}
