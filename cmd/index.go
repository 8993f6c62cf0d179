// Copyright © 2025 mdsheet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/framegrace/mdsheet/config"
	"github.com/framegrace/mdsheet/workspace"
)

var indexCmd = &cobra.Command{
	Use:   "index [dir]",
	Short: "Rebuild the workspace search index",
	Long: `Index walks a workspace, parses every markdown file, and rebuilds the
full-text search index from the table contents. The index lives in the
user cache directory unless configured otherwise.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, err := openIndex()
		if err != nil {
			return err
		}
		defer ix.Close()

		opts := workspace.TreeOptions{
			MaxDepth:      config.Current().TreeDepth,
			IncludeHidden: config.Current().Hidden,
		}
		files, tables, err := ix.Rebuild(resolveDir(args), opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "indexed %d tables from %d files\n", tables, files)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
