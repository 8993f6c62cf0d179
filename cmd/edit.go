// Copyright © 2025 mdsheet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cmd

import (
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/framegrace/mdsheet/apps/sheet"
	"github.com/framegrace/mdsheet/config"
	"github.com/framegrace/mdsheet/index"
	"github.com/framegrace/mdsheet/internal/apprunner"
	"github.com/framegrace/mdsheet/mdtable"
	"github.com/framegrace/mdsheet/workspace"
)

var editCmd = &cobra.Command{
	Use:   "edit <file>",
	Short: "Edit a file's tables in the terminal",
	Long: `Edit opens a markdown file in a full-screen table editor. Cells are
edited in place and saving rewrites only the table regions, keeping the
surrounding text byte for byte.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		app, err := sheet.New(path)
		if err != nil {
			return err
		}
		if !logRouted {
			log.SetOutput(io.Discard)
		}
		if err := apprunner.Run(app); err != nil {
			return err
		}
		return reindexAfterEdit(path)
	},
}

// reindexAfterEdit refreshes an existing search index with the edited
// document. A workspace that was never indexed is left alone.
func reindexAfterEdit(path string) error {
	ixPath := config.Current().IndexPath
	if ixPath == "" {
		p, err := config.DefaultIndexPath()
		if err != nil {
			return nil
		}
		ixPath = p
	}
	if _, err := os.Stat(ixPath); err != nil {
		return nil
	}
	ix, err := index.Open(ixPath)
	if err != nil {
		return err
	}
	defer ix.Close()

	content, err := workspace.ReadDocument(path)
	if err != nil {
		return err
	}
	if err := ix.IndexDocument(path, mdtable.Parse(content).Tables); err != nil {
		return err
	}
	return ix.Flush()
}

func init() {
	rootCmd.AddCommand(editCmd)
}
