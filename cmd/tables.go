// Copyright © 2025 mdsheet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/framegrace/mdsheet/mdtable"
	"github.com/framegrace/mdsheet/workspace"
)

var tablesJSON bool

var (
	tableTitleStyle = lipgloss.NewStyle().Bold(true)
	tableMetaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

var tablesCmd = &cobra.Command{
	Use:   "tables <file>",
	Short: "Summarize the tables in a markdown file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := workspace.ReadDocument(args[0])
		if err != nil {
			return err
		}
		doc := mdtable.Parse(content)

		if tablesJSON {
			tables := doc.Tables
			if tables == nil {
				tables = []mdtable.Table{}
			}
			data, err := json.MarshalIndent(tables, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		if len(doc.Tables) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no tables")
			return nil
		}
		for i, t := range doc.Tables {
			title := fmt.Sprintf("table %d", i+1)
			if t.Heading != nil {
				title = *t.Heading
			}
			meta := fmt.Sprintf("%d cols, %d rows, lines %d-%d",
				t.ColumnCount(), len(t.Rows), t.StartLine+1, t.EndLine+1)
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n",
				tableTitleStyle.Render(title), tableMetaStyle.Render(meta))
		}
		return nil
	},
}

func init() {
	tablesCmd.Flags().BoolVar(&tablesJSON, "json", false, "Emit the tables as JSON")
	rootCmd.AddCommand(tablesCmd)
}
