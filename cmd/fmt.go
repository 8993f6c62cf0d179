// Copyright © 2025 mdsheet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/framegrace/mdsheet/workspace"
)

var (
	fmtWrite bool
	fmtCheck bool
)

var (
	fmtChangedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	fmtCleanStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

var fmtCmd = &cobra.Command{
	Use:   "fmt <file>...",
	Short: "Reformat markdown tables canonically",
	Long: `Fmt rewrites every table in the given files to the canonical form:
cells padded to uniform column widths, separator rows regenerated from
the alignments. Text outside tables is left untouched.

By default the reformatted document is printed to stdout. With --write
files are rewritten in place; with --check nothing is written and the
command fails when any file would change.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var dirty []string
		for _, path := range args {
			content, err := workspace.ReadDocument(path)
			if err != nil {
				return err
			}
			formatted := workspace.Reformat(content)
			changed := formatted != content

			switch {
			case fmtCheck:
				if changed {
					dirty = append(dirty, path)
					fmt.Fprintln(cmd.OutOrStdout(), fmtChangedStyle.Render("would rewrite")+" "+path)
				}
			case fmtWrite:
				if !changed {
					fmt.Fprintln(cmd.OutOrStdout(), fmtCleanStyle.Render("unchanged")+" "+path)
					continue
				}
				if err := workspace.SaveDocument(path, formatted); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), fmtChangedStyle.Render("rewrote")+" "+path)
			default:
				fmt.Fprint(cmd.OutOrStdout(), formatted)
				if !strings.HasSuffix(formatted, "\n") {
					fmt.Fprintln(cmd.OutOrStdout())
				}
			}
		}
		if fmtCheck && len(dirty) > 0 {
			return fmt.Errorf("%d file(s) need formatting", len(dirty))
		}
		return nil
	},
}

func init() {
	fmtCmd.Flags().BoolVar(&fmtWrite, "write", false, "Rewrite files in place")
	fmtCmd.Flags().BoolVar(&fmtCheck, "check", false, "Exit nonzero when files would change")
	fmtCmd.MarkFlagsMutuallyExclusive("write", "check")
	rootCmd.AddCommand(fmtCmd)
}
