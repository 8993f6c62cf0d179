// Copyright © 2025 mdsheet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/framegrace/mdsheet/config"
	"github.com/framegrace/mdsheet/index"
	"github.com/framegrace/mdsheet/internal/version"
)

var (
	workspaceFlag string
	themeFlag     string
)

var rootCmd = &cobra.Command{
	Use:   "mdsheet",
	Short: "Markdown tables as spreadsheets",
	Long: `mdsheet works on the pipe tables inside plain markdown files: list them,
reformat them canonically, index and search them across a workspace, and
edit them in a terminal grid without disturbing the prose around them.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		routeLogs()
		if err := config.Err(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "config: %v (using defaults)\n", err)
		}
	},
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("mdsheet %s\n", version.String()))
	rootCmd.PersistentFlags().StringVarP(&workspaceFlag, "workspace", "w", ".", "Workspace base directory")
	rootCmd.PersistentFlags().StringVar(&themeFlag, "theme", "", "Chroma style for fenced code (default from config)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// logRouted records whether routeLogs managed to point the log package
// at the state log file. The edit command checks it before taking the
// screen: stderr logging would scribble over the TUI.
var logRouted bool

// routeLogs redirects the log package to the state log file so command
// output and the editor's screen stay clean. Logging falls back to
// stderr when the file cannot be opened.
func routeLogs() {
	path, err := config.DefaultLogPath()
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return
	}
	log.SetOutput(logFile)
	logRouted = true
}

// effectiveTheme resolves the --theme flag against the config store.
func effectiveTheme() string {
	if themeFlag != "" {
		return themeFlag
	}
	return config.Current().Theme
}

// resolveDir picks the positional directory argument when present,
// otherwise the --workspace flag.
func resolveDir(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return workspaceFlag
}

// openIndex opens the search index at the configured location.
func openIndex() (*index.Index, error) {
	path := config.Current().IndexPath
	if path == "" {
		p, err := config.DefaultIndexPath()
		if err != nil {
			return nil, fmt.Errorf("resolve index path: %w", err)
		}
		path = p
	}
	return index.Open(path)
}
