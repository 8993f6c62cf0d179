// Copyright © 2025 mdsheet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/mdsheet/mdtable"
	"github.com/framegrace/mdsheet/workspace"
)

// TestMain points every user directory at a sandbox so the config
// store, log file, and search index never touch the real home.
func TestMain(m *testing.M) {
	tmp, err := os.MkdirTemp("", "mdsheet-cmd")
	if err != nil {
		panic(err)
	}
	os.Setenv("HOME", filepath.Join(tmp, "home"))
	os.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	os.Setenv("XDG_CACHE_HOME", filepath.Join(tmp, "cache"))
	code := m.Run()
	os.RemoveAll(tmp)
	os.Exit(code)
}

// resetFlags restores every flag to its default so Execute calls stay
// hermetic. Cobra keeps flag values and Changed marks between runs.
func resetFlags() {
	treeJSON, treeHidden = false, false
	treeDepth = workspace.DefaultMaxDepth
	tablesJSON = false
	fmtWrite, fmtCheck = false, false
	viewPlain = false
	searchLimit = 20
	workspaceFlag, themeFlag = ".", ""

	clear := func(f *pflag.Flag) { f.Changed = false }
	rootCmd.Flags().Visit(clear)
	rootCmd.PersistentFlags().Visit(clear)
	for _, c := range rootCmd.Commands() {
		c.Flags().Visit(clear)
	}
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

const sampleDoc = `# Inventory

| Name | Qty |
| --- | ---:|
| paper | 100 |
| pens | 5 |

closing note
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0644), "must write fixture")
	return path
}

func TestVersionFlag(t *testing.T) {
	out, err := runCommand(t, "--version")
	require.NoError(t, err, "--version should succeed")
	assert.Contains(t, out, "mdsheet dev", "version template should name the binary")
}

func TestTreeCommand(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.md"), []byte("# n\n"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "deep.md"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "skip.txt"), []byte(""), 0644))

	out, err := runCommand(t, "tree", root)
	require.NoError(t, err)
	assert.Contains(t, out, "notes.md")
	assert.Contains(t, out, "deep.md")
	assert.Contains(t, out, "└── ", "listing should use branch glyphs")
	assert.NotContains(t, out, "skip.txt", "non-markdown files should be pruned")

	out, err = runCommand(t, "tree", root, "--json")
	require.NoError(t, err)
	var entry workspace.FileEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entry), "json output should round-trip")
	assert.True(t, entry.IsDir)
	assert.Len(t, entry.Children, 2)
}

func TestTablesCommand(t *testing.T) {
	path := writeSample(t)

	out, err := runCommand(t, "tables", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Inventory")
	assert.Contains(t, out, "2 cols, 2 rows, lines 3-6")

	out, err = runCommand(t, "tables", path, "--json")
	require.NoError(t, err)
	var tables []mdtable.Table
	require.NoError(t, json.Unmarshal([]byte(out), &tables))
	require.Len(t, tables, 1)
	assert.Equal(t, []string{"Name", "Qty"}, tables[0].Headers)
	assert.Equal(t, 2, tables[0].StartLine)
}

func TestTablesCommandNoTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.md")
	require.NoError(t, os.WriteFile(path, []byte("just text\n"), 0644))

	out, err := runCommand(t, "tables", path)
	require.NoError(t, err)
	assert.Contains(t, out, "no tables")

	out, err = runCommand(t, "tables", path, "--json")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out, "empty table list should marshal as an empty array")
}

func TestFmtCommand(t *testing.T) {
	path := writeSample(t)
	want := workspace.Reformat(sampleDoc)

	out, err := runCommand(t, "fmt", path)
	require.NoError(t, err)
	assert.Equal(t, want+"\n", out, "default mode should print the reformatted document")

	out, err = runCommand(t, "fmt", "--check", path)
	require.Error(t, err, "--check should fail while the file is uncanonical")
	assert.Contains(t, err.Error(), "1 file(s) need formatting")
	assert.Contains(t, out, "would rewrite")
	got, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, sampleDoc, string(got), "--check must not write")

	out, err = runCommand(t, "fmt", "--write", path)
	require.NoError(t, err)
	assert.Contains(t, out, "rewrote")
	got, readErr = os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, want, string(got))

	_, err = runCommand(t, "fmt", "--check", path)
	assert.NoError(t, err, "--check should pass after --write")

	out, err = runCommand(t, "fmt", "--write", path)
	require.NoError(t, err)
	assert.Contains(t, out, "unchanged")

	_, err = runCommand(t, "fmt", "--write", "--check", path)
	assert.Error(t, err, "--write and --check are mutually exclusive")
}

func TestViewCommand(t *testing.T) {
	path := writeSample(t)

	out, err := runCommand(t, "view", path, "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "# Inventory")
	assert.Contains(t, out, "| paper | 100 |", "tables should print canonicalized")
	assert.Contains(t, out, "closing note")
}

func TestIndexAndSearchCommands(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "doc.md")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0644))

	out, err := runCommand(t, "index", root)
	require.NoError(t, err)
	assert.Contains(t, out, "indexed 1 tables from 1 files")

	out, err = runCommand(t, "search", "paper")
	require.NoError(t, err)
	assert.Contains(t, out, "doc.md:3", "hit should point at the table's header line")
	assert.Contains(t, out, "Inventory")
	assert.Contains(t, out, "paper")

	out, err = runCommand(t, "search", "zzzqqq")
	require.NoError(t, err)
	assert.Contains(t, out, "no matches")
}

func TestReindexAfterEdit(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "doc.md")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0644))

	_, err := runCommand(t, "index", root)
	require.NoError(t, err)

	updated := workspace.Reformat(`# Inventory

| Name | Qty |
| --- | ---:|
| stapler | 7 |
`)
	require.NoError(t, workspace.SaveDocument(path, updated))
	require.NoError(t, reindexAfterEdit(path))

	out, err := runCommand(t, "search", "stapler")
	require.NoError(t, err)
	assert.Contains(t, out, "doc.md:3")

	out, err = runCommand(t, "search", "paper")
	require.NoError(t, err)
	assert.Contains(t, out, "no matches", "replaced rows should leave the index")
}
