// Copyright © 2025 mdsheet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: workspace/workspace.go
// Summary: Filtered recursive listing of markdown files in a workspace.

// Package workspace handles the filesystem side of mdsheet: listing the
// markdown files under a root directory and reading and writing the
// documents the mdtable core operates on.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotDirectory reports that a workspace root does not exist or is
// not a directory.
var ErrNotDirectory = errors.New("path does not exist or is not a directory")

// DefaultMaxDepth caps the recursive listing when TreeOptions does not
// set one.
const DefaultMaxDepth = 5

// FileEntry is one node of the workspace file tree.
type FileEntry struct {
	Name     string      `json:"name"`
	Path     string      `json:"path"`
	IsDir    bool        `json:"is_dir"`
	Children []FileEntry `json:"children,omitempty"`
}

// TreeOptions controls the recursive listing.
type TreeOptions struct {
	// MaxDepth caps directory recursion; values <= 0 mean
	// DefaultMaxDepth.
	MaxDepth int

	// IncludeHidden keeps dot-prefixed entries instead of skipping them.
	IncludeHidden bool
}

// BuildTree lists the markdown files under root. Directories are kept
// only while they still contain markdown files after filtering, entries
// come back sorted by name, and recursion stops at the depth cap.
func BuildTree(root string, opts TreeOptions) (FileEntry, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return FileEntry{}, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	return FileEntry{
		Name:     filepath.Base(root),
		Path:     root,
		IsDir:    true,
		Children: listDir(root, 0, maxDepth, opts.IncludeHidden),
	}, nil
}

// Files flattens the tree to the markdown file entries, in tree order.
func (e FileEntry) Files() []FileEntry {
	var files []FileEntry
	if !e.IsDir {
		return append(files, e)
	}
	for _, child := range e.Children {
		files = append(files, child.Files()...)
	}
	return files
}

func listDir(dir string, depth, maxDepth int, hidden bool) []FileEntry {
	if depth > maxDepth {
		return nil
	}
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		// Unreadable directories simply drop out of the tree.
		return nil
	}

	var entries []FileEntry
	for _, entry := range dirEntries {
		name := entry.Name()
		if !hidden && strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(dir, name)
		if entry.IsDir() {
			children := listDir(path, depth+1, maxDepth, hidden)
			if len(children) == 0 {
				continue
			}
			entries = append(entries, FileEntry{
				Name:     name,
				Path:     path,
				IsDir:    true,
				Children: children,
			})
		} else if isMarkdownFile(name) {
			entries = append(entries, FileEntry{
				Name:  name,
				Path:  path,
				IsDir: false,
			})
		}
	}
	return entries
}

func isMarkdownFile(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".md")
}
