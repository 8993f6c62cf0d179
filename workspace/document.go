// Copyright © 2025 mdsheet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: workspace/document.go
// Summary: Document read/write and canonical reformatting.

package workspace

import (
	"fmt"
	"os"

	"github.com/google/renameio"

	"github.com/framegrace/mdsheet/mdtable"
)

// ReadDocument returns the full text of a markdown document.
func ReadDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	return string(data), nil
}

// SaveDocument writes a document atomically: the content lands under
// its final name only once fully written.
func SaveDocument(path, content string) error {
	if err := renameio.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

// Reformat re-renders every table in content canonically and returns
// the resulting document text. Content without tables passes through as
// the plain join of its lines.
func Reformat(content string) string {
	doc := mdtable.Parse(content)
	return mdtable.Rebuild(doc.Lines, doc.Tables)
}
