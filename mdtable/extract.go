// Copyright © 2025 mdsheet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package mdtable

import "strings"

// Parse scans content line by line and extracts every pipe table. It
// never fails: content without tables yields an empty Tables slice and
// the untouched line list.
//
// The scan is a single forward pass. ATX heading lines update the
// heading that the next table will carry; a table starts where a table
// line is immediately followed by a separator line; body rows are
// consumed until the first line that is not a table line or that looks
// like a second separator. Scanning resumes strictly after a captured
// table, so spans never overlap.
func Parse(content string) ParsedDocument {
	lines := splitLines(content)
	doc := ParsedDocument{Lines: lines}

	var heading *string
	i := 0
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])

		if strings.HasPrefix(trimmed, "#") {
			h := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
			heading = &h
			i++
			continue
		}

		if isTableLine(lines[i]) && i+1 < len(lines) && isSeparatorLine(lines[i+1]) {
			table := Table{
				Heading:    cloneHeading(heading),
				Headers:    parseRow(lines[i]),
				Alignments: parseAlignments(lines[i+1]),
				StartLine:  i,
			}
			j := i + 2
			for j < len(lines) && isTableLine(lines[j]) && !isSeparatorLine(lines[j]) {
				table.Rows = append(table.Rows, resizeRow(parseRow(lines[j]), len(table.Headers)))
				j++
			}
			table.EndLine = j - 1
			doc.Tables = append(doc.Tables, table)
			i = j
			continue
		}

		i++
	}
	return doc
}

// splitLines splits on newlines the way the extractor expects: a final
// newline does not produce a phantom empty line, and a carriage return
// before the newline is dropped.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// cloneHeading copies the tracked heading so each table owns its
// snapshot. Later tables must never alias an earlier table's heading.
func cloneHeading(h *string) *string {
	if h == nil {
		return nil
	}
	c := *h
	return &c
}

// resizeRow pads with empty cells or truncates so the row has exactly n
// cells.
func resizeRow(cells []string, n int) []string {
	if len(cells) == n {
		return cells
	}
	row := make([]string, n)
	copy(row, cells)
	return row
}
