// Copyright © 2025 mdsheet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package mdtable

import "strings"

// parseRow splits a pipe-delimited line into trimmed cell values,
// stripping one leading and one trailing pipe. Each pipe is optional on
// its own: a row missing its trailing pipe still tokenizes. There is no
// escape syntax; a literal '|' always delimits.
func parseRow(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")
	parts := strings.Split(line, "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}

// isTableLine reports whether a line can belong to a table: non-empty
// after trimming and containing at least one pipe.
func isTableLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed != "" && strings.Contains(trimmed, "|")
}

// isSeparatorLine reports whether a line is an alignment marker row:
// it contains a pipe and, after the usual stripping and splitting,
// every cell is non-empty and built only from '-' and ':'. The
// non-empty requirement keeps a bare "||" from passing as a separator.
func isSeparatorLine(line string) bool {
	if !strings.Contains(line, "|") {
		return false
	}
	cells := parseRow(line)
	if len(cells) == 0 {
		return false
	}
	for _, cell := range cells {
		if cell == "" {
			return false
		}
		for _, r := range cell {
			if r != '-' && r != ':' {
				return false
			}
		}
	}
	return true
}

// parseAlignments extracts per-column alignment from a separator line:
// a colon on both ends centers, only trailing right-aligns, only leading
// left-aligns, neither declares none. The caller is responsible for
// checking isSeparatorLine first.
func parseAlignments(line string) []Alignment {
	cells := parseRow(line)
	aligns := make([]Alignment, len(cells))
	for i, cell := range cells {
		starts := strings.HasPrefix(cell, ":")
		ends := strings.HasSuffix(cell, ":")
		switch {
		case starts && ends:
			aligns[i] = AlignCenter
		case ends:
			aligns[i] = AlignRight
		case starts:
			aligns[i] = AlignLeft
		default:
			aligns[i] = AlignNone
		}
	}
	return aligns
}
