// Copyright © 2025 mdsheet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package mdtable

import (
	"strings"
	"unicode/utf8"
)

// Serialize renders the table as a canonical pipe-table block: header
// row, alignment row, then body rows, every cell left-justified and
// space-padded to the column width. Each emitted row ends with a
// newline, so the whole block carries a trailing newline.
func (t *Table) Serialize() string {
	widths := t.columnWidths()

	var b strings.Builder
	writePaddedRow(&b, t.Headers, widths)
	t.writeSeparatorRow(&b, widths)
	for _, row := range t.Rows {
		writePaddedRow(&b, row, widths)
	}
	return b.String()
}

// columnWidths computes per-column content width, measured in runes,
// with a floor of 3 so the separator's dash run never degenerates.
func (t *Table) columnWidths() []int {
	widths := make([]int, len(t.Headers))
	for c, h := range t.Headers {
		w := utf8.RuneCountInString(h)
		if w < 3 {
			w = 3
		}
		widths[c] = w
	}
	for _, row := range t.Rows {
		for c, cell := range row {
			if c >= len(widths) {
				break
			}
			if w := utf8.RuneCountInString(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}
	return widths
}

// writePaddedRow writes one padded pipe row such as "| a   | b   |".
// Cells beyond the row's length render empty, so rows shorter than the
// header still produce a full-width line.
func writePaddedRow(b *strings.Builder, cells []string, widths []int) {
	b.WriteByte('|')
	for c, w := range widths {
		cell := ""
		if c < len(cells) {
			cell = cells[c]
		}
		b.WriteByte(' ')
		b.WriteString(cell)
		if pad := w - utf8.RuneCountInString(cell); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
		b.WriteString(" |")
	}
	b.WriteByte('\n')
}

// writeSeparatorRow writes the alignment row beneath the header. The
// framing around the dash run is asymmetric per alignment: left gets
// ":...-", right " ...:", center ":...:", none " ...-". The exact byte
// layout is load-bearing; documents that are already canonical must
// reformat to themselves.
func (t *Table) writeSeparatorRow(b *strings.Builder, widths []int) {
	b.WriteByte('|')
	for c, w := range widths {
		dashes := strings.Repeat("-", w)
		switch t.AlignmentAt(c) {
		case AlignLeft:
			b.WriteByte(':')
			b.WriteString(dashes)
			b.WriteString("-|")
		case AlignRight:
			b.WriteByte(' ')
			b.WriteString(dashes)
			b.WriteString(":|")
		case AlignCenter:
			b.WriteByte(':')
			b.WriteString(dashes)
			b.WriteString(":|")
		default:
			b.WriteByte(' ')
			b.WriteString(dashes)
			b.WriteString("-|")
		}
	}
	b.WriteByte('\n')
}
