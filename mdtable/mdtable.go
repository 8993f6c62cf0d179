// Copyright © 2025 mdsheet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package mdtable locates pipe tables embedded in markdown text, exposes
// them as structured records, and splices edited tables back into the
// original document without disturbing the surrounding content.
//
// Parsing is total: a malformed table candidate is never an error, it
// simply stays ordinary text. The package recognizes only ATX headings
// (for associating a title with a table) and the pipe-table grammar;
// everything else passes through verbatim.
package mdtable

import "encoding/json"

// Alignment is a column alignment parsed from a separator row cell.
type Alignment int

const (
	AlignNone Alignment = iota
	AlignLeft
	AlignRight
	AlignCenter
)

var alignmentNames = [...]string{"none", "left", "right", "center"}

func (a Alignment) String() string {
	if a < AlignNone || a > AlignCenter {
		return "none"
	}
	return alignmentNames[a]
}

// MarshalJSON encodes the alignment as its lowercase name.
func (a Alignment) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes a lowercase alignment name. Unknown names decode
// as AlignNone, mirroring how missing separator cells are read.
func (a *Alignment) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "left":
		*a = AlignLeft
	case "right":
		*a = AlignRight
	case "center":
		*a = AlignCenter
	default:
		*a = AlignNone
	}
	return nil
}

// Table is one detected pipe-table block.
//
// StartLine and EndLine are zero-based inclusive indices into the line
// list of the document the table was extracted from, spanning the header
// row through the last body row. They are offsets into that original
// snapshot: Rebuild never re-validates them against edited content, so
// any restructuring of the document itself requires a fresh Parse.
type Table struct {
	// Heading is the nearest preceding ATX heading with its '#' run and
	// surrounding whitespace stripped, nil when no heading precedes the
	// table. Each table owns its copy; editing one table's heading never
	// affects another's.
	Heading *string `json:"heading"`

	// Headers are the trimmed header-row cells. Their count defines the
	// table's column count N.
	Headers []string `json:"headers"`

	// Alignments come positionally from the separator row, kept exactly
	// as parsed. The slice may be shorter than N; read columns through
	// AlignmentAt, which defaults missing entries to AlignNone.
	Alignments []Alignment `json:"alignments"`

	// Rows are the body rows, each normalized to exactly N cells.
	Rows [][]string `json:"rows"`

	StartLine int `json:"start_line"`
	EndLine   int `json:"end_line"`
}

// ParsedDocument pairs a document's lines with the tables found in it.
// Tables are ordered by ascending StartLine and never overlap. The value
// is produced fresh by each Parse call; the consumer may mutate table
// contents freely before handing (Lines, Tables) to Rebuild.
type ParsedDocument struct {
	Lines  []string `json:"lines"`
	Tables []Table  `json:"tables"`
}

// ColumnCount returns the table's column count N.
func (t *Table) ColumnCount() int {
	return len(t.Headers)
}

// AlignmentAt returns the alignment for column c, defaulting to
// AlignNone when the separator row declared fewer columns than the
// header.
func (t *Table) AlignmentAt(c int) Alignment {
	if c < 0 || c >= len(t.Alignments) {
		return AlignNone
	}
	return t.Alignments[c]
}

// CellAt returns body cell (row, col), or "" when either index is out of
// range.
func (t *Table) CellAt(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// SetCell sets body cell (row, col). Out-of-range indices are ignored.
func (t *Table) SetCell(row, col int, value string) {
	if row < 0 || row >= len(t.Rows) {
		return
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return
	}
	t.Rows[row][col] = value
}

// SetHeader sets the header cell for column col. Out-of-range indices
// are ignored.
func (t *Table) SetHeader(col int, value string) {
	if col < 0 || col >= len(t.Headers) {
		return
	}
	t.Headers[col] = value
}

// SetAlignment sets column col's alignment, growing the alignment row
// with AlignNone entries when the separator declared fewer columns.
func (t *Table) SetAlignment(col int, a Alignment) {
	if col < 0 || col >= len(t.Headers) {
		return
	}
	for len(t.Alignments) <= col {
		t.Alignments = append(t.Alignments, AlignNone)
	}
	t.Alignments[col] = a
}

// AppendRow adds an empty body row.
func (t *Table) AppendRow() {
	t.Rows = append(t.Rows, make([]string, len(t.Headers)))
}

// InsertRow inserts an empty body row at index i, clamped to the valid
// range.
func (t *Table) InsertRow(i int) {
	if i < 0 {
		i = 0
	}
	if i > len(t.Rows) {
		i = len(t.Rows)
	}
	t.Rows = append(t.Rows, nil)
	copy(t.Rows[i+1:], t.Rows[i:])
	t.Rows[i] = make([]string, len(t.Headers))
}

// DeleteRow removes body row i. Out-of-range indices are ignored.
func (t *Table) DeleteRow(i int) {
	if i < 0 || i >= len(t.Rows) {
		return
	}
	t.Rows = append(t.Rows[:i], t.Rows[i+1:]...)
}

// AppendColumn adds a column with the given header, extending the
// alignment row and every body row so the table stays rectangular.
func (t *Table) AppendColumn(header string) {
	for len(t.Alignments) < len(t.Headers) {
		t.Alignments = append(t.Alignments, AlignNone)
	}
	t.Headers = append(t.Headers, header)
	t.Alignments = append(t.Alignments, AlignNone)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], "")
	}
}

// DeleteColumn removes column c from the header, the alignment row, and
// every body row. The last remaining column cannot be deleted: a table
// without a header cell is no longer a table.
func (t *Table) DeleteColumn(c int) {
	if c < 0 || c >= len(t.Headers) || len(t.Headers) == 1 {
		return
	}
	t.Headers = append(t.Headers[:c], t.Headers[c+1:]...)
	if c < len(t.Alignments) {
		t.Alignments = append(t.Alignments[:c], t.Alignments[c+1:]...)
	}
	for i := range t.Rows {
		if c < len(t.Rows[i]) {
			t.Rows[i] = append(t.Rows[i][:c], t.Rows[i][c+1:]...)
		}
	}
}
