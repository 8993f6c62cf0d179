// Copyright © 2025 mdsheet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package mdtable

import (
	"strings"
	"testing"
)

func TestSerializeBasic(t *testing.T) {
	tbl := Table{
		Headers:    []string{"Name", "Age"},
		Alignments: []Alignment{AlignNone, AlignRight},
		Rows: [][]string{
			{"Alice", "30"},
			{"Bob", "25"},
		},
	}

	want := strings.Join([]string{
		"| Name  | Age |",
		"| ------| ---:|",
		"| Alice | 30  |",
		"| Bob   | 25  |",
	}, "\n") + "\n"

	if got := tbl.Serialize(); got != want {
		t.Errorf("Serialize mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestSerializeWidthFloor(t *testing.T) {
	tbl := Table{
		Headers: []string{"A"},
		Rows:    [][]string{{"x"}},
	}

	want := "| A   |\n| ----|\n| x   |\n"
	if got := tbl.Serialize(); got != want {
		t.Errorf("Serialize = %q, want %q", got, want)
	}
}

func TestSerializeSeparatorPatterns(t *testing.T) {
	tests := []struct {
		name  string
		align Alignment
		want  string
	}{
		{"none", AlignNone, "| ----|"},
		{"left", AlignLeft, "|:----|"},
		{"right", AlignRight, "| ---:|"},
		{"center", AlignCenter, "|:---:|"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := Table{
				Headers:    []string{"A"},
				Alignments: []Alignment{tt.align},
			}
			out := tbl.Serialize()
			lines := strings.Split(out, "\n")
			if len(lines) < 2 {
				t.Fatalf("unexpected output %q", out)
			}
			if lines[1] != tt.want {
				t.Errorf("separator = %q, want %q", lines[1], tt.want)
			}
		})
	}
}

func TestSerializeMissingAlignmentsDefaultToNone(t *testing.T) {
	tbl := Table{
		Headers:    []string{"A", "B"},
		Alignments: []Alignment{AlignLeft},
	}

	out := tbl.Serialize()
	lines := strings.Split(out, "\n")
	if lines[1] != "|:----| ----|" {
		t.Errorf("separator = %q, want %q", lines[1], "|:----| ----|")
	}
}

func TestSerializeShortRow(t *testing.T) {
	// Rows narrower than the header render empty trailing cells instead
	// of panicking.
	tbl := Table{
		Headers: []string{"A", "B"},
		Rows:    [][]string{{"1"}},
	}

	out := tbl.Serialize()
	lines := strings.Split(out, "\n")
	if lines[2] != "| 1   |     |" {
		t.Errorf("row = %q, want %q", lines[2], "| 1   |     |")
	}
}

func TestSerializeWideCellGrowsColumn(t *testing.T) {
	tbl := Table{
		Headers: []string{"A"},
		Rows:    [][]string{{"abcdef"}},
	}

	want := "| A      |\n| -------|\n| abcdef |\n"
	if got := tbl.Serialize(); got != want {
		t.Errorf("Serialize = %q, want %q", got, want)
	}
}

func TestSerializeWidthsAreRuneCounts(t *testing.T) {
	tbl := Table{
		Headers: []string{"héllo"},
		Rows:    [][]string{{"ab"}},
	}

	out := tbl.Serialize()
	lines := strings.Split(out, "\n")
	// "héllo" is 5 runes, so the column is 5 wide regardless of byte
	// length.
	if lines[0] != "| héllo |" {
		t.Errorf("header = %q, want %q", lines[0], "| héllo |")
	}
	if lines[2] != "| ab    |" {
		t.Errorf("row = %q, want %q", lines[2], "| ab    |")
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	tbl := Table{
		Headers:    []string{"Col", "Other"},
		Alignments: []Alignment{AlignCenter},
		Rows: [][]string{
			{"a", "b"},
			{"longer", ""},
		},
	}

	doc := Parse(tbl.Serialize())
	if len(doc.Tables) != 1 {
		t.Fatalf("expected 1 table after round trip, got %d", len(doc.Tables))
	}
	got := doc.Tables[0]

	if len(got.Headers) != len(tbl.Headers) {
		t.Fatalf("headers = %v, want %v", got.Headers, tbl.Headers)
	}
	for i := range tbl.Headers {
		if got.Headers[i] != tbl.Headers[i] {
			t.Errorf("header %d = %q, want %q", i, got.Headers[i], tbl.Headers[i])
		}
	}
	for i := range tbl.Headers {
		if got.AlignmentAt(i) != tbl.AlignmentAt(i) {
			t.Errorf("alignment %d = %v, want %v", i, got.AlignmentAt(i), tbl.AlignmentAt(i))
		}
	}
	if len(got.Rows) != len(tbl.Rows) {
		t.Fatalf("rows = %v, want %v", got.Rows, tbl.Rows)
	}
	for i := range tbl.Rows {
		for j := range tbl.Rows[i] {
			if got.Rows[i][j] != tbl.Rows[i][j] {
				t.Errorf("cell [%d][%d] = %q, want %q", i, j, got.Rows[i][j], tbl.Rows[i][j])
			}
		}
	}
}
