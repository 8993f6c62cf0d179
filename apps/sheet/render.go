// Copyright © 2025 mdsheet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/sheet/render.go
// Summary: Cell-buffer rendering for the sheet editor grid and status bar.
// Usage: Called by the apprunner draw loop on every refresh.

package sheet

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/mdsheet/internal/apprunner"
	"github.com/framegrace/mdsheet/mdtable"
)

var (
	styleHeader    = tcell.StyleDefault.Bold(true).Foreground(tcell.ColorAqua)
	styleSeparator = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleCursor    = tcell.StyleDefault.Reverse(true)
	styleEditing   = tcell.StyleDefault.Reverse(true).Underline(true)
	styleStatus    = tcell.StyleDefault.Reverse(true)
	styleHint      = tcell.StyleDefault.Dim(true)
)

func (a *App) Render() [][]apprunner.Cell {
	a.mu.RLock()
	defer a.mu.RUnlock()

	buf := make([][]apprunner.Cell, a.height)
	for i := range buf {
		buf[i] = make([]apprunner.Cell, a.width)
		for j := range buf[i] {
			buf[i][j] = apprunner.Cell{Ch: ' ', Style: tcell.StyleDefault}
		}
	}
	if a.height == 0 || a.width == 0 {
		return buf
	}

	if len(a.doc.Tables) == 0 {
		a.renderEmpty(buf)
	} else {
		a.renderGrid(buf)
	}
	a.renderStatus(buf)
	return buf
}

func (a *App) renderGrid(buf [][]apprunner.Cell) {
	t := a.table()
	widths := displayWidths(t)
	if a.editing {
		// Let the column grow with the edit buffer so typing stays
		// visible.
		if w := runewidth.StringWidth(string(a.buffer)); w > widths[a.cursorC] {
			widths[a.cursorC] = w
		}
	}

	headers := make([]string, t.ColumnCount())
	copy(headers, t.Headers)
	if a.editing && a.cursorR < 0 {
		headers[a.cursorC] = string(a.buffer)
	}
	a.drawRow(buf, 0, headers, widths, func(c int) tcell.Style {
		return a.cellStyle(-1, c, styleHeader)
	})

	// The rule row mirrors canonical form: colons mark alignment.
	segs := make([]string, t.ColumnCount())
	for c := range segs {
		segs[c] = separatorSegment(t.AlignmentAt(c), widths[c])
	}
	a.drawRule(buf, 1, segs)

	visible := a.height - 3
	if visible < 1 {
		return
	}
	off := 0
	if a.cursorR >= visible {
		off = a.cursorR - visible + 1
	}
	y := 2
	for i := off; i < len(t.Rows) && y < a.height-1; i++ {
		row := make([]string, t.ColumnCount())
		copy(row, t.Rows[i])
		if a.editing && a.cursorR == i {
			row[a.cursorC] = string(a.buffer)
		}
		rowIdx := i
		a.drawRow(buf, y, row, widths, func(c int) tcell.Style {
			return a.cellStyle(rowIdx, c, tcell.StyleDefault)
		})
		y++
	}
}

func (a *App) cellStyle(row, col int, base tcell.Style) tcell.Style {
	if a.cursorR == row && a.cursorC == col {
		if a.editing {
			return styleEditing
		}
		return styleCursor
	}
	return base
}

func (a *App) drawRow(buf [][]apprunner.Cell, y int, cells []string, widths []int, styleFor func(c int) tcell.Style) {
	x := a.writeString(buf, 0, y, "│", styleSeparator)
	for c := range widths {
		text := ""
		if c < len(cells) {
			text = cells[c]
		}
		seg := " " + runewidth.FillRight(runewidth.Truncate(text, widths[c], "…"), widths[c]) + " "
		x = a.writeString(buf, x, y, seg, styleFor(c))
		x = a.writeString(buf, x, y, "│", styleSeparator)
	}
}

func (a *App) drawRule(buf [][]apprunner.Cell, y int, segs []string) {
	x := a.writeString(buf, 0, y, "│", styleSeparator)
	for _, seg := range segs {
		x = a.writeString(buf, x, y, seg, styleSeparator)
		x = a.writeString(buf, x, y, "│", styleSeparator)
	}
}

func (a *App) renderEmpty(buf [][]apprunner.Cell) {
	msg := fmt.Sprintf("no tables in %s", filepath.Base(a.path))
	hint := "press q to quit"
	y := a.height / 2
	a.writeString(buf, max(0, (a.width-runewidth.StringWidth(msg))/2), y-1, msg, tcell.StyleDefault)
	a.writeString(buf, max(0, (a.width-runewidth.StringWidth(hint))/2), y+1, hint, styleHint)
}

func (a *App) renderStatus(buf [][]apprunner.Cell) {
	y := a.height - 1
	if y < 0 {
		return
	}
	for x := 0; x < a.width; x++ {
		buf[y][x] = apprunner.Cell{Ch: ' ', Style: styleStatus}
	}

	left := a.statusLeft()
	hints := " i edit  s save  r/R row  c/C col  [/] align  n/p table  q quit "
	if a.editing {
		hints = " enter commit  esc cancel "
	}

	a.writeString(buf, 0, y, left, styleStatus)
	if w := runewidth.StringWidth(hints); a.width-w > runewidth.StringWidth(left) {
		a.writeString(buf, a.width-w, y, hints, styleStatus)
	}
}

func (a *App) statusLeft() string {
	name := filepath.Base(a.path)
	if len(a.doc.Tables) == 0 {
		return fmt.Sprintf(" %s │ no tables", name)
	}
	t := a.table()

	label := fmt.Sprintf("table %d", a.current+1)
	if t.Heading != nil && *t.Heading != "" {
		label = *t.Heading
	}
	pos := fmt.Sprintf("r%d,c%d", a.cursorR+1, a.cursorC+1)
	if a.cursorR < 0 {
		pos = fmt.Sprintf("hdr,c%d", a.cursorC+1)
	}

	s := fmt.Sprintf(" %s │ %s (%d/%d) │ %s", name, label, a.current+1, len(a.doc.Tables), pos)
	if a.dirty {
		s += " │ modified"
	}
	if a.status != "" {
		s += " │ " + a.status
	}
	return s
}

// writeString draws s at (x, y) advancing by display width, stopping at
// the right edge. The continuation cell of a wide rune is filled with a
// space; tcell skips it when the wide rune is drawn.
func (a *App) writeString(buf [][]apprunner.Cell, x, y int, s string, style tcell.Style) int {
	if y < 0 || y >= a.height {
		return x
	}
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > a.width {
			return a.width
		}
		buf[y][x] = apprunner.Cell{Ch: r, Style: style}
		if w == 2 {
			buf[y][x+1] = apprunner.Cell{Ch: ' ', Style: style}
		}
		x += w
	}
	return x
}

func displayWidths(t *mdtable.Table) []int {
	widths := make([]int, t.ColumnCount())
	for c, h := range t.Headers {
		widths[c] = runewidth.StringWidth(h)
	}
	for _, row := range t.Rows {
		for c, cell := range row {
			if c < len(widths) {
				if w := runewidth.StringWidth(cell); w > widths[c] {
					widths[c] = w
				}
			}
		}
	}
	for c := range widths {
		if widths[c] < 3 {
			widths[c] = 3
		}
	}
	return widths
}

func separatorSegment(al mdtable.Alignment, width int) string {
	dashes := strings.Repeat("─", width)
	switch al {
	case mdtable.AlignLeft:
		return ":" + dashes + " "
	case mdtable.AlignRight:
		return " " + dashes + ":"
	case mdtable.AlignCenter:
		return ":" + dashes + ":"
	default:
		return " " + dashes + " "
	}
}
