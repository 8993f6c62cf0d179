// Copyright © 2025 mdsheet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/sheet/keys.go
// Summary: Key dispatch for the sheet editor's normal and edit modes.
// Usage: Invoked by the apprunner event loop for every key event.

package sheet

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/mdsheet/mdtable"
)

// alignCycle is the order ']' steps through; '[' walks it backwards.
var alignCycle = []mdtable.Alignment{
	mdtable.AlignNone,
	mdtable.AlignLeft,
	mdtable.AlignCenter,
	mdtable.AlignRight,
}

func (a *App) HandleKey(ev *tcell.EventKey) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.editing {
		a.handleEditKey(ev)
		return
	}
	a.handleNormalKey(ev)
}

func (a *App) handleNormalKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyRune && ev.Rune() == 'q' {
		a.requestQuit()
		return
	}
	a.quitWarned = false
	a.status = ""

	t := a.table()
	if t == nil {
		return
	}

	switch ev.Key() {
	case tcell.KeyUp:
		a.moveCursor(t, -1, 0)
	case tcell.KeyDown:
		a.moveCursor(t, 1, 0)
	case tcell.KeyLeft:
		a.moveCursor(t, 0, -1)
	case tcell.KeyRight:
		a.moveCursor(t, 0, 1)
	case tcell.KeyTab:
		a.stepCell(t, 1)
	case tcell.KeyBacktab:
		a.stepCell(t, -1)
	case tcell.KeyEnter:
		a.beginEdit(t)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'h':
			a.moveCursor(t, 0, -1)
		case 'j':
			a.moveCursor(t, 1, 0)
		case 'k':
			a.moveCursor(t, -1, 0)
		case 'l':
			a.moveCursor(t, 0, 1)
		case 'i':
			a.beginEdit(t)
		case 'r':
			t.AppendRow()
			a.dirty = true
		case 'R':
			a.deleteCurrentRow(t)
		case 'c':
			t.AppendColumn("")
			a.dirty = true
		case 'C':
			a.deleteCurrentColumn(t)
		case ']':
			a.cycleAlignment(t, 1)
		case '[':
			a.cycleAlignment(t, -1)
		case 'n':
			a.switchTable(1)
		case 'p':
			a.switchTable(-1)
		case 's':
			a.save()
		}
	}
}

func (a *App) handleEditKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEnter:
		a.commitEdit()
	case tcell.KeyEscape:
		a.editing = false
		a.buffer = nil
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(a.buffer) > 0 {
			a.buffer = a.buffer[:len(a.buffer)-1]
		}
	case tcell.KeyRune:
		a.buffer = append(a.buffer, ev.Rune())
	}
}

// requestQuit stops the editor, except that the first attempt with
// unsaved changes only warns.
func (a *App) requestQuit() {
	if a.dirty && !a.quitWarned {
		a.quitWarned = true
		a.status = "unsaved changes (press q again to discard)"
		return
	}
	a.stopLocked()
}

func (a *App) beginEdit(t *mdtable.Table) {
	a.editing = true
	a.buffer = []rune(a.cellText(t))
}

func (a *App) commitEdit() {
	t := a.table()
	if t != nil {
		if a.cursorR < 0 {
			t.SetHeader(a.cursorC, string(a.buffer))
		} else {
			t.SetCell(a.cursorR, a.cursorC, string(a.buffer))
		}
		a.dirty = true
	}
	a.editing = false
	a.buffer = nil
}

// cellText returns the text under the cursor, header row included.
func (a *App) cellText(t *mdtable.Table) string {
	if a.cursorR < 0 {
		if a.cursorC < len(t.Headers) {
			return t.Headers[a.cursorC]
		}
		return ""
	}
	return t.CellAt(a.cursorR, a.cursorC)
}

func (a *App) moveCursor(t *mdtable.Table, dr, dc int) {
	a.cursorR += dr
	if a.cursorR < -1 {
		a.cursorR = -1
	}
	if max := len(t.Rows) - 1; a.cursorR > max {
		a.cursorR = max
	}
	a.cursorC += dc
	if a.cursorC < 0 {
		a.cursorC = 0
	}
	if max := t.ColumnCount() - 1; a.cursorC > max {
		a.cursorC = max
	}
}

// stepCell advances cell by cell, wrapping across row ends and from the
// last body cell back around to the header.
func (a *App) stepCell(t *mdtable.Table, dir int) {
	n := t.ColumnCount()
	if n == 0 {
		return
	}
	a.cursorC += dir
	if a.cursorC >= n {
		a.cursorC = 0
		a.cursorR++
		if a.cursorR >= len(t.Rows) {
			a.cursorR = -1
		}
	}
	if a.cursorC < 0 {
		a.cursorC = n - 1
		a.cursorR--
		if a.cursorR < -1 {
			a.cursorR = len(t.Rows) - 1
		}
	}
}

func (a *App) deleteCurrentRow(t *mdtable.Table) {
	if a.cursorR < 0 || a.cursorR >= len(t.Rows) {
		return
	}
	t.DeleteRow(a.cursorR)
	if a.cursorR >= len(t.Rows) {
		a.cursorR = len(t.Rows) - 1
	}
	a.dirty = true
}

func (a *App) deleteCurrentColumn(t *mdtable.Table) {
	before := t.ColumnCount()
	t.DeleteColumn(a.cursorC)
	if t.ColumnCount() == before {
		a.status = "cannot delete the last column"
		return
	}
	if a.cursorC >= t.ColumnCount() {
		a.cursorC = t.ColumnCount() - 1
	}
	a.dirty = true
}

func (a *App) cycleAlignment(t *mdtable.Table, dir int) {
	cur := t.AlignmentAt(a.cursorC)
	idx := 0
	for i, al := range alignCycle {
		if al == cur {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(alignCycle)) % len(alignCycle)
	t.SetAlignment(a.cursorC, alignCycle[idx])
	a.dirty = true
}

func (a *App) switchTable(dir int) {
	n := len(a.doc.Tables)
	if n < 2 {
		return
	}
	a.current = (a.current + dir + n) % n
	a.cursorR, a.cursorC = -1, 0
}
