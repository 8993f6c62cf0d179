// Copyright © 2025 mdsheet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/sheet/sheet.go
// Summary: Full-screen table editor over one markdown document.
// Usage: Constructed by the edit command and driven by the apprunner harness.

// Package sheet is the interactive table editor. It presents one table
// of a markdown document at a time as a navigable grid, lets the user
// edit cells, rows, columns, and alignments, and splices the edits back
// into the document on save. The document text outside tables is never
// touched.
package sheet

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/framegrace/mdsheet/mdtable"
	"github.com/framegrace/mdsheet/workspace"
)

// App implements the apprunner contract for the sheet editor.
type App struct {
	mu      sync.RWMutex
	width   int
	height  int
	refresh chan<- bool
	done    chan struct{}
	stopped bool

	path string
	doc  mdtable.ParsedDocument

	// Cursor state. cursorR is -1 on the header row, otherwise a body
	// row index; cursorC is a column index.
	current int
	cursorR int
	cursorC int

	// Inline edit state.
	editing bool
	buffer  []rune

	dirty      bool
	quitWarned bool
	status     string
}

// New loads the document at path and returns an editor over it. A
// document without tables is still editable in the sense that it opens
// and can be quit; it just offers nothing to change.
func New(path string) (*App, error) {
	content, err := workspace.ReadDocument(path)
	if err != nil {
		return nil, err
	}
	return &App{
		path:    path,
		doc:     mdtable.Parse(content),
		done:    make(chan struct{}),
		cursorR: -1,
	}, nil
}

// Run blocks until the editor is asked to quit.
func (a *App) Run() error {
	<-a.done
	return nil
}

// Stop shuts the editor down. Safe to call more than once.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopLocked()
}

func (a *App) stopLocked() {
	if a.stopped {
		return
	}
	a.stopped = true
	close(a.done)
}

func (a *App) Resize(cols, rows int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.width, a.height = cols, rows
}

func (a *App) SetRefreshNotifier(ch chan<- bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.refresh = ch
}

func (a *App) GetTitle() string {
	return fmt.Sprintf("mdsheet %s", filepath.Base(a.path))
}

// table returns the table under the cursor, nil when the document has
// none. Callers must hold a.mu.
func (a *App) table() *mdtable.Table {
	if len(a.doc.Tables) == 0 {
		return nil
	}
	return &a.doc.Tables[a.current]
}

// save rebuilds the document, writes it atomically, and re-parses the
// written text so table line spans match the file again.
func (a *App) save() {
	text := mdtable.Rebuild(a.doc.Lines, a.doc.Tables)
	if err := workspace.SaveDocument(a.path, text); err != nil {
		a.status = fmt.Sprintf("save failed: %v", err)
		return
	}
	a.doc = mdtable.Parse(text)
	a.clampCursor()
	a.dirty = false
	a.status = "saved"
}

// clampCursor pulls the table index and cursor back inside the current
// document shape.
func (a *App) clampCursor() {
	if a.current >= len(a.doc.Tables) {
		a.current = len(a.doc.Tables) - 1
	}
	if a.current < 0 {
		a.current = 0
	}
	t := a.table()
	if t == nil {
		a.cursorR, a.cursorC = -1, 0
		return
	}
	if a.cursorR >= len(t.Rows) {
		a.cursorR = len(t.Rows) - 1
	}
	if a.cursorR < -1 {
		a.cursorR = -1
	}
	if max := t.ColumnCount() - 1; a.cursorC > max {
		a.cursorC = max
	}
	if a.cursorC < 0 {
		a.cursorC = 0
	}
}
