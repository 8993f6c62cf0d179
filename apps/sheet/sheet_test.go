// Copyright © 2025 mdsheet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package sheet

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/mdsheet/internal/apprunner"
	"github.com/framegrace/mdsheet/mdtable"
)

const sampleDoc = "# Inventory\n" +
	"| Name | Qty |\n" +
	"| --- | ---:|\n" +
	"| paper | 100 |\n" +
	"| pens | 5 |\n" +
	"\n" +
	"# Budget\n" +
	"| Item | Cost |\n" +
	"| --- | --- |\n" +
	"| rent | 900 |\n"

func newTestApp(t *testing.T) *App {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.md")
	if err := os.WriteFile(path, []byte(sampleDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	app, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	app.Resize(80, 24)
	return app
}

func press(app *App, r rune) {
	app.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, 0))
}

func pressKey(app *App, k tcell.Key) {
	app.HandleKey(tcell.NewEventKey(k, 0, 0))
}

func typeText(app *App, s string) {
	for _, r := range s {
		press(app, r)
	}
}

func isStopped(app *App) bool {
	select {
	case <-app.done:
		return true
	default:
		return false
	}
}

func cursor(app *App) (int, int) {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.cursorR, app.cursorC
}

func rowString(buf [][]apprunner.Cell, y int) string {
	var sb strings.Builder
	for _, c := range buf[y] {
		sb.WriteRune(c.Ch)
	}
	return sb.String()
}

func TestOpenDocument(t *testing.T) {
	app := newTestApp(t)
	if got := len(app.doc.Tables); got != 2 {
		t.Fatalf("expected 2 tables, got %d", got)
	}
	if r, c := cursor(app); r != -1 || c != 0 {
		t.Errorf("expected cursor on header start, got (%d,%d)", r, c)
	}
	if !strings.Contains(app.GetTitle(), "doc.md") {
		t.Errorf("title %q should carry the file name", app.GetTitle())
	}
}

func TestCursorMovement(t *testing.T) {
	app := newTestApp(t)

	press(app, 'k')
	if r, _ := cursor(app); r != -1 {
		t.Errorf("moving up from header should stay on header, got row %d", r)
	}

	press(app, 'j')
	press(app, 'l')
	if r, c := cursor(app); r != 0 || c != 1 {
		t.Errorf("expected (0,1), got (%d,%d)", r, c)
	}

	press(app, 'l')
	if _, c := cursor(app); c != 1 {
		t.Errorf("moving right past the last column should clamp, got col %d", c)
	}

	for i := 0; i < 5; i++ {
		pressKey(app, tcell.KeyDown)
	}
	if r, _ := cursor(app); r != 1 {
		t.Errorf("expected clamp to last row 1, got %d", r)
	}

	pressKey(app, tcell.KeyUp)
	pressKey(app, tcell.KeyLeft)
	if r, c := cursor(app); r != 0 || c != 0 {
		t.Errorf("expected (0,0), got (%d,%d)", r, c)
	}
}

func TestTabWrapsThroughCells(t *testing.T) {
	app := newTestApp(t)

	want := [][2]int{{-1, 1}, {0, 0}, {0, 1}, {1, 0}, {1, 1}, {-1, 0}}
	for i, w := range want {
		pressKey(app, tcell.KeyTab)
		if r, c := cursor(app); r != w[0] || c != w[1] {
			t.Fatalf("tab %d: expected (%d,%d), got (%d,%d)", i+1, w[0], w[1], r, c)
		}
	}

	pressKey(app, tcell.KeyBacktab)
	if r, c := cursor(app); r != 1 || c != 1 {
		t.Errorf("backtab from header start should wrap to last cell, got (%d,%d)", r, c)
	}
}

func TestEditCommit(t *testing.T) {
	app := newTestApp(t)

	press(app, 'j')
	press(app, 'i')
	if !app.editing {
		t.Fatal("expected edit mode")
	}
	if got := string(app.buffer); got != "paper" {
		t.Fatalf("expected prefilled buffer 'paper', got %q", got)
	}

	for i := 0; i < 5; i++ {
		pressKey(app, tcell.KeyBackspace2)
	}
	typeText(app, "ink")
	pressKey(app, tcell.KeyEnter)

	if app.editing {
		t.Error("expected edit mode to end on commit")
	}
	if got := app.doc.Tables[0].CellAt(0, 0); got != "ink" {
		t.Errorf("expected cell 'ink', got %q", got)
	}
	if !app.dirty {
		t.Error("expected dirty after commit")
	}
}

func TestEditEscapeCancels(t *testing.T) {
	app := newTestApp(t)

	press(app, 'i')
	typeText(app, "zzz")
	pressKey(app, tcell.KeyEscape)

	if app.editing {
		t.Error("expected edit mode to end on escape")
	}
	if got := app.doc.Tables[0].Headers[0]; got != "Name" {
		t.Errorf("escape must not commit, header is %q", got)
	}
	if app.dirty {
		t.Error("cancelled edit must not mark the document dirty")
	}
}

func TestHeaderEdit(t *testing.T) {
	app := newTestApp(t)

	press(app, 'l')
	pressKey(app, tcell.KeyEnter)
	typeText(app, "2")
	pressKey(app, tcell.KeyEnter)

	if got := app.doc.Tables[0].Headers[1]; got != "Qty2" {
		t.Errorf("expected header 'Qty2', got %q", got)
	}
}

func TestRowEditingKeys(t *testing.T) {
	app := newTestApp(t)
	tab := &app.doc.Tables[0]

	press(app, 'r')
	if len(tab.Rows) != 3 {
		t.Fatalf("expected 3 rows after append, got %d", len(tab.Rows))
	}
	if !app.dirty {
		t.Error("append row should mark dirty")
	}

	press(app, 'R')
	if len(tab.Rows) != 3 {
		t.Error("delete on header row should do nothing")
	}

	for i := 0; i < 10; i++ {
		press(app, 'j')
	}
	press(app, 'R')
	if len(tab.Rows) != 2 {
		t.Fatalf("expected 2 rows after delete, got %d", len(tab.Rows))
	}
	if r, _ := cursor(app); r != 1 {
		t.Errorf("cursor should clamp to last row, got %d", r)
	}
}

func TestColumnEditingKeys(t *testing.T) {
	app := newTestApp(t)
	tab := &app.doc.Tables[0]

	press(app, 'c')
	if tab.ColumnCount() != 3 {
		t.Fatalf("expected 3 columns after append, got %d", tab.ColumnCount())
	}

	press(app, 'C')
	if tab.ColumnCount() != 2 {
		t.Fatalf("expected 2 columns after delete, got %d", tab.ColumnCount())
	}
	if tab.Headers[0] != "Qty" {
		t.Errorf("expected first column deleted, headers now %v", tab.Headers)
	}

	press(app, 'C')
	press(app, 'C')
	if tab.ColumnCount() != 1 {
		t.Errorf("last column must survive, got %d columns", tab.ColumnCount())
	}
}

func TestAlignmentCycleKeys(t *testing.T) {
	app := newTestApp(t)
	tab := &app.doc.Tables[0]

	want := []mdtable.Alignment{
		mdtable.AlignLeft,
		mdtable.AlignCenter,
		mdtable.AlignRight,
		mdtable.AlignNone,
	}
	for i, w := range want {
		press(app, ']')
		if got := tab.AlignmentAt(0); got != w {
			t.Fatalf("cycle %d: expected %v, got %v", i+1, w, got)
		}
	}

	press(app, '[')
	if got := tab.AlignmentAt(0); got != mdtable.AlignRight {
		t.Errorf("expected right after reverse cycle, got %v", got)
	}
}

func TestSwitchTables(t *testing.T) {
	app := newTestApp(t)

	press(app, 'j')
	press(app, 'n')
	if app.current != 1 {
		t.Fatalf("expected table 1, got %d", app.current)
	}
	if r, c := cursor(app); r != -1 || c != 0 {
		t.Errorf("switching tables should reset the cursor, got (%d,%d)", r, c)
	}

	press(app, 'n')
	if app.current != 0 {
		t.Errorf("next from last table should wrap to 0, got %d", app.current)
	}
	press(app, 'p')
	if app.current != 1 {
		t.Errorf("previous from first table should wrap to last, got %d", app.current)
	}
}

func TestSaveRewritesCanonically(t *testing.T) {
	app := newTestApp(t)

	press(app, 'j')
	press(app, 'i')
	for i := 0; i < 5; i++ {
		pressKey(app, tcell.KeyBackspace2)
	}
	typeText(app, "ink")
	pressKey(app, tcell.KeyEnter)
	press(app, 's')

	want := "# Inventory\n" +
		"| Name | Qty |\n" +
		"| -----| ---:|\n" +
		"| ink  | 100 |\n" +
		"| pens | 5   |\n" +
		"\n" +
		"# Budget\n" +
		"| Item | Cost |\n" +
		"| -----| -----|\n" +
		"| rent | 900  |"

	data, err := os.ReadFile(app.path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != want {
		t.Errorf("saved file:\n%s\nexpected:\n%s", data, want)
	}

	if app.dirty {
		t.Error("save should clear the dirty flag")
	}
	if app.status != "saved" {
		t.Errorf("expected status 'saved', got %q", app.status)
	}
	if got := app.doc.Tables[1].StartLine; got != 7 {
		t.Errorf("expected re-parsed span start 7, got %d", got)
	}
}

func TestQuitWarnsOnUnsavedChanges(t *testing.T) {
	app := newTestApp(t)

	press(app, 'r')
	press(app, 'q')
	if isStopped(app) {
		t.Fatal("first q with unsaved changes must not quit")
	}
	if app.status == "" {
		t.Error("expected a warning message")
	}

	press(app, 'j')
	press(app, 'q')
	if isStopped(app) {
		t.Fatal("warning should reset after another key")
	}

	press(app, 'q')
	if !isStopped(app) {
		t.Fatal("second q should quit")
	}
}

func TestQuitCleanWhenNotDirty(t *testing.T) {
	app := newTestApp(t)
	press(app, 'q')
	if !isStopped(app) {
		t.Fatal("q on a clean document should quit immediately")
	}
}

func TestZeroTableDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.md")
	if err := os.WriteFile(path, []byte("just prose\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	app, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	app.Resize(40, 10)

	press(app, 'r')
	press(app, 'i')
	press(app, 'n')
	if app.editing || app.dirty {
		t.Error("no mutation should be possible without tables")
	}

	buf := app.Render()
	if !strings.Contains(rowString(buf, 4), "no tables in plain.md") {
		t.Errorf("expected empty state message, got %q", rowString(buf, 4))
	}

	press(app, 'q')
	if !isStopped(app) {
		t.Fatal("q should quit the empty state")
	}
}

func TestRenderGrid(t *testing.T) {
	app := newTestApp(t)
	app.Resize(60, 12)

	buf := app.Render()

	if got := rowString(buf, 0); !strings.HasPrefix(got, "│ Name  │ Qty │") {
		t.Errorf("header row: %q", got)
	}
	if got := rowString(buf, 1); !strings.Contains(got, "───:") {
		t.Errorf("rule row should mark the right-aligned column: %q", got)
	}
	if got := rowString(buf, 2); !strings.HasPrefix(got, "│ paper │ 100 │") {
		t.Errorf("first body row: %q", got)
	}

	status := rowString(buf, 11)
	for _, part := range []string{"doc.md", "Inventory", "(1/2)", "hdr,c1"} {
		if !strings.Contains(status, part) {
			t.Errorf("status bar missing %q: %q", part, status)
		}
	}

	if buf[0][1].Style != styleCursor {
		t.Error("header cell under cursor should use the cursor style")
	}
	if buf[0][9].Style != styleHeader {
		t.Error("header cell off cursor should use the header style")
	}
}

func TestRunReturnsAfterQuit(t *testing.T) {
	app := newTestApp(t)

	done := make(chan error, 1)
	go func() { done <- app.Run() }()

	press(app, 'q')
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after quit")
	}
}
