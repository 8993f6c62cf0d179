// Copyright © 2025 mdsheet contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package apprunner hosts a full-screen tcell application: it owns the
// screen, the draw loop, and event dispatch, so the application only
// renders cell buffers and reacts to keys.
package apprunner

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Cell is one styled screen cell in a rendered buffer.
type Cell struct {
	Ch    rune
	Style tcell.Style
}

// App is a full-screen terminal application driven by Run.
type App interface {
	// Run blocks until the app decides to exit. Its return value
	// becomes the harness's return value.
	Run() error

	// Stop asks the app to shut down. Safe to call more than once.
	Stop()

	Resize(cols, rows int)
	Render() [][]Cell
	HandleKey(ev *tcell.EventKey)

	// SetRefreshNotifier hands the app a channel it may signal
	// whenever it wants to be redrawn.
	SetRefreshNotifier(ch chan<- bool)

	GetTitle() string
}

var screenFactory = tcell.NewScreen

// SetScreenFactory overrides the screen factory used by Run. Passing nil restores the default.
func SetScreenFactory(factory func() (tcell.Screen, error)) {
	if factory == nil {
		screenFactory = tcell.NewScreen
		return
	}
	screenFactory = factory
}

// Run executes the app inside a local tcell screen until the app's own
// Run returns or the user presses Ctrl-C.
func Run(app App) error {
	screen, err := screenFactory()
	if err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()
	screen.Clear()
	screen.SetTitle(app.GetTitle())

	width, height := screen.Size()
	app.Resize(width, height)
	refreshCh := make(chan bool, 1)
	app.SetRefreshNotifier(refreshCh)

	draw := func() {
		screen.Clear()
		buffer := app.Render()
		if buffer != nil {
			for y := 0; y < len(buffer); y++ {
				row := buffer[y]
				for x := 0; x < len(row); x++ {
					cell := row[x]
					screen.SetContent(x, y, cell.Ch, nil, cell.Style)
				}
			}
		}
		screen.Show()
	}

	draw()

	runErr := make(chan error, 1)
	go func() {
		runErr <- app.Run()
		// Wake the poll loop so the result is noticed without
		// waiting for another input event.
		screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()
	defer app.Stop()

	go func() {
		for range refreshCh {
			screen.PostEvent(tcell.NewEventInterrupt(nil))
		}
	}()

	for {
		select {
		case err := <-runErr:
			return err
		default:
		}

		ev := screen.PollEvent()
		switch tev := ev.(type) {
		case *tcell.EventInterrupt:
			draw()
		case *tcell.EventResize:
			w, h := tev.Size()
			app.Resize(w, h)
			draw()
		case *tcell.EventKey:
			if tev.Key() == tcell.KeyCtrlC {
				return nil
			}
			app.HandleKey(tev)
			draw()
		}
	}
}
